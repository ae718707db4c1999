// internal/webutil/response_test.go
package webutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"go_health_learning/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "NotFound", err: model.ErrNotFound, want: http.StatusNotFound},
		{name: "AppError(NotFound)", err: model.NewAppError(model.CodeGroupNotFound, "m", "", model.ErrNotFound), want: http.StatusNotFound},
		{name: "InvalidInput", err: fmt.Errorf("wrap: %w", model.ErrInvalidInput), want: http.StatusBadRequest},
		{name: "InvalidState", err: model.NewAppError(model.CodeNotCurrentStep, "m", "", model.ErrInvalidState), want: http.StatusBadRequest},
		{name: "Unauthorized", err: model.ErrUnauthorized, want: http.StatusUnauthorized},
		{name: "Forbidden", err: model.ErrForbidden, want: http.StatusForbidden},
		{name: "Conflict", err: model.ErrConflict, want: http.StatusConflict},
		{name: "Internal", err: model.NewAppError(model.CodeInternal, "m", "", model.ErrInternalServer), want: http.StatusInternalServerError},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestHandleError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("AppError はコードとメッセージをそのまま返す", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleError(rec, logger, model.NewAppError(model.CodeNotCurrentStep, "現在学習中のステップではありません。", "stepId", model.ErrInvalidState))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		var resp model.APIErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, model.CodeNotCurrentStep, resp.Error.Code)
		assert.Equal(t, "stepId", resp.Error.Field)
	})

	t.Run("予期しないエラーは詳細を隠す", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleError(rec, logger, errors.New("pq: password authentication failed"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "password")
		var resp model.APIErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, model.CodeInternal, resp.Error.Code)
	})
}
