// internal/handlers/helpers_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go_health_learning/internal/config"
	"go_health_learning/internal/handlers"
	"go_health_learning/internal/middleware"
	"go_health_learning/internal/model"
	"go_health_learning/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// httpRequestDetails はHTTPリクエストの送信に必要な情報をまとめます。
type httpRequestDetails struct {
	Method  string
	Path    string
	Body    interface{}
	Headers map[string]string
}

// httpResponseExpectations はHTTPレスポンスの検証に必要な期待値をまとめます。
type httpResponseExpectations struct {
	ExpectedCode      int
	ExpectedErrorCode string
}

// serviceMocks はルーターに注入するサービスのモック
type serviceMocks struct {
	dailyLearning *mocks.DailyLearningService
	interestGroup *mocks.InterestGroupService
	content       *mocks.ContentService
}

// newTestServer は認証無効 (X-User-ID) のルーターをモックで組み立てます。
func newTestServer(t *testing.T) (*httptest.Server, *serviceMocks) {
	t.Helper()
	m := &serviceMocks{
		dailyLearning: mocks.NewDailyLearningService(t),
		interestGroup: mocks.NewInterestGroupService(t),
		content:       mocks.NewContentService(t),
	}
	router := handlers.NewRouter(handlers.RouterDeps{
		Config:        &config.Config{Auth: config.AuthConfig{Enabled: false}},
		Logger:        testLogger,
		DailyLearning: handlers.NewDailyLearningHandler(m.dailyLearning),
		InterestGroup: handlers.NewInterestGroupHandler(m.interestGroup),
		Content:       handlers.NewContentHandler(m.content),
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, m
}

func userHeader(userID uuid.UUID) map[string]string {
	return map[string]string{middleware.DevUserHeader: userID.String()}
}

// sendRequest はHTTPリクエストを送信し、ステータスコードを検証してボディを返します。
func sendRequest(t *testing.T, server *httptest.Server, details httpRequestDetails, expectations httpResponseExpectations) []byte {
	t.Helper()

	var reqBodyReader io.Reader
	if details.Body != nil {
		if strPayload, ok := details.Body.(string); ok {
			reqBodyReader = strings.NewReader(strPayload)
		} else {
			reqBodyBytes, err := json.Marshal(details.Body)
			require.NoError(t, err, "Failed to marshal request body")
			reqBodyReader = bytes.NewBuffer(reqBodyBytes)
		}
	}

	req, err := http.NewRequest(details.Method, server.URL+details.Path, reqBodyReader)
	require.NoError(t, err, "Failed to create request")
	if reqBodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range details.Headers {
		req.Header.Set(key, value)
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err, "Failed to execute request")
	defer resp.Body.Close()

	respBodyBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")

	assert.Equal(t, expectations.ExpectedCode, resp.StatusCode, "Status code mismatch: %s", string(respBodyBytes))
	if expectations.ExpectedErrorCode != "" {
		verifyErrorResponse(t, respBodyBytes, expectations.ExpectedErrorCode)
	}
	return respBodyBytes
}

// verifyErrorResponse はエラーレスポンスのコードを検証します。
func verifyErrorResponse(t *testing.T, bodyBytes []byte, expectedCode string) {
	t.Helper()
	var errResp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(bodyBytes, &errResp), "error body is not APIErrorResponse: %s", string(bodyBytes))
	assert.Equal(t, expectedCode, errResp.Error.Code)
	assert.NotEmpty(t, errResp.Error.Message)
}

func decodeBody[T any](t *testing.T, bodyBytes []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(bodyBytes, &v), "Failed to decode body: %s", string(bodyBytes))
	return v
}
