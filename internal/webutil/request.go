// internal/webutil/request.go
package webutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go_health_learning/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// maxBodyBytes はリクエストボディの上限
const maxBodyBytes = 1 << 20

// DecodeJSONBody はリクエストボディをデコードします
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return model.NewAppError(model.CodeValidation, "リクエストボディが必要です。", "", model.ErrInvalidInput)
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return model.NewAppError(model.CodeValidation, "リクエストボディの形式が正しくありません。", "",
			fmt.Errorf("%w: %v", model.ErrInvalidInput, err))
	}
	return nil
}

// DecodeAndValidate は DecodeJSONBody の後に Validator.Struct を実行します。
// バリデーションエラーは日本語メッセージ付きの AppError に変換される。
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if err := DecodeJSONBody(w, r, dst); err != nil {
		return err
	}
	if err := Validator.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return NewValidationErrorResponse(validationErrors)
		}
		return err
	}
	return nil
}

// ParseUUIDParam は chi の URL パラメータを UUID として取り出します。
func ParseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	return parseUUID(chi.URLParam(r, name), name)
}

// ParseOptionalUUIDQuery はクエリパラメータを UUID として取り出します。未指定なら nil。
func ParseOptionalUUIDQuery(r *http.Request, name string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := parseUUID(raw, name)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// ParseUUIDField はリクエストボディの文字列フィールドを UUID に変換します。
// 失敗時は field を指す VALIDATION_ERROR。
func ParseUUIDField(raw, field string) (uuid.UUID, error) {
	return parseUUID(raw, field)
}

func parseUUID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, model.NewAppError(model.CodeValidation,
			fmt.Sprintf("%sの形式が正しくありません。", translateField(field)), field, model.ErrInvalidInput)
	}
	return id, nil
}
