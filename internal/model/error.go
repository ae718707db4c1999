// internal/model/error.go
package model

import (
	"errors"
	"fmt"
)

// アプリケーション固有のエラー
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidState   = errors.New("invalid state")
	ErrInternalServer = errors.New("internal server error")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("resource conflict") // 重複エラー用
)

// エラーコード (クライアント向け)
const (
	CodeGroupNotFound            = "GROUP_NOT_FOUND"
	CodeStepNotFound             = "STEP_NOT_FOUND"
	CodeProgressNotFound         = "PROGRESS_NOT_FOUND"
	CodeInterestGroupNotSelected = "INTEREST_GROUP_NOT_SELECTED"
	CodeNoLearnableContent       = "NO_LEARNABLE_CONTENT"
	CodeNotCurrentStep           = "NOT_CURRENT_STEP"
	CodeNextStepUnresolved       = "NEXT_STEP_UNRESOLVED"
	CodeValidation               = "VALIDATION_ERROR"
	CodeUnauthorized             = "UNAUTHORIZED"
	CodeInternal                 = "INTERNAL_SERVER_ERROR"
)

// ErrorDetail はエラーレスポンスの中身
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIErrorResponse はAPIエラーレスポンスの構造体
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// AppError はクライアントに返す情報と原因となったエラーを保持します。
// Err には上記のセンチネルエラー (またはそれをラップしたエラー) を入れる。
type AppError struct {
	Detail ErrorDetail
	Err    error
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Detail: ErrorDetail{Code: code, Message: message, Field: field},
		Err:    err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Detail.Code, e.Detail.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Detail.Code, e.Detail.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
