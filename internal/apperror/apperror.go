// File: internal/apperror/apperror.go
package apperror

import (
	"errors"
	"net/http"
)

// Kind 錯誤分類，對應到 HTTP 狀態碼
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindAuth
	KindForbidden
	KindConflict
	KindNotFound
	KindRateLimited
	KindStorage
)

const internalMessage = "internal server error"

// Error 是服務層回傳的統一錯誤型別
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		if e.Message == "" {
			return e.Err.Error()
		}
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

func Auth(msg string) *Error { return &Error{Kind: KindAuth, Message: msg} }

func Forbidden(msg string) *Error { return &Error{Kind: KindForbidden, Message: msg} }

func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Message: msg} }

func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

func RateLimited(msg string) *Error { return &Error{Kind: KindRateLimited, Message: msg} }

// Storage 包裝儲存層失敗，細節只寫入日誌
func Storage(err error) *Error { return &Error{Kind: KindStorage, Err: err} }

func Unexpected(err error) *Error { return &Error{Kind: KindUnexpected, Err: err} }

// KindOf 取出錯誤分類，非 *Error 一律視為 KindUnexpected
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// HTTPStatus 將任意錯誤映射為 HTTP 狀態碼
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage 回傳可給前端看的訊息；儲存與未預期錯誤不外洩細節
func PublicMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return internalMessage
	}
	switch e.Kind {
	case KindStorage, KindUnexpected:
		return internalMessage
	}
	if e.Message == "" {
		return http.StatusText(HTTPStatus(err))
	}
	return e.Message
}
