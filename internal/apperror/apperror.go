// Package apperror задает виды ошибок сервиса и их HTTP статусы.
package apperror

import (
	"errors"
	"net/http"
)

type Kind string

const (
	ValidationError    Kind = "ValidationError"
	DuplicateIdentity  Kind = "DuplicateIdentity"
	InvalidCredentials Kind = "InvalidCredentials"
	InvalidToken       Kind = "InvalidToken"
	NotFound           Kind = "NotFound"
	KeyUnavailable     Kind = "KeyUnavailable"
	StorageFailure     Kind = "StorageFailure"
	InvalidPayload     Kind = "InvalidPayload"
	Internal           Kind = "InternalError"
)

// Error : ошибка с видом. Message безопасно отдавать клиенту, Err хранит причину.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf возвращает вид первой *Error в цепочке, иначе Internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// MessageOf возвращает клиентское сообщение первой *Error в цепочке.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return ""
}

func HTTPStatus(kind Kind) int {
	switch kind {
	case ValidationError, DuplicateIdentity, InvalidCredentials:
		return http.StatusBadRequest
	case InvalidToken:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
