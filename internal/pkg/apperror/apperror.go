package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error for transport mapping.
type Kind string

const (
	KindNotFound     Kind = "NOT_FOUND"
	KindValidation   Kind = "VALIDATION"
	KindProvider     Kind = "PROVIDER"
	KindDecode       Kind = "DECODE"
	KindUnauthorized Kind = "UNAUTHORIZED"
)

// AppError carries a canonical kind plus a human-readable detail string.
// Implementation internals must not leak beyond Detail.
type AppError struct {
	Kind   Kind
	Detail string
	cause  error
}

func (e *AppError) Error() string {
	return e.Detail
}

func (e *AppError) Unwrap() error {
	return e.cause
}

func NotFound(detail string) *AppError {
	return &AppError{Kind: KindNotFound, Detail: detail}
}

func Validation(detail string) *AppError {
	return &AppError{Kind: KindValidation, Detail: detail}
}

func Unauthorized(detail string) *AppError {
	return &AppError{Kind: KindUnauthorized, Detail: detail}
}

func Provider(cause error) *AppError {
	return &AppError{
		Kind:   KindProvider,
		Detail: fmt.Sprintf("model provider failure: %v", cause),
		cause:  cause,
	}
}

// ProviderDetail keeps the caller-facing detail text identical to what was
// persisted in the conversation log.
func ProviderDetail(detail string, cause error) *AppError {
	return &AppError{Kind: KindProvider, Detail: detail, cause: cause}
}

func Decode(cause error) *AppError {
	return &AppError{
		Kind:   KindDecode,
		Detail: fmt.Sprintf("unreadable attachment: %v", cause),
		cause:  cause,
	}
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind == kind
	}
	return false
}

// StatusCode maps an error kind to its HTTP status.
func StatusCode(err error) int {
	var ae *AppError
	if !errors.As(err, &ae) {
		return 500
	}
	switch ae.Kind {
	case KindNotFound:
		return 404
	case KindValidation:
		return 400
	case KindUnauthorized:
		return 401
	case KindProvider:
		return 502
	default:
		return 500
	}
}
