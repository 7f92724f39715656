package httperr

import "errors"

// Kind classifies a business error so handlers can pick the HTTP status.
type Kind int

const (
	KindValidation Kind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindInvalidState
	KindPartialFailure
)

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

func Validation(code, message string) error {
	return BusinessError{Kind: KindValidation, Code: code, Message: message}
}

func Unauthenticated(code, message string) error {
	return BusinessError{Kind: KindUnauthorized, Code: code, Message: message}
}

func Forbidden(code, message string) error {
	return BusinessError{Kind: KindForbidden, Code: code, Message: message}
}

func Missing(code, message string) error {
	return BusinessError{Kind: KindNotFound, Code: code, Message: message}
}

func Conflict(code, message string) error {
	return BusinessError{Kind: KindConflict, Code: code, Message: message}
}

func InvalidState(code, message string) error {
	return BusinessError{Kind: KindInvalidState, Code: code, Message: message}
}

func PartialFailure(code, message string) error {
	return BusinessError{Kind: KindPartialFailure, Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// KindOf reports the kind of a business error. ok is false for any other error.
func KindOf(err error) (Kind, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return 0, false
}
