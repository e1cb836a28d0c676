package service

import (
	"errors"
	"fmt"

	"ConferenceAPI/internal/filter"
	"ConferenceAPI/internal/model"
)

type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

// Error is a failure that is safe to show to the client.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func BadRequest(format string, args ...any) error {
	return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...any) error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// KindOf classifies err. Filter and field validation errors count as bad
// requests; anything unrecognised is internal.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	var (
		badFilter *filter.InvalidFilterError
		badValue  *filter.InvalidFilterValueError
		multiIneq *filter.MultipleInequalityFieldsError
		badField  *model.InvalidFieldError
	)
	switch {
	case errors.As(err, &badFilter), errors.As(err, &badValue),
		errors.As(err, &multiIneq), errors.As(err, &badField):
		return KindBadRequest
	}
	return KindInternal
}
