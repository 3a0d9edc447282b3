// Package errors defines the error-kind vocabulary shared by the ring
// core and any transport that ends up wrapping it. Only the three
// kinds the ring ever raises are represented here: NotFound,
// InvalidArgument, and Internal.
package errors

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Standard error codes.
const (
	CodeNotFound        = "NOT_FOUND"
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeInternal        = "INTERNAL"
)

// AppError is a custom error type that includes an error code, message, and underlying error.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NotFound wraps err as a NotFound AppError. msg should distinguish the
// operation that raised it (e.g. empty-ring route vs. unknown-node remove).
func NotFound(msg string, err error) *AppError {
	if msg == "" {
		msg = "resource not found"
	}
	return New(CodeNotFound, msg, err)
}

// InvalidArgument wraps err as an InvalidArgument AppError.
func InvalidArgument(msg string, err error) *AppError {
	if msg == "" {
		msg = "invalid argument"
	}
	return New(CodeInvalidArgument, msg, err)
}

// Internal wraps err as an Internal AppError, signaling an invariant
// breach detected mid-operation.
func Internal(msg string, err error) *AppError {
	if msg == "" {
		msg = "internal error"
	}
	return New(CodeInternal, msg, err)
}

// HTTPStatus returns the HTTP status code for a given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case CodeNotFound:
			return http.StatusNotFound
		case CodeInvalidArgument:
			return http.StatusBadRequest
		case CodeInternal:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}

// GRPCStatus returns the gRPC status for a given error.
func GRPCStatus(err error) *status.Status {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case CodeNotFound:
			return status.New(codes.NotFound, appErr.Message)
		case CodeInvalidArgument:
			return status.New(codes.InvalidArgument, appErr.Message)
		case CodeInternal:
			return status.New(codes.Internal, appErr.Message)
		}
	}
	return status.New(codes.Unknown, err.Error())
}

// Wrap is a utility to wrap an error with a message.
func Wrap(err error, msg string) error {
	return fmt.Errorf("%s: %w", msg, err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target, and if so, sets target to that error value and returns true.
func As(err error, target any) bool {
	return errors.As(err, target)
}
