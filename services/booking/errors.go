package booking

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a booking service failure for transport mapping.
type ErrorCode string

const (
	CodeBadRequest   ErrorCode = "badRequest"
	CodeUnauthorized ErrorCode = "unauthorized"
	CodeForbidden    ErrorCode = "forbidden"
	CodeNotFound     ErrorCode = "notFound"
	CodeConflict     ErrorCode = "conflict"
	CodeGateway      ErrorCode = "gatewayError"
	CodeInternal     ErrorCode = "internal"
)

type ServiceError struct {
	Code    ErrorCode
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code ErrorCode, format string, args ...any) error {
	return &ServiceError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// AsServiceError extracts a ServiceError from an error chain.
func AsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}
