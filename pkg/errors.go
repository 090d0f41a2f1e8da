package pkg

import "fmt"

// AppError is the error shape returned by HTTP handlers.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Fields     map[string][]string
	Err        error
}

// HTTPError is the JSON body written for an AppError.
type HTTPError struct {
	Status string              `json:"status"`
	Code   string              `json:"code"`
	Error  string              `json:"error"`
	Errors map[string][]string `json:"errors,omitempty"`
}

func NewDomainError(code, message string, err error, status int) *AppError {
	return &AppError{Code: code, Message: message, Err: err, HTTPStatus: status}
}

func NewDomainErrorSimple(code, message string, status int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// NewValidationError carries field level messages, keyed by request field name.
func NewValidationError(message string, fields map[string][]string, status int) *AppError {
	return &AppError{Code: "VALIDATION_ERROR", Message: message, Fields: fields, HTTPStatus: status}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ToHTTPError never exposes the wrapped cause.
func (e *AppError) ToHTTPError() HTTPError {
	return HTTPError{
		Status: "error",
		Code:   e.Code,
		Error:  e.Message,
		Errors: e.Fields,
	}
}
