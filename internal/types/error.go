package types

import "fmt"

// CustomError is a rejection raised by middleware and rendered by the
// global error handler
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// NewCustomError formats the message
func NewCustomError(code int, errorType, format string, args ...interface{}) *CustomError {
	return &CustomError{Code: code, Message: fmt.Sprintf(format, args...), Type: errorType}
}
