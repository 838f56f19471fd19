package errorx

import "fmt"

type Error struct {
	Code    Code
	Message string
	Details map[string]any
}

var Unknown = Error{Code: Internal, Message: "Request failed"}

func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

func (e Error) Error() string {
	return e.Message
}

// With returns a copy of the error carrying an extra detail field. Details are
// serialized into the response envelope for machine-readable handling.
func (e Error) With(key string, value any) Error {
	details := map[string]any{}
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}
