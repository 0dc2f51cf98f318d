package errs

import "strings"

// HTTPError is the main custom error type for API responses.
//
// Status and Code drive the response and the logs, only Message is sent to
// the client (see Response).
type HTTPError struct {
	Code    string
	Message string
	Status  int
}

// ErrorBody is the inner object of an error response.
type ErrorBody struct {
	Message string `json:"message"`
}

// Response is the JSON body written for every error.
//
//	{ "error": { "message": "Folder doesn't exist" } }
type Response struct {
	Error ErrorBody `json:"error"`
}

// Error makes *HTTPError satisfy the built-in `error` interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError. It does not compare
// status or code.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// Body returns the client-facing representation of e.
func (e *HTTPError) Body() Response {
	return NewResponse(e.Message)
}

// NewResponse wraps message into the error response shape.
func NewResponse(message string) Response {
	return Response{Error: ErrorBody{Message: message}}
}

// MakeUpperCaseWithUnderscores converts a string into UPPER_CASE_WITH_UNDERSCORES.
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
