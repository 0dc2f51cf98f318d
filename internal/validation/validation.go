// Package validation binds request bodies and runs their checks.
//
// Payloads either rely on `validate` struct tags through the shared
// go-playground validator or check themselves and return an
// *errs.HTTPError carrying the exact client message.
package validation

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/noteful/internal/errs"
)

// Validatable is implemented by request payloads.
type Validatable interface {
	Validate() error
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct runs the tag based rules on v.
func Struct(v any) error {
	return validate.Struct(v)
}

const (
	// MalformedBodyMessage is sent when the body cannot be decoded.
	MalformedBodyMessage = "Malformed request body"
	// ValidationFailedMessage is sent when tag based rules fail without a
	// payload specific message.
	ValidationFailedMessage = "Validation failed"
)

// BindAndValidate decodes the request into payload and validates it.
//
// A body that is not JSON is ignored and the payload validated as empty, so
// the client gets the same missing-field message as for `{}`. Decoding
// errors become a 400 and an *errs.HTTPError from Validate is returned as is.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil && !unsupportedMediaType(err) {
		return errs.NewBadRequestError(MalformedBodyMessage, nil)
	}

	if err := payload.Validate(); err != nil {
		var httpErr *errs.HTTPError
		if errors.As(err, &httpErr) {
			return httpErr
		}

		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return errs.NewBadRequestError(ValidationFailedMessage, nil)
		}
		return errs.ValidationError(err)
	}

	return nil
}

func unsupportedMediaType(err error) bool {
	var httpErr *echo.HTTPError
	return errors.As(err, &httpErr) && httpErr.Code == http.StatusUnsupportedMediaType
}
