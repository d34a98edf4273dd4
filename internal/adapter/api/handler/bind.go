package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/labstack/echo/v4"

	"mediavault/pkg/errors"
)

// bindStrict decodes the JSON body into dst, rejecting fields dst does not
// declare. An empty body leaves dst untouched.
func bindStrict(c echo.Context, dst interface{}) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if err == io.EOF {
			return nil
		}
		if field, ok := unknownField(err); ok {
			return errors.Validation(fmt.Sprintf("field %s cannot be set", field))
		}
		return errors.BadRequest("Invalid request body", err)
	}
	if dec.More() {
		return errors.BadRequest("Invalid request body", fmt.Errorf("unexpected data after JSON value"))
	}
	return nil
}

// unknownField extracts the name from encoding/json's unknown-field error.
func unknownField(err error) (string, bool) {
	const prefix = "json: unknown field "
	msg := err.Error()
	if !strings.HasPrefix(msg, prefix) {
		return "", false
	}
	return strings.TrimPrefix(msg, prefix), true
}
