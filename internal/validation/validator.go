package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// PayloadError carries field-level validation violations, one list of
// messages per failing field
type PayloadError struct {
	violations map[string][]string
}

func (e *PayloadError) Error() string {
	buff := bytes.NewBufferString("")

	for _, messages := range e.violations {
		for _, msg := range messages {
			buff.WriteString(msg)
			buff.WriteString("\n")
		}
	}

	return buff.String()
}

func (e *PayloadError) Violation(field string, msg string) {
	if e.violations == nil {
		e.violations = make(map[string][]string)
	}
	e.violations[field] = append(e.violations[field], msg)
}

func (e *PayloadError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Errors map[string][]string `json:"errors"`
	}{
		Errors: e.violations,
	})
}

// EchoValidator is request payload validator for echo framework
type EchoValidator struct {
	validator  *validator.Validate
	translator ut.Translator
}

// Echo builds EchoValidator. Violations are reported under the json wire
// name of the failing field so clients can correlate them with the payload
func Echo(validator *validator.Validate, translator ut.Translator) *EchoValidator {
	validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return &EchoValidator{
		validator:  validator,
		translator: translator,
	}
}

func (v *EchoValidator) Validate(i any) error {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return v.payloadError(ve)
	}

	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func (v *EchoValidator) payloadError(ve validator.ValidationErrors) error {
	pldErr := &PayloadError{violations: make(map[string][]string)}
	for _, e := range ve {
		pldErr.Violation(e.Field(), e.Translate(v.translator))
	}
	return pldErr
}
