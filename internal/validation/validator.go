package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Violation is single field-level validation failure
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// PayloadError aggregates all violations of a request payload
type PayloadError struct {
	violations []Violation
}

func (e *PayloadError) Error() string {
	buff := bytes.NewBufferString("")

	for _, err := range e.violations {
		buff.WriteString(err.Message)
		buff.WriteString("\n")
	}

	return buff.String()
}

// Violation appends violation to error
func (e *PayloadError) Violation(v Violation) {
	e.violations = append(e.violations, v)
}

// Violations returns collected violations
func (e *PayloadError) Violations() []Violation {
	return e.violations
}

func (e *PayloadError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Errors []Violation `json:"errors"`
	}{
		Errors: e.violations,
	})
}

// EchoValidator adapts go-playground validator to echo's Validator interface
type EchoValidator struct {
	validator  *validator.Validate
	translator ut.Translator
}

// Echo builds new EchoValidator
func Echo(validator *validator.Validate, translator ut.Translator) *EchoValidator {
	return &EchoValidator{
		validator:  validator,
		translator: translator,
	}
}

// Validate runs struct validation and translates failures to PayloadError
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
	pldErr := &PayloadError{violations: make([]Violation, 0)}
	for _, e := range ve {
		pldErr.Violation(Violation{
			Field:   e.Field(),
			Message: e.Translate(v.translator),
		})
	}
	return pldErr
}
