package impl

import (
	"errors"
	"reflect"
	"strings"

	domainerrors "innkeeper/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// inputValidator wraps go-playground/validator to turn struct tag failures
// into the domain's accumulated ValidationError. Validation runs every check
// and reports all failing fields, not just the first.
type inputValidator struct {
	validate *validator.Validate
}

func newInputValidator() *inputValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields under their wire names so clients can match errors to
	// the JSON payload they sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return &inputValidator{validate: v}
}

// Validate checks the input struct and returns a *domainerrors.ValidationError
// listing every failed field, or nil when the shape is valid.
func (iv *inputValidator) Validate(input any) error {
	err := iv.validate.Struct(input)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		// Non-struct input is a programming error, not a client error.
		return err
	}

	fields := make([]domainerrors.FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, domainerrors.FieldError{
			Field:   fe.Field(),
			Message: messageForTag(fe),
		})
	}

	return domainerrors.NewValidationError(fields)
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "eqfield":
		return "must match the password"
	default:
		return "is invalid"
	}
}
