package infrastructures

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	appErrors "github.com/safatanc/jewelry-backoffice/internal/app/errors"
	"github.com/shopspring/decimal"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// Report fields under their JSON names so errors line up with the form
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterValidation("nonneg_decimal", validateNonNegativeDecimal)
	validate.RegisterValidation("min_uses", validateMinUses)

	return &Validator{
		validate: validate,
	}
}

func (v *Validator) Validate(i interface{}) error {
	if i == nil {
		return appErrors.NewBadRequestError("Invalid request body")
	}

	err := v.validate.Struct(i)
	if err != nil {
		return appErrors.NewBadRequestError(err.Error())
	}
	return nil
}

// ValidateFields validates i and reports failures as per-field messages.
func (v *Validator) ValidateFields(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return appErrors.NewBadRequestError(err.Error())
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = fieldMessage(fe)
	}
	return appErrors.NewValidationError(fields)
}

// RegisterStructValidation adds a cross-field rule for the given types
func (v *Validator) RegisterStructValidation(fn validator.StructLevelFunc, types ...interface{}) {
	v.validate.RegisterStructValidation(fn, types...)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "numeric":
		return "Must be a number"
	case "number":
		return "Must be a whole number"
	case "nonneg_decimal":
		return "Must be zero or greater"
	case "min_uses":
		return "Must be at least 1"
	case "datetime":
		return "Must be a valid date (YYYY-MM-DD)"
	case "date_order":
		return "End date must be on or after the start date"
	default:
		return fmt.Sprintf("Failed on the '%s' rule", fe.Tag())
	}
}

func validateNonNegativeDecimal(fl validator.FieldLevel) bool {
	value, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return !value.IsNegative()
}

func validateMinUses(fl validator.FieldLevel) bool {
	value, err := strconv.Atoi(fl.Field().String())
	if err != nil {
		return false
	}
	return value >= 1
}
