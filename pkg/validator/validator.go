package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator valida structs de entrada (DTOs con tags `validate`).
type Validator interface {
	Validate(s any) error
}

// DefaultValidator implementación sobre go-playground/validator.
type DefaultValidator struct {
	v *validator.Validate
}

// NewDefaultValidator registra las validaciones propias y usa el nombre JSON en los mensajes.
func NewDefaultValidator() (*DefaultValidator, error) {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// decimal.Decimal se valida como número (gte, gt, lte).
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	if err := v.RegisterValidation("isodate", validateISODate); err != nil {
		return nil, fmt.Errorf("register isodate validator: %w", err)
	}

	return &DefaultValidator{v: v}, nil
}

// Validate valida el struct dado.
func (v *DefaultValidator) Validate(s any) error {
	return v.v.Struct(s)
}

// IsValidationError indica si err proviene de la validación de campos.
func IsValidationError(err error) bool {
	var ve validator.ValidationErrors
	return errors.As(err, &ve)
}

// Messages traduce los errores de validación a "campo: mensaje".
func Messages(err error) []string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make([]string, 0, len(ve))
	for _, fe := range ve {
		out = append(out, fmt.Sprintf("%s: %s", fe.Field(), ValidationErrorMessage(fe)))
	}
	return out
}

// ValidationErrorMessage mensaje legible para un error de campo.
func ValidationErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "min":
		return fmt.Sprintf("debe ser al menos %s", fe.Param())
	case "max":
		return fmt.Sprintf("debe ser como máximo %s", fe.Param())
	case "gte":
		return fmt.Sprintf("debe ser mayor o igual a %s", fe.Param())
	case "gt":
		return fmt.Sprintf("debe ser mayor a %s", fe.Param())
	case "lte":
		return fmt.Sprintf("debe ser menor o igual a %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("debe ser uno de [%s]", fe.Param())
	case "isodate":
		return "debe tener formato YYYY-MM-DD"
	default:
		return "es inválido"
	}
}

func decimalValue(v reflect.Value) interface{} {
	d, ok := v.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	f, _ := d.Float64()
	return f
}

func validateISODate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}
