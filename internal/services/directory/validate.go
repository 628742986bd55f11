package directory

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"

	"github.com/mcoot/staffdir/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their API names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("salary", validSalary); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		return model.EmployeeStatus(fl.Field().String()).Valid()
	}); err != nil {
		panic(err)
	}
	return v
}

// validSalary accepts an empty string (no salary) or a non-negative decimal.
// Salary is stored as entered.
func validSalary(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	d, err := decimal.NewFromString(s)
	return err == nil && !d.IsNegative()
}

func validateNew(in model.NewEmployee) error {
	return validationError(validate.Struct(in))
}

func validateUpdate(in model.EmployeeUpdate) error {
	return validationError(validate.Struct(in))
}

// validationError turns the first failed rule into a ValidationError
func validationError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate employee: %w", err)
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "notblank":
		return model.ValidationError(fe.Field() + " cannot be blank")
	case "email":
		return model.ValidationError("email is not a valid address")
	case "status":
		return model.ValidationError(fmt.Sprintf("status %v is not one of active, inactive, on_leave, terminated", fe.Value()))
	case "salary":
		return model.ValidationError("salary must be a non-negative decimal number")
	}
	return model.ValidationError(fe.Field() + " is invalid")
}
