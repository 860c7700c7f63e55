package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/companieshouse/payment-collections.api.ch.gov.uk/money"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// report json names so messages match the request payload
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if amount, ok := field.Interface().(money.BigNumber); ok {
			return amount.Float64()
		}
		return nil
	}, money.BigNumber{})

	return v
}

// validateRequest validates req and reports the first failure against
// entity, e.g. "Value for PaymentCollection.currency_code is required,
// 'undefined' found".
func validateRequest(entity string, req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return wrapError(ValidationError, err, "invalid %s: [%v]", entity, err)
	}

	fe := validationErrors[0]
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	var message string
	switch fe.Tag() {
	case "required":
		message = fmt.Sprintf("Value for %s.%s is required, 'undefined' found", entity, field)
	case "gt":
		message = fmt.Sprintf("Value for %s.%s must be greater than %s, '%v' found", entity, field, fe.Param(), fe.Value())
	case "email":
		message = fmt.Sprintf("Value for %s.%s must be a valid email, '%v' found", entity, field, fe.Value())
	default:
		message = fmt.Sprintf("Value for %s.%s is invalid, '%v' found", entity, field, fe.Value())
	}
	return wrapError(ValidationError, err, "%s", message)
}

// validatePositive checks an optional amount.
func validatePositive(entity, field string, amount *money.BigNumber) error {
	if amount != nil && !amount.IsPositive() {
		return newError(ValidationError, "Value for %s.%s must be greater than 0, '%s' found", entity, field, amount.String())
	}
	return nil
}
