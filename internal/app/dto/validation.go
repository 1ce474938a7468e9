package dto

import (
	"gestic/internal/app/ds"

	"github.com/go-playground/validator/v10"
)

// RegisterValidations adds the status rules used by the payload binding tags.
// Statuses are matched in any letter case.
func RegisterValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("service_status", func(fl validator.FieldLevel) bool {
		_, err := ds.ParseServiceStatus(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}
	return v.RegisterValidation("request_status", func(fl validator.FieldLevel) bool {
		_, err := ds.ParseRequestStatus(fl.Field().String())
		return err == nil
	})
}
