package validator

import (
	"log"
	"time"

	"weijob_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs the domain validation tags.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Startup misconfiguration, refuse to run.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-share-type", validateShareType)
	mustRegister("is-job-status", validateJobStatus)
	mustRegister("is-day", validateDay)
}

func validateShareType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' handles empties
	}
	for _, t := range models.ValidShareTypes {
		if models.ShareType(value) == t {
			return true
		}
	}
	return false
}

func validateJobStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	for _, s := range models.ValidJobStatuses {
		if models.JobStatus(value) == s {
			return true
		}
	}
	return false
}

// validateDay accepts strict YYYY-MM-DD calendar days.
func validateDay(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := time.Parse(models.DayFormat, value)
	return err == nil
}
