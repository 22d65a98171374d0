package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// ValidationErrorResponse is the 400 body for malformed payloads: a generic
// error plus a per-field breakdown.
type ValidationErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details"`
}

// validatePayload runs the validator against the decoded request payload and
// writes the 400 response itself on failure. It reports whether the payload
// passed.
func validatePayload(w http.ResponseWriter, validate *validator.Validate, payload interface{}) bool {
	err := validate.Struct(payload)
	if err == nil {
		return true
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		respondWithJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:   "Validation failed",
			Details: formatValidationErrors(validationErrors),
		})
	} else {
		log.Error().Err(err).Msg("Unexpected error type during validation")
		respondWithError(w, http.StatusInternalServerError, "Internal validation error")
	}

	return false
}

func formatValidationErrors(errs validator.ValidationErrors) map[string]string {
	details := make(map[string]string, len(errs))
	for _, fieldErr := range errs {
		switch fieldErr.Tag() {
		case "required":
			details[fieldErr.Field()] = "is required"
		case "email":
			details[fieldErr.Field()] = "must be a valid email address"
		case "min":
			details[fieldErr.Field()] = fmt.Sprintf("must be at least %s", fieldErr.Param())
		case "max":
			details[fieldErr.Field()] = fmt.Sprintf("must be at most %s", fieldErr.Param())
		case "gt":
			details[fieldErr.Field()] = fmt.Sprintf("must be greater than %s", fieldErr.Param())
		case "gte":
			details[fieldErr.Field()] = fmt.Sprintf("must be %s or greater", fieldErr.Param())
		case "oneof":
			details[fieldErr.Field()] = fmt.Sprintf("must be one of: %s", fieldErr.Param())
		case "url":
			details[fieldErr.Field()] = "must be a valid URL"
		case "dive":
			details[fieldErr.Field()] = "contains an invalid entry"
		default:
			details[fieldErr.Field()] = fmt.Sprintf("failed %q validation", fieldErr.Tag())
		}
	}
	return details
}
