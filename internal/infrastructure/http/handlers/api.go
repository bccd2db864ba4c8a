// Package handlers provides HTTP handlers for the JSON API
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/recipehub/api/pkg/errors"
	"go.uber.org/zap"
)

var validate = validator.New()

// ErrorEnvelope is the error body shape for every API error
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the error code and message in API responses
type ErrorBody struct {
	Code      errors.ErrorCode       `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp string                 `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// writeError maps an error to its HTTP status and JSON envelope.
// Internal details never reach the client; they are logged server-side
// by the services that produced them.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	appErr := errors.Wrap(err, "request failed")

	body := ErrorBody{
		Code:      appErr.Code,
		Message:   appErr.Message,
		Details:   appErr.Details,
		Metadata:  appErr.Metadata,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if appErr.StatusCode() >= http.StatusInternalServerError {
		logger.Error("Request failed", zap.Error(appErr))
		body.Details = ""
		body.Metadata = nil
		body.Message = "An unexpected error occurred"
	}

	writeJSON(w, appErr.StatusCode(), ErrorEnvelope{Error: body})
}

// decodeAndValidate decodes the JSON body into dst and runs the
// validator tags. Returns a client-facing AppError on failure.
func decodeAndValidate(r *http.Request, dst interface{}) *errors.AppError {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.NewBadRequestError("Invalid JSON payload")
	}
	if err := validate.Struct(dst); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			details := make([]errors.ValidationError, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				details = append(details, errors.ValidationError{
					Field:   fe.Field(),
					Value:   fe.Value(),
					Tag:     fe.Tag(),
					Message: fe.Field() + " failed validation on " + fe.Tag(),
				})
			}
			return errors.NewValidationErrors(details)
		}
		return errors.NewValidationError(err.Error())
	}
	return nil
}
