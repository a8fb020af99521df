package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hris-shift-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	appErr, ok := apperror.From(err)
	if !ok {
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
		return
	}

	switch appErr.Kind {
	case apperror.KindValidation:
		Error(w, http.StatusBadRequest, appErr.Code, appErr.Message)
	case apperror.KindPolicy:
		Error(w, http.StatusConflict, appErr.Code, appErr.Message)
	case apperror.KindAuthorization:
		Error(w, http.StatusForbidden, appErr.Code, appErr.Message)
	case apperror.KindNotFound:
		Error(w, http.StatusNotFound, appErr.Code, appErr.Message)
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
