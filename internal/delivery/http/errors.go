package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/frontandrew/carrent/internal/domain"
	"github.com/frontandrew/carrent/internal/pkg/logger"
)

// statusForError сопоставляет доменную ошибку HTTP статусу
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrParse), errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSchedulingConflict), errors.Is(err, domain.ErrReferentialConflict):
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError отвечает клиенту по ошибке сервиса.
// Текст внутренних ошибок наружу не отдается: клиент видит только ErrInternal.
func respondServiceError(w http.ResponseWriter, log logger.Logger, err error, action string) {
	switch {
	case errors.Is(err, domain.ErrCarAlreadyExists):
		respondFieldErrors(w, map[string]string{
			"registration_number": "car with this registration number already exists",
		})
		return
	case errors.Is(err, domain.ErrInvalidRegistration):
		respondFieldErrors(w, map[string]string{
			"registration_number": fmt.Sprintf("must be 1 to %d characters without spaces", domain.MaxRegistrationLength),
		})
		return
	}

	status := statusForError(err)
	if status == http.StatusInternalServerError {
		log.Error("Failed to "+action, map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, status, fmt.Errorf("failed to %s: %w", action, domain.ErrInternal).Error())
		return
	}

	respondError(w, status, err.Error())
}
