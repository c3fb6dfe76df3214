// Package handler implements the HTTP+JSON API surface. Handlers only
// decode requests, call services, and encode outcomes; every ledger rule
// lives below this layer.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/kmadan/splitledger/internal/auth"
	"github.com/kmadan/splitledger/internal/calculator"
	"github.com/kmadan/splitledger/internal/money"
	"github.com/kmadan/splitledger/internal/ocr"
	"github.com/kmadan/splitledger/internal/service"
	"github.com/kmadan/splitledger/internal/storage"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func respondFailure(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Success: false, Message: message})
}

// Unauthorized writes a 401 failure. Exported for the auth middleware.
func Unauthorized(w http.ResponseWriter, err error) {
	respondFailure(w, http.StatusUnauthorized, err.Error())
}

// respondError maps domain errors to HTTP statuses. Validation errors
// carry their own message verbatim so the caller can fix the input;
// anything unrecognized is a 500 with the detail kept in the logs.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case isValidationError(err):
		respondFailure(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondFailure(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrEmailExists):
		respondFailure(w, http.StatusConflict, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		respondFailure(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrScanningDisabled):
		respondFailure(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, ocr.ErrScanFailed):
		respondFailure(w, http.StatusBadGateway, err.Error())
	default:
		slog.Error("unhandled error", "error", err)
		respondFailure(w, http.StatusInternalServerError, "internal error")
	}
}

func isValidationError(err error) bool {
	validation := []error{
		calculator.ErrEmptyDescription,
		calculator.ErrNonPositiveTotal,
		calculator.ErrNoParticipants,
		calculator.ErrDuplicateParticipant,
		calculator.ErrPayerInParticipants,
		calculator.ErrNegativeShare,
		calculator.ErrSplitMismatch,
		money.ErrCurrencyMismatch,
		service.ErrUnknownParticipant,
		service.ErrEmptyFriendName,
		service.ErrMissingField,
		auth.ErrWeakPassword,
	}
	for _, v := range validation {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
