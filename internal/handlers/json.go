package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"panchayath-ops/internal/models"
)

// JSON response helpers
func jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("ERROR: Failed to encode JSON response: %v", err)
	}
}

func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// writeDomainError maps domain errors to responses. Validation problems are
// 400 with the field named; duplicate mobile and taken ward are 409 so the
// user can correct and resubmit. Anything else is logged and reported as a
// generic failure; the client may retry the same submission.
func writeDomainError(w http.ResponseWriter, err error) {
	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		jsonResponse(w, http.StatusBadRequest, map[string]string{
			"error": vErr.Message,
			"field": vErr.Field,
		})
		return
	}

	var dupErr *models.DuplicateMobileError
	if errors.As(err, &dupErr) {
		jsonResponse(w, http.StatusConflict, map[string]string{
			"error": "mobile number already exists",
			"table": dupErr.Role.TableName(),
		})
		return
	}

	var wardErr *models.WardTakenError
	if errors.As(err, &wardErr) {
		jsonError(w, http.StatusConflict, "ward already assigned")
		return
	}

	log.Printf("ERROR: %v", err)
	jsonError(w, http.StatusInternalServerError, "Something went wrong, please try again")
}
