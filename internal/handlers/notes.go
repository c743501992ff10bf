package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"panchayath-ops/internal/config"
	"panchayath-ops/internal/models"
	"panchayath-ops/internal/util"
)

type NotesHandler struct {
	cfg *config.Config
}

func NewNotesHandler(cfg *config.Config) *NotesHandler {
	return &NotesHandler{cfg: cfg}
}

// POST /api/notes - records one day's activity note for an agent.
// A second note for the same (mobile, date) replaces the first.
func (h *NotesHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MobileNumber string `json:"mobile_number"`
		Date         string `json:"date"`
		IsLeave      bool   `json:"is_leave"`
		Activity     string `json:"activity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	mobile := models.NormalizeMobile(req.MobileNumber)
	if len(mobile) != 10 {
		jsonError(w, http.StatusBadRequest, "mobile number must be exactly 10 digits")
		return
	}

	date, err := util.ParseDateLocal(req.Date)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}
	if err := util.ValidateNotFutureDate(date); err != nil {
		jsonError(w, http.StatusBadRequest, "date cannot be in the future")
		return
	}

	if err := models.UpsertDailyNote(mobile, date, req.IsLeave, req.Activity); err != nil {
		log.Printf("ERROR: Failed to save note: %v", err)
		jsonError(w, http.StatusInternalServerError, "Failed to save note")
		return
	}

	h.cfg.Debugf("Note saved for %s on %s", mobile, req.Date)
	jsonResponse(w, http.StatusOK, map[string]bool{"ok": true})
}
