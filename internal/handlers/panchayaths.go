package handlers

import (
	"log"
	"net/http"

	"panchayath-ops/internal/config"
	"panchayath-ops/internal/models"
)

type PanchayathHandler struct {
	cfg *config.Config
}

func NewPanchayathHandler(cfg *config.Config) *PanchayathHandler {
	return &PanchayathHandler{cfg: cfg}
}

// GET /api/panchayaths - reference data for form dropdowns
func (h *PanchayathHandler) List(w http.ResponseWriter, r *http.Request) {
	panchayaths, err := models.GetPanchayaths()
	if err != nil {
		log.Printf("ERROR: Failed to list panchayaths: %v", err)
		jsonError(w, http.StatusInternalServerError, "Failed to load panchayaths")
		return
	}

	type panchayathResponse struct {
		ID            string `json:"id"`
		Name          string `json:"name"`
		NumberOfWards int32  `json:"number_of_wards"`
	}
	response := make([]panchayathResponse, 0, len(panchayaths))
	for _, p := range panchayaths {
		response = append(response, panchayathResponse{
			ID:            p.ID.String(),
			Name:          p.Name,
			NumberOfWards: p.NumberOfWards,
		})
	}
	jsonResponse(w, http.StatusOK, response)
}
