package handlers

import (
	"log"
	"net/http"

	"panchayath-ops/internal/config"
	"panchayath-ops/internal/report"
	"panchayath-ops/internal/util"

	"github.com/google/uuid"
)

type ReportHandler struct {
	cfg       *config.Config
	generator *report.Generator
}

func NewReportHandler(cfg *config.Config) *ReportHandler {
	return &ReportHandler{
		cfg:       cfg,
		generator: report.NewGenerator(cfg.ReportConcurrency),
	}
}

// GET /api/report?panchayath_id=...&month=YYYY-MM
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	panchayathID, err := uuid.Parse(r.URL.Query().Get("panchayath_id"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid panchayath_id")
		return
	}

	monthStart, monthEnd, err := util.MonthWindow(r.URL.Query().Get("month"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid month, expected YYYY-MM")
		return
	}

	rep, err := h.generator.Generate(panchayathID, monthStart, monthEnd)
	if err != nil {
		log.Printf("ERROR: Failed to generate report: %v", err)
		jsonError(w, http.StatusInternalServerError, "Failed to generate report")
		return
	}

	h.cfg.Debugf("Report for %s: %d agents, %d inactive", panchayathID, rep.TotalAgents, rep.InactiveAgents)
	jsonResponse(w, http.StatusOK, rep)
}
