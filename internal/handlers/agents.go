package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"panchayath-ops/internal/config"
	"panchayath-ops/internal/models"

	"github.com/google/uuid"
)

type AgentHandler struct {
	cfg *config.Config
}

func NewAgentHandler(cfg *config.Config) *AgentHandler {
	return &AgentHandler{cfg: cfg}
}

// isNotFound reports whether a repository error means the row does not
// exist, as opposed to the backend failing.
func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

type agentRequest struct {
	Role          string   `json:"role"`
	Name          string   `json:"name"`
	MobileNumber  string   `json:"mobile_number"`
	Ward          int32    `json:"ward"`
	PanchayathID  string   `json:"panchayath_id"`
	Rating        *float64 `json:"rating,omitempty"`
	GroupLeaderID string   `json:"group_leader_id,omitempty"`
}

type agentResponse struct {
	ID            string   `json:"id"`
	Role          string   `json:"role"`
	Name          string   `json:"name"`
	MobileNumber  string   `json:"mobile_number"`
	Ward          int32    `json:"ward"`
	PanchayathID  string   `json:"panchayath_id"`
	Rating        *float64 `json:"rating,omitempty"`
	GroupLeaderID string   `json:"group_leader_id,omitempty"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

func toAgentResponse(a *models.Agent) agentResponse {
	resp := agentResponse{
		ID:           a.ID.String(),
		Role:         string(a.Role),
		Name:         a.Name,
		MobileNumber: a.MobileNumber,
		Ward:         a.Ward,
		PanchayathID: a.PanchayathID.String(),
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    a.UpdatedAt.Format(time.RFC3339),
	}
	if a.Rating.Valid {
		rating := a.Rating.Float64
		resp.Rating = &rating
	}
	if a.GroupLeaderID.Valid {
		resp.GroupLeaderID = a.GroupLeaderID.String
	}
	return resp
}

func (r *agentRequest) toInput() (*models.AgentInput, error) {
	role, ok := models.ParseAgentRole(r.Role)
	if !ok {
		return nil, &models.ValidationError{Field: "role", Message: "unknown agent role"}
	}

	panchayathID, err := uuid.Parse(r.PanchayathID)
	if err != nil {
		return nil, &models.ValidationError{Field: "panchayath_id", Message: "invalid panchayath id"}
	}

	in := &models.AgentInput{
		Role:         role,
		Name:         strings.TrimSpace(r.Name),
		MobileNumber: r.MobileNumber,
		Ward:         r.Ward,
		PanchayathID: panchayathID,
	}
	if r.Rating != nil {
		in.Rating = sql.NullFloat64{Float64: *r.Rating, Valid: true}
	}
	if r.GroupLeaderID != "" {
		in.GroupLeaderID = sql.NullString{String: r.GroupLeaderID, Valid: true}
	}
	return in, nil
}

// validateAndCheck runs form validation then the cross-table duplicate scan.
// excludeID is the record being edited, nil for a new record. The pure field
// checks run first so a malformed submission is rejected before any query.
func validateAndCheck(in *models.AgentInput, excludeID *uuid.UUID) error {
	if err := models.ValidateAgentFields(in); err != nil {
		return err
	}

	panchayath, err := models.GetPanchayathByID(in.PanchayathID)
	if err != nil {
		if isNotFound(err) {
			return &models.ValidationError{Field: "panchayath_id", Message: "panchayath not found"}
		}
		return err
	}

	if err := models.ValidateWard(in, panchayath); err != nil {
		return err
	}

	check, err := models.CheckDuplicateMobile(in.MobileNumber, excludeID, in.Role)
	if err != nil {
		return err
	}
	if check.IsDuplicate {
		return &models.DuplicateMobileError{Mobile: in.MobileNumber, Role: check.Role}
	}

	return nil
}

// GET /api/agents?role=coordinator&panchayath_id=...
func (h *AgentHandler) List(w http.ResponseWriter, r *http.Request) {
	panchayathID, err := uuid.Parse(r.URL.Query().Get("panchayath_id"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid panchayath_id")
		return
	}

	var agents []*models.Agent
	if roleStr := r.URL.Query().Get("role"); roleStr != "" {
		role, ok := models.ParseAgentRole(roleStr)
		if !ok {
			jsonError(w, http.StatusBadRequest, "Unknown role")
			return
		}
		agents, err = models.ListAgentsByPanchayath(role, panchayathID)
	} else {
		agents, err = models.ListAllAgents(panchayathID)
	}
	if err != nil {
		log.Printf("ERROR: Failed to list agents: %v", err)
		jsonError(w, http.StatusInternalServerError, "Failed to load agents")
		return
	}

	response := make([]agentResponse, 0, len(agents))
	for _, a := range agents {
		response = append(response, toAgentResponse(a))
	}
	jsonResponse(w, http.StatusOK, response)
}

// POST /api/agents
func (h *AgentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req agentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	in, err := req.toInput()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if err := validateAndCheck(in, nil); err != nil {
		writeDomainError(w, err)
		return
	}

	agent, err := models.CreateAgent(in)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.cfg.Debugf("Created %s %s (%s)", agent.Role, agent.Name, agent.MobileNumber)
	jsonResponse(w, http.StatusCreated, toAgentResponse(agent))
}

// GET /api/agents/{id}?role=... - detail
func (h *AgentHandler) Detail(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	role, ok := models.ParseAgentRole(r.URL.Query().Get("role"))
	if !ok {
		jsonError(w, http.StatusBadRequest, "Unknown role")
		return
	}

	agent, err := models.GetAgentByID(role, id)
	if err != nil {
		if isNotFound(err) {
			jsonError(w, http.StatusNotFound, "Agent not found")
			return
		}
		log.Printf("ERROR: Failed to get agent: %v", err)
		jsonError(w, http.StatusInternalServerError, "Failed to load agent")
		return
	}

	jsonResponse(w, http.StatusOK, toAgentResponse(agent))
}

// POST /api/agents/{id} - update
func (h *AgentHandler) Update(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req agentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	in, err := req.toInput()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if _, err := models.GetAgentByID(in.Role, id); err != nil {
		if isNotFound(err) {
			jsonError(w, http.StatusNotFound, "Agent not found")
			return
		}
		log.Printf("ERROR: Failed to load agent for update: %v", err)
		jsonError(w, http.StatusInternalServerError, "Failed to load agent")
		return
	}

	if err := validateAndCheck(in, &id); err != nil {
		writeDomainError(w, err)
		return
	}

	if err := models.UpdateAgent(id, in); err != nil {
		writeDomainError(w, err)
		return
	}

	h.cfg.Debugf("Updated %s %s", in.Role, id)
	jsonResponse(w, http.StatusOK, map[string]bool{"ok": true})
}

// POST /api/agents/{id}/delete
func (h *AgentHandler) Delete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	role, ok := models.ParseAgentRole(r.URL.Query().Get("role"))
	if !ok {
		jsonError(w, http.StatusBadRequest, "Unknown role")
		return
	}

	if err := models.DeleteAgent(role, id); err != nil {
		log.Printf("ERROR: Failed to delete agent: %v", err)
		jsonError(w, http.StatusInternalServerError, "Failed to delete agent")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]bool{"ok": true})
}

// GET /api/check-mobile?mobile=...&exclude_id=...&role=...
// Live duplicate feedback for the form; read-only.
func (h *AgentHandler) CheckMobile(w http.ResponseWriter, r *http.Request) {
	mobile := r.URL.Query().Get("mobile")
	if models.NormalizeMobile(mobile) == "" {
		jsonError(w, http.StatusBadRequest, "mobile is required")
		return
	}

	role, ok := models.ParseAgentRole(r.URL.Query().Get("role"))
	if !ok {
		jsonError(w, http.StatusBadRequest, "Unknown role")
		return
	}

	var excludeID *uuid.UUID
	if raw := r.URL.Query().Get("exclude_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "Invalid exclude_id")
			return
		}
		excludeID = &id
	}

	check, err := models.CheckDuplicateMobile(mobile, excludeID, role)
	if err != nil {
		log.Printf("ERROR: Duplicate check failed: %v", err)
		jsonError(w, http.StatusInternalServerError, "Duplicate check failed")
		return
	}

	resp := map[string]interface{}{"is_duplicate": check.IsDuplicate}
	if check.IsDuplicate {
		resp["table"] = check.Role.TableName()
	}
	jsonResponse(w, http.StatusOK, resp)
}
