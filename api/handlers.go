/*
handlers.go - HTTP API handlers for the claim adjudication service

PURPOSE:

	Exposes the rule engine via REST API. Handles HTTP request/response,
	JSON serialization, and delegates to domain logic.

ENDPOINTS:

	Adjudications:
	  POST   /api/adjudications               Evaluate a policy+claim pair
	  GET    /api/adjudications               List past adjudications
	  GET    /api/adjudications/{id}          Get one adjudication with report
	  GET    /api/adjudications/{id}/report   Rendered report (ascii/markdown/html/text)

	Rules:
	  GET    /api/rules                       The rule catalog

	Admin:
	  POST   /api/admin/reset                 Clear history (dev only)

REQUEST FLOW:
 1. Parse HTTP request
 2. Convert documents via intake
 3. Call engine.Evaluate
 4. Persist the record, serialize response
 5. Handle errors

ERROR HANDLING:

	Errors are returned as JSON with appropriate HTTP status:
	- 400: Invalid request body or missing documents
	- 404: Adjudication not found
	- 500: Internal errors

SECURITY NOTE:

	Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clearclaim/claims-engine/engine"
	"github.com/clearclaim/claims-engine/intake"
	"github.com/clearclaim/claims-engine/report"
	"github.com/clearclaim/claims-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  *sqlite.Store
	Engine *engine.Engine
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{
		Store:  store,
		Engine: engine.New(),
	}
}

// =============================================================================
// ADJUDICATION HANDLERS
// =============================================================================

// Adjudicate evaluates a policy+claim pair and records the outcome.
// POST /api/adjudications
func (h *Handler) Adjudicate(w http.ResponseWriter, r *http.Request) {
	var req AdjudicateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Policy) == 0 || len(req.Claim) == 0 {
		writeError(w, http.StatusBadRequest, "Both policy and claim documents are required", nil)
		return
	}

	h.adjudicateDocuments(w, r, req.Policy, req.Claim)
}

// adjudicateDocuments runs the shared evaluate-persist-respond path for both
// ad-hoc adjudications and canned scenarios.
func (h *Handler) adjudicateDocuments(w http.ResponseWriter, r *http.Request, policyDoc, claimDoc []byte) {
	policy, err := intake.ParsePolicy(policyDoc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid policy document", err)
		return
	}
	claim, err := intake.ParseClaim(claimDoc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid claim document", err)
		return
	}

	result, err := h.Engine.Evaluate(policy, claim)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Evaluation failed", err)
		return
	}

	dto := toReportDTO(result)
	reportJSON, err := json.Marshal(dto)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to serialize report", err)
		return
	}

	rec, err := h.Store.Save(r.Context(), sqlite.AdjudicationRecord{
		Status:            string(result.Status),
		RiskLevel:         string(result.RiskLevel),
		OverallValid:      result.OverallValid,
		OverallConfidence: result.OverallConfidence,
		TotalDeductions:   result.TotalDeductions.String(),
		RuleCount:         len(result.RuleResults),
		PolicyJSON:        string(policyDoc),
		ClaimJSON:         string(claimDoc),
		ReportJSON:        string(reportJSON),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save adjudication", err)
		return
	}

	writeJSON(w, http.StatusCreated, AdjudicationDTO{
		ID:        rec.ID,
		CreatedAt: rec.CreatedAt.Format(time.RFC3339),
		Report:    dto,
	})
}

// ListAdjudications returns past adjudications, newest first.
// GET /api/adjudications?status=REJECTED&limit=50
func (h *Handler) ListAdjudications(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	records, err := h.Store.List(r.Context(), status, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list adjudications", err)
		return
	}

	dtos := make([]AdjudicationSummaryDTO, len(records))
	for i, rec := range records {
		dtos[i] = toSummaryDTO(rec)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetAdjudication returns one adjudication with its full report.
// GET /api/adjudications/{id}
func (h *Handler) GetAdjudication(w http.ResponseWriter, r *http.Request) {
	rec, dto, ok := h.loadAdjudication(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, AdjudicationDTO{
		ID:        rec.ID,
		CreatedAt: rec.CreatedAt.Format(time.RFC3339),
		Report:    dto,
	})
}

// GetAdjudicationReport returns a rendered report for a past adjudication.
// GET /api/adjudications/{id}/report?format=markdown
func (h *Handler) GetAdjudicationReport(w http.ResponseWriter, r *http.Request) {
	_, dto, ok := h.loadAdjudication(w, r)
	if !ok {
		return
	}

	format, ok := report.ParseFormat(r.URL.Query().Get("format"))
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown report format", nil)
		return
	}

	ruleReport, err := fromReportDTO(dto)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Stored report is unreadable", err)
		return
	}

	contentType := "text/plain; charset=utf-8"
	if format == report.FormatHTML {
		contentType = "text/html; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(report.Render(ruleReport, format)))
}

// loadAdjudication fetches the record for the {id} URL param and decodes its
// stored report, writing the error response itself on failure.
func (h *Handler) loadAdjudication(w http.ResponseWriter, r *http.Request) (*sqlite.AdjudicationRecord, RuleReportDTO, bool) {
	id := chi.URLParam(r, "id")

	rec, err := h.Store.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get adjudication", err)
		return nil, RuleReportDTO{}, false
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "Adjudication not found", nil)
		return nil, RuleReportDTO{}, false
	}

	var dto RuleReportDTO
	if err := json.Unmarshal([]byte(rec.ReportJSON), &dto); err != nil {
		writeError(w, http.StatusInternalServerError, "Stored report is unreadable", err)
		return nil, RuleReportDTO{}, false
	}
	return rec, dto, true
}

// =============================================================================
// RULE CATALOG
// =============================================================================

// ListRules returns the rule catalog in evaluation order.
// GET /api/rules
func (h *Handler) ListRules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toCatalogDTOs())
}

// =============================================================================
// ADMIN
// =============================================================================

// ResetHistory clears all stored adjudications (dev only).
// POST /api/admin/reset
func (h *Handler) ResetHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset history", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
