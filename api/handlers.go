/*
handlers.go - HTTP API handlers for the settlement engine

PURPOSE:
  Exposes the settlement engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to settlement.Engine.

ENDPOINTS:
  Settlements:
    POST   /api/settlements            Compute one settlement

  Catalog (active rule table):
    GET    /api/reasons                Reason codes and their categories
    GET    /api/categories             Category rule-sets
    GET    /api/tax-tables             INSS/IRRF schedules and defaults

  Rule tables:
    GET    /api/rule-tables            Stored versions, newest first
    GET    /api/rule-tables/active     The version the engine runs with
    GET    /api/rule-tables/{version}  One version with its configuration

  Scenarios:
    GET    /api/scenarios              List demo cases
    POST   /api/scenarios/{id}/run     Compute a demo case

ARCHITECTURE:
  Handler holds the engine built once at startup from the active rule table,
  plus the store for version listings. Handlers never mutate either, so
  requests run concurrently without locking.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed body, bad dates, unknown reason, missing contract end date
  - 404: Unknown scenario or rule-table version, no active rule table
  - 500: Rule-table inconsistencies and store failures
  - 503: No rule-table store configured

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo cases
  - server.go: Router setup and middleware
*/
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/warp/rescisao-engine/settlement"
	"github.com/warp/rescisao-engine/store/sqlite"
)

const defaultMaxBodyBytes = 1 << 20

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Engine *settlement.Engine
	Store  *sqlite.Store
	Logger *slog.Logger

	// MaxBodyBytes limits request bodies. Zero uses 1 MiB.
	MaxBodyBytes int64
}

// NewHandler creates a new handler. A nil logger uses slog.Default().
func NewHandler(engine *settlement.Engine, store *sqlite.Store, logger *slog.Logger) *Handler {
	if engine == nil {
		engine = settlement.NewEngine(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		Engine: engine,
		Store:  store,
		Logger: logger,
	}
}

// =============================================================================
// SETTLEMENT HANDLERS
// =============================================================================

// ComputeSettlement computes the settlement described by the request body.
func (h *Handler) ComputeSettlement(w http.ResponseWriter, r *http.Request) {
	var req SettlementRequest
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes())
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	in, err := req.toCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid settlement input", err)
		return
	}

	resp, err := h.calculate(in)
	if err != nil {
		h.writeComputeError(w, in, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// calculate runs the engine and wraps the result with calculation metadata.
func (h *Handler) calculate(in settlement.CaseInput) (CalculationResponse, error) {
	started := time.Now().UTC()
	result, err := h.Engine.Compute(in)
	if err != nil {
		return CalculationResponse{}, err
	}
	completed := time.Now().UTC()

	return CalculationResponse{
		CalculationID:    uuid.NewString(),
		StartedAt:        started.Format(time.RFC3339Nano),
		CompletedAt:      completed.Format(time.RFC3339Nano),
		DurationMicros:   completed.Sub(started).Microseconds(),
		RuleTableVersion: result.RuleTableVersion,
		Settlement:       toSettlementDTO(result),
	}, nil
}

func (h *Handler) writeComputeError(w http.ResponseWriter, in settlement.CaseInput, err error) {
	if settlement.IsInputError(err) {
		writeError(w, http.StatusBadRequest, "Invalid settlement input", err)
		return
	}
	h.Logger.Error("settlement computation failed",
		"reason", string(in.ReasonCode),
		"ruleTable", h.Engine.Table().Version(),
		"error", err,
	)
	writeError(w, http.StatusInternalServerError, "Settlement computation failed", err)
}

// =============================================================================
// CATALOG HANDLERS
// =============================================================================

// ListReasons returns the reason catalog of the active rule table.
func (h *Handler) ListReasons(w http.ResponseWriter, r *http.Request) {
	reasons := h.Engine.Table().Reasons()
	dtos := make([]ReasonDTO, len(reasons))
	for i, reason := range reasons {
		dtos[i] = ReasonDTO{
			Code:        string(reason.Code),
			Description: reason.Description,
			Category:    string(reason.Category),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListCategories returns the category rule-sets of the active rule table.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories := h.Engine.Table().Categories()
	dtos := make([]CategoryDTO, len(categories))
	for i, c := range categories {
		dtos[i] = toCategoryDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetTaxTables returns the INSS and IRRF schedules of the active rule table.
func (h *Handler) GetTaxTables(w http.ResponseWriter, r *http.Request) {
	table := h.Engine.Table()
	social := table.SocialContribution()
	defaults := table.Defaults()

	writeJSON(w, http.StatusOK, TaxTablesDTO{
		Version:                table.Version(),
		SocialContributionCap:  money(social.Ceiling),
		SocialContribution:     toBracketDTOs(social.Brackets, false),
		IncomeTax:              toBracketDTOs(table.IncomeTax().Brackets, true),
		DependentDeduction:     money(defaults.DependentDeduction),
		MinimumWage:            money(defaults.MinimumWage),
		UnservedNoticeCapRatio: defaults.UnservedNoticeCapRatio.String(),
		MonthlyHoursDivisor:    defaults.MonthlyHoursDivisor.String(),
		ExperienceLimitDays:    defaults.ExperienceLimitDays,
	})
}

// =============================================================================
// RULE TABLE HANDLERS
// =============================================================================

// ListRuleTables returns every stored rule-table version.
func (h *Handler) ListRuleTables(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}
	records, err := h.Store.ListRuleTables(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list rule tables", err)
		return
	}

	dtos := make([]RuleTableDTO, len(records))
	for i, rec := range records {
		dtos[i] = toRuleTableDTO(rec)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetActiveRuleTable returns the active stored version.
func (h *Handler) GetActiveRuleTable(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}
	rec, err := h.Store.ActiveRuleTable(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get active rule table", err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "No active rule table", nil)
		return
	}
	writeJSON(w, http.StatusOK, toRuleTableDTO(*rec))
}

// GetRuleTable returns one stored version, including its configuration.
func (h *Handler) GetRuleTable(w http.ResponseWriter, r *http.Request) {
	if !h.requireStore(w) {
		return
	}
	version := chi.URLParam(r, "version")
	rec, err := h.Store.GetRuleTable(r.Context(), version)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get rule table", err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "Rule table not found", errors.New(version))
		return
	}
	dto := toRuleTableDTO(*rec)
	dto.Config = json.RawMessage(rec.ConfigJSON)
	writeJSON(w, http.StatusOK, dto)
}

func (h *Handler) requireStore(w http.ResponseWriter) bool {
	if h.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "Rule-table store unavailable", nil)
		return false
	}
	return true
}

func toRuleTableDTO(rec sqlite.RuleTableRecord) RuleTableDTO {
	dto := RuleTableDTO{
		Version:     rec.Version,
		Description: rec.Description,
		Active:      rec.Active,
		CreatedAt:   rec.CreatedAt.Format(time.RFC3339),
	}
	if rec.ActivatedAt != nil {
		dto.ActivatedAt = rec.ActivatedAt.Format(time.RFC3339)
	}
	return dto
}

// =============================================================================
// SCENARIO HANDLERS
// =============================================================================

// ListScenarios returns the demo cases.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	dtos := make([]ScenarioDTO, len(scenarios))
	for i, s := range scenarios {
		dtos[i] = ScenarioDTO{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			Reason:      string(s.Input.ReasonCode),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// RunScenario computes a demo case. Scenarios that are expected to fail
// return the same error response a real request would.
func (h *Handler) RunScenario(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s, ok := findScenario(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Scenario not found", errors.New(id))
		return
	}

	resp, err := h.calculate(s.Input)
	if err != nil {
		h.writeComputeError(w, s.Input, err)
		return
	}
	resp.Scenario = s.ID
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// HEALTH
// =============================================================================

// Health reports liveness, the active rule table and database reachability.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{
		"status":     "ok",
		"rule_table": h.Engine.Table().Version(),
	}
	if h.Store != nil {
		if err := h.Store.Ping(r.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
			writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}
	}
	writeJSON(w, http.StatusOK, status)
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) maxBodyBytes() int64 {
	if h.MaxBodyBytes > 0 {
		return h.MaxBodyBytes
	}
	return defaultMaxBodyBytes
}

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
