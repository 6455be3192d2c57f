/*
handlers.go - HTTP API handlers for the accrual estimator

PURPOSE:
  Exposes the calculation and classification engines via REST API. Handles
  HTTP request/response and JSON serialization, delegates all domain logic
  to the engines, and attaches the rendered report text plus a generated
  estimate reference id to each response.

ENDPOINTS:
  Accrual:
    POST /api/accruals            Compute accrual for one claim
    POST /api/accruals/batch      Compute a batch + portfolio summary

  Bracket:
    POST /api/brackets            Classify one claim profile

  Configuration:
    GET  /api/ruleset             Active rule set (read-only)

  Scenarios:
    GET  /api/scenarios           List demo scenarios
    POST /api/scenarios/{id}/run  Run one demo scenario

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid input, unknown claim type (caller-correctable)
  - 404: Unknown scenario
  - 500: Anything else (should not occur; engines are pure)

  On any error the request is rejected whole; no partial estimate is
  returned, and the caller must not display a bracket or accrual figure.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario definitions
  - server.go: Router setup and middleware
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gcc-insurance-intelligence-lab/ifrs-claim-accrual-estimator/accrual"
	"github.com/gcc-insurance-intelligence-lab/ifrs-claim-accrual-estimator/bracket"
	"github.com/gcc-insurance-intelligence-lab/ifrs-claim-accrual-estimator/factory"
	"github.com/gcc-insurance-intelligence-lab/ifrs-claim-accrual-estimator/report"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds the engines and logger for HTTP handlers. The engines are
// immutable, so a single Handler serves concurrent requests freely.
type Handler struct {
	calc   *accrual.Calculator
	engine *bracket.Engine
	log    zerolog.Logger
}

// NewHandler wires the handlers to a set of calculation components.
func NewHandler(components *factory.Components, log zerolog.Logger) *Handler {
	return &Handler{
		calc:   components.Calculator,
		engine: components.Engine,
		log:    log.With().Str("component", "api").Logger(),
	}
}

// =============================================================================
// ACCRUAL HANDLERS
// =============================================================================

// ComputeAccrual computes the accrual breakdown for one claim.
func (h *Handler) ComputeAccrual(w http.ResponseWriter, r *http.Request) {
	var req AccrualRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	claim, err := req.toClaim()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid claim", err)
		return
	}

	res, err := h.calc.Compute(claim)
	if err != nil {
		h.writeComputeError(w, err)
		return
	}

	refID := uuid.NewString()
	h.log.Info().
		Str("reference_id", refID).
		Str("claim_type", string(claim.ClaimType)).
		Int("development_year", res.DevelopmentYear).
		Msg("accrual computed")

	writeJSON(w, http.StatusOK, newAccrualResponse(refID, req.ClaimID, res, report.Accrual(req.ClaimID, claim, res)))
}

// ComputeAccrualBatch computes a batch of claims and the portfolio summary.
func (h *Handler) ComputeAccrualBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchAccrualRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Claims) == 0 {
		writeError(w, http.StatusBadRequest, "At least one claim is required", nil)
		return
	}

	// Claims that fail primitive parsing stay in the batch as rejected
	// items so positions line up with the request.
	claims := make([]accrual.ClaimFinancials, len(req.Claims))
	parseErrs := make([]error, len(req.Claims))
	for i, cr := range req.Claims {
		claims[i], parseErrs[i] = cr.toClaim()
	}

	items := h.calc.ComputeBatch(r.Context(), claims)
	for i, err := range parseErrs {
		if err != nil {
			items[i].Err = err
		}
	}

	refID := uuid.NewString()
	dtos := make([]BatchItemDTO, len(items))
	for i, item := range items {
		dto := BatchItemDTO{ClaimID: req.Claims[i].ClaimID}
		if item.Err != nil {
			dto.Error = item.Err.Error()
		} else {
			// Batch responses skip the per-claim report text.
			res := newAccrualResponse(refID, req.Claims[i].ClaimID, item.Result, "")
			dto.Result = &res
		}
		dtos[i] = dto
	}

	summary := accrual.Summarize(items)
	h.log.Info().
		Str("reference_id", refID).
		Int("claims", summary.ClaimCount).
		Int("rejected", summary.RejectedCount).
		Msg("batch accrual computed")

	writeJSON(w, http.StatusOK, BatchAccrualResponse{
		ReferenceID: refID,
		Items:       dtos,
		Summary:     newPortfolioSummaryDTO(summary),
	})
}

func (h *Handler) writeComputeError(w http.ResponseWriter, err error) {
	if accrual.IsClientError(err) {
		writeError(w, http.StatusBadRequest, "Invalid claim", err)
		return
	}
	h.log.Error().Err(err).Msg("accrual calculation failed")
	writeError(w, http.StatusInternalServerError, "Calculation failed", err)
}

// =============================================================================
// BRACKET HANDLERS
// =============================================================================

// ClassifyBracket classifies one claim profile into an accrual bracket.
func (h *Handler) ClassifyBracket(w http.ResponseWriter, r *http.Request) {
	var req BracketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	profile, err := req.toProfile()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid profile", err)
		return
	}

	res, err := h.engine.Classify(profile)
	if err != nil {
		if bracket.IsClientError(err) {
			writeError(w, http.StatusBadRequest, "Invalid profile", err)
			return
		}
		h.log.Error().Err(err).Msg("classification failed")
		writeError(w, http.StatusInternalServerError, "Classification failed", err)
		return
	}

	refID := uuid.NewString()
	h.log.Info().
		Str("reference_id", refID).
		Str("bracket", string(res.Bracket)).
		Float64("uncertainty", res.UncertaintyScore).
		Msg("profile classified")

	writeJSON(w, http.StatusOK, newBracketResponse(refID, res, report.Bracket(profile, res)))
}

// =============================================================================
// RULE SET HANDLER
// =============================================================================

// GetRuleSet returns the active immutable rule set.
func (h *Handler) GetRuleSet(w http.ResponseWriter, r *http.Request) {
	resp := RuleSetResponse{
		DevelopmentFactors: make(map[string][]string),
		RiskLoads:          make(map[string]string),
		StagePoints:        make(map[string]int),
		SeverityPoints:     make(map[string]int),
	}

	for _, ct := range accrual.ClaimTypes() {
		seq, err := h.calc.Table().Factors(ct)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Rule set unavailable", err)
			return
		}
		strs := make([]string, len(seq))
		for i, f := range seq {
			strs[i] = f.String()
		}
		resp.DevelopmentFactors[string(ct)] = strs
	}
	for _, level := range []accrual.RiskLevel{accrual.RiskLow, accrual.RiskMedium, accrual.RiskHigh} {
		load, err := h.calc.RiskLoad(level)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Rule set unavailable", err)
			return
		}
		resp.RiskLoads[string(level)] = load.String()
	}

	rules := h.engine.Rules()
	for stage, points := range rules.StagePoints {
		resp.StagePoints[string(stage)] = points
	}
	for sev, points := range rules.SeverityPoints {
		resp.SeverityPoints[string(sev)] = points
	}
	resp.IBNRPoints = rules.IBNRPoints
	resp.MaxScore = rules.MaxScore()

	writeJSON(w, http.StatusOK, resp)
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

// scenarioID extracts the {id} route parameter.
func scenarioID(r *http.Request) string {
	return chi.URLParam(r, "id")
}
