/*
scenarios.go - Demo scenario definitions for testing and demonstrations

PURPOSE:
  Provides canned inputs that exercise the engines end to end: the worked
  examples from the project documentation plus edge-case profiles. Running
  a scenario computes it fresh through the same code path as a client
  request; nothing is precomputed or stored.

USAGE VIA API:
  GET  /api/scenarios
  POST /api/scenarios/auto-mid-development/run

ADDING NEW SCENARIOS:
  Append to the 'scenarios' slice with a unique ID and either an accrual
  or a bracket payload.

SEE ALSO:
  - handlers.go: Response shapes reused by scenario runs
*/
package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/gcc-insurance-intelligence-lab/ifrs-claim-accrual-estimator/report"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

// scenario couples the catalog entry with its input payload. Exactly one
// of accrualReq/bracketReq is set, matching Kind.
type scenario struct {
	ScenarioDTO
	accrualReq *AccrualRequest
	bracketReq *BracketRequest
}

var scenarios = []scenario{
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "auto-mid-development",
			Name:        "Auto, mid-development",
			Description: "Auto claim 18 months after occurrence: development year 2, factor 2.2",
			Kind:        "accrual",
		},
		accrualReq: &AccrualRequest{
			ClaimID:               "CLM-2024-0001",
			ClaimType:             "Auto",
			IncurredLoss:          50000,
			PaidLoss:              15000,
			MonthsSinceOccurrence: 18,
			MonthsToSettlement:    30,
			RiskLevel:             "Medium",
			AnnualDiscountRate:    0.035,
		},
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "liability-long-tail",
			Name:        "Liability, long tail",
			Description: "Fresh liability claim with high uncertainty and maximum development ahead",
			Kind:        "accrual",
		},
		accrualReq: &AccrualRequest{
			ClaimID:               "CLM-2024-0002",
			ClaimType:             "Liability",
			IncurredLoss:          250000,
			PaidLoss:              0,
			MonthsSinceOccurrence: 6,
			MonthsToSettlement:    84,
			RiskLevel:             "High",
			AnnualDiscountRate:    0.04,
		},
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "property-fully-developed",
			Name:        "Property, fully developed",
			Description: "Property claim past year 10: factor 1.0, outstanding driven by paid losses only",
			Kind:        "accrual",
		},
		accrualReq: &AccrualRequest{
			ClaimID:               "CLM-2013-0419",
			ClaimType:             "Property",
			IncurredLoss:          80000,
			PaidLoss:              72000,
			MonthsSinceOccurrence: 132,
			MonthsToSettlement:    6,
			RiskLevel:             "Low",
			AnnualDiscountRate:    0.02,
		},
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "investigation-medium",
			Name:        "Medium severity under investigation",
			Description: "Investigation + medium severity + 4-month duration: score 3, Band B",
			Kind:        "bracket",
		},
		bracketReq: &BracketRequest{
			ClaimStage:                  "Investigation",
			SeverityBracket:             "Medium",
			InvestigationDurationMonths: 4,
			IsIBNR:                      false,
		},
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "reported-low",
			Name:        "Fresh low-severity claim",
			Description: "Reported + low severity + short duration: score 0, Band A",
			Kind:        "bracket",
		},
		bracketReq: &BracketRequest{
			ClaimStage:                  "Reported",
			SeverityBracket:             "Low",
			InvestigationDurationMonths: 1,
			IsIBNR:                      false,
		},
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "catastrophic-ibnr",
			Name:        "Catastrophic IBNR",
			Description: "IBNR at catastrophic severity: forced Band E, uncertainty floor applies",
			Kind:        "bracket",
		},
		bracketReq: &BracketRequest{
			ClaimStage:                  "Reported",
			SeverityBracket:             "Catastrophic",
			InvestigationDurationMonths: 0,
			IsIBNR:                      true,
		},
	},
}

// =============================================================================
// SCENARIO HANDLERS
// =============================================================================

// ListScenarios returns the scenario catalog.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	dtos := make([]ScenarioDTO, len(scenarios))
	for i, s := range scenarios {
		dtos[i] = s.ScenarioDTO
	}
	writeJSON(w, http.StatusOK, dtos)
}

// RunScenario executes one scenario through the regular engine path.
func (h *Handler) RunScenario(w http.ResponseWriter, r *http.Request) {
	id := scenarioID(r)

	var found *scenario
	for i := range scenarios {
		if scenarios[i].ID == id {
			found = &scenarios[i]
			break
		}
	}
	if found == nil {
		writeError(w, http.StatusNotFound, "Unknown scenario", nil)
		return
	}

	resp := ScenarioRunResponse{Scenario: found.ScenarioDTO}
	refID := uuid.NewString()

	switch found.Kind {
	case "accrual":
		claim, err := found.accrualReq.toClaim()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Scenario input invalid", err)
			return
		}
		res, err := h.calc.Compute(claim)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Scenario calculation failed", err)
			return
		}
		out := newAccrualResponse(refID, found.accrualReq.ClaimID, res, report.Accrual(found.accrualReq.ClaimID, claim, res))
		resp.Accrual = &out

	case "bracket":
		profile, err := found.bracketReq.toProfile()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Scenario input invalid", err)
			return
		}
		res, err := h.engine.Classify(profile)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Scenario classification failed", err)
			return
		}
		out := newBracketResponse(refID, res, report.Bracket(profile, res))
		resp.Bracket = &out
	}

	h.log.Info().Str("scenario", id).Str("reference_id", refID).Msg("scenario run")
	writeJSON(w, http.StatusOK, resp)
}
