/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract. The API layer
  owns primitive validation (numeric parsing, enum strings); the engines
  own domain validation (ranges, table membership).

NAMING CONVENTION:
  - *Request: Request body types from clients
  - *Response: Response types returned to clients
  - *DTO: Nested response fragments

MONEY REPRESENTATION:
  Requests carry JSON numbers; they are converted to decimal.Decimal at
  the boundary and all arithmetic happens in decimals. Responses render
  monetary fields as fixed two-decimal strings.

SEE ALSO:
  - handlers.go: Uses these types
  - report: Rendered report text embedded in responses
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/gcc-insurance-intelligence-lab/ifrs-claim-accrual-estimator/accrual"
	"github.com/gcc-insurance-intelligence-lab/ifrs-claim-accrual-estimator/bracket"
)

// =============================================================================
// ACCRUAL REQUEST/RESPONSE
// =============================================================================

// AccrualRequest is one claim submitted for accrual calculation.
type AccrualRequest struct {
	ClaimID               string  `json:"claim_id"`
	ClaimType             string  `json:"claim_type"`
	IncurredLoss          float64 `json:"incurred_loss"`
	PaidLoss              float64 `json:"paid_loss"`
	MonthsSinceOccurrence int     `json:"months_since_occurrence"`
	MonthsToSettlement    int     `json:"months_to_settlement"`
	RiskLevel             string  `json:"risk_level"`
	AnnualDiscountRate    float64 `json:"annual_discount_rate"`
}

// toClaim validates primitive fields and builds the engine input. Domain
// range checks remain with the calculator.
func (r AccrualRequest) toClaim() (accrual.ClaimFinancials, error) {
	claimType, err := accrual.ParseClaimType(r.ClaimType)
	if err != nil {
		return accrual.ClaimFinancials{}, err
	}
	riskLevel, err := accrual.ParseRiskLevel(r.RiskLevel)
	if err != nil {
		return accrual.ClaimFinancials{}, err
	}
	return accrual.ClaimFinancials{
		IncurredLoss:          decimal.NewFromFloat(r.IncurredLoss),
		PaidLoss:              decimal.NewFromFloat(r.PaidLoss),
		ClaimType:             claimType,
		MonthsSinceOccurrence: r.MonthsSinceOccurrence,
		MonthsToSettlement:    r.MonthsToSettlement,
		RiskLevel:             riskLevel,
		AnnualDiscountRate:    decimal.NewFromFloat(r.AnnualDiscountRate),
	}, nil
}

// AccrualResponse is the full accrual breakdown for one claim.
type AccrualResponse struct {
	ReferenceID string `json:"reference_id"`
	ClaimID     string `json:"claim_id,omitempty"`

	UltimateLoss          string `json:"ultimate_loss"`
	OutstandingClaims     string `json:"outstanding_claims"`
	RiskAdjustment        string `json:"risk_adjustment"`
	DiscountedOutstanding string `json:"discounted_outstanding"`
	DiscountAmount        string `json:"discount_amount"`
	TotalAccrual          string `json:"total_accrual"`

	AppliedFactor   string `json:"applied_factor"`
	DevelopmentYear int    `json:"development_year"`

	Report string `json:"report,omitempty"`
}

func newAccrualResponse(referenceID, claimID string, res accrual.AccrualResult, reportText string) AccrualResponse {
	return AccrualResponse{
		ReferenceID:           referenceID,
		ClaimID:               claimID,
		UltimateLoss:          res.UltimateLoss.StringFixed(2),
		OutstandingClaims:     res.OutstandingClaims.StringFixed(2),
		RiskAdjustment:        res.RiskAdjustment.StringFixed(2),
		DiscountedOutstanding: res.DiscountedOutstanding.StringFixed(2),
		DiscountAmount:        res.DiscountAmount.StringFixed(2),
		TotalAccrual:          res.TotalAccrual.StringFixed(2),
		AppliedFactor:         res.AppliedFactor.String(),
		DevelopmentYear:       res.DevelopmentYear,
		Report:                reportText,
	}
}

// =============================================================================
// BATCH REQUEST/RESPONSE
// =============================================================================

// BatchAccrualRequest is a set of claims computed together.
type BatchAccrualRequest struct {
	Claims []AccrualRequest `json:"claims"`
}

// BatchItemDTO is one claim's outcome within a batch: either a result or
// a rejection, never both.
type BatchItemDTO struct {
	ClaimID string           `json:"claim_id,omitempty"`
	Result  *AccrualResponse `json:"result,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// PortfolioSummaryDTO aggregates the accepted claims of a batch.
type PortfolioSummaryDTO struct {
	ClaimCount    int `json:"claim_count"`
	RejectedCount int `json:"rejected_count"`

	TotalIncurred       string `json:"total_incurred"`
	TotalPaid           string `json:"total_paid"`
	TotalUltimate       string `json:"total_ultimate"`
	TotalOutstanding    string `json:"total_outstanding"`
	TotalRiskAdjustment string `json:"total_risk_adjustment"`
	TotalDiscount       string `json:"total_discount"`
	TotalAccrual        string `json:"total_accrual"`
}

func newPortfolioSummaryDTO(s accrual.PortfolioSummary) PortfolioSummaryDTO {
	return PortfolioSummaryDTO{
		ClaimCount:          s.ClaimCount,
		RejectedCount:       s.RejectedCount,
		TotalIncurred:       s.TotalIncurred.StringFixed(2),
		TotalPaid:           s.TotalPaid.StringFixed(2),
		TotalUltimate:       s.TotalUltimate.StringFixed(2),
		TotalOutstanding:    s.TotalOutstanding.StringFixed(2),
		TotalRiskAdjustment: s.TotalRiskAdjustment.StringFixed(2),
		TotalDiscount:       s.TotalDiscount.StringFixed(2),
		TotalAccrual:        s.TotalAccrual.StringFixed(2),
	}
}

// BatchAccrualResponse pairs per-claim outcomes with portfolio totals.
type BatchAccrualResponse struct {
	ReferenceID string              `json:"reference_id"`
	Items       []BatchItemDTO      `json:"items"`
	Summary     PortfolioSummaryDTO `json:"summary"`
}

// =============================================================================
// BRACKET REQUEST/RESPONSE
// =============================================================================

// BracketRequest is one claim profile submitted for classification.
type BracketRequest struct {
	ClaimStage                  string `json:"claim_stage"`
	SeverityBracket             string `json:"severity_bracket"`
	InvestigationDurationMonths int    `json:"investigation_duration_months"`
	IsIBNR                      bool   `json:"is_ibnr"`
}

func (r BracketRequest) toProfile() (bracket.ClaimProfile, error) {
	stage, err := bracket.ParseClaimStage(r.ClaimStage)
	if err != nil {
		return bracket.ClaimProfile{}, err
	}
	severity, err := bracket.ParseSeverity(r.SeverityBracket)
	if err != nil {
		return bracket.ClaimProfile{}, err
	}
	return bracket.ClaimProfile{
		ClaimStage:                  stage,
		SeverityBracket:             severity,
		InvestigationDurationMonths: r.InvestigationDurationMonths,
		IsIBNR:                      r.IsIBNR,
	}, nil
}

// BracketResponse is the classification for one profile.
type BracketResponse struct {
	ReferenceID      string   `json:"reference_id"`
	Bracket          string   `json:"bracket"`
	BracketLabel     string   `json:"bracket_label"`
	Score            int      `json:"score"`
	UncertaintyScore float64  `json:"uncertainty_score"`
	Warnings         []string `json:"warnings"`
	Report           string   `json:"report,omitempty"`
}

func newBracketResponse(referenceID string, res bracket.BracketResult, reportText string) BracketResponse {
	return BracketResponse{
		ReferenceID:      referenceID,
		Bracket:          string(res.Bracket),
		BracketLabel:     res.Bracket.Label(),
		Score:            res.Score,
		UncertaintyScore: res.UncertaintyScore,
		Warnings:         res.Warnings,
		Report:           reportText,
	}
}

// =============================================================================
// RULE SET RESPONSE
// =============================================================================

// RuleSetResponse exposes the active immutable configuration for display.
type RuleSetResponse struct {
	DevelopmentFactors map[string][]string `json:"development_factors"`
	RiskLoads          map[string]string   `json:"risk_loads"`
	StagePoints        map[string]int      `json:"stage_points"`
	SeverityPoints     map[string]int      `json:"severity_points"`
	IBNRPoints         int                 `json:"ibnr_points"`
	MaxScore           int                 `json:"max_score"`
}

// =============================================================================
// SCENARIOS
// =============================================================================

// ScenarioDTO describes one canned demonstration input.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Kind        string `json:"kind"` // "accrual" or "bracket"
}

// ScenarioRunResponse wraps the result of running one scenario.
type ScenarioRunResponse struct {
	Scenario ScenarioDTO      `json:"scenario"`
	Accrual  *AccrualResponse `json:"accrual,omitempty"`
	Bracket  *BracketResponse `json:"bracket,omitempty"`
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse is the JSON error body for every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
