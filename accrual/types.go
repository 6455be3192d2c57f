/*
Package accrual implements the numeric claim-accrual pipeline: chain-ladder
ultimate-loss projection, risk adjustment, and present-value discounting.

PURPOSE:
  Given a claim's incurred loss, type, and elapsed time, produce an
  ultimate-loss projection, outstanding-claims figure, risk adjustment,
  discounted present value, and total accrual. Every calculation is a pure,
  stateless transformation from a request value object to a result value
  object; the only shared structure is the read-only development-factor
  table built once at startup.

KEY CONCEPTS IN THIS FILE (types.go):
  - ClaimType: The fixed five-member set of claim lines
  - RiskLevel: Uncertainty tier driving the risk-adjustment load
  - ClaimFinancials: Immutable calculation input
  - AccrualResult: Deterministic calculation output

DESIGN PRINCIPLES:
  1. Immutability: Inputs are never modified; results carry no identity
  2. Precision: Monetary values use decimal.Decimal, never float64
  3. Eager validation: Domain errors surface before any arithmetic

SEE ALSO:
  - development.go: Development-factor table and year derivation
  - calculator.go: The accrual algorithm
  - errors.go: Error taxonomy
*/
package accrual

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// CLAIM TYPE - Fixed five-member set
// =============================================================================

type ClaimType string

const (
	ClaimAuto        ClaimType = "Auto"
	ClaimProperty    ClaimType = "Property"
	ClaimLiability   ClaimType = "Liability"
	ClaimHealth      ClaimType = "Health"
	ClaimWorkersComp ClaimType = "WorkersComp"
)

// ClaimTypes returns the enumerated set in display order.
func ClaimTypes() []ClaimType {
	return []ClaimType{ClaimAuto, ClaimProperty, ClaimLiability, ClaimHealth, ClaimWorkersComp}
}

// Valid reports whether t is one of the five recognized claim types.
func (t ClaimType) Valid() bool {
	switch t {
	case ClaimAuto, ClaimProperty, ClaimLiability, ClaimHealth, ClaimWorkersComp:
		return true
	}
	return false
}

// ParseClaimType converts a raw string into a ClaimType.
func ParseClaimType(s string) (ClaimType, error) {
	t := ClaimType(s)
	if !t.Valid() {
		return "", &UnknownClaimTypeError{ClaimType: s}
	}
	return t, nil
}

// =============================================================================
// RISK LEVEL - Uncertainty tier
// =============================================================================

type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// ParseRiskLevel converts a raw string into a RiskLevel.
func ParseRiskLevel(s string) (RiskLevel, error) {
	r := RiskLevel(s)
	if !r.Valid() {
		return "", &InputError{Field: "risk_level", Reason: "must be Low, Medium, or High"}
	}
	return r, nil
}

// =============================================================================
// CLAIM FINANCIALS - Calculation input
// =============================================================================

// ClaimFinancials is the value object consumed by the calculator. It is
// created per request and discarded after use; the calculator never
// mutates it.
type ClaimFinancials struct {
	IncurredLoss           decimal.Decimal
	PaidLoss               decimal.Decimal
	ClaimType              ClaimType
	MonthsSinceOccurrence  int
	MonthsToSettlement     int
	RiskLevel              RiskLevel
	AnnualDiscountRate     decimal.Decimal
}

// =============================================================================
// ACCRUAL RESULT - Calculation output
// =============================================================================

// AccrualResult is the complete accrual breakdown for a single claim.
// All monetary fields are non-negative. DiscountAmount is the reduction
// applied to outstanding claims by present-value discounting.
type AccrualResult struct {
	UltimateLoss          decimal.Decimal
	OutstandingClaims     decimal.Decimal
	RiskAdjustment        decimal.Decimal
	DiscountedOutstanding decimal.Decimal
	DiscountAmount        decimal.Decimal
	TotalAccrual          decimal.Decimal

	// The development factor actually applied and the year it was read from.
	AppliedFactor   decimal.Decimal
	DevelopmentYear int
}
