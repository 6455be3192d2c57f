/*
calculator.go - Chain-ladder accrual calculation

PURPOSE:
  Implements the full accrual pipeline for a single claim:

    1. developmentYear = floor(monthsSinceOccurrence / 12) + 1
    2. factor          = table lookup for (claimType, developmentYear)
    3. ultimateLoss    = incurredLoss x factor
    4. outstanding     = max(0, ultimateLoss - paidLoss)
    5. riskAdjustment  = ultimateLoss x riskLoad
    6. years           = monthsToSettlement / 12 (real-valued)
    7. discounted      = outstanding / (1 + rate)^years
    8. totalAccrual    = discounted + riskAdjustment

  The zero-rate case is an exact identity: discounted == outstanding with
  no rounding drift, guaranteed by short-circuiting the power.

VALIDATION:
  All domain checks run before any arithmetic. A failed check rejects the
  entire request; no partial result is ever returned.

SEE ALSO:
  - development.go: Factor table
  - portfolio.go: Batch calculation and portfolio summary
*/
package accrual

import (
	"github.com/shopspring/decimal"
)

// discountPrecision bounds the digits carried through the fractional
// exponent in the discount factor.
const discountPrecision = 16

// =============================================================================
// RISK LOADS
// =============================================================================

// DefaultRiskLoads returns the baseline risk-adjustment percentages.
func DefaultRiskLoads() map[RiskLevel]decimal.Decimal {
	return map[RiskLevel]decimal.Decimal{
		RiskLow:    decimal.NewFromFloat(0.05),
		RiskMedium: decimal.NewFromFloat(0.10),
		RiskHigh:   decimal.NewFromFloat(0.20),
	}
}

// MaxDiscountRate is the upper bound of the valid annual discount range.
var MaxDiscountRate = decimal.NewFromFloat(0.10)

// =============================================================================
// CALCULATOR
// =============================================================================

// Calculator computes accrual estimates against a fixed factor table and
// risk-load configuration. It holds no mutable state; a single instance
// may serve concurrent calculations.
type Calculator struct {
	table     *FactorTable
	riskLoads map[RiskLevel]decimal.Decimal
}

// NewCalculator builds a calculator from a validated factor table and
// risk loads. Every risk level must carry a positive load.
func NewCalculator(table *FactorTable, riskLoads map[RiskLevel]decimal.Decimal) (*Calculator, error) {
	if table == nil {
		return nil, &InputError{Field: "factor_table", Reason: "required"}
	}
	for _, level := range []RiskLevel{RiskLow, RiskMedium, RiskHigh} {
		load, ok := riskLoads[level]
		if !ok {
			return nil, &InputError{Field: "risk_loads", Reason: "missing load for level " + string(level)}
		}
		if !load.IsPositive() {
			return nil, &InputError{Field: "risk_loads", Reason: "load for level " + string(level) + " must be positive"}
		}
	}
	copied := make(map[RiskLevel]decimal.Decimal, len(riskLoads))
	for k, v := range riskLoads {
		copied[k] = v
	}
	return &Calculator{table: table, riskLoads: copied}, nil
}

// NewDefaultCalculator builds a calculator from the baseline table and loads.
func NewDefaultCalculator() *Calculator {
	c, err := NewCalculator(DefaultFactorTable(), DefaultRiskLoads())
	if err != nil {
		panic("accrual: default calculator invalid: " + err.Error())
	}
	return c
}

// Table exposes the read-only factor table (for display surfaces).
func (c *Calculator) Table() *FactorTable {
	return c.table
}

// RiskLoad returns the configured load for a risk level.
func (c *Calculator) RiskLoad(level RiskLevel) (decimal.Decimal, error) {
	load, ok := c.riskLoads[level]
	if !ok {
		return decimal.Zero, &InputError{Field: "risk_level", Reason: "must be Low, Medium, or High"}
	}
	return load, nil
}

// Compute runs the accrual pipeline for a single claim.
func (c *Calculator) Compute(claim ClaimFinancials) (AccrualResult, error) {
	if err := c.validate(claim); err != nil {
		return AccrualResult{}, err
	}

	year := DevelopmentYear(claim.MonthsSinceOccurrence)
	factor, err := c.table.FactorFor(claim.ClaimType, year)
	if err != nil {
		return AccrualResult{}, err
	}

	ultimate := claim.IncurredLoss.Mul(factor)

	outstanding := ultimate.Sub(claim.PaidLoss)
	if outstanding.IsNegative() {
		// Paid exceeding the recomputed ultimate reports zero outstanding,
		// never a negative reserve.
		outstanding = decimal.Zero
	}

	load := c.riskLoads[claim.RiskLevel]
	riskAdjustment := ultimate.Mul(load)

	discounted, err := discountedValue(outstanding, claim.AnnualDiscountRate, claim.MonthsToSettlement)
	if err != nil {
		return AccrualResult{}, err
	}

	return AccrualResult{
		UltimateLoss:          ultimate,
		OutstandingClaims:     outstanding,
		RiskAdjustment:        riskAdjustment,
		DiscountedOutstanding: discounted,
		DiscountAmount:        outstanding.Sub(discounted),
		TotalAccrual:          discounted.Add(riskAdjustment),
		AppliedFactor:         factor,
		DevelopmentYear:       year,
	}, nil
}

func (c *Calculator) validate(claim ClaimFinancials) error {
	if !claim.ClaimType.Valid() {
		return &UnknownClaimTypeError{ClaimType: string(claim.ClaimType)}
	}
	if !claim.RiskLevel.Valid() {
		return &InputError{Field: "risk_level", Reason: "must be Low, Medium, or High"}
	}
	if claim.IncurredLoss.IsNegative() {
		return &InputError{Field: "incurred_loss", Reason: "must not be negative"}
	}
	if claim.PaidLoss.IsNegative() {
		return &InputError{Field: "paid_loss", Reason: "must not be negative"}
	}
	if claim.MonthsSinceOccurrence < 0 {
		return &InputError{Field: "months_since_occurrence", Reason: "must not be negative"}
	}
	if claim.MonthsToSettlement < 0 {
		return &InputError{Field: "months_to_settlement", Reason: "must not be negative"}
	}
	if claim.AnnualDiscountRate.IsNegative() || claim.AnnualDiscountRate.GreaterThan(MaxDiscountRate) {
		return &InputError{Field: "annual_discount_rate", Reason: "must be between 0 and 0.10"}
	}
	return nil
}

// discountedValue computes value / (1 + rate)^(months/12). Zero rate and
// zero horizon both return the value unchanged, exactly.
func discountedValue(value, rate decimal.Decimal, months int) (decimal.Decimal, error) {
	if rate.IsZero() || months == 0 || value.IsZero() {
		return value, nil
	}

	years := decimal.NewFromInt(int64(months)).Div(decimal.NewFromInt(12))
	base := decimal.NewFromInt(1).Add(rate)
	growth, err := base.PowWithPrecision(years, discountPrecision)
	if err != nil {
		return decimal.Zero, &InputError{Field: "annual_discount_rate", Reason: "discount factor not computable: " + err.Error()}
	}
	return value.DivRound(growth, discountPrecision), nil
}
