/*
development.go - Cumulative loss-development factor table

PURPOSE:
  Holds the per-claim-type cumulative development multipliers used by the
  chain-ladder projection. Each claim type carries exactly ten factors,
  one per development year; year 10 is fully developed (factor 1.0) and
  any later year reads the year-10 value.

INVARIANTS (asserted in NewFactorTable):
  - Every recognized claim type has exactly 10 factors
  - All factors are strictly positive
  - Sequences are non-increasing (older claims never develop upward)
  - The year-10 factor is exactly 1.0 (fully developed)

DEVELOPMENT YEAR CONVENTION:
  developmentYear = floor(monthsSinceOccurrence / 12) + 1, clamped to [1,10]
  Months 0-11 are development year 1, months 12-23 year 2, and so on: the
  year the claim is currently in, 1-indexed like the factor table. A claim
  18 months old is in development year 2 (Auto factor 2.2). Earlier
  documentation mixed rounding conventions; this rule is authoritative and
  covered by tests.

SEE ALSO:
  - calculator.go: Consumes FactorFor
  - factory/ruleset.go: Builds tables from YAML
*/
package accrual

import (
	"github.com/shopspring/decimal"
)

// developmentYears is the fixed depth of every factor sequence.
const developmentYears = 10

// =============================================================================
// FACTOR TABLE
// =============================================================================

// FactorTable maps claim types to cumulative development factors. It is
// constructed once, validated, and read-only thereafter; concurrent reads
// need no synchronization.
type FactorTable struct {
	factors map[ClaimType][]decimal.Decimal
}

// NewFactorTable validates the given sequences and returns an immutable
// table. Every claim type in the enumerated set must be present.
func NewFactorTable(factors map[ClaimType][]decimal.Decimal) (*FactorTable, error) {
	one := decimal.NewFromInt(1)

	for _, ct := range ClaimTypes() {
		seq, ok := factors[ct]
		if !ok {
			return nil, &InputError{Field: "development_factors", Reason: "missing sequence for claim type " + string(ct)}
		}
		if len(seq) != developmentYears {
			return nil, &InputError{Field: "development_factors", Reason: "claim type " + string(ct) + " must have exactly 10 factors"}
		}
		for i, f := range seq {
			if !f.IsPositive() {
				return nil, &InputError{Field: "development_factors", Reason: "claim type " + string(ct) + " has a non-positive factor"}
			}
			if i > 0 && f.GreaterThan(seq[i-1]) {
				return nil, &InputError{Field: "development_factors", Reason: "claim type " + string(ct) + " factors must be non-increasing"}
			}
		}
		if !seq[developmentYears-1].Equal(one) {
			return nil, &InputError{Field: "development_factors", Reason: "claim type " + string(ct) + " must be fully developed (1.0) by year 10"}
		}
	}

	// Reject sequences for unrecognized claim types.
	for ct := range factors {
		if !ct.Valid() {
			return nil, &UnknownClaimTypeError{ClaimType: string(ct)}
		}
	}

	copied := make(map[ClaimType][]decimal.Decimal, len(factors))
	for ct, seq := range factors {
		copied[ct] = append([]decimal.Decimal(nil), seq...)
	}
	return &FactorTable{factors: copied}, nil
}

// DefaultFactorTable returns the baseline synthetic table. The sequences
// are illustrative constants, not fitted to any real loss triangle.
func DefaultFactorTable() *FactorTable {
	table, err := NewFactorTable(defaultFactors())
	if err != nil {
		panic("accrual: default factor table invalid: " + err.Error())
	}
	return table
}

func defaultFactors() map[ClaimType][]decimal.Decimal {
	raw := map[ClaimType][]float64{
		ClaimAuto:        {3.5, 2.2, 1.5, 1.2, 1.1, 1.05, 1.02, 1.01, 1.005, 1.0},
		ClaimProperty:    {2.8, 1.9, 1.4, 1.15, 1.08, 1.04, 1.02, 1.01, 1.005, 1.0},
		ClaimLiability:   {5.0, 3.5, 2.5, 1.8, 1.4, 1.2, 1.1, 1.05, 1.02, 1.0},
		ClaimHealth:      {2.0, 1.5, 1.2, 1.1, 1.05, 1.02, 1.01, 1.005, 1.0, 1.0},
		ClaimWorkersComp: {4.5, 3.0, 2.2, 1.6, 1.3, 1.15, 1.08, 1.04, 1.02, 1.0},
	}
	out := make(map[ClaimType][]decimal.Decimal, len(raw))
	for ct, seq := range raw {
		ds := make([]decimal.Decimal, len(seq))
		for i, f := range seq {
			ds[i] = decimal.NewFromFloat(f)
		}
		out[ct] = ds
	}
	return out
}

// FactorFor returns the cumulative development factor for the given claim
// type and development year. Years below 1 read year 1; years beyond 10
// read the year-10 factor (fully-developed policy).
func (t *FactorTable) FactorFor(claimType ClaimType, developmentYear int) (decimal.Decimal, error) {
	seq, ok := t.factors[claimType]
	if !ok {
		return decimal.Zero, &UnknownClaimTypeError{ClaimType: string(claimType)}
	}
	if developmentYear < 1 {
		developmentYear = 1
	}
	if developmentYear > developmentYears {
		developmentYear = developmentYears
	}
	return seq[developmentYear-1], nil
}

// Factors returns a copy of the sequence for the given claim type.
func (t *FactorTable) Factors(claimType ClaimType) ([]decimal.Decimal, error) {
	seq, ok := t.factors[claimType]
	if !ok {
		return nil, &UnknownClaimTypeError{ClaimType: string(claimType)}
	}
	return append([]decimal.Decimal(nil), seq...), nil
}

// DevelopmentYear derives the 1-indexed development year from months since
// occurrence: the year the claim is currently in, floor(months/12) + 1.
// Values beyond year 10 are clamped by FactorFor, not here.
func DevelopmentYear(monthsSinceOccurrence int) int {
	if monthsSinceOccurrence < 0 {
		return 1
	}
	return monthsSinceOccurrence/12 + 1
}
