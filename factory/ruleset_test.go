package factory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcc-insurance-intelligence-lab/ifrs-claim-accrual-estimator/accrual"
	"github.com/gcc-insurance-intelligence-lab/ifrs-claim-accrual-estimator/bracket"
	"github.com/gcc-insurance-intelligence-lab/ifrs-claim-accrual-estimator/factory"
)

// =============================================================================
// DEFAULTS
// =============================================================================

func TestDefault_ComponentsUsable(t *testing.T) {
	comp := factory.Default()
	require.NotNil(t, comp.Calculator)
	require.NotNil(t, comp.Engine)

	f, err := comp.Calculator.Table().FactorFor(accrual.ClaimAuto, 2)
	require.NoError(t, err)
	assert.True(t, f.Equal(decimal.NewFromFloat(2.2)))

	res, err := comp.Engine.Classify(bracket.ClaimProfile{
		ClaimStage:      bracket.StageReported,
		SeverityBracket: bracket.SeverityLow,
	})
	require.NoError(t, err)
	assert.Equal(t, bracket.BandA, res.Bracket)
}

func TestParse_EmptyDocument_FallsBackToDefaults(t *testing.T) {
	comp, err := factory.Parse([]byte("{}"))
	require.NoError(t, err)

	f, err := comp.Calculator.Table().FactorFor(accrual.ClaimLiability, 1)
	require.NoError(t, err)
	assert.True(t, f.Equal(decimal.NewFromFloat(5.0)))
	assert.Equal(t, 10, comp.Engine.Rules().MaxScore())
}

// =============================================================================
// OVERRIDES
// =============================================================================

func TestParse_FactorTableOverride(t *testing.T) {
	// GIVEN: A YAML document overriding every factor sequence
	// THEN: The calculator uses the overridden factors

	yamlDoc := `
development_factors:
  Auto:        [2.0, 1.5, 1.3, 1.2, 1.1, 1.05, 1.02, 1.01, 1.005, 1.0]
  Property:    [2.0, 1.5, 1.3, 1.2, 1.1, 1.05, 1.02, 1.01, 1.005, 1.0]
  Liability:   [2.0, 1.5, 1.3, 1.2, 1.1, 1.05, 1.02, 1.01, 1.005, 1.0]
  Health:      [2.0, 1.5, 1.3, 1.2, 1.1, 1.05, 1.02, 1.01, 1.005, 1.0]
  WorkersComp: [2.0, 1.5, 1.3, 1.2, 1.1, 1.05, 1.02, 1.01, 1.005, 1.0]
`
	comp, err := factory.Parse([]byte(yamlDoc))
	require.NoError(t, err)

	f, err := comp.Calculator.Table().FactorFor(accrual.ClaimAuto, 1)
	require.NoError(t, err)
	assert.True(t, f.Equal(decimal.NewFromFloat(2.0)))
}

func TestParse_ScoringOverride(t *testing.T) {
	yamlDoc := `
scoring:
  stage_points:    {Reported: 0, Investigation: 2, Settlement: 3, Closed: 0}
  severity_points: {Low: 0, Medium: 1, High: 3, Catastrophic: 5}
  duration_bands:
    - {up_to_months: 2, points: 0}
    - {up_to_months: 6, points: 1}
    - {points: 2}
  ibnr_points: 2
  ibnr_uncertainty_floor: 0.5
  thresholds:
    - {up_to_score: 1, bracket: A}
    - {up_to_score: 4, bracket: B}
    - {up_to_score: 7, bracket: C}
    - {up_to_score: 9, bracket: D}
    - {bracket: E}
`
	comp, err := factory.Parse([]byte(yamlDoc))
	require.NoError(t, err)

	rules := comp.Engine.Rules()
	assert.Equal(t, 12, rules.MaxScore()) // 3 + 5 + 2 + 2
	assert.Equal(t, bracket.BandB, rules.BracketFor(4))
}

// =============================================================================
// REJECTIONS
// =============================================================================

func TestParse_RejectsMalformedYAML(t *testing.T) {
	_, err := factory.Parse([]byte("development_factors: ["))
	assert.Error(t, err)
}

func TestParse_RejectsUnknownClaimType(t *testing.T) {
	yamlDoc := `
development_factors:
  Marine: [2.0, 1.5, 1.3, 1.2, 1.1, 1.05, 1.02, 1.01, 1.005, 1.0]
`
	_, err := factory.Parse([]byte(yamlDoc))
	assert.ErrorIs(t, err, accrual.ErrInvalidClaimType)
}

func TestParse_RejectsInvalidFactorSequence(t *testing.T) {
	// Increasing mid-sequence violates the non-increasing invariant; the
	// constructor rejection must surface through Parse.
	yamlDoc := `
development_factors:
  Auto:        [2.0, 2.5, 1.3, 1.2, 1.1, 1.05, 1.02, 1.01, 1.005, 1.0]
  Property:    [2.0, 1.5, 1.3, 1.2, 1.1, 1.05, 1.02, 1.01, 1.005, 1.0]
  Liability:   [2.0, 1.5, 1.3, 1.2, 1.1, 1.05, 1.02, 1.01, 1.005, 1.0]
  Health:      [2.0, 1.5, 1.3, 1.2, 1.1, 1.05, 1.02, 1.01, 1.005, 1.0]
  WorkersComp: [2.0, 1.5, 1.3, 1.2, 1.1, 1.05, 1.02, 1.01, 1.005, 1.0]
`
	_, err := factory.Parse([]byte(yamlDoc))
	assert.ErrorIs(t, err, accrual.ErrInvalidInput)
}

func TestParse_RejectsUnknownBracket(t *testing.T) {
	yamlDoc := `
scoring:
  stage_points:    {Reported: 0, Investigation: 1, Settlement: 2, Closed: 0}
  severity_points: {Low: 0, Medium: 1, High: 2, Catastrophic: 4}
  duration_bands:
    - {points: 0}
  ibnr_points: 2
  ibnr_uncertainty_floor: 0.6
  thresholds:
    - {bracket: F}
`
	_, err := factory.Parse([]byte(yamlDoc))
	assert.Error(t, err)
}

// =============================================================================
// FILE LOADING
// =============================================================================

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	comp, err := factory.Load("does-not-exist.yaml")
	require.NoError(t, err)
	assert.NotNil(t, comp.Calculator)
}
