/*
Package factory provides YAML to Go rule-set conversion.

PURPOSE:
  Converts a YAML rule-set definition into the validated, immutable
  configuration objects the calculation engines consume: the development
  factor table, risk loads, and bracket scoring rules. This enables rule
  tuning without code changes while keeping every invariant assertion in
  the engine constructors.

YAML SCHEMA:
  development_factors:
    Auto:        [3.5, 2.2, 1.5, 1.2, 1.1, 1.05, 1.02, 1.01, 1.005, 1.0]
    Property:    [...]
  risk_loads:
    Low: 0.05
    Medium: 0.10
    High: 0.20
  scoring:
    stage_points:    {Reported: 0, Investigation: 1, Settlement: 2, Closed: 0}
    severity_points: {Low: 0, Medium: 1, High: 2, Catastrophic: 4}
    duration_bands:
      - {up_to_months: 2, points: 0}
      - {up_to_months: 6, points: 1}
      - {points: 2}              # open-ended
    ibnr_points: 2
    ibnr_uncertainty_floor: 0.6
    thresholds:
      - {up_to_score: 1, bracket: A}
      - {up_to_score: 3, bracket: B}
      - {up_to_score: 5, bracket: C}
      - {up_to_score: 7, bracket: D}
      - {bracket: E}             # open-ended

  Omitted sections fall back to the baseline configuration, so a file may
  override just the scoring weights or just one factor table.

USAGE:
  comp := factory.Default()

  comp, err := factory.Load("ruleset.yaml")   // missing file -> defaults

SEE ALSO:
  - accrual/development.go: Factor table invariants
  - bracket/rules.go: Scoring invariants
*/
package factory

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/gcc-insurance-intelligence-lab/ifrs-claim-accrual-estimator/accrual"
	"github.com/gcc-insurance-intelligence-lab/ifrs-claim-accrual-estimator/bracket"
)

// =============================================================================
// YAML SCHEMA TYPES
// =============================================================================

// RuleSetYAML is the YAML representation of the full rule set.
type RuleSetYAML struct {
	DevelopmentFactors map[string][]float64 `yaml:"development_factors"`
	RiskLoads          map[string]float64   `yaml:"risk_loads"`
	Scoring            *ScoringYAML         `yaml:"scoring"`
}

// ScoringYAML is the YAML representation of the bracket scoring rules.
type ScoringYAML struct {
	StagePoints          map[string]int      `yaml:"stage_points"`
	SeverityPoints       map[string]int      `yaml:"severity_points"`
	DurationBands        []DurationBandYAML  `yaml:"duration_bands"`
	IBNRPoints           int                 `yaml:"ibnr_points"`
	IBNRUncertaintyFloor float64             `yaml:"ibnr_uncertainty_floor"`
	Thresholds           []ThresholdYAML     `yaml:"thresholds"`
}

type DurationBandYAML struct {
	// UpToMonths is inclusive; nil marks the open-ended final band.
	UpToMonths *int `yaml:"up_to_months"`
	Points     int  `yaml:"points"`
}

type ThresholdYAML struct {
	// UpToScore is inclusive; nil marks the open-ended final band.
	UpToScore *int   `yaml:"up_to_score"`
	Bracket   string `yaml:"bracket"`
}

// =============================================================================
// COMPONENTS - The assembled calculation engines
// =============================================================================

// Components bundles the two engines built from one rule set.
type Components struct {
	Calculator *accrual.Calculator
	Engine     *bracket.Engine
}

// Default returns components built from the baseline rule set.
func Default() *Components {
	return &Components{
		Calculator: accrual.NewDefaultCalculator(),
		Engine:     bracket.NewEngine(bracket.DefaultRuleSet()),
	}
}

// Load reads a YAML rule-set file and builds components. A missing file is
// not an error: the baseline configuration is returned instead.
func Load(path string) (*Components, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read rule set: %w", err)
	}
	return Parse(data)
}

// Parse builds components from YAML bytes, applying baseline values for
// any omitted section.
func Parse(data []byte) (*Components, error) {
	var spec RuleSetYAML
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse rule set: %w", err)
	}

	table, err := buildFactorTable(spec.DevelopmentFactors)
	if err != nil {
		return nil, err
	}

	loads, err := buildRiskLoads(spec.RiskLoads)
	if err != nil {
		return nil, err
	}

	calc, err := accrual.NewCalculator(table, loads)
	if err != nil {
		return nil, err
	}

	rules, err := buildRuleSet(spec.Scoring)
	if err != nil {
		return nil, err
	}

	return &Components{
		Calculator: calc,
		Engine:     bracket.NewEngine(rules),
	}, nil
}

// =============================================================================
// BUILDERS
// =============================================================================

func buildFactorTable(raw map[string][]float64) (*accrual.FactorTable, error) {
	if len(raw) == 0 {
		return accrual.DefaultFactorTable(), nil
	}

	factors := make(map[accrual.ClaimType][]decimal.Decimal, len(raw))
	for name, seq := range raw {
		ct, err := accrual.ParseClaimType(name)
		if err != nil {
			return nil, err
		}
		ds := make([]decimal.Decimal, len(seq))
		for i, f := range seq {
			ds[i] = decimal.NewFromFloat(f)
		}
		factors[ct] = ds
	}
	return accrual.NewFactorTable(factors)
}

func buildRiskLoads(raw map[string]float64) (map[accrual.RiskLevel]decimal.Decimal, error) {
	if len(raw) == 0 {
		return accrual.DefaultRiskLoads(), nil
	}

	loads := make(map[accrual.RiskLevel]decimal.Decimal, len(raw))
	for name, load := range raw {
		level, err := accrual.ParseRiskLevel(name)
		if err != nil {
			return nil, err
		}
		loads[level] = decimal.NewFromFloat(load)
	}
	return loads, nil
}

func buildRuleSet(spec *ScoringYAML) (*bracket.RuleSet, error) {
	if spec == nil {
		return bracket.DefaultRuleSet(), nil
	}

	rs := bracket.RuleSet{
		StagePoints:          make(map[bracket.ClaimStage]int, len(spec.StagePoints)),
		SeverityPoints:       make(map[bracket.Severity]int, len(spec.SeverityPoints)),
		IBNRPoints:           spec.IBNRPoints,
		IBNRUncertaintyFloor: spec.IBNRUncertaintyFloor,
	}

	for name, points := range spec.StagePoints {
		stage, err := bracket.ParseClaimStage(name)
		if err != nil {
			return nil, err
		}
		rs.StagePoints[stage] = points
	}
	for name, points := range spec.SeverityPoints {
		sev, err := bracket.ParseSeverity(name)
		if err != nil {
			return nil, err
		}
		rs.SeverityPoints[sev] = points
	}
	for _, band := range spec.DurationBands {
		upTo := -1
		if band.UpToMonths != nil {
			upTo = *band.UpToMonths
		}
		rs.DurationBands = append(rs.DurationBands, bracket.DurationBand{UpToMonths: upTo, Points: band.Points})
	}
	for _, th := range spec.Thresholds {
		upTo := -1
		if th.UpToScore != nil {
			upTo = *th.UpToScore
		}
		b := bracket.Bracket(th.Bracket)
		switch b {
		case bracket.BandA, bracket.BandB, bracket.BandC, bracket.BandD, bracket.BandE:
		default:
			return nil, fmt.Errorf("parse rule set: unknown bracket %q", th.Bracket)
		}
		rs.Thresholds = append(rs.Thresholds, bracket.Threshold{UpToScore: upTo, Bracket: b})
	}

	return bracket.NewRuleSet(rs)
}
