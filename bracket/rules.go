/*
rules.go - Scoring weights, thresholds, overrides, and the engine

PURPOSE:
  The rule set is an explicit ordered table of (attribute, value) -> points
  plus a small set of override predicates evaluated after summation. Base
  scoring, threshold lookup, and overrides are separate methods so each is
  testable in isolation.

SCORING (baseline):
  Stage:      Reported=0  Investigation=1  Settlement=2  Closed=0
  Severity:   Low=0  Medium=1  High=2  Catastrophic=4
  Duration:   <3 months=0  3-6 months=1  >6 months=2
  IBNR:       +2, and raises the uncertainty floor to 0.6

  Closed claims score 0 on stage: a closed claim with a known outcome
  carries less uncertainty than one mid-investigation.

THRESHOLDS (first match wins):
  <=1 -> Band A   2-3 -> Band B   4-5 -> Band C   6-7 -> Band D   >=8 -> Band E

OVERRIDES (after summation):
  Catastrophic severity        -> at minimum Band D
  IBNR + High/Catastrophic     -> Band E (maximum-reserve policy)

UNCERTAINTY:
  score / maxPossibleScore, raised to at least 0.6 for IBNR, clamped [0,1].

SEE ALSO:
  - types.go: Input/output value objects
  - factory/ruleset.go: Builds rule sets from YAML
*/
package bracket

// =============================================================================
// RULE SET - Immutable scoring configuration
// =============================================================================

// DurationBand scores an investigation duration. UpToMonths is inclusive;
// a negative UpToMonths marks the open-ended final band.
type DurationBand struct {
	UpToMonths int
	Points     int
}

// Threshold maps a score range to a bracket. UpToScore is inclusive; a
// negative UpToScore marks the open-ended final band.
type Threshold struct {
	UpToScore int
	Bracket   Bracket
}

// RuleSet holds every weight and threshold the engine applies. Built once,
// validated, and read-only thereafter.
type RuleSet struct {
	StagePoints    map[ClaimStage]int
	SeverityPoints map[Severity]int
	DurationBands  []DurationBand
	IBNRPoints     int

	Thresholds []Threshold

	IBNRUncertaintyFloor float64

	maxScore int
}

// NewRuleSet validates weights and thresholds and returns an immutable
// rule set. Thresholds must ascend and end with an open band so every
// score maps to a bracket; all points must be non-negative.
func NewRuleSet(rs RuleSet) (*RuleSet, error) {
	for _, stage := range ClaimStages() {
		points, ok := rs.StagePoints[stage]
		if !ok {
			return nil, &ProfileError{Field: "scoring.stage_points", Reason: "missing points for stage " + string(stage)}
		}
		if points < 0 {
			return nil, &ProfileError{Field: "scoring.stage_points", Reason: "points must not be negative"}
		}
	}
	for _, sev := range Severities() {
		points, ok := rs.SeverityPoints[sev]
		if !ok {
			return nil, &ProfileError{Field: "scoring.severity_points", Reason: "missing points for severity " + string(sev)}
		}
		if points < 0 {
			return nil, &ProfileError{Field: "scoring.severity_points", Reason: "points must not be negative"}
		}
	}
	if len(rs.DurationBands) == 0 || rs.DurationBands[len(rs.DurationBands)-1].UpToMonths >= 0 {
		return nil, &ProfileError{Field: "scoring.duration_bands", Reason: "must end with an open-ended band"}
	}
	for i, band := range rs.DurationBands {
		if band.Points < 0 {
			return nil, &ProfileError{Field: "scoring.duration_bands", Reason: "points must not be negative"}
		}
		if i > 0 && band.UpToMonths >= 0 && band.UpToMonths <= rs.DurationBands[i-1].UpToMonths {
			return nil, &ProfileError{Field: "scoring.duration_bands", Reason: "bands must ascend"}
		}
	}
	if rs.IBNRPoints < 0 {
		return nil, &ProfileError{Field: "scoring.ibnr_points", Reason: "points must not be negative"}
	}
	if len(rs.Thresholds) == 0 || rs.Thresholds[len(rs.Thresholds)-1].UpToScore >= 0 {
		return nil, &ProfileError{Field: "scoring.thresholds", Reason: "must end with an open-ended band"}
	}
	for i, th := range rs.Thresholds {
		if i > 0 && th.UpToScore >= 0 && th.UpToScore <= rs.Thresholds[i-1].UpToScore {
			return nil, &ProfileError{Field: "scoring.thresholds", Reason: "thresholds must ascend"}
		}
	}
	if rs.IBNRUncertaintyFloor < 0 || rs.IBNRUncertaintyFloor > 1 {
		return nil, &ProfileError{Field: "scoring.ibnr_uncertainty_floor", Reason: "must be between 0 and 1"}
	}

	out := rs
	out.StagePoints = copyMap(rs.StagePoints)
	out.SeverityPoints = copyMap(rs.SeverityPoints)
	out.DurationBands = append([]DurationBand(nil), rs.DurationBands...)
	out.Thresholds = append([]Threshold(nil), rs.Thresholds...)
	out.maxScore = out.computeMaxScore()
	return &out, nil
}

func copyMap[K comparable](m map[K]int) map[K]int {
	out := make(map[K]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// DefaultRuleSet returns the baseline scoring configuration.
func DefaultRuleSet() *RuleSet {
	rs, err := NewRuleSet(RuleSet{
		StagePoints: map[ClaimStage]int{
			StageReported:      0,
			StageInvestigation: 1,
			StageSettlement:    2,
			StageClosed:        0,
		},
		SeverityPoints: map[Severity]int{
			SeverityLow:          0,
			SeverityMedium:       1,
			SeverityHigh:         2,
			SeverityCatastrophic: 4,
		},
		DurationBands: []DurationBand{
			{UpToMonths: 2, Points: 0},
			{UpToMonths: 6, Points: 1},
			{UpToMonths: -1, Points: 2},
		},
		IBNRPoints: 2,
		Thresholds: []Threshold{
			{UpToScore: 1, Bracket: BandA},
			{UpToScore: 3, Bracket: BandB},
			{UpToScore: 5, Bracket: BandC},
			{UpToScore: 7, Bracket: BandD},
			{UpToScore: -1, Bracket: BandE},
		},
		IBNRUncertaintyFloor: 0.6,
	})
	if err != nil {
		panic("bracket: default rule set invalid: " + err.Error())
	}
	return rs
}

// computeMaxScore sums the highest contribution of each attribute.
func (r *RuleSet) computeMaxScore() int {
	maxStage := 0
	for _, p := range r.StagePoints {
		if p > maxStage {
			maxStage = p
		}
	}
	maxSev := 0
	for _, p := range r.SeverityPoints {
		if p > maxSev {
			maxSev = p
		}
	}
	maxDur := 0
	for _, b := range r.DurationBands {
		if b.Points > maxDur {
			maxDur = b.Points
		}
	}
	return maxStage + maxSev + maxDur + r.IBNRPoints
}

// MaxScore returns the highest score the additive rules can produce.
func (r *RuleSet) MaxScore() int {
	return r.maxScore
}

// =============================================================================
// BASE SCORING
// =============================================================================

// Score sums the attribute contributions for a profile. Overrides are not
// applied here; see OverrideBracket.
func (r *RuleSet) Score(profile ClaimProfile) int {
	score := r.StagePoints[profile.ClaimStage]
	score += r.SeverityPoints[profile.SeverityBracket]
	score += r.durationPoints(profile.InvestigationDurationMonths)
	if profile.IsIBNR {
		score += r.IBNRPoints
	}
	return score
}

func (r *RuleSet) durationPoints(months int) int {
	for _, band := range r.DurationBands {
		if band.UpToMonths < 0 || months <= band.UpToMonths {
			return band.Points
		}
	}
	return 0
}

// BracketFor maps a score to its bracket, first matching threshold wins.
func (r *RuleSet) BracketFor(score int) Bracket {
	for _, th := range r.Thresholds {
		if th.UpToScore < 0 || score <= th.UpToScore {
			return th.Bracket
		}
	}
	return r.Thresholds[len(r.Thresholds)-1].Bracket
}

// =============================================================================
// OVERRIDES
// =============================================================================

// OverrideBracket applies the forced-minimum predicates to a base bracket:
// catastrophic severity is never classified below Band D, and an IBNR
// claim at High or Catastrophic severity always lands in Band E.
func (r *RuleSet) OverrideBracket(base Bracket, profile ClaimProfile) Bracket {
	out := base
	if profile.SeverityBracket == SeverityCatastrophic && !out.AtLeast(BandD) {
		out = BandD
	}
	if profile.IsIBNR && (profile.SeverityBracket == SeverityHigh || profile.SeverityBracket == SeverityCatastrophic) {
		out = BandE
	}
	return out
}

// Uncertainty derives the uncertainty score for a base score: the fraction
// of the maximum possible score, raised to the IBNR floor when applicable,
// clamped to [0,1].
func (r *RuleSet) Uncertainty(score int, isIBNR bool) float64 {
	u := float64(score) / float64(r.maxScore)
	if isIBNR && u < r.IBNRUncertaintyFloor {
		u = r.IBNRUncertaintyFloor
	}
	if u < 0 {
		u = 0
	}
	if u > 1 {
		u = 1
	}
	return u
}

// =============================================================================
// WARNINGS
// =============================================================================

// Advisory texts emitted with classifications. WarnHumanReview accompanies
// every result.
const (
	WarnHumanReview = "Advisory estimate only: human review by qualified finance/actuarial staff is required; this bracket is not an actual reserve amount"

	WarnIBNR = "IBNR claim: estimation carries higher inherent uncertainty"

	WarnCatastrophic = "Catastrophic severity: consult senior actuarial team"

	WarnExtendedInvestigation = "Extended investigation period (>6 months) increases uncertainty"
)

// extendedInvestigationMonths is the advisory cutoff for the
// extended-investigation warning.
const extendedInvestigationMonths = 6

func (r *RuleSet) warnings(profile ClaimProfile) []string {
	warnings := []string{WarnHumanReview}
	if profile.IsIBNR {
		warnings = append(warnings, WarnIBNR)
	}
	if profile.SeverityBracket == SeverityCatastrophic {
		warnings = append(warnings, WarnCatastrophic)
	}
	if profile.InvestigationDurationMonths > extendedInvestigationMonths {
		warnings = append(warnings, WarnExtendedInvestigation)
	}
	return warnings
}

// =============================================================================
// ENGINE
// =============================================================================

// Engine classifies claim profiles against a fixed rule set. It holds no
// mutable state; a single instance may serve concurrent classifications.
type Engine struct {
	rules *RuleSet
}

// NewEngine wraps a validated rule set.
func NewEngine(rules *RuleSet) *Engine {
	if rules == nil {
		rules = DefaultRuleSet()
	}
	return &Engine{rules: rules}
}

// Rules exposes the read-only rule set (for display surfaces).
func (e *Engine) Rules() *RuleSet {
	return e.rules
}

// Classify maps a profile to its bracket, uncertainty score, and advisory
// warnings. Identical input always yields identical output.
func (e *Engine) Classify(profile ClaimProfile) (BracketResult, error) {
	if err := validateProfile(profile); err != nil {
		return BracketResult{}, err
	}

	score := e.rules.Score(profile)
	base := e.rules.BracketFor(score)

	return BracketResult{
		Bracket:          e.rules.OverrideBracket(base, profile),
		Score:            score,
		UncertaintyScore: e.rules.Uncertainty(score, profile.IsIBNR),
		Warnings:         e.rules.warnings(profile),
	}, nil
}

func validateProfile(profile ClaimProfile) error {
	if !profile.ClaimStage.Valid() {
		return &ProfileError{Field: "claim_stage", Reason: "must be Reported, Investigation, Settlement, or Closed"}
	}
	if !profile.SeverityBracket.Valid() {
		return &ProfileError{Field: "severity_bracket", Reason: "must be Low, Medium, High, or Catastrophic"}
	}
	if profile.InvestigationDurationMonths < 0 {
		return &ProfileError{Field: "investigation_duration_months", Reason: "must not be negative"}
	}
	return nil
}
