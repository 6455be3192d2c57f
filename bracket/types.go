/*
Package bracket implements the rule-based accrual-bracket classifier.

PURPOSE:
  Maps symbolic claim attributes (stage, severity, investigation duration,
  IBNR flag) to an accrual bracket (Band A through Band E), a numeric
  uncertainty score, and a set of advisory warnings. Outputs are symbolic
  reserve classifications, never monetary amounts, and always carry the
  mandatory human-review advisory.

DESIGN:
  An additive point-scoring system, not a decision tree: each attribute
  contributes independently-weighted points, summed, then thresholded into
  a bracket. Attributes compound - moderate severity plus a long
  investigation can reach the same bracket as high severity alone. A small
  set of override predicates runs after summation so the base scoring and
  the overrides stay separately testable.

KEY CONCEPTS IN THIS FILE (types.go):
  - ClaimStage / Severity: Categorical inputs
  - ClaimProfile: Immutable classification input
  - Bracket: Band A (low reserve) through Band E (maximum reserve)
  - BracketResult: Deterministic classification output

SEE ALSO:
  - rules.go: Scoring weights, thresholds, overrides, engine
  - errors.go: Error taxonomy
*/
package bracket

// =============================================================================
// CLAIM STAGE
// =============================================================================

type ClaimStage string

const (
	StageReported      ClaimStage = "Reported"
	StageInvestigation ClaimStage = "Investigation"
	StageSettlement    ClaimStage = "Settlement"
	StageClosed        ClaimStage = "Closed"
)

func ClaimStages() []ClaimStage {
	return []ClaimStage{StageReported, StageInvestigation, StageSettlement, StageClosed}
}

func (s ClaimStage) Valid() bool {
	switch s {
	case StageReported, StageInvestigation, StageSettlement, StageClosed:
		return true
	}
	return false
}

// ParseClaimStage converts a raw string into a ClaimStage.
func ParseClaimStage(raw string) (ClaimStage, error) {
	s := ClaimStage(raw)
	if !s.Valid() {
		return "", &ProfileError{Field: "claim_stage", Reason: "must be Reported, Investigation, Settlement, or Closed"}
	}
	return s, nil
}

// =============================================================================
// SEVERITY
// =============================================================================

type Severity string

const (
	SeverityLow          Severity = "Low"
	SeverityMedium       Severity = "Medium"
	SeverityHigh         Severity = "High"
	SeverityCatastrophic Severity = "Catastrophic"
)

func Severities() []Severity {
	return []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCatastrophic}
}

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCatastrophic:
		return true
	}
	return false
}

// ParseSeverity converts a raw string into a Severity.
func ParseSeverity(raw string) (Severity, error) {
	s := Severity(raw)
	if !s.Valid() {
		return "", &ProfileError{Field: "severity_bracket", Reason: "must be Low, Medium, High, or Catastrophic"}
	}
	return s, nil
}

// =============================================================================
// CLAIM PROFILE - Classification input
// =============================================================================

// ClaimProfile is the value object consumed by the engine. Created per
// classification request; never mutated.
type ClaimProfile struct {
	ClaimStage                  ClaimStage
	SeverityBracket             Severity
	InvestigationDurationMonths int
	IsIBNR                      bool
}

// =============================================================================
// BRACKET - Symbolic reserve classification
// =============================================================================

type Bracket string

const (
	BandA Bracket = "A"
	BandB Bracket = "B"
	BandC Bracket = "C"
	BandD Bracket = "D"
	BandE Bracket = "E"
)

// Label returns the human-readable reserve description for a bracket.
func (b Bracket) Label() string {
	switch b {
	case BandA:
		return "Band A (Low Reserve)"
	case BandB:
		return "Band B (Moderate Reserve)"
	case BandC:
		return "Band C (Elevated Reserve)"
	case BandD:
		return "Band D (High Reserve)"
	case BandE:
		return "Band E (Maximum Reserve)"
	}
	return "Band " + string(b)
}

// AtLeast reports whether b is at or above the floor bracket.
func (b Bracket) AtLeast(floor Bracket) bool {
	return b >= floor
}

// =============================================================================
// BRACKET RESULT - Classification output
// =============================================================================

// BracketResult is the complete classification for a profile. Warnings are
// ordered and always include the human-review advisory.
type BracketResult struct {
	Bracket          Bracket
	Score            int
	UncertaintyScore float64
	Warnings         []string
}
