package bracket_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcc-insurance-intelligence-lab/ifrs-claim-accrual-estimator/bracket"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newEngine() *bracket.Engine {
	return bracket.NewEngine(bracket.DefaultRuleSet())
}

func profile(stage bracket.ClaimStage, sev bracket.Severity, months int, ibnr bool) bracket.ClaimProfile {
	return bracket.ClaimProfile{
		ClaimStage:                  stage,
		SeverityBracket:             sev,
		InvestigationDurationMonths: months,
		IsIBNR:                      ibnr,
	}
}

// =============================================================================
// BASE SCORING
// =============================================================================

func TestScore_AttributeContributions(t *testing.T) {
	rules := bracket.DefaultRuleSet()

	cases := []struct {
		name    string
		profile bracket.ClaimProfile
		want    int
	}{
		{"all minimums", profile(bracket.StageReported, bracket.SeverityLow, 0, false), 0},
		{"stage investigation", profile(bracket.StageInvestigation, bracket.SeverityLow, 0, false), 1},
		{"stage settlement", profile(bracket.StageSettlement, bracket.SeverityLow, 0, false), 2},
		{"closed scores zero", profile(bracket.StageClosed, bracket.SeverityLow, 0, false), 0},
		{"medium severity", profile(bracket.StageReported, bracket.SeverityMedium, 0, false), 1},
		{"catastrophic severity", profile(bracket.StageReported, bracket.SeverityCatastrophic, 0, false), 4},
		{"duration boundary 2 months", profile(bracket.StageReported, bracket.SeverityLow, 2, false), 0},
		{"duration boundary 3 months", profile(bracket.StageReported, bracket.SeverityLow, 3, false), 1},
		{"duration boundary 6 months", profile(bracket.StageReported, bracket.SeverityLow, 6, false), 1},
		{"duration boundary 7 months", profile(bracket.StageReported, bracket.SeverityLow, 7, false), 2},
		{"ibnr adds two", profile(bracket.StageReported, bracket.SeverityLow, 0, true), 2},
		{"compounding factors", profile(bracket.StageInvestigation, bracket.SeverityMedium, 4, false), 3},
		{"all maximums", profile(bracket.StageSettlement, bracket.SeverityCatastrophic, 12, true), 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, rules.Score(tc.profile))
		})
	}
}

func TestMaxScore_SumsAttributeMaxima(t *testing.T) {
	assert.Equal(t, 10, bracket.DefaultRuleSet().MaxScore())
}

// =============================================================================
// THRESHOLDS
// =============================================================================

func TestBracketFor_Thresholds(t *testing.T) {
	rules := bracket.DefaultRuleSet()

	cases := []struct {
		score int
		want  bracket.Bracket
	}{
		{0, bracket.BandA},
		{1, bracket.BandA},
		{2, bracket.BandB},
		{3, bracket.BandB},
		{4, bracket.BandC},
		{5, bracket.BandC},
		{6, bracket.BandD},
		{7, bracket.BandD},
		{8, bracket.BandE},
		{10, bracket.BandE},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, rules.BracketFor(tc.score), "score %d", tc.score)
	}
}

// =============================================================================
// OVERRIDES
// =============================================================================

func TestOverrideBracket_CatastrophicForcesAtLeastBandD(t *testing.T) {
	rules := bracket.DefaultRuleSet()
	cat := profile(bracket.StageReported, bracket.SeverityCatastrophic, 0, false)

	assert.Equal(t, bracket.BandD, rules.OverrideBracket(bracket.BandA, cat))
	assert.Equal(t, bracket.BandD, rules.OverrideBracket(bracket.BandC, cat))
	// A higher base bracket is never lowered.
	assert.Equal(t, bracket.BandE, rules.OverrideBracket(bracket.BandE, cat))
}

func TestOverrideBracket_IBNRHighSeverityForcesBandE(t *testing.T) {
	rules := bracket.DefaultRuleSet()

	high := profile(bracket.StageReported, bracket.SeverityHigh, 0, true)
	assert.Equal(t, bracket.BandE, rules.OverrideBracket(bracket.BandB, high))

	cat := profile(bracket.StageReported, bracket.SeverityCatastrophic, 0, true)
	assert.Equal(t, bracket.BandE, rules.OverrideBracket(bracket.BandD, cat))

	// IBNR at lower severity does not trigger the override.
	medium := profile(bracket.StageReported, bracket.SeverityMedium, 0, true)
	assert.Equal(t, bracket.BandB, rules.OverrideBracket(bracket.BandB, medium))
}

// =============================================================================
// CLASSIFICATION SCENARIOS
// =============================================================================

func TestClassify_InvestigationMedium_BandB(t *testing.T) {
	// GIVEN: Investigation + medium severity + 4 months + no IBNR
	// THEN: score = 1+1+1+0 = 3 -> Band B

	res, err := newEngine().Classify(profile(bracket.StageInvestigation, bracket.SeverityMedium, 4, false))
	require.NoError(t, err)

	assert.Equal(t, 3, res.Score)
	assert.Equal(t, bracket.BandB, res.Bracket)
}

func TestClassify_ReportedLow_BandA_ZeroUncertainty(t *testing.T) {
	// GIVEN: Reported + low severity + 1 month + no IBNR
	// THEN: score 0 -> Band A, uncertainty 0

	res, err := newEngine().Classify(profile(bracket.StageReported, bracket.SeverityLow, 1, false))
	require.NoError(t, err)

	assert.Equal(t, 0, res.Score)
	assert.Equal(t, bracket.BandA, res.Bracket)
	assert.Equal(t, 0.0, res.UncertaintyScore)
}

func TestClassify_CatastrophicAlwaysAtLeastBandD(t *testing.T) {
	engine := newEngine()

	for _, stage := range bracket.ClaimStages() {
		for _, months := range []int{0, 4, 12} {
			res, err := engine.Classify(profile(stage, bracket.SeverityCatastrophic, months, false))
			require.NoError(t, err)
			assert.True(t, res.Bracket.AtLeast(bracket.BandD),
				"stage=%s months=%d got %s", stage, months, res.Bracket)
		}
	}
}

func TestClassify_IBNRHighOrCatastrophic_AlwaysBandE(t *testing.T) {
	engine := newEngine()

	for _, sev := range []bracket.Severity{bracket.SeverityHigh, bracket.SeverityCatastrophic} {
		for _, stage := range bracket.ClaimStages() {
			res, err := engine.Classify(profile(stage, sev, 0, true))
			require.NoError(t, err)
			assert.Equal(t, bracket.BandE, res.Bracket, "stage=%s severity=%s", stage, sev)
		}
	}
}

func TestClassify_Deterministic(t *testing.T) {
	// Identical input always yields identical output.
	engine := newEngine()
	p := profile(bracket.StageInvestigation, bracket.SeverityHigh, 8, true)

	first, err := engine.Classify(p)
	require.NoError(t, err)
	second, err := engine.Classify(p)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// =============================================================================
// UNCERTAINTY
// =============================================================================

func TestClassify_UncertaintyWithinRange(t *testing.T) {
	engine := newEngine()

	for _, stage := range bracket.ClaimStages() {
		for _, sev := range bracket.Severities() {
			for _, ibnr := range []bool{false, true} {
				res, err := engine.Classify(profile(stage, sev, 9, ibnr))
				require.NoError(t, err)
				assert.GreaterOrEqual(t, res.UncertaintyScore, 0.0)
				assert.LessOrEqual(t, res.UncertaintyScore, 1.0)
			}
		}
	}
}

func TestClassify_IBNRRaisesUncertaintyFloor(t *testing.T) {
	// GIVEN: A low-scoring IBNR profile
	// THEN: Uncertainty is at least 0.6 despite the low score

	res, err := newEngine().Classify(profile(bracket.StageReported, bracket.SeverityLow, 0, true))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Score) // ibnr points only
	assert.GreaterOrEqual(t, res.UncertaintyScore, 0.6)
}

func TestClassify_HighScoreAboveIBNRFloor(t *testing.T) {
	// Score 8 of 10 -> 0.8, above the floor; the floor must not cap it.
	res, err := newEngine().Classify(profile(bracket.StageSettlement, bracket.SeverityCatastrophic, 0, true))
	require.NoError(t, err)

	assert.Equal(t, 8, res.Score)
	assert.InDelta(t, 0.8, res.UncertaintyScore, 1e-9)
}

// =============================================================================
// WARNINGS
// =============================================================================

func TestClassify_HumanReviewAdvisoryAlwaysFirst(t *testing.T) {
	engine := newEngine()

	res, err := engine.Classify(profile(bracket.StageReported, bracket.SeverityLow, 0, false))
	require.NoError(t, err)
	require.NotEmpty(t, res.Warnings)
	assert.Equal(t, bracket.WarnHumanReview, res.Warnings[0])
	assert.Len(t, res.Warnings, 1)
}

func TestClassify_AllApplicableWarningsInOrder(t *testing.T) {
	// GIVEN: IBNR + catastrophic + 8-month investigation
	// THEN: Every applicable warning is present, in fixed order

	res, err := newEngine().Classify(profile(bracket.StageInvestigation, bracket.SeverityCatastrophic, 8, true))
	require.NoError(t, err)

	assert.Equal(t, []string{
		bracket.WarnHumanReview,
		bracket.WarnIBNR,
		bracket.WarnCatastrophic,
		bracket.WarnExtendedInvestigation,
	}, res.Warnings)
}

func TestClassify_ExtendedInvestigationBoundary(t *testing.T) {
	engine := newEngine()

	at6, err := engine.Classify(profile(bracket.StageReported, bracket.SeverityLow, 6, false))
	require.NoError(t, err)
	assert.NotContains(t, at6.Warnings, bracket.WarnExtendedInvestigation)

	at7, err := engine.Classify(profile(bracket.StageReported, bracket.SeverityLow, 7, false))
	require.NoError(t, err)
	assert.Contains(t, at7.Warnings, bracket.WarnExtendedInvestigation)
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestClassify_Validation(t *testing.T) {
	engine := newEngine()

	cases := []struct {
		name    string
		profile bracket.ClaimProfile
	}{
		{"negative duration", profile(bracket.StageReported, bracket.SeverityLow, -1, false)},
		{"unknown stage", profile("Litigation", bracket.SeverityLow, 0, false)},
		{"unknown severity", profile(bracket.StageReported, "Severe", 0, false)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := engine.Classify(tc.profile)

			assert.ErrorIs(t, err, bracket.ErrInvalidInput)
			assert.True(t, bracket.IsClientError(err))
			var profileErr *bracket.ProfileError
			assert.ErrorAs(t, err, &profileErr)
		})
	}
}

// =============================================================================
// RULE SET CONSTRUCTION
// =============================================================================

func TestNewRuleSet_RejectsMissingStage(t *testing.T) {
	rs := *bracket.DefaultRuleSet()
	delete(rs.StagePoints, bracket.StageClosed)

	_, err := bracket.NewRuleSet(rs)
	assert.ErrorIs(t, err, bracket.ErrInvalidInput)
}

func TestNewRuleSet_RejectsNonAscendingThresholds(t *testing.T) {
	rs := *bracket.DefaultRuleSet()
	rs.Thresholds = []bracket.Threshold{
		{UpToScore: 5, Bracket: bracket.BandA},
		{UpToScore: 3, Bracket: bracket.BandB},
		{UpToScore: -1, Bracket: bracket.BandE},
	}

	_, err := bracket.NewRuleSet(rs)
	assert.ErrorIs(t, err, bracket.ErrInvalidInput)
}

func TestNewRuleSet_RejectsClosedFinalThreshold(t *testing.T) {
	rs := *bracket.DefaultRuleSet()
	rs.Thresholds = []bracket.Threshold{
		{UpToScore: 5, Bracket: bracket.BandA},
		{UpToScore: 9, Bracket: bracket.BandB},
	}

	_, err := bracket.NewRuleSet(rs)
	assert.ErrorIs(t, err, bracket.ErrInvalidInput)
}

func TestNewRuleSet_RejectsOutOfRangeIBNRFloor(t *testing.T) {
	rs := *bracket.DefaultRuleSet()
	rs.IBNRUncertaintyFloor = 1.5

	_, err := bracket.NewRuleSet(rs)
	assert.ErrorIs(t, err, bracket.ErrInvalidInput)
}
