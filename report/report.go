/*
Package report assembles human-readable estimate reports.

PURPOSE:
  Formats the structured outputs of the accrual calculator and the bracket
  classifier into markdown text for display surfaces. Pure string assembly
  over the engines' result objects; no calculation logic lives here. Every
  report ends with the mandatory human-review disclaimer.

SEE ALSO:
  - accrual: AccrualResult input contract
  - bracket: BracketResult input contract
*/
package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gcc-insurance-intelligence-lab/ifrs-claim-accrual-estimator/accrual"
	"github.com/gcc-insurance-intelligence-lab/ifrs-claim-accrual-estimator/bracket"
)

// Disclaimer is appended to every report. The tool emits illustrative
// figures and symbolic brackets only; it never issues reserve amounts.
const Disclaimer = `---

**MANDATORY HUMAN REVIEW**

This is a simplified demonstration using synthetic data and illustrative
assumptions. Outputs are advisory only and require review by qualified
finance/actuarial staff. Not for use in actual reserving, pricing, claim
approval, or financial reporting. Human-in-the-loop is mandatory for all
financial decisions.`

// =============================================================================
// ACCRUAL REPORT
// =============================================================================

// Accrual renders the full accrual breakdown for one claim.
func Accrual(claimID string, claim accrual.ClaimFinancials, res accrual.AccrualResult) string {
	var b strings.Builder

	b.WriteString("## Claim Accrual Estimate\n\n")
	fmt.Fprintf(&b, "**Claim ID:** %s\n", claimID)
	fmt.Fprintf(&b, "**Claim Type:** %s\n", claim.ClaimType)
	fmt.Fprintf(&b, "**Development Period:** %d months (year %d)\n", claim.MonthsSinceOccurrence, res.DevelopmentYear)
	fmt.Fprintf(&b, "**Time to Settlement:** %d months\n\n", claim.MonthsToSettlement)

	b.WriteString("### Key Estimates\n\n")
	b.WriteString("| Component | Amount |\n")
	b.WriteString("|-----------|--------|\n")
	fmt.Fprintf(&b, "| Incurred Loss (Reported) | %s |\n", money(claim.IncurredLoss))
	fmt.Fprintf(&b, "| Paid Loss | %s |\n", money(claim.PaidLoss))
	fmt.Fprintf(&b, "| Ultimate Loss Estimate | %s |\n", money(res.UltimateLoss))
	fmt.Fprintf(&b, "| Outstanding Claims | %s |\n", money(res.OutstandingClaims))
	fmt.Fprintf(&b, "| Risk Adjustment (%s) | %s |\n", claim.RiskLevel, money(res.RiskAdjustment))
	fmt.Fprintf(&b, "| Discount (@ %s%%) | (%s) |\n", percent(claim.AnnualDiscountRate), money(res.DiscountAmount))
	fmt.Fprintf(&b, "| Present Value - Outstanding | %s |\n", money(res.DiscountedOutstanding))
	fmt.Fprintf(&b, "| **Total Accrual Required** | **%s** |\n\n", money(res.TotalAccrual))

	b.WriteString("### Calculation Notes\n\n")
	fmt.Fprintf(&b, "1. Ultimate loss projected with the chain-ladder method using the %s development pattern (factor %s)\n",
		claim.ClaimType, res.AppliedFactor.String())
	b.WriteString("2. Outstanding claims: ultimate loss minus paid losses, floored at zero\n")
	fmt.Fprintf(&b, "3. Risk adjustment applied for %s uncertainty\n", strings.ToLower(string(claim.RiskLevel)))
	fmt.Fprintf(&b, "4. Discounting applied at %s%% annually over %d months\n", percent(claim.AnnualDiscountRate), claim.MonthsToSettlement)
	b.WriteString("5. Total accrual: present value of outstanding claims plus risk adjustment\n\n")

	b.WriteString(Disclaimer)
	return b.String()
}

// =============================================================================
// BRACKET REPORT
// =============================================================================

// Bracket renders the classification explanation for one profile.
func Bracket(profile bracket.ClaimProfile, res bracket.BracketResult) string {
	var b strings.Builder

	b.WriteString("## Accrual Bracket Estimation\n\n")
	fmt.Fprintf(&b, "**Claim Stage:** %s\n", profile.ClaimStage)
	fmt.Fprintf(&b, "**Severity Bracket:** %s\n", profile.SeverityBracket)
	fmt.Fprintf(&b, "**Investigation Duration:** %d months\n", profile.InvestigationDurationMonths)
	fmt.Fprintf(&b, "**IBNR Flag:** %s\n\n", yesNo(profile.IsIBNR))

	fmt.Fprintf(&b, "**Estimated Accrual Bracket:** %s\n", res.Bracket.Label())
	fmt.Fprintf(&b, "**Accrual Level Score:** %d\n", res.Score)
	fmt.Fprintf(&b, "**Uncertainty Score:** %.2f\n\n", res.UncertaintyScore)

	b.WriteString("### Factors Considered\n\n")
	fmt.Fprintf(&b, "- **Claim Stage (%s)**: %s\n", profile.ClaimStage, stageNote(profile.ClaimStage))
	fmt.Fprintf(&b, "- **Severity (%s)**: %s\n", profile.SeverityBracket, severityNote(profile.SeverityBracket))
	fmt.Fprintf(&b, "- **Investigation Duration (%d months)**: %s\n", profile.InvestigationDurationMonths, durationNote(profile.InvestigationDurationMonths))
	fmt.Fprintf(&b, "- **IBNR Status (%s)**: %s\n", yesNo(profile.IsIBNR), ibnrNote(profile.IsIBNR))

	if len(res.Warnings) > 0 {
		b.WriteString("\n### Warnings & Considerations\n\n")
		for _, w := range res.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	b.WriteString("\n")
	b.WriteString(Disclaimer)
	return b.String()
}

// =============================================================================
// FORMATTING HELPERS
// =============================================================================

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func percent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(1)
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func stageNote(s bracket.ClaimStage) string {
	switch s {
	case bracket.StageClosed:
		return "claim is closed, accrual should reflect final settlement"
	case bracket.StageSettlement:
		return "active settlement discussions, accrual near final amount"
	case bracket.StageInvestigation:
		return "investigation ongoing, accrual includes development potential"
	default:
		return "early stage, accrual includes significant development uncertainty"
	}
}

func severityNote(s bracket.Severity) string {
	switch s {
	case bracket.SeverityCatastrophic:
		return "catastrophic severity requires maximum reserve consideration"
	case bracket.SeverityHigh:
		return "high-severity claims require elevated reserve levels"
	case bracket.SeverityMedium:
		return "moderate severity with standard reserve approach"
	default:
		return "low severity with lower reserve requirements"
	}
}

func durationNote(months int) string {
	switch {
	case months > 6:
		return "extended investigation suggests complexity and higher uncertainty"
	case months >= 3:
		return "moderate investigation period indicates some complexity"
	default:
		return "standard investigation timeframe"
	}
}

func ibnrNote(isIBNR bool) string {
	if isIBNR {
		return "incurred but not reported, requires additional reserve margin"
	}
	return "reported claim with known details"
}
