/*
portfolio.go - Batch calculation and portfolio summary

PURPOSE:
  Runs the accrual pipeline over a set of claims and aggregates totals.
  Calculations are pure functions over immutable inputs, so the batch
  fans out one goroutine per claim and gathers results in input order
  with no synchronization beyond the wait.

SEE ALSO:
  - calculator.go: Per-claim pipeline
*/
package accrual

import (
	"context"

	"github.com/shopspring/decimal"
)

// =============================================================================
// BATCH CALCULATION
// =============================================================================

// BatchItem pairs one claim with its result or rejection. Position in the
// batch output matches position in the input.
type BatchItem struct {
	Claim  ClaimFinancials
	Result AccrualResult
	Err    error
}

// ComputeBatch runs Compute over every claim concurrently. A rejected
// claim does not fail the batch; its item carries the error instead.
// A cancelled context marks remaining items with the context error.
func (c *Calculator) ComputeBatch(ctx context.Context, claims []ClaimFinancials) []BatchItem {
	items := make([]BatchItem, len(claims))

	done := make(chan int, len(claims))
	for i, claim := range claims {
		go func(i int, claim ClaimFinancials) {
			item := BatchItem{Claim: claim}
			if err := ctx.Err(); err != nil {
				item.Err = err
			} else {
				item.Result, item.Err = c.Compute(claim)
			}
			items[i] = item
			done <- i
		}(i, claim)
	}
	for range claims {
		<-done
	}
	return items
}

// =============================================================================
// PORTFOLIO SUMMARY
// =============================================================================

// PortfolioSummary aggregates a batch of accrual results. Rejected claims
// are counted but contribute nothing to the monetary totals.
type PortfolioSummary struct {
	ClaimCount    int
	RejectedCount int

	TotalIncurred       decimal.Decimal
	TotalPaid           decimal.Decimal
	TotalUltimate       decimal.Decimal
	TotalOutstanding    decimal.Decimal
	TotalRiskAdjustment decimal.Decimal
	TotalDiscount       decimal.Decimal
	TotalAccrual        decimal.Decimal
}

// Summarize folds batch items into portfolio totals.
func Summarize(items []BatchItem) PortfolioSummary {
	s := PortfolioSummary{
		TotalIncurred:       decimal.Zero,
		TotalPaid:           decimal.Zero,
		TotalUltimate:       decimal.Zero,
		TotalOutstanding:    decimal.Zero,
		TotalRiskAdjustment: decimal.Zero,
		TotalDiscount:       decimal.Zero,
		TotalAccrual:        decimal.Zero,
	}
	for _, item := range items {
		s.ClaimCount++
		if item.Err != nil {
			s.RejectedCount++
			continue
		}
		s.TotalIncurred = s.TotalIncurred.Add(item.Claim.IncurredLoss)
		s.TotalPaid = s.TotalPaid.Add(item.Claim.PaidLoss)
		s.TotalUltimate = s.TotalUltimate.Add(item.Result.UltimateLoss)
		s.TotalOutstanding = s.TotalOutstanding.Add(item.Result.OutstandingClaims)
		s.TotalRiskAdjustment = s.TotalRiskAdjustment.Add(item.Result.RiskAdjustment)
		s.TotalDiscount = s.TotalDiscount.Add(item.Result.DiscountAmount)
		s.TotalAccrual = s.TotalAccrual.Add(item.Result.TotalAccrual)
	}
	return s
}
