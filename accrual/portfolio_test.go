package accrual_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcc-insurance-intelligence-lab/ifrs-claim-accrual-estimator/accrual"
)

// =============================================================================
// BATCH CALCULATION
// =============================================================================

func TestComputeBatch_PreservesInputOrder(t *testing.T) {
	// GIVEN: Three claims with distinct incurred losses
	// WHEN: Computing the batch concurrently
	// THEN: Item i corresponds to claim i

	calc := newCalc(t)

	claims := make([]accrual.ClaimFinancials, 3)
	for i := range claims {
		claims[i] = baseClaim()
		claims[i].IncurredLoss = d(float64(10000 * (i + 1)))
	}

	items := calc.ComputeBatch(context.Background(), claims)
	require.Len(t, items, 3)

	for i, item := range items {
		require.NoError(t, item.Err)
		assert.True(t, item.Claim.IncurredLoss.Equal(claims[i].IncurredLoss))
		// ultimate = incurred x 2.2 (year-2 Auto factor)
		assert.True(t, item.Result.UltimateLoss.Equal(claims[i].IncurredLoss.Mul(d(2.2))))
	}
}

func TestComputeBatch_RejectedClaimDoesNotFailBatch(t *testing.T) {
	calc := newCalc(t)

	good := baseClaim()
	bad := baseClaim()
	bad.IncurredLoss = d(-1)

	items := calc.ComputeBatch(context.Background(), []accrual.ClaimFinancials{good, bad, good})
	require.Len(t, items, 3)

	assert.NoError(t, items[0].Err)
	assert.ErrorIs(t, items[1].Err, accrual.ErrInvalidInput)
	assert.NoError(t, items[2].Err)
}

func TestComputeBatch_CancelledContext_MarksItems(t *testing.T) {
	calc := newCalc(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := calc.ComputeBatch(ctx, []accrual.ClaimFinancials{baseClaim(), baseClaim()})
	for _, item := range items {
		assert.ErrorIs(t, item.Err, context.Canceled)
	}
}

// =============================================================================
// PORTFOLIO SUMMARY
// =============================================================================

func TestSummarize_TotalsAcceptedClaimsOnly(t *testing.T) {
	// GIVEN: Two accepted claims and one rejected claim
	// THEN: Totals cover the accepted two; the rejection is counted

	calc := newCalc(t)

	a := baseClaim() // ultimate 110000, outstanding 95000, risk adj 11000
	b := baseClaim()
	b.IncurredLoss = d(10000) // ultimate 22000, outstanding 7000, risk adj 2200
	bad := baseClaim()
	bad.MonthsToSettlement = -1

	items := calc.ComputeBatch(context.Background(), []accrual.ClaimFinancials{a, b, bad})
	summary := accrual.Summarize(items)

	assert.Equal(t, 3, summary.ClaimCount)
	assert.Equal(t, 1, summary.RejectedCount)
	assert.True(t, summary.TotalIncurred.Equal(d(60000)), "incurred: %s", summary.TotalIncurred)
	assert.True(t, summary.TotalPaid.Equal(d(30000)), "paid: %s", summary.TotalPaid)
	assert.True(t, summary.TotalUltimate.Equal(d(132000)), "ultimate: %s", summary.TotalUltimate)
	assert.True(t, summary.TotalOutstanding.Equal(d(102000)), "outstanding: %s", summary.TotalOutstanding)
	assert.True(t, summary.TotalRiskAdjustment.Equal(d(13200)), "risk adjustment: %s", summary.TotalRiskAdjustment)

	// Accrual and discount totals close against the per-item results.
	wantAccrual := items[0].Result.TotalAccrual.Add(items[1].Result.TotalAccrual)
	assert.True(t, summary.TotalAccrual.Equal(wantAccrual))
	wantDiscount := items[0].Result.DiscountAmount.Add(items[1].Result.DiscountAmount)
	assert.True(t, summary.TotalDiscount.Equal(wantDiscount))
}

func TestSummarize_EmptyBatch(t *testing.T) {
	summary := accrual.Summarize(nil)

	assert.Equal(t, 0, summary.ClaimCount)
	assert.True(t, summary.TotalAccrual.IsZero())
}
