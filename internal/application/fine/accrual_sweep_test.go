package fine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/fine"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/testutil"
	"github.com/xiebiao/library/pkg/clock"
)

// 计提扫描测试夹具
type sweepFixture struct {
	loans *testutil.LoanRepo
	fines *testutil.FineRepo
	clk   *clock.Fixed
	sweep *AccrualSweepUseCase
}

func newSweepFixture() *sweepFixture {
	f := &sweepFixture{
		loans: testutil.NewLoanRepo(testutil.NewBookRepo()),
		fines: testutil.NewFineRepo(),
		clk:   clock.NewFixed(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)),
	}
	policy := config.CirculationConfig{
		LoanPeriodDays:  14,
		DailyFineAmount: 0.3,
	}
	f.sweep = NewAccrualSweepUseCase(f.loans, f.fines, testutil.TxManager{}, policy, f.clk)
	return f
}

// seedOverdueLoan 预置一条逾期days天的Active借阅
func (f *sweepFixture) seedOverdueLoan(memberID uint, days int) *loan.Loan {
	issued := f.clk.Today().AddDate(0, 0, -(14 + days))
	return f.loans.AddLoan(loan.NewLoan("BC-001", memberID, issued, 14))
}

func TestAccrualSweep(t *testing.T) {
	ctx := context.Background()

	t.Run("逾期借阅按天开单", func(t *testing.T) {
		f := newSweepFixture()
		l := f.seedOverdueLoan(1, 20)

		resp, err := f.sweep.Execute(ctx)
		require.NoError(t, err)

		assert.Equal(t, 1, resp.Scanned)
		assert.Equal(t, 1, resp.Created)
		assert.Zero(t, resp.Updated)

		// 20天 × 0.3元/天 = 6.0元
		accrued, err := f.fines.FindOverdueByLoan(ctx, l.ID)
		require.NoError(t, err)
		require.NotNil(t, accrued)
		assert.Equal(t, 6.0, accrued.Amount)
		assert.Equal(t, fine.ReasonOverdue, accrued.Reason)
		assert.Equal(t, fine.StatusUnpaid, accrued.Status)
	})

	t.Run("同一天重复执行幂等", func(t *testing.T) {
		f := newSweepFixture()
		f.seedOverdueLoan(1, 20)

		_, err := f.sweep.Execute(ctx)
		require.NoError(t, err)

		resp, err := f.sweep.Execute(ctx)
		require.NoError(t, err)

		assert.Equal(t, 1, resp.Scanned)
		assert.Zero(t, resp.Created)
		assert.Zero(t, resp.Updated)
		assert.Len(t, f.fines.Fines, 1)
	})

	t.Run("时间推进后金额重算", func(t *testing.T) {
		f := newSweepFixture()
		l := f.seedOverdueLoan(1, 20)

		_, err := f.sweep.Execute(ctx)
		require.NoError(t, err)

		f.clk.Advance(5 * 24 * time.Hour)

		resp, err := f.sweep.Execute(ctx)
		require.NoError(t, err)

		assert.Zero(t, resp.Created)
		assert.Equal(t, 1, resp.Updated)

		accrued, err := f.fines.FindOverdueByLoan(ctx, l.ID)
		require.NoError(t, err)
		// 25天 × 0.3元/天 = 7.5元
		assert.Equal(t, 7.5, accrued.Amount)
	})

	t.Run("缴清后继续逾期重新打开", func(t *testing.T) {
		f := newSweepFixture()
		l := f.seedOverdueLoan(1, 20)

		_, err := f.sweep.Execute(ctx)
		require.NoError(t, err)

		accrued, err := f.fines.FindOverdueByLoan(ctx, l.ID)
		require.NoError(t, err)
		require.NoError(t, accrued.Pay(6.0))
		require.Equal(t, fine.StatusPaid, accrued.Status)

		// 书还没还,又多欠了5天
		f.clk.Advance(5 * 24 * time.Hour)
		_, err = f.sweep.Execute(ctx)
		require.NoError(t, err)

		assert.Equal(t, fine.StatusPartial, accrued.Status)
		assert.Equal(t, 7.5, accrued.Amount)
		assert.Equal(t, 6.0, accrued.AmountPaid)
		assert.Equal(t, 1.5, accrued.Remaining())
	})

	t.Run("已归还的借阅不计提", func(t *testing.T) {
		f := newSweepFixture()
		l := f.seedOverdueLoan(1, 20)
		require.NoError(t, l.Close(f.clk.Today()))

		resp, err := f.sweep.Execute(ctx)
		require.NoError(t, err)

		assert.Zero(t, resp.Scanned)
		assert.Empty(t, f.fines.Fines)
	})

	t.Run("未逾期的借阅不计提", func(t *testing.T) {
		f := newSweepFixture()
		f.loans.AddLoan(loan.NewLoan("BC-002", 1, f.clk.Today(), 14))

		resp, err := f.sweep.Execute(ctx)
		require.NoError(t, err)

		assert.Zero(t, resp.Scanned)
	})
}
