package fine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/fine"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/testutil"
)

// payFixture 缴纳罚款测试夹具
type payFixture struct {
	loans *testutil.LoanRepo
	fines *testutil.FineRepo
	pay   *PayFineUseCase
}

func newPayFixture() *payFixture {
	f := &payFixture{
		loans: testutil.NewLoanRepo(testutil.NewBookRepo()),
		fines: testutil.NewFineRepo(),
	}
	f.pay = NewPayFineUseCase(f.fines, f.loans, testutil.TxManager{})
	return f
}

// seedClosedLoanWithFine 预置一条已归还借阅和对应罚款
func (f *payFixture) seedClosedLoanWithFine(amount float64) *fine.Fine {
	issued := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	l := loan.NewLoan("BC-001", 1, issued, 14)
	if err := l.Close(issued.AddDate(0, 0, 20)); err != nil {
		panic(err)
	}
	f.loans.AddLoan(l)
	return f.fines.AddFine(fine.NewFine(l.ID, l.MemberID, amount, fine.ReasonOverdue))
}

func TestPayFine(t *testing.T) {
	ctx := context.Background()

	t.Run("图书未归还时拒收", func(t *testing.T) {
		f := newPayFixture()
		issued := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
		l := f.loans.AddLoan(loan.NewLoan("BC-001", 1, issued, 14))
		open := f.fines.AddFine(fine.NewFine(l.ID, l.MemberID, 6.0, fine.ReasonOverdue))

		// 逾期金额每天还在涨,先归还再结算
		_, err := f.pay.Execute(ctx, &PayFineRequest{FineID: open.ID, Amount: 6.0})
		assert.ErrorIs(t, err, fine.ErrLoanStillOpen("BC-001"))
		assert.Equal(t, 0.0, open.AmountPaid)
	})

	t.Run("部分缴纳", func(t *testing.T) {
		f := newPayFixture()
		accrued := f.seedClosedLoanWithFine(6.0)

		resp, err := f.pay.Execute(ctx, &PayFineRequest{FineID: accrued.ID, Amount: 2.5})
		require.NoError(t, err)

		assert.Equal(t, string(fine.StatusPartial), resp.Status)
		assert.Equal(t, 2.5, resp.AmountPaid)
		assert.Equal(t, 3.5, resp.Remaining)
	})

	t.Run("缴足后结清", func(t *testing.T) {
		f := newPayFixture()
		accrued := f.seedClosedLoanWithFine(6.0)

		_, err := f.pay.Execute(ctx, &PayFineRequest{FineID: accrued.ID, Amount: 2.5})
		require.NoError(t, err)

		resp, err := f.pay.Execute(ctx, &PayFineRequest{FineID: accrued.ID, Amount: 3.5})
		require.NoError(t, err)

		assert.Equal(t, string(fine.StatusPaid), resp.Status)
		assert.Equal(t, 0.0, resp.Remaining)
	})

	t.Run("超额缴纳被拒", func(t *testing.T) {
		f := newPayFixture()
		accrued := f.seedClosedLoanWithFine(6.0)

		_, err := f.pay.Execute(ctx, &PayFineRequest{FineID: accrued.ID, Amount: 10.0})
		assert.ErrorIs(t, err, fine.ErrPaymentExceedsBalance(6.0))
	})

	t.Run("金额必须为正", func(t *testing.T) {
		f := newPayFixture()
		accrued := f.seedClosedLoanWithFine(6.0)

		_, err := f.pay.Execute(ctx, &PayFineRequest{FineID: accrued.ID, Amount: 0})
		assert.ErrorIs(t, err, fine.ErrInvalidPayment)
	})

	t.Run("已结清的罚款不可再缴", func(t *testing.T) {
		f := newPayFixture()
		accrued := f.seedClosedLoanWithFine(6.0)

		_, err := f.pay.Execute(ctx, &PayFineRequest{FineID: accrued.ID, Amount: 6.0})
		require.NoError(t, err)

		_, err = f.pay.Execute(ctx, &PayFineRequest{FineID: accrued.ID, Amount: 1.0})
		assert.ErrorIs(t, err, fine.ErrAlreadyPaid)
	})

	t.Run("罚款不存在", func(t *testing.T) {
		f := newPayFixture()

		_, err := f.pay.Execute(ctx, &PayFineRequest{FineID: 999, Amount: 1.0})
		assert.ErrorIs(t, err, fine.ErrFineNotFound)
	})
}
