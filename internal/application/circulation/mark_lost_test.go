package circulation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/fine"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/domain/reservation"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

func TestMarkLost(t *testing.T) {
	ctx := context.Background()

	t.Run("挂失关闭借阅并开赔偿罚款", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember()
		f.seedBookWithItem("BC-001", book.ItemAvailable)
		l := f.seedActiveLoan(m, "BC-001")

		resp, err := f.lost.Execute(ctx, MarkLostRequest{LoanID: l.ID, ReplacementFee: 68.0})
		require.NoError(t, err)

		assert.Equal(t, loan.StatusLost, l.Status)
		require.NotNil(t, l.ReturnDate)
		assert.Equal(t, book.ItemLost, f.books.Items["BC-001"].Status)

		lost, err := f.fines.FindByID(ctx, resp.FineID)
		require.NoError(t, err)
		assert.Equal(t, fine.ReasonLostBook, lost.Reason)
		assert.Equal(t, 68.0, lost.Amount)

		// 开单即通知读者
		require.Len(t, f.notifier.FineCalls, 1)
		assert.Equal(t, m.ID, f.notifier.FineCalls[0].MemberID)
		assert.Equal(t, 68.0, f.notifier.FineCalls[0].Amount)
	})

	t.Run("挂失不做队列交接", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember()
		waiting := f.members.AddMember(&member.Member{Email: "waiting@example.com", Status: member.StatusActive})
		b, _ := f.seedBookWithItem("BC-001", book.ItemAvailable)
		l := f.seedActiveLoan(m, "BC-001")
		r := f.seedPendingReservation(b.ID, waiting.ID, f.clk.Now().Add(-time.Hour))

		_, err := f.lost.Execute(ctx, MarkLostRequest{LoanID: l.ID, ReplacementFee: 68.0})
		require.NoError(t, err)

		// 书已不在馆里,排队读者继续等其他副本
		assert.Equal(t, reservation.StatusPending, r.Status)
		assert.Empty(t, f.notifier.HoldReadyCalls)
	})

	t.Run("赔偿金额必须为正", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember()
		f.seedBookWithItem("BC-001", book.ItemAvailable)
		l := f.seedActiveLoan(m, "BC-001")

		_, err := f.lost.Execute(ctx, MarkLostRequest{LoanID: l.ID, ReplacementFee: 0})
		assert.ErrorIs(t, err, apperrors.New(apperrors.ErrCodeInvalidParams, ""))
	})

	t.Run("已关闭的借阅不可挂失", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember()
		f.seedBookWithItem("BC-001", book.ItemAvailable)
		l := f.seedActiveLoan(m, "BC-001")
		require.NoError(t, l.Close(f.clk.Today()))

		_, err := f.lost.Execute(ctx, MarkLostRequest{LoanID: l.ID, ReplacementFee: 68.0})
		assert.ErrorIs(t, err, loan.ErrLoanNotActive)
	})
}
