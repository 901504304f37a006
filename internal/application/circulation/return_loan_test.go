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
)

func TestReturnLoan(t *testing.T) {
	ctx := context.Background()

	t.Run("无人排队时回架", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember()
		f.seedBookWithItem("BC-001", book.ItemAvailable)
		l := f.seedActiveLoan(m, "BC-001")

		resp, err := f.returns.Execute(ctx, ReturnLoanRequest{ItemBarcode: "BC-001"})
		require.NoError(t, err)

		assert.Equal(t, l.ID, resp.LoanID)
		assert.Equal(t, "2024-03-01", resp.ReturnDate)
		assert.Equal(t, string(book.ItemAvailable), resp.ItemStatus)
		assert.Zero(t, resp.FineID)
		assert.Equal(t, loan.StatusReturned, l.Status)
	})

	t.Run("有人排队时留给队首", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember()
		waiting := f.members.AddMember(&member.Member{Email: "waiting@example.com", Status: member.StatusActive})
		b, _ := f.seedBookWithItem("BC-001", book.ItemAvailable)
		f.seedActiveLoan(m, "BC-001")
		r := f.seedPendingReservation(b.ID, waiting.ID, f.clk.Now().Add(-time.Hour))

		resp, err := f.returns.Execute(ctx, ReturnLoanRequest{ItemBarcode: "BC-001"})
		require.NoError(t, err)

		// 副本转为保留,队首晋升并收到取书通知
		assert.Equal(t, string(book.ItemReserved), resp.ItemStatus)
		assert.Equal(t, reservation.StatusFulfilled, r.Status)
		require.NotNil(t, r.FulfilledAt)
		require.Len(t, f.notifier.HoldReadyCalls, 1)
		assert.Equal(t, waiting.ID, f.notifier.HoldReadyCalls[0].MemberID)
	})

	t.Run("队列按先来后到交接", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember()
		first := f.members.AddMember(&member.Member{Email: "first@example.com", Status: member.StatusActive})
		second := f.members.AddMember(&member.Member{Email: "second@example.com", Status: member.StatusActive})
		b, _ := f.seedBookWithItem("BC-001", book.ItemAvailable)
		f.seedActiveLoan(m, "BC-001")
		r1 := f.seedPendingReservation(b.ID, first.ID, f.clk.Now().Add(-2*time.Hour))
		r2 := f.seedPendingReservation(b.ID, second.ID, f.clk.Now().Add(-time.Hour))

		_, err := f.returns.Execute(ctx, ReturnLoanRequest{ItemBarcode: "BC-001"})
		require.NoError(t, err)

		assert.Equal(t, reservation.StatusFulfilled, r1.Status)
		assert.Equal(t, reservation.StatusPending, r2.Status)
	})

	t.Run("损坏归还下架并开定额罚款", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember()
		waiting := f.members.AddMember(&member.Member{Email: "waiting@example.com", Status: member.StatusActive})
		b, _ := f.seedBookWithItem("BC-001", book.ItemAvailable)
		l := f.seedActiveLoan(m, "BC-001")
		r := f.seedPendingReservation(b.ID, waiting.ID, f.clk.Now().Add(-time.Hour))

		resp, err := f.returns.Execute(ctx, ReturnLoanRequest{ItemBarcode: "BC-001", Damaged: true})
		require.NoError(t, err)

		assert.Equal(t, string(book.ItemDamaged), resp.ItemStatus)
		require.NotZero(t, resp.FineID)

		damage, err := f.fines.FindByID(ctx, resp.FineID)
		require.NoError(t, err)
		assert.Equal(t, fine.ReasonDamaged, damage.Reason)
		assert.Equal(t, 50.0, damage.Amount)
		assert.Equal(t, l.MemberID, damage.MemberID)

		// 损坏的书不能留给排队读者,队列不动
		assert.Equal(t, reservation.StatusPending, r.Status)
		assert.Empty(t, f.notifier.HoldReadyCalls)

		// 开单即通知读者
		require.Len(t, f.notifier.FineCalls, 1)
		assert.Equal(t, l.MemberID, f.notifier.FineCalls[0].MemberID)
		assert.Equal(t, 50.0, f.notifier.FineCalls[0].Amount)
		assert.Equal(t, string(fine.ReasonDamaged), f.notifier.FineCalls[0].Reason)
	})

	t.Run("归还不计算逾期罚款", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember()
		f.seedBookWithItem("BC-001", book.ItemAvailable)
		l := f.seedActiveLoan(m, "BC-001")

		// 过期20天后归还
		f.clk.Advance(34 * 24 * time.Hour)

		resp, err := f.returns.Execute(ctx, ReturnLoanRequest{ItemBarcode: "BC-001"})
		require.NoError(t, err)

		// 逾期金额由每日扫描计提,归还动作本身不开罚款
		assert.Zero(t, resp.FineID)
		assert.Empty(t, f.fines.Fines)
		assert.Equal(t, loan.StatusReturned, l.Status)
	})

	t.Run("没有进行中的借阅", func(t *testing.T) {
		f := newFixture()
		f.seedBookWithItem("BC-001", book.ItemAvailable)

		_, err := f.returns.Execute(ctx, ReturnLoanRequest{ItemBarcode: "BC-001"})
		assert.ErrorIs(t, err, loan.ErrNoActiveLoan)
	})
}
