package circulation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/member"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

func TestRenewLoan(t *testing.T) {
	ctx := context.Background()

	t.Run("读者本人续借", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember()
		f.seedBookWithItem("BC-001", book.ItemAvailable)
		l := f.seedActiveLoan(m, "BC-001")

		resp, err := f.renew.Execute(ctx, RenewLoanRequest{LoanID: l.ID, ActorID: m.ID})
		require.NoError(t, err)

		// 到期日顺延一个借期:3-15 + 14天 = 3-29
		assert.Equal(t, "2024-03-29", resp.DueDate)
		assert.Equal(t, 1, resp.RenewalCount)
	})

	t.Run("馆员代办续借", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember()
		f.seedBookWithItem("BC-001", book.ItemAvailable)
		l := f.seedActiveLoan(m, "BC-001")

		_, err := f.renew.Execute(ctx, RenewLoanRequest{LoanID: l.ID, ActorID: 777, IsStaff: true})
		assert.NoError(t, err)
	})

	t.Run("他人不可代为续借", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember()
		f.seedBookWithItem("BC-001", book.ItemAvailable)
		l := f.seedActiveLoan(m, "BC-001")

		_, err := f.renew.Execute(ctx, RenewLoanRequest{LoanID: l.ID, ActorID: m.ID + 1})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("已逾期不可续借", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember()
		f.seedBookWithItem("BC-001", book.ItemAvailable)
		l := f.seedActiveLoan(m, "BC-001")

		f.clk.Advance(15 * 24 * time.Hour)

		_, err := f.renew.Execute(ctx, RenewLoanRequest{LoanID: l.ID, ActorID: m.ID})
		assert.ErrorIs(t, err, loan.ErrOverdueCannotRenew)
	})

	t.Run("续借次数达到上限", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember()
		f.seedBookWithItem("BC-001", book.ItemAvailable)
		l := f.seedActiveLoan(m, "BC-001")
		l.RenewalCount = f.policy.MaxRenewals

		_, err := f.renew.Execute(ctx, RenewLoanRequest{LoanID: l.ID, ActorID: m.ID})
		assert.ErrorIs(t, err, loan.ErrRenewalLimitReached(f.policy.MaxRenewals))
	})

	t.Run("有人排队预约时不可续借", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember()
		waiting := f.members.AddMember(&member.Member{Email: "waiting@example.com", Status: member.StatusActive})
		b, _ := f.seedBookWithItem("BC-001", book.ItemAvailable)
		l := f.seedActiveLoan(m, "BC-001")
		f.seedPendingReservation(b.ID, waiting.ID, f.clk.Now())

		_, err := f.renew.Execute(ctx, RenewLoanRequest{LoanID: l.ID, ActorID: m.ID})
		assert.ErrorIs(t, err, loan.ErrReservedCannotRenew)
	})

	t.Run("账户冻结不可续借", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember()
		f.seedBookWithItem("BC-001", book.ItemAvailable)
		l := f.seedActiveLoan(m, "BC-001")
		m.Status = member.StatusBlocked

		_, err := f.renew.Execute(ctx, RenewLoanRequest{LoanID: l.ID, ActorID: m.ID})
		assert.ErrorIs(t, err, member.ErrMemberNotActive(member.StatusBlocked))
	})

	t.Run("馆员可为冻结账户代办续借", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember()
		f.seedBookWithItem("BC-001", book.ItemAvailable)
		l := f.seedActiveLoan(m, "BC-001")
		m.Status = member.StatusBlocked

		// 账户状态只限制读者自助操作,柜台人工办理不受限
		resp, err := f.renew.Execute(ctx, RenewLoanRequest{LoanID: l.ID, ActorID: 777, IsStaff: true})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.RenewalCount)
	})

	t.Run("已关闭的借阅不可续借", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember()
		f.seedBookWithItem("BC-001", book.ItemAvailable)
		l := f.seedActiveLoan(m, "BC-001")
		require.NoError(t, l.Close(f.clk.Today()))

		_, err := f.renew.Execute(ctx, RenewLoanRequest{LoanID: l.ID, ActorID: m.ID})
		assert.ErrorIs(t, err, loan.ErrLoanNotActive)
	})
}
