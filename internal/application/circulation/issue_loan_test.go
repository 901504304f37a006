package circulation

import (
	"context"
	"fmt"
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

func TestIssueLoan(t *testing.T) {
	ctx := context.Background()

	t.Run("正常借出", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember()
		f.seedBookWithItem("BC-001", book.ItemAvailable)

		resp, err := f.issue.Execute(ctx, IssueLoanRequest{MemberID: m.ID, ItemBarcode: "BC-001"})
		require.NoError(t, err)

		assert.Equal(t, "BC-001", resp.Barcode)
		assert.Equal(t, "2024-03-01", resp.IssueDate)
		// 到期日 = 今天 + 默认借期14天
		assert.Equal(t, "2024-03-15", resp.DueDate)
		assert.Equal(t, book.ItemBorrowed, f.books.Items["BC-001"].Status)

		l, err := f.loans.FindByID(ctx, resp.LoanID)
		require.NoError(t, err)
		assert.True(t, l.IsActive())
	})

	t.Run("指定借期", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember()
		f.seedBookWithItem("BC-001", book.ItemAvailable)

		resp, err := f.issue.Execute(ctx, IssueLoanRequest{MemberID: m.ID, ItemBarcode: "BC-001", PeriodDays: 7})
		require.NoError(t, err)
		assert.Equal(t, "2024-03-08", resp.DueDate)
	})

	t.Run("读者不存在", func(t *testing.T) {
		f := newFixture()
		f.seedBookWithItem("BC-001", book.ItemAvailable)

		_, err := f.issue.Execute(ctx, IssueLoanRequest{MemberID: 999, ItemBarcode: "BC-001"})
		assert.ErrorIs(t, err, member.ErrMemberNotFound)
	})

	t.Run("账户冻结不可借", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember()
		m.Status = member.StatusBlocked
		f.seedBookWithItem("BC-001", book.ItemAvailable)

		_, err := f.issue.Execute(ctx, IssueLoanRequest{MemberID: m.ID, ItemBarcode: "BC-001"})
		assert.ErrorIs(t, err, member.ErrMemberNotActive(member.StatusBlocked))
		// 副本未被动过
		assert.Equal(t, book.ItemAvailable, f.books.Items["BC-001"].Status)
	})

	t.Run("在借数量达到上限", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember()
		b := f.books.AddBook(&book.Book{Title: "多副本书", ISBN: "9780000000001"})
		for i := 0; i < f.policy.MaxLoansPerMember; i++ {
			barcode := fmt.Sprintf("BC-%03d", i)
			f.books.AddItem(&book.BookItem{Barcode: barcode, BookID: b.ID, Status: book.ItemBorrowed})
			f.loans.AddLoan(loan.NewLoan(barcode, m.ID, f.clk.Today(), 14))
		}
		f.books.AddItem(&book.BookItem{Barcode: "BC-NEW", BookID: b.ID, Status: book.ItemAvailable})

		_, err := f.issue.Execute(ctx, IssueLoanRequest{MemberID: m.ID, ItemBarcode: "BC-NEW"})
		assert.ErrorIs(t, err, loan.ErrLoanLimitExceeded(f.policy.MaxLoansPerMember))
	})

	t.Run("欠费达到阈值", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember()
		f.seedBookWithItem("BC-001", book.ItemAvailable)
		f.fines.AddFine(fine.NewFine(1, m.ID, 10.0, fine.ReasonOverdue))

		_, err := f.issue.Execute(ctx, IssueLoanRequest{MemberID: m.ID, ItemBarcode: "BC-001"})
		assert.ErrorIs(t, err, fine.ErrOutstandingFines(10.0, 10.0))
	})

	t.Run("缴清罚款后恢复借阅资格", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember()
		f.seedBookWithItem("BC-001", book.ItemAvailable)
		blocked := f.fines.AddFine(fine.NewFine(1, m.ID, 10.0, fine.ReasonOverdue))

		_, err := f.issue.Execute(ctx, IssueLoanRequest{MemberID: m.ID, ItemBarcode: "BC-001"})
		require.Error(t, err)

		require.NoError(t, blocked.Pay(10.0))

		_, err = f.issue.Execute(ctx, IssueLoanRequest{MemberID: m.ID, ItemBarcode: "BC-001"})
		assert.NoError(t, err)
	})

	t.Run("副本不存在", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember()

		_, err := f.issue.Execute(ctx, IssueLoanRequest{MemberID: m.ID, ItemBarcode: "BC-404"})
		assert.ErrorIs(t, err, book.ErrItemNotFound)
	})

	t.Run("已借出的副本不可再借", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember()
		f.seedBookWithItem("BC-001", book.ItemBorrowed)

		_, err := f.issue.Execute(ctx, IssueLoanRequest{MemberID: m.ID, ItemBarcode: "BC-001"})
		assert.ErrorIs(t, err, apperrors.New(apperrors.ErrCodeItemNotAvailable, ""))
	})

	t.Run("为他人保留的书不可借", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember()
		other := f.members.AddMember(&member.Member{Email: "other@example.com", Status: member.StatusActive})
		b, _ := f.seedBookWithItem("BC-001", book.ItemReserved)

		held := reservation.NewReservation(b.ID, other.ID, f.clk.Now().Add(-time.Hour))
		require.NoError(t, held.Fulfill(f.clk.Now()))
		f.reservations.AddReservation(held)

		_, err := f.issue.Execute(ctx, IssueLoanRequest{MemberID: m.ID, ItemBarcode: "BC-001"})
		assert.ErrorIs(t, err, apperrors.New(apperrors.ErrCodeReservedForOther, ""))
		// 留书状态不受影响
		assert.Equal(t, reservation.StatusFulfilled, held.Status)
	})

	t.Run("取走为本人保留的书", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember()
		b, _ := f.seedBookWithItem("BC-001", book.ItemReserved)

		held := reservation.NewReservation(b.ID, m.ID, f.clk.Now().Add(-time.Hour))
		require.NoError(t, held.Fulfill(f.clk.Now()))
		f.reservations.AddReservation(held)

		resp, err := f.issue.Execute(ctx, IssueLoanRequest{MemberID: m.ID, ItemBarcode: "BC-001"})
		require.NoError(t, err)

		// 预约完成,副本借出
		assert.Equal(t, reservation.StatusCompleted, held.Status)
		assert.Equal(t, book.ItemBorrowed, f.books.Items["BC-001"].Status)
		assert.NotZero(t, resp.LoanID)
	})
}
