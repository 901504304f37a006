package circulation

import (
	"time"

	appreservation "github.com/xiebiao/library/internal/application/reservation"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/domain/reservation"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/testutil"
	"github.com/xiebiao/library/pkg/clock"
)

// 流通用例测试夹具
//
// 内存仓储 + 固定时钟,策略使用与config.yaml一致的默认值
type fixture struct {
	books        *testutil.BookRepo
	loans        *testutil.LoanRepo
	members      *testutil.MemberRepo
	reservations *testutil.ReservationRepo
	fines        *testutil.FineRepo
	notifier     *testutil.Notifier
	clk          *clock.Fixed
	policy       config.CirculationConfig

	issue   *IssueLoanUseCase
	returns *ReturnLoanUseCase
	renew   *RenewLoanUseCase
	lost    *MarkLostUseCase
	list    *ListLoansUseCase
}

func newFixture() *fixture {
	f := &fixture{
		books:        testutil.NewBookRepo(),
		members:      testutil.NewMemberRepo(),
		reservations: testutil.NewReservationRepo(),
		fines:        testutil.NewFineRepo(),
		notifier:     &testutil.Notifier{},
		clk:          clock.NewFixed(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)),
		policy: config.CirculationConfig{
			LoanPeriodDays:    14,
			MaxRenewals:       2,
			DailyFineAmount:   1.0,
			MaxLoansPerMember: 5,
			MaxFineThreshold:  10.0,
			HoldExpiryDays:    3,
			DamageFineAmount:  50.0,
		},
	}
	f.loans = testutil.NewLoanRepo(f.books)

	tx := testutil.TxManager{}
	queue := appreservation.NewQueueService(f.reservations, f.books, f.notifier, f.clk)

	f.issue = NewIssueLoanUseCase(f.loans, f.books, f.members, f.reservations, f.fines, tx, f.policy, f.clk)
	f.returns = NewReturnLoanUseCase(f.loans, f.books, f.fines, queue, f.notifier, tx, f.policy, f.clk)
	f.renew = NewRenewLoanUseCase(f.loans, f.books, f.members, f.reservations, tx, f.policy, f.clk)
	f.lost = NewMarkLostUseCase(f.loans, f.books, f.fines, f.notifier, tx, f.clk)
	f.list = NewListLoansUseCase(f.loans, f.books, f.clk)
	return f
}

// seedMember 预置一名Active读者
func (f *fixture) seedMember() *member.Member {
	return f.members.AddMember(&member.Member{
		Email:          "reader@example.com",
		FullName:       "测试读者",
		Status:         member.StatusActive,
		DateRegistered: f.clk.Now(),
	})
}

// seedBookWithItem 预置一种书和一个副本
func (f *fixture) seedBookWithItem(barcode string, status book.ItemStatus) (*book.Book, *book.BookItem) {
	b := f.books.AddBook(&book.Book{Title: "Go程序设计语言", ISBN: "9787111558422"})
	item := f.books.AddItem(&book.BookItem{
		Barcode:      barcode,
		BookID:       b.ID,
		Status:       status,
		DateAcquired: f.clk.Today(),
	})
	return b, item
}

// seedActiveLoan 预置一条进行中的借阅(副本一并置为Borrowed)
func (f *fixture) seedActiveLoan(m *member.Member, barcode string) *loan.Loan {
	item := f.books.Items[barcode]
	item.Status = book.ItemBorrowed
	return f.loans.AddLoan(loan.NewLoan(barcode, m.ID, f.clk.Today(), f.policy.LoanPeriodDays))
}

// seedPendingReservation 预置一条排队中的预约
func (f *fixture) seedPendingReservation(bookID, memberID uint, at time.Time) *reservation.Reservation {
	return f.reservations.AddReservation(reservation.NewReservation(bookID, memberID, at))
}
