package reservation

import (
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/domain/reservation"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/testutil"
	"github.com/xiebiao/library/pkg/clock"
)

// 预约用例测试夹具
type fixture struct {
	books        *testutil.BookRepo
	loans        *testutil.LoanRepo
	members      *testutil.MemberRepo
	reservations *testutil.ReservationRepo
	fines        *testutil.FineRepo
	notifier     *testutil.Notifier
	clk          *clock.Fixed
	policy       config.CirculationConfig
	queue        *QueueService

	create *CreateReservationUseCase
	cancel *CancelReservationUseCase
	list   *ListReservationsUseCase
	expire *ExpireHoldsUseCase
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
	f.queue = NewQueueService(f.reservations, f.books, f.notifier, f.clk)

	f.create = NewCreateReservationUseCase(f.reservations, f.books, f.members, f.loans, f.fines, tx, f.policy, f.clk)
	f.cancel = NewCancelReservationUseCase(f.reservations, f.books, f.queue, tx)
	f.list = NewListReservationsUseCase(f.reservations, f.books, f.queue)
	f.expire = NewExpireHoldsUseCase(f.reservations, f.books, f.notifier, tx, f.policy, f.clk)
	return f
}

// seedMember 预置一名Active读者
func (f *fixture) seedMember(email string) *member.Member {
	return f.members.AddMember(&member.Member{
		Email:          email,
		Status:         member.StatusActive,
		DateRegistered: f.clk.Now(),
	})
}

// seedBook 预置书目,副本可选
func (f *fixture) seedBook(itemStatuses ...book.ItemStatus) *book.Book {
	b := f.books.AddBook(&book.Book{Title: "演绎与归纳", ISBN: "9787100000001"})
	for i, status := range itemStatuses {
		f.books.AddItem(&book.BookItem{
			Barcode: b.ISBN + "-" + string(rune('A'+i)),
			BookID:  b.ID,
			Status:  status,
		})
	}
	return b
}

// seedHold 预置一条已留书的预约(副本一并置为Reserved)
func (f *fixture) seedHold(b *book.Book, memberID uint, fulfilledAt time.Time) *reservation.Reservation {
	r := reservation.NewReservation(b.ID, memberID, fulfilledAt.Add(-24*time.Hour))
	r.Status = reservation.StatusFulfilled
	r.FulfilledAt = &fulfilledAt
	f.reservations.AddReservation(r)

	for _, item := range f.books.Items {
		if item.BookID == b.ID {
			item.Status = book.ItemReserved
			break
		}
	}
	return r
}
