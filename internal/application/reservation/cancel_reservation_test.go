package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/reservation"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

func TestCancelReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("取消排队中的预约", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember("reader@example.com")
		b := f.seedBook(book.ItemBorrowed)
		r := f.reservations.AddReservation(reservation.NewReservation(b.ID, m.ID, f.clk.Now()))

		err := f.cancel.Execute(ctx, CancelReservationRequest{ReservationID: r.ID, MemberID: m.ID})
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusCanceled, r.Status)
	})

	t.Run("取消排队预约后后面的人前移", func(t *testing.T) {
		f := newFixture()
		first := f.seedMember("first@example.com")
		second := f.seedMember("second@example.com")
		b := f.seedBook(book.ItemBorrowed)

		r1 := f.reservations.AddReservation(reservation.NewReservation(b.ID, first.ID, f.clk.Now()))
		r2 := f.reservations.AddReservation(reservation.NewReservation(b.ID, second.ID, f.clk.Now().Add(time.Minute)))

		require.NoError(t, f.cancel.Execute(ctx, CancelReservationRequest{ReservationID: r1.ID, MemberID: first.ID}))

		pos, err := f.queue.PositionOf(ctx, r2)
		require.NoError(t, err)
		assert.Equal(t, 1, pos)
	})

	t.Run("取消已留书的预约时转留给下一位", func(t *testing.T) {
		f := newFixture()
		holder := f.seedMember("holder@example.com")
		waiting := f.seedMember("waiting@example.com")
		b := f.seedBook(book.ItemAvailable)
		hold := f.seedHold(b, holder.ID, f.clk.Now())
		next := f.reservations.AddReservation(reservation.NewReservation(b.ID, waiting.ID, f.clk.Now()))

		err := f.cancel.Execute(ctx, CancelReservationRequest{ReservationID: hold.ID, MemberID: holder.ID})
		require.NoError(t, err)

		assert.Equal(t, reservation.StatusCanceled, hold.Status)
		// 被占住的副本转留给队列下一位,不回架
		assert.Equal(t, reservation.StatusFulfilled, next.Status)
		item, _ := f.books.FindReservedItemByBook(ctx, b.ID)
		require.NotNil(t, item)
		require.Len(t, f.notifier.HoldReadyCalls, 1)
		assert.Equal(t, waiting.ID, f.notifier.HoldReadyCalls[0].MemberID)
	})

	t.Run("取消已留书的预约且无人排队时回架", func(t *testing.T) {
		f := newFixture()
		holder := f.seedMember("holder@example.com")
		b := f.seedBook(book.ItemAvailable)
		hold := f.seedHold(b, holder.ID, f.clk.Now())

		err := f.cancel.Execute(ctx, CancelReservationRequest{ReservationID: hold.ID, MemberID: holder.ID})
		require.NoError(t, err)

		item, _ := f.books.FindReservedItemByBook(ctx, b.ID)
		assert.Nil(t, item)
		for _, it := range f.books.Items {
			assert.Equal(t, book.ItemAvailable, it.Status)
		}
	})

	t.Run("不能取消他人的预约", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember("reader@example.com")
		other := f.seedMember("other@example.com")
		b := f.seedBook(book.ItemBorrowed)
		r := f.reservations.AddReservation(reservation.NewReservation(b.ID, m.ID, f.clk.Now()))

		err := f.cancel.Execute(ctx, CancelReservationRequest{ReservationID: r.ID, MemberID: other.ID})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		assert.Equal(t, reservation.StatusPending, r.Status)
	})

	t.Run("馆员可代读者取消", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember("reader@example.com")
		b := f.seedBook(book.ItemBorrowed)
		r := f.reservations.AddReservation(reservation.NewReservation(b.ID, m.ID, f.clk.Now()))

		err := f.cancel.Execute(ctx, CancelReservationRequest{ReservationID: r.ID, MemberID: 777, IsStaff: true})
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusCanceled, r.Status)
	})

	t.Run("已关闭的预约不可再取消", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember("reader@example.com")
		b := f.seedBook(book.ItemBorrowed)
		r := reservation.NewReservation(b.ID, m.ID, f.clk.Now())
		r.Status = reservation.StatusCanceled
		f.reservations.AddReservation(r)

		err := f.cancel.Execute(ctx, CancelReservationRequest{ReservationID: r.ID, MemberID: m.ID})
		assert.ErrorIs(t, err, reservation.ErrInvalidTransition)
	})
}
