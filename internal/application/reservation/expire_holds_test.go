package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/reservation"
)

func TestExpireHolds(t *testing.T) {
	ctx := context.Background()

	t.Run("超过保留天数的留书过期释放", func(t *testing.T) {
		f := newFixture()
		holder := f.seedMember("holder@example.com")
		b := f.seedBook(book.ItemAvailable)
		hold := f.seedHold(b, holder.ID, f.clk.Now().AddDate(0, 0, -4))

		resp, err := f.expire.Execute(ctx)
		require.NoError(t, err)

		assert.Equal(t, 1, resp.Expired)
		assert.Equal(t, reservation.StatusExpired, hold.Status)

		// 副本直接回架
		for _, item := range f.books.Items {
			assert.Equal(t, book.ItemAvailable, item.Status)
		}

		require.Len(t, f.notifier.HoldExpiredCalls, 1)
		assert.Equal(t, holder.ID, f.notifier.HoldExpiredCalls[0].MemberID)
	})

	t.Run("过期释放不交接给队列下一位", func(t *testing.T) {
		f := newFixture()
		holder := f.seedMember("holder@example.com")
		waiting := f.seedMember("waiting@example.com")
		b := f.seedBook(book.ItemAvailable)
		f.seedHold(b, holder.ID, f.clk.Now().AddDate(0, 0, -4))
		next := f.reservations.AddReservation(reservation.NewReservation(b.ID, waiting.ID, f.clk.Now()))

		_, err := f.expire.Execute(ctx)
		require.NoError(t, err)

		// 取消是读者主动让位,过期是书压在馆里没人取:
		// 后者直接回架让到馆读者能借走,排队的等下一次归还
		assert.Equal(t, reservation.StatusPending, next.Status)
		assert.Empty(t, f.notifier.HoldReadyCalls)
	})

	t.Run("保留期内的留书不受影响", func(t *testing.T) {
		f := newFixture()
		holder := f.seedMember("holder@example.com")
		b := f.seedBook(book.ItemAvailable)
		hold := f.seedHold(b, holder.ID, f.clk.Now().AddDate(0, 0, -2))

		resp, err := f.expire.Execute(ctx)
		require.NoError(t, err)

		assert.Zero(t, resp.Expired)
		assert.Equal(t, reservation.StatusFulfilled, hold.Status)
	})

	t.Run("过期按留书时间判定而非入队时间", func(t *testing.T) {
		f := newFixture()
		holder := f.seedMember("holder@example.com")
		b := f.seedBook(book.ItemAvailable)

		// 排了三个月队,昨天才轮到:不应过期
		hold := f.seedHold(b, holder.ID, f.clk.Now().AddDate(0, 0, -1))
		hold.ReservationDate = f.clk.Now().AddDate(0, -3, 0)

		resp, err := f.expire.Execute(ctx)
		require.NoError(t, err)

		assert.Zero(t, resp.Expired)
		assert.Equal(t, reservation.StatusFulfilled, hold.Status)
	})

	t.Run("重复执行无副作用", func(t *testing.T) {
		f := newFixture()
		holder := f.seedMember("holder@example.com")
		b := f.seedBook(book.ItemAvailable)
		f.seedHold(b, holder.ID, f.clk.Now().AddDate(0, 0, -4))

		resp, err := f.expire.Execute(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, resp.Expired)

		resp, err = f.expire.Execute(ctx)
		require.NoError(t, err)
		assert.Zero(t, resp.Expired)
	})

	t.Run("留书期间副本借出流转后仍能过期", func(t *testing.T) {
		f := newFixture()
		holder := f.seedMember("holder@example.com")
		b := f.seedBook(book.ItemAvailable)
		hold := f.seedHold(b, holder.ID, f.clk.Now().AddDate(0, 0, -4))

		// 副本状态与预约脱节(Reserved副本不见了),过期流转仍要完成
		for _, item := range f.books.Items {
			item.Status = book.ItemAvailable
		}

		resp, err := f.expire.Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Expired)
		assert.Equal(t, reservation.StatusExpired, hold.Status)
	})

	t.Run("时间推进后原本未过期的留书过期", func(t *testing.T) {
		f := newFixture()
		holder := f.seedMember("holder@example.com")
		b := f.seedBook(book.ItemAvailable)
		hold := f.seedHold(b, holder.ID, f.clk.Now())

		resp, err := f.expire.Execute(ctx)
		require.NoError(t, err)
		require.Zero(t, resp.Expired)

		f.clk.Advance(4 * 24 * time.Hour)

		resp, err = f.expire.Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Expired)
		assert.Equal(t, reservation.StatusExpired, hold.Status)
	})
}
