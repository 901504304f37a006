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
)

func TestListLoans(t *testing.T) {
	t.Run("读者的借阅记录含书目信息", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember()
		b, _ := f.seedBookWithItem("BC-001", book.ItemAvailable)
		f.seedActiveLoan(m, "BC-001")

		items, err := f.list.ByMember(context.Background(), m.ID, "")
		require.NoError(t, err)
		require.Len(t, items, 1)

		assert.Equal(t, "BC-001", items[0].Barcode)
		assert.Equal(t, b.ID, items[0].BookID)
		assert.Equal(t, "Go程序设计语言", items[0].BookTitle)
		assert.Equal(t, "2024-03-01", items[0].IssueDate)
		assert.Equal(t, "2024-03-15", items[0].DueDate)
		assert.Equal(t, string(loan.StatusActive), items[0].Status)
		assert.False(t, items[0].Overdue)
	})

	t.Run("按状态过滤", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember()
		f.seedBookWithItem("BC-001", book.ItemAvailable)
		f.seedBookWithItem("BC-002", book.ItemAvailable)
		f.seedActiveLoan(m, "BC-001")
		closed := f.seedActiveLoan(m, "BC-002")
		require.NoError(t, closed.Close(f.clk.Today()))

		all, err := f.list.ByMember(context.Background(), m.ID, "")
		require.NoError(t, err)
		assert.Len(t, all, 2)

		active, err := f.list.ByMember(context.Background(), m.ID, string(loan.StatusActive))
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, "BC-001", active[0].Barcode)

		returned, err := f.list.ByMember(context.Background(), m.ID, string(loan.StatusReturned))
		require.NoError(t, err)
		require.Len(t, returned, 1)
		assert.Equal(t, "BC-002", returned[0].Barcode)
	})

	t.Run("逾期标记按当前日期计算", func(t *testing.T) {
		f := newFixture()
		m := f.seedMember()
		f.seedBookWithItem("BC-001", book.ItemAvailable)
		f.seedActiveLoan(m, "BC-001")

		f.clk.Advance(15 * 24 * time.Hour)

		items, err := f.list.ByMember(context.Background(), m.ID, "")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.True(t, items[0].Overdue)
	})

	t.Run("副本的流通历史", func(t *testing.T) {
		f := newFixture()
		m1 := f.seedMember()
		m2 := f.members.AddMember(&member.Member{
			Email:          "second@example.com",
			FullName:       "第二位读者",
			Status:         member.StatusActive,
			DateRegistered: f.clk.Now(),
		})
		f.seedBookWithItem("BC-001", book.ItemAvailable)

		first := f.seedActiveLoan(m1, "BC-001")
		require.NoError(t, first.Close(f.clk.Today()))
		f.seedActiveLoan(m2, "BC-001")

		items, err := f.list.ByBarcode(context.Background(), "BC-001")
		require.NoError(t, err)
		require.Len(t, items, 2)
		// 按借出时间倒序,最近一次在前
		assert.Equal(t, string(loan.StatusActive), items[0].Status)
		assert.Equal(t, string(loan.StatusReturned), items[1].Status)
	})
}
