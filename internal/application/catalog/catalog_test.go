package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/reservation"
	"github.com/xiebiao/library/internal/infrastructure/googlebooks"
	"github.com/xiebiao/library/internal/testutil"
	"github.com/xiebiao/library/pkg/clock"
)

// stubLookup Google Books查询假实现
type stubLookup struct {
	info *googlebooks.BookInfo
	err  error
}

func (s *stubLookup) FetchByISBN(ctx context.Context, isbn string) (*googlebooks.BookInfo, error) {
	return s.info, s.err
}

func TestCreateBook(t *testing.T) {
	ctx := context.Background()

	t.Run("正常新建", func(t *testing.T) {
		books := testutil.NewBookRepo()
		uc := NewCreateBookUseCase(books)

		resp, err := uc.Execute(ctx, &CreateBookRequest{
			Title:  "Go程序设计语言",
			Author: "Alan Donovan",
			ISBN:   "9787111558422",
		})
		require.NoError(t, err)
		assert.NotZero(t, resp.BookID)
	})

	t.Run("ISBN重复", func(t *testing.T) {
		books := testutil.NewBookRepo()
		books.AddBook(&book.Book{Title: "已有书", ISBN: "9787111558422"})
		uc := NewCreateBookUseCase(books)

		_, err := uc.Execute(ctx, &CreateBookRequest{
			Title:  "Go程序设计语言",
			Author: "Alan Donovan",
			ISBN:   "9787111558422",
		})
		assert.ErrorIs(t, err, book.ErrISBNDuplicate)
	})
}

func TestImportBook(t *testing.T) {
	ctx := context.Background()

	t.Run("按ISBN导入元数据", func(t *testing.T) {
		books := testutil.NewBookRepo()
		lookup := &stubLookup{info: &googlebooks.BookInfo{
			Title:      "The Go Programming Language",
			Authors:    []string{"Alan Donovan", "Brian Kernighan"},
			Publisher:  "Addison-Wesley",
			Categories: []string{"Computers"},
		}}
		uc := NewImportBookUseCase(books, lookup)

		resp, err := uc.Execute(ctx, &ImportBookRequest{ISBN: "9780134190440"})
		require.NoError(t, err)

		imported, err := books.FindBookByID(ctx, resp.BookID)
		require.NoError(t, err)
		assert.Equal(t, "The Go Programming Language", imported.Title)
		assert.Equal(t, "Alan Donovan, Brian Kernighan", imported.Author)
		assert.Equal(t, "Computers", imported.Genre)
	})

	t.Run("已有同ISBN书目时不重复导入", func(t *testing.T) {
		books := testutil.NewBookRepo()
		books.AddBook(&book.Book{Title: "已有书", ISBN: "9780134190440"})
		uc := NewImportBookUseCase(books, &stubLookup{})

		_, err := uc.Execute(ctx, &ImportBookRequest{ISBN: "9780134190440"})
		assert.ErrorIs(t, err, book.ErrISBNDuplicate)
	})
}

func TestDeleteBook(t *testing.T) {
	ctx := context.Background()

	t.Run("正常删除", func(t *testing.T) {
		books := testutil.NewBookRepo()
		reservations := testutil.NewReservationRepo()
		b := books.AddBook(&book.Book{Title: "待删除", ISBN: "9780000000001"})
		uc := NewDeleteBookUseCase(books, reservations, testutil.TxManager{})

		require.NoError(t, uc.Execute(ctx, b.ID))

		_, err := books.FindBookByID(ctx, b.ID)
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})

	t.Run("仍有副本时不可删除", func(t *testing.T) {
		books := testutil.NewBookRepo()
		b := books.AddBook(&book.Book{Title: "有副本", ISBN: "9780000000001"})
		books.AddItem(&book.BookItem{Barcode: "BC-001", BookID: b.ID, Status: book.ItemAvailable})
		uc := NewDeleteBookUseCase(books, testutil.NewReservationRepo(), testutil.TxManager{})

		err := uc.Execute(ctx, b.ID)
		assert.ErrorIs(t, err, book.ErrBookHasItems)
	})

	t.Run("仍有预约时不可删除", func(t *testing.T) {
		books := testutil.NewBookRepo()
		reservations := testutil.NewReservationRepo()
		b := books.AddBook(&book.Book{Title: "有预约", ISBN: "9780000000001"})
		reservations.AddReservation(reservation.NewReservation(b.ID, 1, time.Now()))
		uc := NewDeleteBookUseCase(books, reservations, testutil.TxManager{})

		err := uc.Execute(ctx, b.ID)
		assert.ErrorIs(t, err, book.ErrBookHasReservations)
	})
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewFixed(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))

	t.Run("新副本入藏即可借", func(t *testing.T) {
		books := testutil.NewBookRepo()
		b := books.AddBook(&book.Book{Title: "新书", ISBN: "9780000000001"})
		uc := NewAddItemUseCase(books, clk)

		resp, err := uc.Execute(ctx, &AddItemRequest{BookID: b.ID, Barcode: "BC-001"})
		require.NoError(t, err)

		assert.Equal(t, string(book.ItemAvailable), resp.Status)
		assert.Equal(t, clk.Today(), books.Items["BC-001"].DateAcquired)
	})

	t.Run("书目不存在", func(t *testing.T) {
		uc := NewAddItemUseCase(testutil.NewBookRepo(), clk)

		_, err := uc.Execute(ctx, &AddItemRequest{BookID: 999, Barcode: "BC-001"})
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})
}

func TestDeleteItem(t *testing.T) {
	ctx := context.Background()

	t.Run("在架副本可下架", func(t *testing.T) {
		books := testutil.NewBookRepo()
		b := books.AddBook(&book.Book{Title: "书", ISBN: "9780000000001"})
		books.AddItem(&book.BookItem{Barcode: "BC-001", BookID: b.ID, Status: book.ItemAvailable})
		uc := NewDeleteItemUseCase(books, testutil.TxManager{})

		require.NoError(t, uc.Execute(ctx, "BC-001"))

		_, err := books.FindItemByBarcode(ctx, "BC-001")
		assert.ErrorIs(t, err, book.ErrItemNotFound)
	})

	t.Run("借出中的副本不可下架", func(t *testing.T) {
		books := testutil.NewBookRepo()
		b := books.AddBook(&book.Book{Title: "书", ISBN: "9780000000001"})
		books.AddItem(&book.BookItem{Barcode: "BC-001", BookID: b.ID, Status: book.ItemBorrowed})
		uc := NewDeleteItemUseCase(books, testutil.TxManager{})

		err := uc.Execute(ctx, "BC-001")
		assert.ErrorIs(t, err, book.ErrItemInCirculation(book.ItemBorrowed))
	})
}
