package catalog

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// BookDetail 书目详情(含馆藏概况)
type BookDetail struct {
	BookID          uint   `json:"book_id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	Publisher       string `json:"publisher"`
	PublicationYear string `json:"publication_year"`
	Genre           string `json:"genre"`
	Description     string `json:"description"`
	CoverImageURL   string `json:"cover_image_url"`
	TotalItems      int64  `json:"total_items"`
	AvailableItems  int64  `json:"available_items"`
}

// ItemDetail 副本详情
type ItemDetail struct {
	Barcode      string `json:"barcode"`
	BookID       uint   `json:"book_id"`
	Status       string `json:"status"`
	DateAcquired string `json:"date_acquired"`
}

// QueryBooksUseCase 书目查询用例(详情、列表、副本清单)
type QueryBooksUseCase struct {
	bookRepo book.Repository
}

// NewQueryBooksUseCase 创建书目查询用例
func NewQueryBooksUseCase(bookRepo book.Repository) *QueryBooksUseCase {
	return &QueryBooksUseCase{bookRepo: bookRepo}
}

// GetBook 书目详情,附带副本总数与当前可借数
func (uc *QueryBooksUseCase) GetBook(ctx context.Context, bookID uint) (*BookDetail, error) {
	b, err := uc.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	total, err := uc.bookRepo.CountItemsByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	available, err := uc.bookRepo.CountAvailableItems(ctx, bookID)
	if err != nil {
		return nil, err
	}

	detail := toBookDetail(b)
	detail.TotalItems = total
	detail.AvailableItems = available
	return detail, nil
}

// ListBooks 书目分页列表
func (uc *QueryBooksUseCase) ListBooks(ctx context.Context, page, pageSize int) ([]*BookDetail, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	books, total, err := uc.bookRepo.ListBooks(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	details := make([]*BookDetail, len(books))
	for i, b := range books {
		details[i] = toBookDetail(b)
	}
	return details, total, nil
}

// ListItems 某书目的全部副本
func (uc *QueryBooksUseCase) ListItems(ctx context.Context, bookID uint) ([]ItemDetail, error) {
	if _, err := uc.bookRepo.FindBookByID(ctx, bookID); err != nil {
		return nil, err
	}

	items, err := uc.bookRepo.ListItemsByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	details := make([]ItemDetail, 0, len(items))
	for _, item := range items {
		details = append(details, ItemDetail{
			Barcode:      item.Barcode,
			BookID:       item.BookID,
			Status:       string(item.Status),
			DateAcquired: item.DateAcquired.Format("2006-01-02"),
		})
	}
	return details, nil
}

func toBookDetail(b *book.Book) *BookDetail {
	return &BookDetail{
		BookID:          b.ID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		Publisher:       b.Publisher,
		PublicationYear: b.PublicationYear,
		Genre:           b.Genre,
		Description:     b.Description,
		CoverImageURL:   b.CoverImageURL,
	}
}
