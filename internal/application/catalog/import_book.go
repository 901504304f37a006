package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/infrastructure/googlebooks"
)

// BookLookup 外部图书信息查询接口
// 由infrastructure/googlebooks.Client实现,测试时可用桩替代
type BookLookup interface {
	FetchByISBN(ctx context.Context, isbn string) (*googlebooks.BookInfo, error)
}

// ImportBookRequest 按ISBN导入书目请求
type ImportBookRequest struct {
	ISBN string `json:"isbn" binding:"required"`
}

// ImportBookUseCase 按ISBN从Google Books导入书目用例
// 省去馆员手工录入元数据,导入后仍可用更新书目接口修正
type ImportBookUseCase struct {
	bookRepo book.Repository
	lookup   BookLookup
}

// NewImportBookUseCase 创建导入书目用例
func NewImportBookUseCase(bookRepo book.Repository, lookup BookLookup) *ImportBookUseCase {
	return &ImportBookUseCase{bookRepo: bookRepo, lookup: lookup}
}

// Execute 执行导入
func (uc *ImportBookUseCase) Execute(ctx context.Context, req *ImportBookRequest) (*CreateBookResponse, error) {
	// 先查重,避免外部调用浪费
	_, err := uc.bookRepo.FindBookByISBN(ctx, req.ISBN)
	if err == nil {
		return nil, book.ErrISBNDuplicate
	}
	if !errors.Is(err, book.ErrBookNotFound) {
		return nil, err
	}

	info, err := uc.lookup.FetchByISBN(ctx, req.ISBN)
	if err != nil {
		return nil, err
	}

	genre := ""
	if len(info.Categories) > 0 {
		genre = info.Categories[0]
	}

	b := &book.Book{
		Title:           info.Title,
		Author:          strings.Join(info.Authors, ", "),
		ISBN:            req.ISBN,
		Publisher:       info.Publisher,
		PublicationYear: info.PublicationYear,
		Genre:           genre,
		Description:     info.Description,
		CoverImageURL:   info.CoverImageURL,
	}
	if err := uc.bookRepo.CreateBook(ctx, b); err != nil {
		return nil, err
	}

	return &CreateBookResponse{
		BookID: b.ID,
		Title:  b.Title,
		ISBN:   b.ISBN,
	}, nil
}
