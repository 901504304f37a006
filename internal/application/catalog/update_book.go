package catalog

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// UpdateBookRequest 更新书目请求
// ISBN不在可修改范围内:ISBN是书目的业务标识,录错时删除重建
type UpdateBookRequest struct {
	BookID          uint   `json:"-"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Publisher       string `json:"publisher"`
	PublicationYear string `json:"publication_year"`
	Genre           string `json:"genre"`
	Description     string `json:"description"`
	CoverImageURL   string `json:"cover_image_url"`
}

// UpdateBookUseCase 更新书目用例
type UpdateBookUseCase struct {
	bookRepo book.Repository
}

// NewUpdateBookUseCase 创建更新书目用例
func NewUpdateBookUseCase(bookRepo book.Repository) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookRepo: bookRepo}
}

// Execute 执行更新,空字段不覆盖原值
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req *UpdateBookRequest) error {
	b, err := uc.bookRepo.FindBookByID(ctx, req.BookID)
	if err != nil {
		return err
	}

	if req.Title != "" {
		b.Title = req.Title
	}
	if req.Author != "" {
		b.Author = req.Author
	}
	if req.Publisher != "" {
		b.Publisher = req.Publisher
	}
	if req.PublicationYear != "" {
		b.PublicationYear = req.PublicationYear
	}
	if req.Genre != "" {
		b.Genre = req.Genre
	}
	if req.Description != "" {
		b.Description = req.Description
	}
	if req.CoverImageURL != "" {
		b.CoverImageURL = req.CoverImageURL
	}

	return uc.bookRepo.UpdateBook(ctx, b)
}
