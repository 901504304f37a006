package catalog

import (
	"context"
	"errors"

	"github.com/xiebiao/library/internal/domain/book"
)

// CreateBookRequest 新建书目请求
type CreateBookRequest struct {
	Title           string `json:"title" binding:"required"`
	Author          string `json:"author" binding:"required"`
	ISBN            string `json:"isbn" binding:"required"`
	Publisher       string `json:"publisher"`
	PublicationYear string `json:"publication_year"`
	Genre           string `json:"genre"`
	Description     string `json:"description"`
	CoverImageURL   string `json:"cover_image_url"`
}

// CreateBookResponse 新建书目响应
type CreateBookResponse struct {
	BookID uint   `json:"book_id"`
	Title  string `json:"title"`
	ISBN   string `json:"isbn"`
}

// CreateBookUseCase 新建书目用例
type CreateBookUseCase struct {
	bookRepo book.Repository
}

// NewCreateBookUseCase 创建新建书目用例
func NewCreateBookUseCase(bookRepo book.Repository) *CreateBookUseCase {
	return &CreateBookUseCase{bookRepo: bookRepo}
}

// Execute 执行新建书目
// ISBN唯一:同一ISBN的馆藏通过副本数量表达,不开第二条书目
func (uc *CreateBookUseCase) Execute(ctx context.Context, req *CreateBookRequest) (*CreateBookResponse, error) {
	_, err := uc.bookRepo.FindBookByISBN(ctx, req.ISBN)
	if err == nil {
		return nil, book.ErrISBNDuplicate
	}
	if !errors.Is(err, book.ErrBookNotFound) {
		return nil, err
	}

	b := &book.Book{
		Title:           req.Title,
		Author:          req.Author,
		ISBN:            req.ISBN,
		Publisher:       req.Publisher,
		PublicationYear: req.PublicationYear,
		Genre:           req.Genre,
		Description:     req.Description,
		CoverImageURL:   req.CoverImageURL,
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
