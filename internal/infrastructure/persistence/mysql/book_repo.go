package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(如ISBN/条码重复),转换为业务错误
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// CreateBook 创建书目
func (r *bookRepository) CreateBook(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		Publisher:       b.Publisher,
		PublicationYear: b.PublicationYear,
		Genre:           b.Genre,
		Description:     b.Description,
		CoverImageURL:   b.CoverImageURL,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "创建书目失败")
	}

	// 回填自增ID
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindBookByID 根据ID查找书目
func (r *bookRepository) FindBookByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询书目失败")
	}
	return toBookEntity(&model), nil
}

// FindBookByISBN 根据ISBN查找书目
func (r *bookRepository) FindBookByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).Where("isbn = ?", isbn).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询书目失败")
	}
	return toBookEntity(&model), nil
}

// ListBooks 书目列表(分页)
func (r *bookRepository) ListBooks(ctx context.Context, page, pageSize int) ([]*book.Book, int64, error) {
	db := getDB(ctx, r.db)

	var total int64
	if err := db.Model(&BookModel{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "统计书目失败")
	}

	var models []BookModel
	offset := (page - 1) * pageSize
	if err := db.Order("id DESC").Offset(offset).Limit(pageSize).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询书目列表失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, total, nil
}

// UpdateBook 更新书目信息
func (r *bookRepository) UpdateBook(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		Publisher:       b.Publisher,
		PublicationYear: b.PublicationYear,
		Genre:           b.Genre,
		Description:     b.Description,
		CoverImageURL:   b.CoverImageURL,
		CreatedAt:       b.CreatedAt,
	}
	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新书目失败")
	}
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// DeleteBook 删除书目
func (r *bookRepository) DeleteBook(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&BookModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除书目失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// CreateItem 登记新副本
func (r *bookRepository) CreateItem(ctx context.Context, item *book.BookItem) error {
	model := &BookItemModel{
		Barcode:      item.Barcode,
		BookID:       item.BookID,
		Status:       string(item.Status),
		DateAcquired: item.DateAcquired,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrBarcodeDuplicate
		}
		return apperrors.Wrap(err, "登记副本失败")
	}
	return nil
}

// FindItemByBarcode 根据条码查找副本
func (r *bookRepository) FindItemByBarcode(ctx context.Context, barcode string) (*book.BookItem, error) {
	var model BookItemModel
	err := getDB(ctx, r.db).Where("barcode = ?", barcode).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrItemNotFound
		}
		return nil, apperrors.Wrap(err, "查询副本失败")
	}
	return toItemEntity(&model), nil
}

// LockItemByBarcode 锁定副本(悲观锁)
// 执行SELECT ... FOR UPDATE,其他事务必须等待当前事务提交或回滚
// 防止并发把同一副本借给两个读者
func (r *bookRepository) LockItemByBarcode(ctx context.Context, barcode string) (*book.BookItem, error) {
	var model BookItemModel
	err := getDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("barcode = ?", barcode).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrItemNotFound
		}
		return nil, apperrors.Wrap(err, "锁定副本失败")
	}
	return toItemEntity(&model), nil
}

// ListItemsByBook 某书目的全部副本
func (r *bookRepository) ListItemsByBook(ctx context.Context, bookID uint) ([]*book.BookItem, error) {
	var models []BookItemModel
	err := getDB(ctx, r.db).Where("book_id = ?", bookID).Order("barcode").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询副本列表失败")
	}
	items := make([]*book.BookItem, len(models))
	for i := range models {
		items[i] = toItemEntity(&models[i])
	}
	return items, nil
}

// CountItemsByBook 某书目的副本总数
func (r *bookRepository) CountItemsByBook(ctx context.Context, bookID uint) (int64, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&BookItemModel{}).
		Where("book_id = ?", bookID).Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计副本失败")
	}
	return count, nil
}

// CountAvailableItems 某书目当前在架可借的副本数
func (r *bookRepository) CountAvailableItems(ctx context.Context, bookID uint) (int64, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&BookItemModel{}).
		Where("book_id = ? AND status = ?", bookID, string(book.ItemAvailable)).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计可借副本失败")
	}
	return count, nil
}

// FindReservedItemByBook 某书目当前处于Reserved状态的副本
// 不存在时返回(nil, nil):取消预约时队列可能已经没有被占住的书
func (r *bookRepository) FindReservedItemByBook(ctx context.Context, bookID uint) (*book.BookItem, error) {
	var model BookItemModel
	err := getDB(ctx, r.db).
		Where("book_id = ? AND status = ?", bookID, string(book.ItemReserved)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "查询保留副本失败")
	}
	return toItemEntity(&model), nil
}

// UpdateItem 更新副本
func (r *bookRepository) UpdateItem(ctx context.Context, item *book.BookItem) error {
	err := getDB(ctx, r.db).Model(&BookItemModel{}).
		Where("barcode = ?", item.Barcode).
		Update("status", string(item.Status)).Error
	if err != nil {
		return apperrors.Wrap(err, "更新副本失败")
	}
	return nil
}

// DeleteItem 删除副本
func (r *bookRepository) DeleteItem(ctx context.Context, barcode string) error {
	result := getDB(ctx, r.db).Where("barcode = ?", barcode).Delete(&BookItemModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除副本失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrItemNotFound
	}
	return nil
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(m *BookModel) *book.Book {
	return &book.Book{
		ID:              m.ID,
		Title:           m.Title,
		Author:          m.Author,
		ISBN:            m.ISBN,
		Publisher:       m.Publisher,
		PublicationYear: m.PublicationYear,
		Genre:           m.Genre,
		Description:     m.Description,
		CoverImageURL:   m.CoverImageURL,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toItemEntity(m *BookItemModel) *book.BookItem {
	return &book.BookItem{
		Barcode:      m.Barcode,
		BookID:       m.BookID,
		Status:       book.ItemStatus(m.Status),
		DateAcquired: m.DateAcquired,
	}
}
