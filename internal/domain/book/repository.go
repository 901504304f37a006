package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. Book与BookItem同属一个聚合,共用一个仓储
// 3. 支持事务操作(通过context传递事务)
type Repository interface {
	// CreateBook 创建书目
	CreateBook(ctx context.Context, b *Book) error

	// FindBookByID 根据ID查找书目
	FindBookByID(ctx context.Context, id uint) (*Book, error)

	// FindBookByISBN 根据ISBN查找书目
	FindBookByISBN(ctx context.Context, isbn string) (*Book, error)

	// ListBooks 书目列表(分页)
	ListBooks(ctx context.Context, page, pageSize int) ([]*Book, int64, error)

	// UpdateBook 更新书目信息
	UpdateBook(ctx context.Context, b *Book) error

	// DeleteBook 删除书目(删除前的业务校验在用例层完成)
	DeleteBook(ctx context.Context, id uint) error

	// CreateItem 登记新副本
	CreateItem(ctx context.Context, item *BookItem) error

	// FindItemByBarcode 根据条码查找副本
	FindItemByBarcode(ctx context.Context, barcode string) (*BookItem, error)

	// LockItemByBarcode 根据条码锁定副本(SELECT FOR UPDATE)
	// 借出/归还的临界区使用,防止并发把同一副本借给两个读者
	LockItemByBarcode(ctx context.Context, barcode string) (*BookItem, error)

	// ListItemsByBook 某书目的全部副本
	ListItemsByBook(ctx context.Context, bookID uint) ([]*BookItem, error)

	// CountItemsByBook 某书目的副本总数(删除书目前校验)
	CountItemsByBook(ctx context.Context, bookID uint) (int64, error)

	// CountAvailableItems 某书目当前在架可借的副本数("无空闲副本才允许预约")
	CountAvailableItems(ctx context.Context, bookID uint) (int64, error)

	// FindReservedItemByBook 某书目当前处于Reserved状态的副本
	// 用途:取消/过期预约时定位被占住的那本书
	FindReservedItemByBook(ctx context.Context, bookID uint) (*BookItem, error)

	// UpdateItem 更新副本(主要用于状态变更)
	UpdateItem(ctx context.Context, item *BookItem) error

	// DeleteItem 删除副本
	DeleteItem(ctx context.Context, barcode string) error
}
