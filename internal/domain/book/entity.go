package book

import (
	"time"
)

// ItemStatus 馆藏副本状态
// 设计说明:
// 1. 与数据库存储值一致,使用字符串类型(便于排查问题时直接读库)
// 2. 定义为类型别名,便于添加方法
type ItemStatus string

const (
	ItemAvailable ItemStatus = "Available" // 在架可借
	ItemBorrowed  ItemStatus = "Borrowed"  // 已借出
	ItemReserved  ItemStatus = "Reserved"  // 为预约读者保留,等待取书
	ItemLost      ItemStatus = "Lost"      // 挂失
	ItemDamaged   ItemStatus = "Damaged"   // 损坏下架
)

// Book 图书(书目信息,抽象的"一种书")
// 设计说明:
// 1. Book是聚合根,BookItem是其下的物理副本
// 2. 预约针对Book(书目级),借阅针对BookItem(副本级)
type Book struct {
	ID              uint
	Title           string
	Author          string
	ISBN            string
	Publisher       string
	PublicationYear string
	Genre           string
	Description     string
	CoverImageURL   string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BookItem 馆藏副本(书架上的一本实体书)
// 设计说明:
// 1. 以物理条码为业务主键,一个副本只属于一种书
// 2. 状态机约束:Borrowed当且仅当存在一条Active借阅指向该条码
type BookItem struct {
	Barcode      string
	BookID       uint
	Status       ItemStatus
	DateAcquired time.Time
}

// NewItem 创建新副本(入藏)
func NewItem(barcode string, bookID uint, acquiredAt time.Time) *BookItem {
	return &BookItem{
		Barcode:      barcode,
		BookID:       bookID,
		Status:       ItemAvailable,
		DateAcquired: acquiredAt,
	}
}

// CanTransitionTo 检查副本是否可以转换到目标状态
// 状态机设计,防止非法状态跳转
// 例如:不能把已挂失的副本直接标记为已借出
func (i *BookItem) CanTransitionTo(target ItemStatus) bool {
	transitions := map[ItemStatus][]ItemStatus{
		ItemAvailable: {ItemBorrowed, ItemReserved},                         // 在架→借出/保留
		ItemBorrowed:  {ItemAvailable, ItemReserved, ItemDamaged, ItemLost}, // 归还/交接/损坏/挂失
		ItemReserved:  {ItemBorrowed, ItemAvailable},                        // 预约者取书/保留过期释放
		ItemLost:      {},                                                   // 终态
		ItemDamaged:   {},                                                   // 终态
	}

	allowed, exists := transitions[i.Status]
	if !exists {
		return false
	}
	for _, s := range allowed {
		if s == target {
			return true
		}
	}
	return false
}

// TransitionTo 状态转换
func (i *BookItem) TransitionTo(target ItemStatus) error {
	if !i.CanTransitionTo(target) {
		return ErrInvalidItemTransition
	}
	i.Status = target
	return nil
}

// InCirculation 副本是否在读者手里或为读者保留
// 用途:删除副本前的校验(Borrowed/Reserved状态不可删除)
func (i *BookItem) InCirculation() bool {
	return i.Status == ItemBorrowed || i.Status == ItemReserved
}
