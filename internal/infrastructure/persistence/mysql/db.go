package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/library/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&MemberModel{},
		&LibrarianModel{},
		&BookModel{},
		&BookItemModel{},
		&LoanModel{},
		&ReservationModel{},
		&FineModel{},
		&NotificationModel{},
	)
}

// MemberModel GORM读者模型
// 设计说明:
// 1. 这是infrastructure层的数据模型,包含GORM tag
// 2. domain/member/entity.go是领域实体,不依赖GORM
// 3. Repository负责两者之间的转换
type MemberModel struct {
	ID             uint      `gorm:"primaryKey"`
	Email          string    `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	HashedPassword string    `gorm:"size:255;not null;comment:密码(bcrypt加密)"`
	FullName       string    `gorm:"size:100;not null;comment:姓名"`
	PhoneNumber    string    `gorm:"size:30;comment:电话"`
	Address        string    `gorm:"size:255;comment:地址"`
	Status         string    `gorm:"size:20;not null;default:Active;index;comment:账户状态"`
	DateRegistered time.Time `gorm:"comment:注册时间"`
}

func (MemberModel) TableName() string { return "members" }

// LibrarianModel GORM馆员模型
type LibrarianModel struct {
	ID             uint   `gorm:"primaryKey"`
	Email          string `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	HashedPassword string `gorm:"size:255;not null;comment:密码(bcrypt加密)"`
	FullName       string `gorm:"size:100;not null;comment:姓名"`
	Role           string `gorm:"size:20;not null;default:Librarian;comment:角色"`
	IsActive       bool   `gorm:"not null;default:true;comment:是否在职"`
}

func (LibrarianModel) TableName() string { return "librarians" }

// BookModel GORM书目模型
type BookModel struct {
	ID              uint   `gorm:"primaryKey"`
	Title           string `gorm:"size:255;not null;index;comment:书名"`
	Author          string `gorm:"size:255;not null;index;comment:作者"`
	ISBN            string `gorm:"size:20;uniqueIndex;comment:ISBN"`
	Publisher       string `gorm:"size:255;comment:出版社"`
	PublicationYear string `gorm:"size:10;comment:出版年份"`
	Genre           string `gorm:"size:50;index;comment:分类"`
	Description     string `gorm:"type:text;comment:简介"`
	CoverImageURL   string `gorm:"size:500;comment:封面图"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (BookModel) TableName() string { return "books" }

// BookItemModel GORM馆藏副本模型
// 设计说明:以物理条码为主键(贴在书上的条码贴纸)
type BookItemModel struct {
	Barcode      string    `gorm:"primaryKey;size:50;comment:物理条码"`
	BookID       uint      `gorm:"not null;index;comment:所属书目ID"`
	Status       string    `gorm:"size:20;not null;default:Available;index;comment:副本状态"`
	DateAcquired time.Time `gorm:"comment:入藏时间"`
}

func (BookItemModel) TableName() string { return "book_items" }

// LoanModel GORM借阅模型
// 复合索引(member_id,status)优化"读者在借数量"查询,
// (book_item_barcode,status)优化"条码当前借阅"查询
type LoanModel struct {
	ID              uint       `gorm:"primaryKey"`
	BookItemBarcode string     `gorm:"size:50;not null;index:idx_loans_item_status;comment:副本条码"`
	MemberID        uint       `gorm:"not null;index:idx_loans_member_status;comment:读者ID"`
	IssueDate       time.Time  `gorm:"not null;comment:借出日期"`
	DueDate         time.Time  `gorm:"not null;index;comment:到期日期"`
	ReturnDate      *time.Time `gorm:"comment:归还日期"`
	RenewalCount    int        `gorm:"not null;default:0;comment:续借次数"`
	Status          string     `gorm:"size:20;not null;default:Active;index:idx_loans_item_status;index:idx_loans_member_status;comment:借阅状态"`
}

func (LoanModel) TableName() string { return "loans" }

// ReservationModel GORM预约模型
// 复合索引(book_id,status,reservation_date)支撑FIFO队首查询与队列位置计算
type ReservationModel struct {
	ID              uint       `gorm:"primaryKey"`
	BookID          uint       `gorm:"not null;index:idx_res_book_status;comment:书目ID(书目级预约)"`
	MemberID        uint       `gorm:"not null;index;comment:读者ID"`
	ReservationDate time.Time  `gorm:"not null;index:idx_res_book_status;comment:预约时间(队列顺序)"`
	FulfilledAt     *time.Time `gorm:"comment:留书时间(保留过期按此计算)"`
	Status          string     `gorm:"size:20;not null;default:Pending;index:idx_res_book_status;comment:预约状态"`
}

func (ReservationModel) TableName() string { return "reservations" }

// FineModel GORM罚款模型
type FineModel struct {
	ID         uint    `gorm:"primaryKey"`
	LoanID     uint    `gorm:"not null;index;comment:关联借阅ID"`
	MemberID   uint    `gorm:"not null;index:idx_fines_member_status;comment:读者ID"`
	Amount     float64 `gorm:"not null;comment:应缴总额(元)"`
	AmountPaid float64 `gorm:"not null;default:0;comment:累计已缴(元)"`
	Reason     string  `gorm:"size:50;not null;default:Overdue;comment:罚款事由"`
	Status     string  `gorm:"size:20;not null;default:Unpaid;index:idx_fines_member_status;comment:罚款状态"`
}

func (FineModel) TableName() string { return "fines" }

// NotificationModel GORM通知模型
type NotificationModel struct {
	ID        uint      `gorm:"primaryKey"`
	MemberID  uint      `gorm:"not null;index;comment:读者ID"`
	Message   string    `gorm:"size:500;not null;comment:消息内容"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	IsRead    bool      `gorm:"not null;default:false;comment:是否已读"`
}

func (NotificationModel) TableName() string { return "notifications" }
