package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/loan"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// loanRepository 借阅仓储实现(MySQL)
// 事务通过context传递:流通操作(借出/归还/挂失)必须在事务中调用
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository 创建借阅仓储
func NewLoanRepository(db *gorm.DB) loan.Repository {
	return &loanRepository{db: db}
}

// Create 创建借阅记录
func (r *loanRepository) Create(ctx context.Context, l *loan.Loan) error {
	model := toLoanModel(l)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建借阅记录失败")
	}
	l.ID = model.ID
	return nil
}

// FindByID 根据ID查找借阅
func (r *loanRepository) FindByID(ctx context.Context, id uint) (*loan.Loan, error) {
	var model LoanModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrLoanNotFound
		}
		return nil, apperrors.Wrap(err, "查询借阅失败")
	}
	return toLoanEntity(&model), nil
}

// FindActiveByBarcode 查找某副本当前进行中的借阅
func (r *loanRepository) FindActiveByBarcode(ctx context.Context, barcode string) (*loan.Loan, error) {
	var model LoanModel
	err := getDB(ctx, r.db).
		Where("book_item_barcode = ? AND status = ?", barcode, string(loan.StatusActive)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrNoActiveLoan
		}
		return nil, apperrors.Wrap(err, "查询借阅失败")
	}
	return toLoanEntity(&model), nil
}

// CountActiveByMember 读者进行中的借阅数量
func (r *loanRepository) CountActiveByMember(ctx context.Context, memberID uint) (int64, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&LoanModel{}).
		Where("member_id = ? AND status = ?", memberID, string(loan.StatusActive)).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计在借数量失败")
	}
	return count, nil
}

// HasActiveLoanForBook 读者是否借有某书目的任一副本
// JOIN book_items:借阅只存条码,书目级判断需要关联副本表
func (r *loanRepository) HasActiveLoanForBook(ctx context.Context, memberID, bookID uint) (bool, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&LoanModel{}).
		Joins("JOIN book_items ON book_items.barcode = loans.book_item_barcode").
		Where("loans.member_id = ? AND loans.status = ? AND book_items.book_id = ?",
			memberID, string(loan.StatusActive), bookID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询在借书目失败")
	}
	return count > 0, nil
}

// ListActiveOverdue 截至before已逾期且仍在借的借阅
func (r *loanRepository) ListActiveOverdue(ctx context.Context, before time.Time) ([]*loan.Loan, error) {
	var models []LoanModel
	err := getDB(ctx, r.db).
		Where("status = ? AND due_date < ?", string(loan.StatusActive), before).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询逾期借阅失败")
	}
	return toLoanEntities(models), nil
}

// ListByMember 读者的借阅记录
func (r *loanRepository) ListByMember(ctx context.Context, memberID uint, status loan.Status) ([]*loan.Loan, error) {
	db := getDB(ctx, r.db).Where("member_id = ?", memberID)
	if status != "" {
		db = db.Where("status = ?", string(status))
	}
	var models []LoanModel
	if err := db.Order("issue_date DESC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询借阅记录失败")
	}
	return toLoanEntities(models), nil
}

// ListByBarcode 某副本的借阅历史
func (r *loanRepository) ListByBarcode(ctx context.Context, barcode string) ([]*loan.Loan, error) {
	var models []LoanModel
	err := getDB(ctx, r.db).
		Where("book_item_barcode = ?", barcode).
		Order("issue_date DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询借阅历史失败")
	}
	return toLoanEntities(models), nil
}

// Update 更新借阅
func (r *loanRepository) Update(ctx context.Context, l *loan.Loan) error {
	model := toLoanModel(l)
	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新借阅失败")
	}
	return nil
}

func toLoanModel(l *loan.Loan) *LoanModel {
	return &LoanModel{
		ID:              l.ID,
		BookItemBarcode: l.BookItemBarcode,
		MemberID:        l.MemberID,
		IssueDate:       l.IssueDate,
		DueDate:         l.DueDate,
		ReturnDate:      l.ReturnDate,
		RenewalCount:    l.RenewalCount,
		Status:          string(l.Status),
	}
}

func toLoanEntity(m *LoanModel) *loan.Loan {
	return &loan.Loan{
		ID:              m.ID,
		BookItemBarcode: m.BookItemBarcode,
		MemberID:        m.MemberID,
		IssueDate:       m.IssueDate,
		DueDate:         m.DueDate,
		ReturnDate:      m.ReturnDate,
		RenewalCount:    m.RenewalCount,
		Status:          loan.Status(m.Status),
	}
}

func toLoanEntities(models []LoanModel) []*loan.Loan {
	loans := make([]*loan.Loan, len(models))
	for i := range models {
		loans[i] = toLoanEntity(&models[i])
	}
	return loans
}
