package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/fine"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// fineRepository 罚款仓储实现(MySQL)
type fineRepository struct {
	db *gorm.DB
}

// NewFineRepository 创建罚款仓储
func NewFineRepository(db *gorm.DB) fine.Repository {
	return &fineRepository{db: db}
}

// Create 创建罚款
func (r *fineRepository) Create(ctx context.Context, f *fine.Fine) error {
	model := toFineModel(f)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建罚款失败")
	}
	f.ID = model.ID
	return nil
}

// FindByID 根据ID查找罚款
func (r *fineRepository) FindByID(ctx context.Context, id uint) (*fine.Fine, error) {
	var model FineModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fine.ErrFineNotFound
		}
		return nil, apperrors.Wrap(err, "查询罚款失败")
	}
	return toFineEntity(&model), nil
}

// FindOverdueByLoan 查找某笔借阅的逾期罚款
// 累计扫描依赖这里的幂等查询,不存在时返回(nil, nil)
func (r *fineRepository) FindOverdueByLoan(ctx context.Context, loanID uint) (*fine.Fine, error) {
	var model FineModel
	err := getDB(ctx, r.db).
		Where("loan_id = ? AND reason = ?", loanID, string(fine.ReasonOverdue)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "查询逾期罚款失败")
	}
	return toFineEntity(&model), nil
}

// SumOutstandingByMember 读者未结清罚款总额
func (r *fineRepository) SumOutstandingByMember(ctx context.Context, memberID uint) (float64, error) {
	var total float64
	err := getDB(ctx, r.db).Model(&FineModel{}).
		Select("COALESCE(SUM(amount - amount_paid), 0)").
		Where("member_id = ? AND status IN ?", memberID, unsettledStatuses()).
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计未结罚款失败")
	}
	return total, nil
}

// CountUnsettledByMember 读者未结清罚款笔数
func (r *fineRepository) CountUnsettledByMember(ctx context.Context, memberID uint) (int64, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&FineModel{}).
		Where("member_id = ? AND status IN ?", memberID, unsettledStatuses()).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计未结罚款失败")
	}
	return count, nil
}

// ListByMember 读者的罚款记录
func (r *fineRepository) ListByMember(ctx context.Context, memberID uint, includeSettled bool) ([]*fine.Fine, error) {
	query := getDB(ctx, r.db).Where("member_id = ?", memberID)
	if !includeSettled {
		query = query.Where("status IN ?", unsettledStatuses())
	}
	var models []FineModel
	if err := query.Order("id DESC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询罚款记录失败")
	}
	return toFineEntities(models), nil
}

// Update 更新罚款
func (r *fineRepository) Update(ctx context.Context, f *fine.Fine) error {
	model := toFineModel(f)
	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新罚款失败")
	}
	return nil
}

func unsettledStatuses() []string {
	return []string{
		string(fine.StatusUnpaid),
		string(fine.StatusPartial),
	}
}

func toFineModel(f *fine.Fine) *FineModel {
	return &FineModel{
		ID:         f.ID,
		LoanID:     f.LoanID,
		MemberID:   f.MemberID,
		Amount:     f.Amount,
		AmountPaid: f.AmountPaid,
		Reason:     string(f.Reason),
		Status:     string(f.Status),
	}
}

func toFineEntity(m *FineModel) *fine.Fine {
	return &fine.Fine{
		ID:         m.ID,
		LoanID:     m.LoanID,
		MemberID:   m.MemberID,
		Amount:     m.Amount,
		AmountPaid: m.AmountPaid,
		Reason:     fine.Reason(m.Reason),
		Status:     fine.Status(m.Status),
	}
}

func toFineEntities(models []FineModel) []*fine.Fine {
	out := make([]*fine.Fine, len(models))
	for i := range models {
		out[i] = toFineEntity(&models[i])
	}
	return out
}
