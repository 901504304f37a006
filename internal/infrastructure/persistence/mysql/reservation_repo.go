package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/reservation"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// reservationRepository 预约仓储实现(MySQL)
// FIFO語义全部落在SQL排序上:reservation_date ASC即队列顺序
type reservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository 创建预约仓储
func NewReservationRepository(db *gorm.DB) reservation.Repository {
	return &reservationRepository{db: db}
}

// Create 创建预约
func (r *reservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	model := toReservationModel(res)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建预约失败")
	}
	res.ID = model.ID
	return nil
}

// FindByID 根据ID查找预约
func (r *reservationRepository) FindByID(ctx context.Context, id uint) (*reservation.Reservation, error) {
	var model ReservationModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reservation.ErrReservationNotFound
		}
		return nil, apperrors.Wrap(err, "查询预约失败")
	}
	return toReservationEntity(&model), nil
}

// FindActiveByBookAndMember 查找某读者对某书的有效预约(Pending或Fulfilled)
// 不存在时返回(nil, nil)
func (r *reservationRepository) FindActiveByBookAndMember(ctx context.Context, bookID, memberID uint) (*reservation.Reservation, error) {
	var model ReservationModel
	err := getDB(ctx, r.db).
		Where("book_id = ? AND member_id = ? AND status IN ?",
			bookID, memberID, activeStatuses()).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "查询预约失败")
	}
	return toReservationEntity(&model), nil
}

// FindFulfilledByBookAndMember 查找某读者对某书的已留书预约
// 不存在时返回(nil, nil)
func (r *reservationRepository) FindFulfilledByBookAndMember(ctx context.Context, bookID, memberID uint) (*reservation.Reservation, error) {
	var model ReservationModel
	err := getDB(ctx, r.db).
		Where("book_id = ? AND member_id = ? AND status = ?",
			bookID, memberID, string(reservation.StatusFulfilled)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "查询留书预约失败")
	}
	return toReservationEntity(&model), nil
}

// FindNextPending 某书目排队最久的Pending预约(FIFO队首)
func (r *reservationRepository) FindNextPending(ctx context.Context, bookID uint) (*reservation.Reservation, error) {
	var model ReservationModel
	err := getDB(ctx, r.db).
		Where("book_id = ? AND status = ?", bookID, string(reservation.StatusPending)).
		Order("reservation_date ASC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "查询队首预约失败")
	}
	return toReservationEntity(&model), nil
}

// CountPendingBefore 某书目在t之前(严格早于)创建的Pending预约数量
func (r *reservationRepository) CountPendingBefore(ctx context.Context, bookID uint, t time.Time) (int64, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&ReservationModel{}).
		Where("book_id = ? AND status = ? AND reservation_date < ?",
			bookID, string(reservation.StatusPending), t).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "计算队列位置失败")
	}
	return count, nil
}

// CountPendingByBook 某书目排队中的预约总数
func (r *reservationRepository) CountPendingByBook(ctx context.Context, bookID uint) (int64, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&ReservationModel{}).
		Where("book_id = ? AND status = ?", bookID, string(reservation.StatusPending)).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计排队预约失败")
	}
	return count, nil
}

// CountActiveByBook 某书目的有效预约总数
func (r *reservationRepository) CountActiveByBook(ctx context.Context, bookID uint) (int64, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&ReservationModel{}).
		Where("book_id = ? AND status IN ?", bookID, activeStatuses()).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计有效预约失败")
	}
	return count, nil
}

// ListStaleFulfilled 留书时间早于before的Fulfilled预约
func (r *reservationRepository) ListStaleFulfilled(ctx context.Context, before time.Time) ([]*reservation.Reservation, error) {
	var models []ReservationModel
	err := getDB(ctx, r.db).
		Where("status = ? AND fulfilled_at < ?", string(reservation.StatusFulfilled), before).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询过期留书失败")
	}
	return toReservationEntities(models), nil
}

// ListActiveByMember 读者的有效预约
func (r *reservationRepository) ListActiveByMember(ctx context.Context, memberID uint) ([]*reservation.Reservation, error) {
	var models []ReservationModel
	err := getDB(ctx, r.db).
		Where("member_id = ? AND status IN ?", memberID, activeStatuses()).
		Order("reservation_date ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询读者预约失败")
	}
	return toReservationEntities(models), nil
}

// Update 更新预约
func (r *reservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	model := toReservationModel(res)
	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新预约失败")
	}
	return nil
}

func activeStatuses() []string {
	return []string{
		string(reservation.StatusPending),
		string(reservation.StatusFulfilled),
	}
}

func toReservationModel(res *reservation.Reservation) *ReservationModel {
	return &ReservationModel{
		ID:              res.ID,
		BookID:          res.BookID,
		MemberID:        res.MemberID,
		ReservationDate: res.ReservationDate,
		FulfilledAt:     res.FulfilledAt,
		Status:          string(res.Status),
	}
}

func toReservationEntity(m *ReservationModel) *reservation.Reservation {
	return &reservation.Reservation{
		ID:              m.ID,
		BookID:          m.BookID,
		MemberID:        m.MemberID,
		ReservationDate: m.ReservationDate,
		FulfilledAt:     m.FulfilledAt,
		Status:          reservation.Status(m.Status),
	}
}

func toReservationEntities(models []ReservationModel) []*reservation.Reservation {
	out := make([]*reservation.Reservation, len(models))
	for i := range models {
		out[i] = toReservationEntity(&models[i])
	}
	return out
}
