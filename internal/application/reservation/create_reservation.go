package reservation

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/fine"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/domain/reservation"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/pkg/clock"
)

// CreateReservationUseCase 创建预约用例
type CreateReservationUseCase struct {
	resRepo    reservation.Repository
	bookRepo   book.Repository
	memberRepo member.Repository
	loanRepo   loan.Repository
	fineRepo   fine.Repository
	txManager  TxManager
	policy     config.CirculationConfig
	clock      clock.Clock
}

// NewCreateReservationUseCase 创建预约用例
func NewCreateReservationUseCase(
	resRepo reservation.Repository,
	bookRepo book.Repository,
	memberRepo member.Repository,
	loanRepo loan.Repository,
	fineRepo fine.Repository,
	txManager TxManager,
	policy config.CirculationConfig,
	clk clock.Clock,
) *CreateReservationUseCase {
	return &CreateReservationUseCase{
		resRepo:    resRepo,
		bookRepo:   bookRepo,
		memberRepo: memberRepo,
		loanRepo:   loanRepo,
		fineRepo:   fineRepo,
		txManager:  txManager,
		policy:     policy,
		clock:      clk,
	}
}

// CreateReservationRequest 预约请求DTO
type CreateReservationRequest struct {
	BookID   uint // 书目ID
	MemberID uint // 读者ID(从JWT提取)
}

// CreateReservationResponse 预约响应DTO
type CreateReservationResponse struct {
	ReservationID uint   `json:"reservation_id"`
	BookID        uint   `json:"book_id"`
	Position      int    `json:"position"` // 当前队列位置(1=下一位)
	Status        string `json:"status"`
}

// Execute 执行预约
//
// 校验:
// 1. 读者存在且Active,欠费未达阈值
// 2. 书目存在
// 3. 没有在架副本(有书可借就直接借,不允许"占坑")
// 4. 本人没有该书的Active借阅(还了才能排队)
// 5. 本人没有该书的有效预约(不可重复排队)
func (uc *CreateReservationUseCase) Execute(ctx context.Context, req CreateReservationRequest) (*CreateReservationResponse, error) {
	var created *reservation.Reservation
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		m, err := uc.memberRepo.FindMemberByID(txCtx, req.MemberID)
		if err != nil {
			return err
		}
		if !m.IsActive() {
			return member.ErrMemberNotActive(m.Status)
		}

		outstanding, err := uc.fineRepo.SumOutstandingByMember(txCtx, req.MemberID)
		if err != nil {
			return err
		}
		if outstanding >= uc.policy.MaxFineThreshold {
			return fine.ErrOutstandingFines(outstanding, uc.policy.MaxFineThreshold)
		}

		if _, err := uc.bookRepo.FindBookByID(txCtx, req.BookID); err != nil {
			return err
		}

		// 有在架副本时不允许预约
		available, err := uc.bookRepo.CountAvailableItems(txCtx, req.BookID)
		if err != nil {
			return err
		}
		if available > 0 {
			return reservation.ErrBookCurrentlyAvailable
		}

		// 手里有这本书就不能再排队
		borrowed, err := uc.loanRepo.HasActiveLoanForBook(txCtx, req.MemberID, req.BookID)
		if err != nil {
			return err
		}
		if borrowed {
			return reservation.ErrAlreadyBorrowed
		}

		// 不可重复预约
		existing, err := uc.resRepo.FindActiveByBookAndMember(txCtx, req.BookID, req.MemberID)
		if err != nil {
			return err
		}
		if existing != nil {
			return reservation.ErrDuplicateReservation
		}

		r := reservation.NewReservation(req.BookID, req.MemberID, uc.clock.Now())
		if err := uc.resRepo.Create(txCtx, r); err != nil {
			return err
		}
		created = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 入队位置 = 1 + 严格早于自己的Pending数量
	earlier, err := uc.resRepo.CountPendingBefore(ctx, created.BookID, created.ReservationDate)
	if err != nil {
		return nil, err
	}

	return &CreateReservationResponse{
		ReservationID: created.ID,
		BookID:        created.BookID,
		Position:      int(earlier) + 1,
		Status:        string(created.Status),
	}, nil
}
