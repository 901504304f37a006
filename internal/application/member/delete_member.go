package member

import (
	"context"

	"github.com/xiebiao/library/internal/domain/fine"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/member"
)

// DeleteMemberUseCase 删除读者用例
//
// 业务规则:读者有未归还图书或未结清罚款时不可删除,
// 校验与删除在同一事务内完成
type DeleteMemberUseCase struct {
	memberRepo member.Repository
	loanRepo   loan.Repository
	fineRepo   fine.Repository
	txManager  TxManager
}

// NewDeleteMemberUseCase 创建删除读者用例
func NewDeleteMemberUseCase(
	memberRepo member.Repository,
	loanRepo loan.Repository,
	fineRepo fine.Repository,
	txManager TxManager,
) *DeleteMemberUseCase {
	return &DeleteMemberUseCase{
		memberRepo: memberRepo,
		loanRepo:   loanRepo,
		fineRepo:   fineRepo,
		txManager:  txManager,
	}
}

// Execute 执行删除
func (uc *DeleteMemberUseCase) Execute(ctx context.Context, memberID uint) error {
	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if _, err := uc.memberRepo.FindMemberByID(txCtx, memberID); err != nil {
			return err
		}

		activeLoans, err := uc.loanRepo.CountActiveByMember(txCtx, memberID)
		if err != nil {
			return err
		}
		if activeLoans > 0 {
			return member.ErrMemberHasObligations
		}

		unsettled, err := uc.fineRepo.CountUnsettledByMember(txCtx, memberID)
		if err != nil {
			return err
		}
		if unsettled > 0 {
			return member.ErrMemberHasObligations
		}

		return uc.memberRepo.DeleteMember(txCtx, memberID)
	})
}
