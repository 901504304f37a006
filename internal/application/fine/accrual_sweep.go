package fine

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/library/internal/domain/fine"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/pkg/clock"
)

// AccrualSweepUseCase 每日逾期计提扫描
// 定时任务周期性执行,也可由馆员手动触发
type AccrualSweepUseCase struct {
	loanRepo  loan.Repository
	fineRepo  fine.Repository
	txManager TxManager
	policy    config.CirculationConfig
	clock     clock.Clock
}

// NewAccrualSweepUseCase 创建计提扫描用例
func NewAccrualSweepUseCase(
	loanRepo loan.Repository,
	fineRepo fine.Repository,
	txManager TxManager,
	policy config.CirculationConfig,
	clk clock.Clock,
) *AccrualSweepUseCase {
	return &AccrualSweepUseCase{
		loanRepo:  loanRepo,
		fineRepo:  fineRepo,
		txManager: txManager,
		policy:    policy,
		clock:     clk,
	}
}

// AccrualSweepResponse 扫描结果
type AccrualSweepResponse struct {
	Scanned int `json:"scanned"` // 扫描到的逾期借阅数
	Created int `json:"created"` // 新开罚款数
	Updated int `json:"updated"` // 金额有变更的罚款数
}

// Execute 执行计提扫描
//
// 对每笔逾期的Active借阅:应缴总额 = 逾期天数 × 每日费率
//   - 还没有Overdue罚款:开一笔
//   - 已有且金额一致:跳过(同一天内重复执行是无副作用的)
//   - 已有且金额不同:更新总额;此前已结清的重新打开为Partial
//     (读者缴清了旧账,但书还没还,又欠了新的逾期天数)
//
// 罚款的amount始终表示"截至今天应缴多少",不是开单时冻结的历史数字
func (uc *AccrualSweepUseCase) Execute(ctx context.Context) (*AccrualSweepResponse, error) {
	today := uc.clock.Today()

	overdue, err := uc.loanRepo.ListActiveOverdue(ctx, today)
	if err != nil {
		return nil, err
	}

	resp := &AccrualSweepResponse{Scanned: len(overdue)}
	for _, l := range overdue {
		// 每笔借阅独立事务:单笔失败记日志继续,下个周期重试
		err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
			created, updated, err := uc.accrueOne(txCtx, l, today)
			if err != nil {
				return err
			}
			if created {
				resp.Created++
			}
			if updated {
				resp.Updated++
			}
			return nil
		})
		if err != nil {
			log.Printf("逾期计提失败: loan_id=%d, err=%v", l.ID, err)
		}
	}

	return resp, nil
}

func (uc *AccrualSweepUseCase) accrueOne(ctx context.Context, l *loan.Loan, today time.Time) (created, updated bool, err error) {
	days := clock.DaysBetween(l.DueDate, today)
	if days <= 0 {
		return false, false, nil
	}
	expected := float64(days) * uc.policy.DailyFineAmount

	existing, err := uc.fineRepo.FindOverdueByLoan(ctx, l.ID)
	if err != nil {
		return false, false, err
	}

	if existing == nil {
		f := fine.NewFine(l.ID, l.MemberID, expected, fine.ReasonOverdue)
		if err := uc.fineRepo.Create(ctx, f); err != nil {
			return false, false, err
		}
		return true, false, nil
	}

	if !existing.Reassess(expected) {
		// 金额没变,不落库
		return false, false, nil
	}
	if err := uc.fineRepo.Update(ctx, existing); err != nil {
		return false, false, err
	}
	return false, true, nil
}
