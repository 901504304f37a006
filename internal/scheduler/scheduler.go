// Package scheduler 后台维护任务调度
//
// 按固定间隔执行两件事:
// 1. 过期留书释放:超过保留期的Fulfilled预约置为Expired,副本交还队列
// 2. 逾期罚款计提:重算每条逾期在借借阅的应缴金额
// 两个任务都是幂等的,多跑一轮不会重复开单或重复释放。
package scheduler

import (
	"context"
	"log"
	"time"

	appfine "github.com/xiebiao/library/internal/application/fine"
	appreservation "github.com/xiebiao/library/internal/application/reservation"
	"github.com/xiebiao/library/pkg/metrics"
)

// 任务名,同时用作指标的job标签
const (
	jobHoldExpiry  = "hold_expiry"
	jobFineAccrual = "fine_accrual"
)

// Scheduler 维护任务调度器
type Scheduler struct {
	expireHolds  *appreservation.ExpireHoldsUseCase
	accrualSweep *appfine.AccrualSweepUseCase
	interval     time.Duration
}

// New 创建调度器
func New(
	expireHolds *appreservation.ExpireHoldsUseCase,
	accrualSweep *appfine.AccrualSweepUseCase,
	interval time.Duration,
) *Scheduler {
	return &Scheduler{
		expireHolds:  expireHolds,
		accrualSweep: accrualSweep,
		interval:     interval,
	}
}

// Start 启动调度循环,阻塞直到ctx取消
// 启动时先跑一轮:服务重启期间积压的过期留书和逾期罚款立即处理
func (s *Scheduler) Start(ctx context.Context) {
	log.Printf("[scheduler] 维护任务启动,间隔%v", s.interval)

	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[scheduler] 维护任务停止")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

// runOnce 执行一轮维护
// 先释放过期留书再计提罚款,一个任务失败不影响另一个
func (s *Scheduler) runOnce(ctx context.Context) {
	s.runHoldExpiry(ctx)
	s.runFineAccrual(ctx)
}

func (s *Scheduler) runHoldExpiry(ctx context.Context) {
	start := time.Now()

	resp, err := s.expireHolds.Execute(ctx)
	s.record(jobHoldExpiry, start, err)
	if err != nil {
		log.Printf("[scheduler] 过期留书释放失败: %v", err)
		return
	}
	if resp.Expired > 0 {
		log.Printf("[scheduler] 过期留书释放完成,共释放%d条", resp.Expired)
	}
}

func (s *Scheduler) runFineAccrual(ctx context.Context) {
	start := time.Now()

	resp, err := s.accrualSweep.Execute(ctx)
	s.record(jobFineAccrual, start, err)
	if err != nil {
		log.Printf("[scheduler] 逾期罚款计提失败: %v", err)
		return
	}
	if resp.Created > 0 || resp.Updated > 0 {
		log.Printf("[scheduler] 逾期罚款计提完成,扫描%d条,新开%d单,更新%d单",
			resp.Scanned, resp.Created, resp.Updated)
	}
}

// record 上报任务执行指标
func (s *Scheduler) record(job string, start time.Time, err error) {
	if metrics.SweepRunsTotal == nil {
		return
	}

	result := "success"
	if err != nil {
		result = "failure"
	}
	metrics.IncCounterVec(metrics.SweepRunsTotal, map[string]string{"job": job, "result": result})
	metrics.ObserveHistogramVec(metrics.SweepDuration, map[string]string{"job": job},
		time.Since(start).Seconds())
}
