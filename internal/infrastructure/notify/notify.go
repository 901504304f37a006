// Package notify 通知出口
//
// 设计说明:
//  1. 站内通知落库(与业务操作同一事务,通过ctx传递的事务句柄写入)
//  2. MQ开启时额外发布事件,由独立消费者做邮件/短信推送
//  3. 事件发布失败只记日志,不回滚流通事务:站内通知是事实来源,
//     外部推送是尽力而为
package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/xiebiao/library/internal/domain/notification"
	"github.com/xiebiao/library/pkg/clock"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/mq"
)

// 事件路由键
const (
	RoutingKeyHoldReady   = "reservation.fulfilled"
	RoutingKeyHoldExpired = "reservation.expired"
	RoutingKeyFineChanged = "fine.assessed"
)

// Notifier 业务通知接口
// 流通用例只依赖这个接口,测试时用内存假实现
type Notifier interface {
	// HoldReady 留书到位,提醒读者来馆取书
	HoldReady(ctx context.Context, memberID, bookID uint, title string) error

	// HoldExpired 留书保留过期,预约已失效
	HoldExpired(ctx context.Context, memberID, bookID uint, title string) error

	// FineAssessed 罚款开单或金额变更
	FineAssessed(ctx context.Context, memberID uint, amount float64, reason string) error
}

// HoldEvent 预约相关事件载荷
type HoldEvent struct {
	MemberID uint   `json:"member_id"`
	BookID   uint   `json:"book_id"`
	Title    string `json:"title"`
}

// FineEvent 罚款相关事件载荷
type FineEvent struct {
	MemberID uint    `json:"member_id"`
	Amount   float64 `json:"amount"`
	Reason   string  `json:"reason"`
}

// Service 通知服务
// publisher为nil时只落库(mq.enabled=false)
type Service struct {
	repo      notification.Repository
	publisher *mq.Publisher
	clock     clock.Clock
}

// NewService 创建通知服务
func NewService(repo notification.Repository, publisher *mq.Publisher, clk clock.Clock) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		clock:     clk,
	}
}

// HoldReady 留书到位通知
func (s *Service) HoldReady(ctx context.Context, memberID, bookID uint, title string) error {
	message := fmt.Sprintf("您预约的《%s》已到馆,请尽快来馆办理借阅", title)
	if err := s.save(ctx, memberID, message); err != nil {
		return err
	}

	s.publish(RoutingKeyHoldReady, HoldEvent{MemberID: memberID, BookID: bookID, Title: title})
	return nil
}

// HoldExpired 保留过期通知
func (s *Service) HoldExpired(ctx context.Context, memberID, bookID uint, title string) error {
	message := fmt.Sprintf("您预约的《%s》保留期已过,预约已失效", title)
	if err := s.save(ctx, memberID, message); err != nil {
		return err
	}

	s.publish(RoutingKeyHoldExpired, HoldEvent{MemberID: memberID, BookID: bookID, Title: title})
	return nil
}

// FineAssessed 罚款通知
func (s *Service) FineAssessed(ctx context.Context, memberID uint, amount float64, reason string) error {
	message := fmt.Sprintf("您有一笔罚款(%s),当前应缴金额%.2f元", reason, amount)
	if err := s.save(ctx, memberID, message); err != nil {
		return err
	}

	s.publish(RoutingKeyFineChanged, FineEvent{MemberID: memberID, Amount: amount, Reason: reason})
	return nil
}

func (s *Service) save(ctx context.Context, memberID uint, message string) error {
	return s.repo.Create(ctx, notification.New(memberID, message, s.clock.Now()))
}

func (s *Service) publish(routingKey string, event interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, event); err != nil {
		log.Printf("事件发布失败: routing_key=%s, err=%v", routingKey, err)
		return
	}
	if metrics.MessagesPublishedTotal != nil {
		metrics.IncCounterVec(metrics.MessagesPublishedTotal, map[string]string{
			"exchange":    "library.events",
			"routing_key": routingKey,
		})
	}
}
