package loan

import (
	"time"
)

// Status 借阅状态
// 流转:Active → Returned(正常归还) / Lost(挂失),两者均为关闭态
type Status string

const (
	StatusActive   Status = "Active"   // 借阅中
	StatusReturned Status = "Returned" // 已归还
	StatusLost     Status = "Lost"     // 图书挂失,借阅关闭
)

// Loan 借阅记录
// 设计说明:
//  1. 一条记录对应(副本,一次借阅期)
//  2. 不变式:一个副本同一时刻至多一条Active借阅
//     (由"副本Borrowed⇔存在Active借阅"的状态机保证)
//  3. 只保存BookItemBarcode/MemberID,不内嵌对象(通过仓储按需解析)
type Loan struct {
	ID              uint
	BookItemBarcode string
	MemberID        uint
	IssueDate       time.Time
	DueDate         time.Time
	ReturnDate      *time.Time
	RenewalCount    int
	Status          Status
}

// NewLoan 发起借阅(工厂方法)
// 到期日 = 借出日 + periodDays
func NewLoan(barcode string, memberID uint, issuedAt time.Time, periodDays int) *Loan {
	return &Loan{
		BookItemBarcode: barcode,
		MemberID:        memberID,
		IssueDate:       issuedAt,
		DueDate:         issuedAt.AddDate(0, 0, periodDays),
		RenewalCount:    0,
		Status:          StatusActive,
	}
}

// IsActive 借阅是否进行中
func (l *Loan) IsActive() bool {
	return l.Status == StatusActive
}

// IsOverdue 截至today是否已逾期
func (l *Loan) IsOverdue(today time.Time) bool {
	return l.DueDate.Before(today)
}

// Close 正常归还,关闭借阅
func (l *Loan) Close(returnedAt time.Time) error {
	if !l.IsActive() {
		return ErrLoanNotActive
	}
	l.Status = StatusReturned
	l.ReturnDate = &returnedAt
	return nil
}

// MarkLost 挂失,关闭借阅
func (l *Loan) MarkLost(closedAt time.Time) error {
	if !l.IsActive() {
		return ErrLoanNotActive
	}
	l.Status = StatusLost
	l.ReturnDate = &closedAt
	return nil
}

// Renew 续借:到期日顺延periodDays,续借次数+1
// 续借次数上限、逾期、排队预约等校验由用例层完成(依赖策略配置)
func (l *Loan) Renew(periodDays int) {
	l.DueDate = l.DueDate.AddDate(0, 0, periodDays)
	l.RenewalCount++
}

// IsOwnedBy 借阅是否属于指定读者
// 权限校验:续借只允许读者本人或馆员操作
func (l *Loan) IsOwnedBy(memberID uint) bool {
	return l.MemberID == memberID
}
