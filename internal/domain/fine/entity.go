package fine

// Status 罚款状态
type Status string

const (
	StatusUnpaid  Status = "Unpaid"  // 未缴
	StatusPartial Status = "Partial" // 部分缴纳
	StatusPaid    Status = "Paid"    // 已结清
)

// Reason 罚款事由
// 与数据库存储值一致,三种事由中只有Overdue是动态计提的
type Reason string

const (
	ReasonOverdue  Reason = "Overdue"                       // 逾期,金额每日重算
	ReasonDamaged  Reason = "Book Returned Damaged"         // 还书时损坏,一次性
	ReasonLostBook Reason = "Replacement fee for lost book" // 图书挂失赔偿,一次性
)

// Fine 罚款
// 设计说明:
//  1. Amount是"截至当前应缴总额":Overdue罚款由每日扫描重算,
//     不是开单时冻结的历史金额;损坏/赔偿罚款开单后金额不变
//  2. AmountPaid累计已缴金额,支持分次缴纳
//  3. 欠费 = Amount - AmountPaid,读者欠费总额达到阈值后禁止借阅/预约
type Fine struct {
	ID         uint
	LoanID     uint
	MemberID   uint
	Amount     float64
	AmountPaid float64
	Reason     Reason
	Status     Status
}

// NewFine 开单(工厂方法)
func NewFine(loanID, memberID uint, amount float64, reason Reason) *Fine {
	return &Fine{
		LoanID:   loanID,
		MemberID: memberID,
		Amount:   amount,
		Reason:   reason,
		Status:   StatusUnpaid,
	}
}

// Remaining 剩余应缴金额
func (f *Fine) Remaining() float64 {
	return f.Amount - f.AmountPaid
}

// IsSettled 是否已结清
func (f *Fine) IsSettled() bool {
	return f.Status == StatusPaid || f.Remaining() <= 0
}

// Pay 缴纳(支持部分缴纳)
// 校验:金额必须为正且不超过剩余应缴金额
func (f *Fine) Pay(amount float64) error {
	if f.IsSettled() {
		return ErrAlreadyPaid
	}
	if amount <= 0 {
		return ErrInvalidPayment
	}
	if amount > f.Remaining() {
		return ErrPaymentExceedsBalance(f.Remaining())
	}

	f.AmountPaid += amount
	if f.AmountPaid >= f.Amount {
		f.Status = StatusPaid
	} else {
		f.Status = StatusPartial
	}
	return nil
}

// Reassess 重新核定应缴总额(仅Overdue罚款)
// 返回是否发生变更:金额一致时不落库,保证每日扫描幂等
// 若此前已结清但又新增了逾期天数,重新打开为Partial
func (f *Fine) Reassess(expected float64) bool {
	if f.Amount == expected {
		return false
	}
	f.Amount = expected
	if f.Status == StatusPaid && f.AmountPaid < f.Amount {
		f.Status = StatusPartial
	}
	return true
}
