package fine

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 罚款领域错误定义
var (
	// ErrFineNotFound 罚款记录不存在
	ErrFineNotFound = apperrors.New(apperrors.ErrCodeFineNotFound, "罚款记录不存在")

	// ErrAlreadyPaid 罚款已结清
	ErrAlreadyPaid = apperrors.New(apperrors.ErrCodeFineAlreadyPaid, "该罚款已结清")

	// ErrInvalidPayment 付款金额必须大于零
	ErrInvalidPayment = apperrors.New(apperrors.ErrCodeInvalidPayment, "付款金额必须大于零")
)

// ErrPaymentExceedsBalance 付款超过剩余应缴金额(携带余额)
func ErrPaymentExceedsBalance(remaining float64) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodePaymentExceedsBalance,
		"付款金额超过剩余应缴金额%.2f元", remaining)
}

// ErrLoanStillOpen 图书未归还,罚款不可结清(携带副本条码)
// 防止读者"交钱留书":交了罚款却继续占有图书
func ErrLoanStillOpen(barcode string) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeLoanStillOpen,
		"副本%s尚未归还,归还后才能缴纳罚款", barcode)
}

// ErrOutstandingFines 欠费达到阈值,禁止借阅/预约(携带欠费金额与阈值)
func ErrOutstandingFines(amount, threshold float64) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeOutstandingFines,
		"当前欠费%.2f元,达到%.2f元上限,请先缴清罚款", amount, threshold)
}
