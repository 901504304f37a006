package loan

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 借阅领域错误定义
var (
	// ErrLoanNotFound 借阅记录不存在
	ErrLoanNotFound = apperrors.New(apperrors.ErrCodeLoanNotFound, "借阅记录不存在")

	// ErrNoActiveLoan 该条码没有进行中的借阅
	ErrNoActiveLoan = apperrors.New(apperrors.ErrCodeNoActiveLoan, "该条码没有进行中的借阅")

	// ErrLoanNotActive 借阅已关闭,不可操作
	ErrLoanNotActive = apperrors.New(apperrors.ErrCodeLoanNotActive, "借阅已关闭,不可操作")

	// ErrOverdueCannotRenew 已逾期不可续借
	ErrOverdueCannotRenew = apperrors.New(apperrors.ErrCodeOverdueCannotRenew,
		"图书已逾期,请先归还")

	// ErrReservedCannotRenew 有人排队预约,不可续借
	ErrReservedCannotRenew = apperrors.New(apperrors.ErrCodeReservedCannotRenew,
		"该书已有读者排队预约,不可续借")
)

// ErrLoanLimitExceeded 借阅数量达到上限(携带限制值)
func ErrLoanLimitExceeded(limit int) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeLoanLimitExceeded,
		"已达到最大借阅数量(%d本)", limit)
}

// ErrRenewalLimitReached 续借次数达到上限(携带限制值)
func ErrRenewalLimitReached(limit int) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeRenewalLimitReached,
		"已达到最大续借次数(%d次)", limit)
}
