package member

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 读者领域错误定义
var (
	// ErrMemberNotFound 读者不存在
	ErrMemberNotFound = apperrors.New(apperrors.ErrCodeMemberNotFound, "读者不存在")

	// ErrLibrarianNotFound 馆员不存在
	ErrLibrarianNotFound = apperrors.New(apperrors.ErrCodeLibrarianNotFound, "馆员账户不存在")

	// ErrEmailDuplicate 邮箱已被注册
	ErrEmailDuplicate = apperrors.New(apperrors.ErrCodeEmailDuplicate, "邮箱已被注册")

	// ErrMemberHasObligations 读者有未了结的借阅或罚款,不可删除
	ErrMemberHasObligations = apperrors.New(apperrors.ErrCodeMemberHasObligations,
		"读者仍有未归还图书或未结清罚款,不可删除")
)

// ErrMemberNotActive 读者账户非Active状态(携带当前状态)
func ErrMemberNotActive(status Status) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeMemberNotActive,
		"读者账户状态为%s,无法办理", status)
}
