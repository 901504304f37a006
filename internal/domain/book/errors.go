package book

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrItemNotFound 馆藏副本不存在
	ErrItemNotFound = apperrors.New(apperrors.ErrCodeItemNotFound, "馆藏副本不存在")

	// ErrISBNDuplicate ISBN重复
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "ISBN号已存在")

	// ErrBarcodeDuplicate 条码重复
	ErrBarcodeDuplicate = apperrors.New(apperrors.ErrCodeBarcodeDuplicate, "该条码已登记")

	// ErrInvalidItemTransition 非法的副本状态流转
	ErrInvalidItemTransition = apperrors.New(apperrors.ErrCodeInvalidStatus, "副本状态不允许此操作")

	// ErrBookHasItems 图书仍有在藏副本,不可删除
	ErrBookHasItems = apperrors.New(apperrors.ErrCodeBookHasItems, "仍有馆藏副本,请先删除副本")

	// ErrBookHasReservations 图书仍有有效预约,不可删除
	ErrBookHasReservations = apperrors.New(apperrors.ErrCodeBookHasReservations, "该书仍有读者排队预约,不可删除")
)

// ErrItemInCirculation 副本在流通中,不可删除(携带当前状态)
func ErrItemInCirculation(status ItemStatus) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeItemInCirculation,
		"副本当前状态为%s,归还后才能删除", status)
}
