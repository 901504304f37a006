package reservation

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 预约领域错误定义
var (
	// ErrReservationNotFound 预约不存在
	ErrReservationNotFound = apperrors.New(apperrors.ErrCodeReservationNotFound, "预约不存在")

	// ErrDuplicateReservation 已有有效预约,不可重复预约
	ErrDuplicateReservation = apperrors.New(apperrors.ErrCodeDuplicateReservation,
		"您已预约过这本书")

	// ErrBookCurrentlyAvailable 有在架副本,直接借即可,不允许"占坑"
	ErrBookCurrentlyAvailable = apperrors.New(apperrors.ErrCodeBookCurrentlyAvailable,
		"该书当前有可借副本,请直接借阅")

	// ErrAlreadyBorrowed 已借有该书副本,须先归还再预约
	ErrAlreadyBorrowed = apperrors.New(apperrors.ErrCodeAlreadyBorrowed,
		"您已借有这本书,归还后才能预约")

	// ErrInvalidTransition 非法的预约状态流转
	ErrInvalidTransition = apperrors.New(apperrors.ErrCodeInvalidStatus, "预约状态不允许此操作")
)
