package errors

import (
	"errors"
	"fmt"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于客户端判断错误类型（不要直接暴露HTTP状态码）
// 2. Message是用户友好的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露敏感信息）
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 用户友好的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码匹配
// 设计说明：部分业务错误携带动态上下文（如当前欠费金额、限制值），
// 每次构造出的消息不同，因此errors.Is按Code而非指针比较
func (e *AppError) Is(target error) bool {
	var appErr *AppError
	if errors.As(target, &appErr) {
		return e.Code == appErr.Code
	}
	return false
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf 创建带格式化消息的AppError
// 用途：业务错误需要携带上下文（当前状态、限制值）时使用
func Newf(code int, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 客户端错误（参数错误、业务规则校验失败）
// - 5xxxx: 服务端错误（数据库异常、外部服务调用失败）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误
	ErrCodeExternalError = 50003 // 外部服务调用失败（Google Books等）
	ErrCodePublishError  = 50004 // 消息发布失败

	// 认证授权错误（40100-40199）
	ErrCodeUnauthorized    = 40100 // 未登录
	ErrCodeInvalidToken    = 40101 // Token无效
	ErrCodeTokenExpired    = 40102 // Token过期
	ErrCodeInvalidPassword = 40103 // 密码错误
	ErrCodeForbidden       = 40104 // 无权限

	// 资源错误（40400-40499）
	ErrCodeNotFound             = 40400 // 资源不存在(通用)
	ErrCodeMemberNotFound       = 40401 // 读者不存在
	ErrCodeBookNotFound         = 40402 // 图书不存在
	ErrCodeItemNotFound         = 40403 // 馆藏副本不存在
	ErrCodeLoanNotFound         = 40404 // 借阅记录不存在
	ErrCodeReservationNotFound  = 40405 // 预约不存在
	ErrCodeFineNotFound         = 40406 // 罚款记录不存在
	ErrCodeLibrarianNotFound    = 40407 // 馆员不存在
	ErrCodeNotificationNotFound = 40408 // 通知不存在

	// 业务规则错误（40000-40099）
	ErrCodeBusinessError          = 40000 // 业务错误(通用)
	ErrCodeMemberNotActive        = 40001 // 读者账户非Active状态
	ErrCodeLoanLimitExceeded      = 40002 // 借阅数量达到上限
	ErrCodeOutstandingFines       = 40003 // 欠费超过阈值
	ErrCodeItemNotAvailable       = 40004 // 副本当前不可借
	ErrCodeReservedForOther       = 40005 // 副本已为其他读者保留
	ErrCodeNoActiveLoan           = 40006 // 该条码没有进行中的借阅
	ErrCodeRenewalLimitReached    = 40007 // 续借次数达到上限
	ErrCodeOverdueCannotRenew     = 40008 // 已逾期不可续借
	ErrCodeReservedCannotRenew    = 40009 // 有人排队预约不可续借
	ErrCodeDuplicateReservation   = 40010 // 重复预约
	ErrCodeBookCurrentlyAvailable = 40011 // 有可借副本，无需预约
	ErrCodeAlreadyBorrowed        = 40012 // 已借有该书副本
	ErrCodeLoanStillOpen          = 40013 // 图书未归还，罚款不可结清
	ErrCodeFineAlreadyPaid        = 40014 // 罚款已结清
	ErrCodeInvalidPayment         = 40015 // 付款金额不合法
	ErrCodePaymentExceedsBalance  = 40016 // 付款超过剩余应付金额
	ErrCodeItemInCirculation      = 40017 // 副本在流通中，不可删除
	ErrCodeBookHasItems           = 40018 // 图书仍有馆藏副本，不可删除
	ErrCodeBookHasReservations    = 40019 // 图书仍有有效预约，不可删除
	ErrCodeEmailDuplicate         = 40020 // 邮箱已存在
	ErrCodeISBNDuplicate          = 40021 // ISBN已存在
	ErrCodeBarcodeDuplicate       = 40022 // 条码已存在
	ErrCodeMemberHasObligations   = 40023 // 读者有未了结的借阅或罚款
	ErrCodeInvalidStatus          = 40024 // 非法的状态流转
	ErrCodeLoanNotActive          = 40025 // 借阅已关闭，不可操作

	// 参数错误（40900-40999）
	ErrCodeInvalidParams = 40900 // 参数错误
	ErrCodeBindError     = 40901 // 参数绑定失败
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "系统内部错误")
	ErrDatabaseError = New(ErrCodeDatabaseError, "数据库错误")
	ErrRedisError    = New(ErrCodeRedisError, "缓存服务错误")

	// 认证授权
	ErrUnauthorized    = New(ErrCodeUnauthorized, "请先登录")
	ErrInvalidToken    = New(ErrCodeInvalidToken, "无效的Token")
	ErrTokenExpired    = New(ErrCodeTokenExpired, "Token已过期")
	ErrInvalidPassword = New(ErrCodeInvalidPassword, "密码错误")
	ErrForbidden       = New(ErrCodeForbidden, "无权限访问")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "参数错误")
	ErrBindError     = New(ErrCodeBindError, "参数格式错误")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}

// HasCode 判断错误是否携带指定业务错误码
func HasCode(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
