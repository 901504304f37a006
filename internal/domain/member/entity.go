package member

import (
	"time"
)

// Status 读者账户状态
type Status string

const (
	StatusActive      Status = "Active"      // 正常
	StatusDeactivated Status = "Deactivated" // 停用(读者主动注销或长期未续期)
	StatusBlocked     Status = "Blocked"     // 冻结(违规,禁止借阅)
)

// Role 馆员角色
type Role string

const (
	RoleLibrarian Role = "Librarian" // 普通馆员
	RoleAdmin     Role = "Admin"     // 管理员
)

// Member 读者
// 设计说明:
// 1. 读者拥有借阅、预约、罚款(通过member_id关联,不内嵌对象图)
// 2. 只有Active状态的读者才能发起借阅/续借
type Member struct {
	ID             uint
	Email          string
	HashedPassword string
	FullName       string
	PhoneNumber    string
	Address        string
	Status         Status
	DateRegistered time.Time
}

// NewMember 注册新读者(工厂方法)
func NewMember(email, hashedPassword, fullName, phone, address string, now time.Time) *Member {
	return &Member{
		Email:          email,
		HashedPassword: hashedPassword,
		FullName:       fullName,
		PhoneNumber:    phone,
		Address:        address,
		Status:         StatusActive,
		DateRegistered: now,
	}
}

// IsActive 账户是否正常
func (m *Member) IsActive() bool {
	return m.Status == StatusActive
}

// Librarian 馆员(工作人员账户)
// 收取罚款、强制过期保留等操作要求馆员身份
type Librarian struct {
	ID             uint
	Email          string
	HashedPassword string
	FullName       string
	Role           Role
	IsActive       bool
}

// IsStaffRole 判断角色字符串是否为馆员角色
// 用途:续借/收款等操作区分"读者本人"和"馆员代办"
func IsStaffRole(role string) bool {
	return role == string(RoleLibrarian) || role == string(RoleAdmin)
}
