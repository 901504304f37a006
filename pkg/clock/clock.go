// Package clock 提供可注入的时间源
//
// 设计说明：
// 1. 到期日、罚款天数、预约过期等判断全部依赖"今天是哪天"
// 2. 直接调用time.Now()会让这些规则无法做确定性测试
// 3. 核心用例只依赖Clock接口，生产环境注入System，测试注入Fixed
package clock

import "time"

// Clock 时间源接口
type Clock interface {
	// Now 当前时刻（带时分秒，用于预约时间戳、通知时间）
	Now() time.Time
	// Today 当前日期（零点对齐，用于到期日比较）
	Today() time.Time
}

// System 系统时钟（生产环境）
type System struct{}

func (System) Now() time.Time { return time.Now() }

func (System) Today() time.Time {
	return Truncate(time.Now())
}

// Fixed 固定时钟（测试用）
// 用法：c := clock.NewFixed(t); c.Advance(20 * 24 * time.Hour)
type Fixed struct {
	current time.Time
}

// NewFixed 创建固定在t时刻的时钟
func NewFixed(t time.Time) *Fixed {
	return &Fixed{current: t}
}

func (f *Fixed) Now() time.Time { return f.current }

func (f *Fixed) Today() time.Time { return Truncate(f.current) }

// Advance 前进d时长（模拟流逝）
func (f *Fixed) Advance(d time.Duration) {
	f.current = f.current.Add(d)
}

// Set 直接跳到t时刻
func (f *Fixed) Set(t time.Time) {
	f.current = t
}

// Truncate 将时刻截断到当日零点
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween 计算两个日期之间相差的天数（按零点对齐后相减）
// 用途：逾期天数 = DaysBetween(dueDate, today)
func DaysBetween(from, to time.Time) int {
	from = Truncate(from)
	to = Truncate(to)
	return int(to.Sub(from).Hours() / 24)
}
