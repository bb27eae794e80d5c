package util

import "time"

const DateLayout = "2006-01-02"

// ParseDate 解析 yyyy-MM-dd 格式的日期
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate 输出 yyyy-MM-dd 格式的日期
func FormatDate(value time.Time) string {
	return value.Format(DateLayout)
}

// AgeAt 计算 birth 在 now 时刻的周岁年龄
func AgeAt(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}
