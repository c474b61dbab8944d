package roster

import (
	"fmt"
	"time"

	"github.com/tim3-dev/availability-manager/backend/internal/domain"
)

const DateLayout = "2006-01-02"

// ParseMonth 解析月份字符串，接受 YYYY-MM 或者 YYYY-MM-DD（日会被忽略）
// 返回该月份的第一天
func ParseMonth(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01", s); err == nil {
		return t, nil
	}

	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, s)
	}

	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
}

// MonthDays 返回给定日期所在月份的所有日子，从 1 号到最后一天升序排列
// 月份最多只有 31 天，所以直接一次性生成切片
func MonthDays(ref time.Time) []time.Time {
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)

	days := make([]time.Time, 0, 31)
	for day := start; day.Month() == start.Month(); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}

	return days
}

// MonthDaysOf 是 MonthDays 的字符串入口
func MonthDaysOf(s string) ([]time.Time, error) {
	month, err := ParseMonth(s)
	if err != nil {
		return nil, err
	}

	return MonthDays(month), nil
}

// IsWeekend 判断某一天是不是周末（以周日为一周的第一天，周日和周六是周末）
func IsWeekend(t time.Time) bool {
	return t.Weekday() == time.Sunday || t.Weekday() == time.Saturday
}
