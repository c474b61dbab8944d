package utils

import (
	"fmt"
	"time"

	"github.com/tim3-dev/availability-manager/backend/internal/domain"
	"github.com/tim3-dev/availability-manager/backend/internal/roster"
)

// ValidateEntriesWithinMonth 检查一批记录的日期是否都落在目标月份内且没有重复
func ValidateEntriesWithinMonth(entries []*domain.AvailabilityEntry, month time.Time) error {
	seen := make(map[string]bool, len(entries))

	for i, entry := range entries {
		date, err := time.Parse(roster.DateLayout, entry.Date)
		if err != nil {
			return fmt.Errorf("第 %d 条记录的日期格式错误", i+1)
		}

		if date.Year() != month.Year() || date.Month() != month.Month() {
			return fmt.Errorf("日期 %s 不在目标月份内", entry.Date)
		}

		if seen[entry.Date] {
			return fmt.Errorf("日期 %s 重复出现", entry.Date)
		}
		seen[entry.Date] = true
	}

	return nil
}

// IsLateSubmission 判断在 now 这个时刻提交 month 月份的可用状态算不算迟交
// 截止时间是上个月 deadlineDay 号的当天结束，deadlineDay 不为正数时表示不设截止
func IsLateSubmission(now time.Time, month time.Time, deadlineDay int) bool {
	if deadlineDay <= 0 {
		return false
	}

	firstOfMonth := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	deadline := firstOfMonth.AddDate(0, -1, deadlineDay-1)
	// 截止日当天 23:59:59 之后才算迟交
	deadline = deadline.AddDate(0, 0, 1)

	return !now.Before(deadline)
}
