package roster

import (
	"time"

	"github.com/google/uuid"
	"github.com/tim3-dev/availability-manager/backend/internal/domain"
)

// GenerateCopyWeekEntries 把一个月前 7 天的状态按星期几复制到这个月剩下的日子上
//
// 算法：
//  1. 枚举该月份的所有日子，前 7 天作为模板窗口，第 8 天到月底作为投影窗口
//  2. 对模板窗口的每一天，在 existing 中按日期找到对应的记录并取其状态，
//     没有记录的默认为 NA，建立 星期几 -> 状态 的映射
//  3. 对投影窗口的每一天，按星期几取状态并合成一条新记录
//
// 只返回投影窗口的记录，模板窗口的记录由调用方自己保留
// 函数是纯函数，不读写任何外部存储，now 固定时结果是确定的
// 把结果合并回工作集（覆盖投影日期上的旧记录）也是调用方的职责
func GenerateCopyWeekEntries(existing []*domain.AvailabilityEntry, month time.Time, userID int64, now time.Time) []*domain.AvailabilityEntry {
	allDays := MonthDays(month)
	firstWeek := allDays[:7]

	byDate := make(map[string]*domain.AvailabilityEntry, len(existing))
	for _, entry := range existing {
		byDate[entry.Date] = entry
	}

	pattern := make(map[time.Weekday]domain.Status, 7)
	for _, day := range firstWeek {
		status := domain.NotAvailable()
		if entry, ok := byDate[day.Format(DateLayout)]; ok {
			status = entry.Status
		}
		pattern[day.Weekday()] = status
	}

	projected := make([]*domain.AvailabilityEntry, 0, len(allDays)-7)
	for _, day := range allDays[7:] {
		projected = append(projected, &domain.AvailabilityEntry{
			ID:               uuid.Nil, // 占位，持久化时由存储层分配
			UserID:           userID,
			Date:             day.Format(DateLayout),
			Status:           pattern[day.Weekday()],
			IsLateSubmission: false,
			EffectiveStart:   now,
			EffectiveEnd:     domain.EffectiveEndOpen,
			CreatedBy:        userID,
			CreatedAt:        now,
		})
	}

	return projected
}

// MergeEntries 把 generated 合并进 current，生成的记录覆盖同一天的旧记录
// 结果不保证顺序，需要排序的调用方自己排
func MergeEntries(current, generated []*domain.AvailabilityEntry) []*domain.AvailabilityEntry {
	generatedDates := make(map[string]bool, len(generated))
	for _, entry := range generated {
		generatedDates[entry.Date] = true
	}

	merged := make([]*domain.AvailabilityEntry, 0, len(current)+len(generated))
	for _, entry := range current {
		if !generatedDates[entry.Date] {
			merged = append(merged, entry)
		}
	}

	return append(merged, generated...)
}
