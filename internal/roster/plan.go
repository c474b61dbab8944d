package roster

import (
	"time"

	"github.com/google/uuid"
	"github.com/tim3-dev/availability-manager/backend/internal/domain"
)

// SavePlan 是一次保存操作中插入和更新两部分的划分结果
type SavePlan struct {
	Inserts []*domain.AvailabilityEntry
	Updates []*domain.AvailabilityEntry
}

func (p *SavePlan) IsEmpty() bool {
	return len(p.Inserts) == 0 && len(p.Updates) == 0
}

// Dates 收集一批记录中去重后的非空日期
func Dates(entries []*domain.AvailabilityEntry) []string {
	seen := make(map[string]bool, len(entries))
	dates := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Date == "" || seen[entry.Date] {
			continue
		}
		seen[entry.Date] = true
		dates = append(dates, entry.Date)
	}
	return dates
}

// BuildSavePlan 把请求的记录划分成插入和更新两部分
// existing 是 日期 -> 已有记录 ID 的映射（只包含当前生效的记录）
// 日期命中已有记录的变成更新，带上命中的 ID 并刷新 UpdatedAt；
// 没有命中的变成插入，调用方给的 ID 会被丢弃，由存储层重新分配
// 日期为空的记录直接跳过
func BuildSavePlan(entries []*domain.AvailabilityEntry, existing map[string]uuid.UUID, userID int64, now time.Time) *SavePlan {
	plan := &SavePlan{
		Inserts: make([]*domain.AvailabilityEntry, 0, len(entries)),
		Updates: make([]*domain.AvailabilityEntry, 0, len(entries)),
	}

	for _, entry := range entries {
		if entry.Date == "" {
			continue
		}

		if existingID, ok := existing[entry.Date]; ok {
			plan.Updates = append(plan.Updates, &domain.AvailabilityEntry{
				ID:               existingID,
				UserID:           userID,
				Date:             entry.Date,
				Status:           entry.Status,
				IsLateSubmission: entry.IsLateSubmission,
				EffectiveEnd:     domain.EffectiveEndOpen,
				UpdatedAt:        now,
			})
			continue
		}

		plan.Inserts = append(plan.Inserts, &domain.AvailabilityEntry{
			ID:               uuid.Nil,
			UserID:           userID,
			Date:             entry.Date,
			Status:           entry.Status,
			IsLateSubmission: entry.IsLateSubmission,
			EffectiveStart:   now,
			EffectiveEnd:     domain.EffectiveEndOpen,
			CreatedBy:        userID,
		})
	}

	return plan
}
