package roster

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/tim3-dev/availability-manager/backend/internal/domain"
)

func mustStatus(t *testing.T, code string) domain.Status {
	t.Helper()
	status, err := domain.ParseStatus(code)
	if err != nil {
		t.Fatalf("解析状态失败: %v", err)
	}
	return status
}

func makeEntry(t *testing.T, userID int64, date string, code string) *domain.AvailabilityEntry {
	t.Helper()
	return &domain.AvailabilityEntry{
		ID:           uuid.New(),
		UserID:       userID,
		Date:         date,
		Status:       mustStatus(t, code),
		EffectiveEnd: domain.EffectiveEndOpen,
	}
}

func TestGenerateCopyWeekEntries(t *testing.T) {
	// 2026 年 2 月共 28 天，1 号是周日
	month := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC)
	const userID int64 = 42

	existing := []*domain.AvailabilityEntry{
		makeEntry(t, userID, "2026-02-01", "NA"),  // 周日
		makeEntry(t, userID, "2026-02-02", "D,E"), // 周一
		makeEntry(t, userID, "2026-02-07", "A"),   // 周六
		// 周二到周五没有记录，默认为 NA
	}

	generated := GenerateCopyWeekEntries(existing, month, userID, now)

	if len(generated) != 21 {
		t.Fatalf("生成了 %d 条记录，期望 21 条（2 月 8 号到 28 号）", len(generated))
	}

	byDate := make(map[string]*domain.AvailabilityEntry, len(generated))
	for _, entry := range generated {
		byDate[entry.Date] = entry
	}

	// 投影窗口不能覆盖模板窗口
	for day := 1; day <= 7; day++ {
		date := time.Date(2026, time.February, day, 0, 0, 0, 0, time.UTC).Format(DateLayout)
		if _, ok := byDate[date]; ok {
			t.Errorf("模板窗口内的日期 %s 不应该被生成", date)
		}
	}

	tests := []struct {
		date string
		want string
	}{
		{date: "2026-02-08", want: "NA"},  // 周日，复制 2 月 1 号
		{date: "2026-02-09", want: "D,E"}, // 周一，复制 2 月 2 号
		{date: "2026-02-10", want: "NA"},  // 周二没有记录，默认 NA
		{date: "2026-02-14", want: "A"},   // 周六，复制 2 月 7 号
		{date: "2026-02-22", want: "NA"},
		{date: "2026-02-23", want: "D,E"},
		{date: "2026-02-28", want: "A"},
	}
	for _, tt := range tests {
		entry, ok := byDate[tt.date]
		if !ok {
			t.Errorf("没有生成 %s 的记录", tt.date)
			continue
		}
		if entry.Status.String() != tt.want {
			t.Errorf("%s 的状态 = %q，期望 %q", tt.date, entry.Status.String(), tt.want)
		}
	}

	for _, entry := range generated {
		if entry.ID != uuid.Nil {
			t.Errorf("%s 的 ID 应该是占位的零值", entry.Date)
		}
		if entry.UserID != userID || entry.CreatedBy != userID {
			t.Errorf("%s 的用户字段不正确", entry.Date)
		}
		if !entry.EffectiveStart.Equal(now) || !entry.CreatedAt.Equal(now) {
			t.Errorf("%s 的时间字段应该等于 now", entry.Date)
		}
		if entry.EffectiveEnd != domain.EffectiveEndOpen {
			t.Errorf("%s 的 EffectiveEnd = %q，期望 %q", entry.Date, entry.EffectiveEnd, domain.EffectiveEndOpen)
		}
	}
}

func TestGenerateCopyWeekEntriesEmptyFirstWeek(t *testing.T) {
	month := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()

	generated := GenerateCopyWeekEntries(nil, month, 7, now)

	if len(generated) != 23 {
		t.Fatalf("生成了 %d 条记录，期望 23 条（4 月 8 号到 30 号）", len(generated))
	}
	for _, entry := range generated {
		if entry.Status.String() != "NA" {
			t.Errorf("%s 的状态 = %q，第一周为空时应该全部默认 NA", entry.Date, entry.Status.String())
		}
	}
}

func TestMergeEntries(t *testing.T) {
	const userID int64 = 42
	current := []*domain.AvailabilityEntry{
		makeEntry(t, userID, "2026-02-01", "A"),
		makeEntry(t, userID, "2026-02-08", "D"),
	}
	generated := []*domain.AvailabilityEntry{
		makeEntry(t, userID, "2026-02-08", "NA"),
		makeEntry(t, userID, "2026-02-09", "E"),
	}

	merged := MergeEntries(current, generated)

	if len(merged) != 3 {
		t.Fatalf("合并后有 %d 条记录，期望 3 条", len(merged))
	}

	byDate := make(map[string]*domain.AvailabilityEntry, len(merged))
	for _, entry := range merged {
		byDate[entry.Date] = entry
	}

	if byDate["2026-02-01"].Status.String() != "A" {
		t.Error("没有被生成记录覆盖的日期应该保留原状态")
	}
	if byDate["2026-02-08"].Status.String() != "NA" {
		t.Error("生成的记录应该覆盖同一天的旧记录")
	}
	if byDate["2026-02-09"].Status.String() != "E" {
		t.Error("生成的新日期应该出现在合并结果里")
	}
}
