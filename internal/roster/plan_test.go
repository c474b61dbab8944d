package roster

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/tim3-dev/availability-manager/backend/internal/domain"
)

func TestDates(t *testing.T) {
	entries := []*domain.AvailabilityEntry{
		{Date: "2026-02-01"},
		{Date: "2026-02-02"},
		{Date: "2026-02-01"}, // 重复
		{Date: ""},           // 空日期
		{Date: "2026-02-03"},
	}

	dates := Dates(entries)

	want := []string{"2026-02-01", "2026-02-02", "2026-02-03"}
	if len(dates) != len(want) {
		t.Fatalf("Dates 返回了 %d 个日期，期望 %d 个", len(dates), len(want))
	}
	for i, date := range want {
		if dates[i] != date {
			t.Errorf("dates[%d] = %q，期望 %q", i, dates[i], date)
		}
	}
}

func TestBuildSavePlan(t *testing.T) {
	const userID int64 = 42
	now := time.Date(2026, time.January, 20, 9, 0, 0, 0, time.UTC)

	existingID := uuid.New()
	existing := map[string]uuid.UUID{
		"2026-02-01": existingID,
	}

	entries := []*domain.AvailabilityEntry{
		{Date: "2026-02-01", Status: domain.Available(), IsLateSubmission: true},
		{Date: "2026-02-02", Status: domain.NotAvailable()},
		{Date: "", Status: domain.Available()}, // 空日期，跳过
	}

	plan := BuildSavePlan(entries, existing, userID, now)

	if plan.IsEmpty() {
		t.Fatal("保存计划不应该为空")
	}
	if len(plan.Updates) != 1 {
		t.Fatalf("更新部分有 %d 条记录，期望 1 条", len(plan.Updates))
	}
	if len(plan.Inserts) != 1 {
		t.Fatalf("插入部分有 %d 条记录，期望 1 条", len(plan.Inserts))
	}

	update := plan.Updates[0]
	if update.ID != existingID {
		t.Errorf("更新记录的 ID = %s，期望沿用已有记录的 ID %s", update.ID, existingID)
	}
	if update.Date != "2026-02-01" || update.Status.String() != "A" || !update.IsLateSubmission {
		t.Error("更新记录没有带上请求里的内容")
	}
	if !update.UpdatedAt.Equal(now) {
		t.Error("更新记录的 UpdatedAt 应该等于 now")
	}

	insert := plan.Inserts[0]
	if insert.ID != uuid.Nil {
		t.Errorf("插入记录的 ID 应该是占位的零值，实际为 %s", insert.ID)
	}
	if insert.Date != "2026-02-02" || insert.Status.String() != "NA" {
		t.Error("插入记录没有带上请求里的内容")
	}
	if insert.CreatedBy != userID || !insert.EffectiveStart.Equal(now) {
		t.Error("插入记录的创建信息不正确")
	}
	if insert.EffectiveEnd != domain.EffectiveEndOpen {
		t.Errorf("插入记录的 EffectiveEnd = %q，期望 %q", insert.EffectiveEnd, domain.EffectiveEndOpen)
	}
}

func TestBuildSavePlanIdempotent(t *testing.T) {
	// 第一次全部插入之后，用同样的请求再划分一次应该全部变成更新
	const userID int64 = 7
	now := time.Now().UTC()

	entries := []*domain.AvailabilityEntry{
		{Date: "2026-03-02", Status: domain.Available()},
		{Date: "2026-03-03", Status: domain.NotAvailable()},
	}

	first := BuildSavePlan(entries, map[string]uuid.UUID{}, userID, now)
	if len(first.Inserts) != 2 || len(first.Updates) != 0 {
		t.Fatalf("第一次划分应该全部是插入，实际为 %d 插入 %d 更新", len(first.Inserts), len(first.Updates))
	}

	existing := make(map[string]uuid.UUID, len(first.Inserts))
	for _, entry := range first.Inserts {
		existing[entry.Date] = uuid.New()
	}

	second := BuildSavePlan(entries, existing, userID, now)
	if len(second.Inserts) != 0 || len(second.Updates) != 2 {
		t.Fatalf("第二次划分应该全部是更新，实际为 %d 插入 %d 更新", len(second.Inserts), len(second.Updates))
	}
}

func TestBuildSavePlanEmptyInput(t *testing.T) {
	plan := BuildSavePlan(nil, map[string]uuid.UUID{}, 1, time.Now())
	if !plan.IsEmpty() {
		t.Error("空输入应该得到空的保存计划")
	}
}
