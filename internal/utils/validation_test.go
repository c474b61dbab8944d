package utils

import (
	"testing"
	"time"

	"github.com/tim3-dev/availability-manager/backend/internal/domain"
)

func entriesOf(dates ...string) []*domain.AvailabilityEntry {
	entries := make([]*domain.AvailabilityEntry, 0, len(dates))
	for _, date := range dates {
		entries = append(entries, &domain.AvailabilityEntry{
			Date:   date,
			Status: domain.NotAvailable(),
		})
	}
	return entries
}

func TestValidateEntriesWithinMonth(t *testing.T) {
	month := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		dates   []string
		wantErr bool
	}{
		{name: "all in month", dates: []string{"2026-02-01", "2026-02-15", "2026-02-28"}},
		{name: "empty batch", dates: nil},
		{name: "previous month", dates: []string{"2026-01-31"}, wantErr: true},
		{name: "next month", dates: []string{"2026-03-01"}, wantErr: true},
		{name: "wrong year same month", dates: []string{"2025-02-10"}, wantErr: true},
		{name: "duplicate date", dates: []string{"2026-02-10", "2026-02-10"}, wantErr: true},
		{name: "malformed date", dates: []string{"2026/02/10"}, wantErr: true},
		{name: "nonexistent day", dates: []string{"2026-02-30"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntriesWithinMonth(entriesOf(tt.dates...), month)
			if tt.wantErr && err == nil {
				t.Errorf("日期 %v 应该校验失败", tt.dates)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("日期 %v 校验失败: %v", tt.dates, err)
			}
		})
	}
}

func TestIsLateSubmission(t *testing.T) {
	// 3 月的截止时间是 2 月 15 号当天结束
	month := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	const deadlineDay = 15

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{name: "well before deadline", now: time.Date(2026, time.February, 1, 10, 0, 0, 0, time.UTC), want: false},
		{name: "deadline day morning", now: time.Date(2026, time.February, 15, 8, 0, 0, 0, time.UTC), want: false},
		{name: "deadline day last second", now: time.Date(2026, time.February, 15, 23, 59, 59, 0, time.UTC), want: false},
		{name: "day after deadline", now: time.Date(2026, time.February, 16, 0, 0, 0, 0, time.UTC), want: true},
		{name: "within target month", now: time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLateSubmission(tt.now, month, deadlineDay); got != tt.want {
				t.Errorf("IsLateSubmission(%s) = %v，期望 %v", tt.now.Format(time.RFC3339), got, tt.want)
			}
		})
	}
}

func TestIsLateSubmissionNoDeadline(t *testing.T) {
	month := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)

	if IsLateSubmission(now, month, 0) {
		t.Error("截止日为 0 时永远不算迟交")
	}
}

func TestGenerateRandomStatusIsValid(t *testing.T) {
	for i := 0; i < 100; i++ {
		status := GenerateRandomStatus()
		if _, err := domain.ParseStatus(status.String()); err != nil {
			t.Fatalf("生成了非法的状态 %q: %v", status.String(), err)
		}
	}
}

func TestGenerateRandomMonthEntriesCoversMonth(t *testing.T) {
	month := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()

	entries := GenerateRandomMonthEntries(9, month, now)

	if len(entries) != 28 {
		t.Fatalf("生成了 %d 条记录，期望 28 条", len(entries))
	}
	if err := ValidateEntriesWithinMonth(entries, month); err != nil {
		t.Errorf("生成的记录没有通过月份校验: %v", err)
	}
}
