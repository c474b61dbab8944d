package roster

import (
	"errors"
	"testing"
	"time"

	"github.com/tim3-dev/availability-manager/backend/internal/domain"
)

func TestParseMonth(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "year month", input: "2026-02", want: "2026-02-01"},
		{name: "full date", input: "2026-02-15", want: "2026-02-01"},
		{name: "first of month", input: "2026-02-01", want: "2026-02-01"},
		{name: "empty", input: "", wantErr: true},
		{name: "not a date", input: "february", wantErr: true},
		{name: "slash separator", input: "2026/02", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMonth(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseMonth(%q) 应该返回错误", tt.input)
				}
				if !errors.Is(err, domain.ErrInvalidDate) {
					t.Errorf("ParseMonth(%q) 的错误应该包含 ErrInvalidDate，实际为 %v", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMonth(%q) 返回了意外的错误: %v", tt.input, err)
			}
			if got.Format(DateLayout) != tt.want {
				t.Errorf("ParseMonth(%q) = %s，期望 %s", tt.input, got.Format(DateLayout), tt.want)
			}
		})
	}
}

func TestMonthDays(t *testing.T) {
	tests := []struct {
		name  string
		month string
		days  int
	}{
		{name: "january", month: "2026-01", days: 31},
		{name: "february common year", month: "2026-02", days: 28},
		{name: "february leap year", month: "2024-02", days: 29},
		{name: "april", month: "2026-04", days: 30},
		{name: "december", month: "2025-12", days: 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, err := MonthDaysOf(tt.month)
			if err != nil {
				t.Fatalf("MonthDaysOf(%q) 返回了意外的错误: %v", tt.month, err)
			}
			if len(days) != tt.days {
				t.Fatalf("MonthDaysOf(%q) 返回了 %d 天，期望 %d 天", tt.month, len(days), tt.days)
			}

			// 日期连续且升序，第一天是 1 号
			if days[0].Day() != 1 {
				t.Errorf("第一天是 %d 号，期望 1 号", days[0].Day())
			}
			for i := 1; i < len(days); i++ {
				if !days[i].Equal(days[i-1].AddDate(0, 0, 1)) {
					t.Errorf("第 %d 天和第 %d 天之间不连续", i, i+1)
				}
			}
		})
	}
}

func TestMonthDaysIgnoresDayOfRef(t *testing.T) {
	ref := time.Date(2026, time.February, 20, 13, 45, 0, 0, time.UTC)
	days := MonthDays(ref)
	if len(days) != 28 {
		t.Fatalf("返回了 %d 天，期望 28 天", len(days))
	}
	if days[0].Format(DateLayout) != "2026-02-01" {
		t.Errorf("第一天是 %s，期望 2026-02-01", days[0].Format(DateLayout))
	}
}

func TestIsWeekend(t *testing.T) {
	tests := []struct {
		date string
		want bool
	}{
		{date: "2026-02-01", want: true},  // 周日
		{date: "2026-02-02", want: false}, // 周一
		{date: "2026-02-06", want: false}, // 周五
		{date: "2026-02-07", want: true},  // 周六
	}

	for _, tt := range tests {
		day, err := time.Parse(DateLayout, tt.date)
		if err != nil {
			t.Fatalf("解析日期失败: %v", err)
		}
		if got := IsWeekend(day); got != tt.want {
			t.Errorf("IsWeekend(%s) = %v，期望 %v", tt.date, got, tt.want)
		}
	}
}
