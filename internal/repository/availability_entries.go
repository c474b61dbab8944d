package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tim3-dev/availability-manager/backend/internal/domain"
	"github.com/tim3-dev/availability-manager/backend/internal/roster"
)

// GetAvailabilityEntries 获取某个用户在 [startDate, endDate] 闭区间内所有当前生效的记录
// 结果按日期升序排列
func (r *Repository) GetAvailabilityEntries(userID int64, startDate string, endDate string) ([]*domain.AvailabilityEntry, error) {
	query := `
		SELECT id, date, status_code, is_late_submission, effective_start, created_by, created_at, updated_at
		FROM availability_entries
		WHERE user_id = $1 AND date >= $2 AND date <= $3 AND effective_end = 'infinity'
		ORDER BY date
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.AvailabilityEntry, 0)
	for rows.Next() {
		entry := &domain.AvailabilityEntry{
			UserID:       userID,
			EffectiveEnd: domain.EffectiveEndOpen,
		}

		var date time.Time
		var statusCode string

		dst := []any{&entry.ID, &date, &statusCode, &entry.IsLateSubmission, &entry.EffectiveStart, &entry.CreatedBy, &entry.CreatedAt, &entry.UpdatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		entry.Date = date.Format(roster.DateLayout)
		if entry.Status, err = domain.ParseStatus(statusCode); err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// SaveAvailabilityEntries 按日期对账保存一批记录
// 请求里只要求 date 和 status_code 有效，其余字段会被忽略或者重新计算
//
// 日期命中已有生效记录的按 ID 更新，没有命中的插入新记录，
// 整个过程在一个事务里完成，不会出现两批写入一半成功一半失败的情况
// 插入遇到 (user_id, date) 唯一索引冲突时退化成更新，
// 这样两个并发保存同一天也不会产生重复记录
func (r *Repository) SaveAvailabilityEntries(userID int64, entries []*domain.AvailabilityEntry) error {
	dates := roster.Dates(entries)
	if len(dates) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// 查出这些日期上已有的生效记录并锁住，防止并发保存互相覆盖
	placeholders := make([]string, len(dates))
	args := make([]any, 0, len(dates)+1)
	args = append(args, userID)
	for i, date := range dates {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, date)
	}

	query := fmt.Sprintf(`
		SELECT id, date
		FROM availability_entries
		WHERE user_id = $1 AND date IN (%s) AND effective_end = 'infinity'
		FOR UPDATE
	`, strings.Join(placeholders, ", "))

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}

	existing := make(map[string]uuid.UUID)
	for rows.Next() {
		var id uuid.UUID
		var date time.Time
		if err := rows.Scan(&id, &date); err != nil {
			rows.Close()
			return err
		}
		existing[date.Format(roster.DateLayout)] = id
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	plan := roster.BuildSavePlan(entries, existing, userID, time.Now())

	for _, entry := range plan.Inserts {
		query := `
			INSERT INTO availability_entries (user_id, date, status_code, is_late_submission, effective_start, effective_end, created_by)
			VALUES ($1, $2, $3, $4, $5, 'infinity', $6)
			ON CONFLICT (user_id, date) WHERE effective_end = 'infinity'
			DO UPDATE SET
				status_code = EXCLUDED.status_code,
				is_late_submission = EXCLUDED.is_late_submission,
				updated_at = now()
		`

		args := []any{userID, entry.Date, entry.Status.String(), entry.IsLateSubmission, entry.EffectiveStart, entry.CreatedBy}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	for _, entry := range plan.Updates {
		query := `
			UPDATE availability_entries
			SET status_code = $1, is_late_submission = $2, updated_at = $3
			WHERE id = $4
		`

		args := []any{entry.Status.String(), entry.IsLateSubmission, entry.UpdatedAt, entry.ID}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
