package repository

import (
	"context"
	"time"

	"github.com/tim3-dev/availability-manager/backend/internal/domain"
)

// GetAvailabilityLock 获取某个账户某个月份的提交锁
// 没有记录时返回 sql.ErrNoRows，调用方视为未锁定
func (r *Repository) GetAvailabilityLock(accountID int64, monthDate string) (*domain.AvailabilityLock, error) {
	query := `
		SELECT id, is_locked, locked_at, version
		FROM availability_locks
		WHERE account_id = $1 AND month_date = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	lock := &domain.AvailabilityLock{
		AccountID: accountID,
		MonthDate: monthDate,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, accountID, monthDate).Scan(&lock.ID, &lock.IsLocked, &lock.LockedAt, &lock.Version); err != nil {
		return nil, err
	}

	return lock, nil
}

// SetAvailabilityLock 设置某个账户某个月份的提交锁，已有记录时直接覆盖
func (r *Repository) SetAvailabilityLock(lock *domain.AvailabilityLock) error {
	query := `
		INSERT INTO availability_locks (account_id, month_date, is_locked, locked_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (account_id, month_date)
		DO UPDATE SET
			is_locked = EXCLUDED.is_locked,
			locked_at = EXCLUDED.locked_at,
			version = availability_locks.version + 1
		RETURNING id, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{lock.AccountID, lock.MonthDate, lock.IsLocked, lock.LockedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&lock.ID, &lock.Version); err != nil {
		return err
	}

	return nil
}
