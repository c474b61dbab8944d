package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// EffectiveEndOpen 标记当前生效的记录
// 这是一个哨兵值而不是真实的时间戳，历史版本关闭时会被替换成真实时间
const EffectiveEndOpen = "infinity"

var ErrInvalidDate = errors.New("非法的日期")

// AvailabilityEntry 表示某个用户在某一天的可用状态
// (user_id, date) 在所有 effective_end 为 infinity 的记录中唯一
type AvailabilityEntry struct {
	ID               uuid.UUID `json:"id"` // uuid.Nil 表示尚未持久化的占位记录
	UserID           int64     `json:"userID"`
	Date             string    `json:"date"` // YYYY-MM-DD
	Status           Status    `json:"statusCode"`
	IsLateSubmission bool      `json:"isLateSubmission"`
	EffectiveStart   time.Time `json:"effectiveStart"`
	EffectiveEnd     string    `json:"effectiveEnd"`
	CreatedBy        int64     `json:"createdBy"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// AvailabilityLock 表示某个账户对某个月份的提交锁
// 锁定后该月份的可用状态不允许再修改，是否锁定的检查由调用方负责
type AvailabilityLock struct {
	ID        int64      `json:"id"`
	AccountID int64      `json:"accountID"`
	MonthDate string     `json:"monthDate"` // YYYY-MM-01
	IsLocked  bool       `json:"isLocked"`
	LockedAt  *time.Time `json:"lockedAt"`
	Version   int32      `json:"-"`
}
