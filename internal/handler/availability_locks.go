package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/tim3-dev/availability-manager/backend/internal/domain"
	"github.com/tim3-dev/availability-manager/backend/internal/roster"
)

func (h *Handler) GetMonthLock(w http.ResponseWriter, r *http.Request) {
	account := r.Context().Value(AccountCtx).(*domain.Account)
	month := r.Context().Value(TargetMonthCtx).(time.Time)
	monthDate := month.Format(roster.DateLayout)

	lock, err := h.repository.GetAvailabilityLock(account.ID, monthDate)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// 没有锁记录等价于未锁定
			lock = &domain.AvailabilityLock{
				AccountID: account.ID,
				MonthDate: monthDate,
				IsLocked:  false,
			}
		default:
			h.internalServerError(w, r, err)
			return
		}
	}

	h.successResponse(w, r, "获取月份锁定状态成功", lock)
}

func (h *Handler) SetMonthLock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IsLocked *bool `json:"isLocked" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	account := r.Context().Value(AccountCtx).(*domain.Account)
	month := r.Context().Value(TargetMonthCtx).(time.Time)

	lock := &domain.AvailabilityLock{
		AccountID: account.ID,
		MonthDate: month.Format(roster.DateLayout),
		IsLocked:  *req.IsLocked,
	}
	if lock.IsLocked {
		now := time.Now()
		lock.LockedAt = &now
	}

	if err := h.repository.SetAvailabilityLock(lock); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 锁定时通知账户内所有在职成员
	if lock.IsLocked && h.config.Features.EnableMonthLockNotice {
		if err := h.notifyMonthLocked(account, month); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	h.successResponse(w, r, "月份锁定状态更新成功", lock)
}

func (h *Handler) notifyMonthLocked(account *domain.Account, month time.Time) error {
	members, err := h.repository.GetAccountMembers(account.ID)
	if err != nil {
		return err
	}

	for _, member := range members {
		if !member.IsActive {
			continue
		}

		err := h.publishMail(domain.MailMessage{
			Type: "month_locked",
			To:   member.Email,
			Data: domain.MonthLockedMailData{
				FullName:    member.FullName,
				AccountName: account.Name,
				Month:       month.Format("2006-01"),
			},
		})
		if err != nil {
			return err
		}
	}

	return nil
}
