package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/tim3-dev/availability-manager/backend/internal/domain"
	"github.com/tim3-dev/availability-manager/backend/internal/roster"
	"github.com/tim3-dev/availability-manager/backend/internal/utils"
)

func (h *Handler) getMonthEntries(userID int64, month time.Time) ([]*domain.AvailabilityEntry, error) {
	days := roster.MonthDays(month)
	startDate := days[0].Format(roster.DateLayout)
	endDate := days[len(days)-1].Format(roster.DateLayout)

	return h.repository.GetAvailabilityEntries(userID, startDate, endDate)
}

func (h *Handler) GetMyMonthAvailability(w http.ResponseWriter, r *http.Request) {
	subString := r.Context().Value(SubCtxKey).(string)
	sub, err := strconv.ParseInt(subString, 10, 64)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	month := r.Context().Value(TargetMonthCtx).(time.Time)

	entries, err := h.getMonthEntries(sub, month)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取可用状态成功", entries)
}

func (h *Handler) SaveMyAvailability(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Entries []struct {
			Date       string `json:"date" validate:"required"`
			StatusCode string `json:"statusCode" validate:"required"`
		} `json:"entries" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	month := r.Context().Value(TargetMonthCtx).(time.Time)

	now := time.Now()
	isLate := utils.IsLateSubmission(now, month, h.config.Availability.SubmissionDeadlineDay)

	entries := make([]*domain.AvailabilityEntry, 0, len(req.Entries))
	for _, item := range req.Entries {
		status, err := domain.ParseStatus(item.StatusCode)
		if err != nil {
			h.badRequest(w, r, err)
			return
		}

		entries = append(entries, &domain.AvailabilityEntry{
			UserID:           myInfo.ID,
			Date:             item.Date,
			Status:           status,
			IsLateSubmission: isLate,
			EffectiveStart:   now,
			EffectiveEnd:     domain.EffectiveEndOpen,
			CreatedBy:        myInfo.ID,
			CreatedAt:        now,
		})
	}

	if err := utils.ValidateEntriesWithinMonth(entries, month); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.SaveAvailabilityEntries(myInfo.ID, entries); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 返回保存后该月份的完整状态，前端据此刷新
	saved, err := h.getMonthEntries(myInfo.ID, month)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "可用状态保存成功", saved)
}

func (h *Handler) CopyFirstWeek(w http.ResponseWriter, r *http.Request) {
	if !h.config.Features.EnableCopyWeek {
		h.errorResponse(w, r, "复制第一周功能未开启")
		return
	}

	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	month := r.Context().Value(TargetMonthCtx).(time.Time)

	current, err := h.getMonthEntries(myInfo.ID, month)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	now := time.Now()
	generated := roster.GenerateCopyWeekEntries(current, month, myInfo.ID, now)

	isLate := utils.IsLateSubmission(now, month, h.config.Availability.SubmissionDeadlineDay)
	for _, entry := range generated {
		entry.IsLateSubmission = isLate
	}

	merged := roster.MergeEntries(current, generated)
	if err := h.repository.SaveAvailabilityEntries(myInfo.ID, merged); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	saved, err := h.getMonthEntries(myInfo.ID, month)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "第一周复制成功", saved)
}

func (h *Handler) GetMemberMonthAvailability(w http.ResponseWriter, r *http.Request) {
	target := r.Context().Value(UserInfoCtx).(*domain.User)
	account := r.Context().Value(AccountCtx).(*domain.Account)
	month := r.Context().Value(TargetMonthCtx).(time.Time)

	// 目标用户必须是该账户的成员
	if _, err := h.repository.GetMembership(account.ID, target.ID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "该用户不是账户成员")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	entries, err := h.getMonthEntries(target.ID, month)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取成员可用状态成功", entries)
}
