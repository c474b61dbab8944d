package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tim3-dev/availability-manager/backend/internal/domain"
)

func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name" validate:"required,max=64"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	subString := r.Context().Value(SubCtxKey).(string)
	sub, err := strconv.ParseInt(subString, 10, 64)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	account := &domain.Account{
		Name: req.Name,
	}

	// 创建者自动成为账户负责人
	if err := h.repository.CreateAccountWithOwner(account, sub); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "账户创建成功", account)
}

func (h *Handler) GetMyAccounts(w http.ResponseWriter, r *http.Request) {
	subString := r.Context().Value(SubCtxKey).(string)
	sub, err := strconv.ParseInt(subString, 10, 64)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	accounts, err := h.repository.GetAccountsByUserID(sub)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取账户列表成功", accounts)
}

func (h *Handler) GetAccountInfo(w http.ResponseWriter, r *http.Request) {
	account := r.Context().Value(AccountCtx).(*domain.Account)
	myMembership := r.Context().Value(MyMembershipCtx).(*domain.Membership)

	h.successResponse(w, r, "获取账户信息成功", map[string]any{
		"account": account,
		"myRole":  myMembership.Role,
	})
}

func (h *Handler) GetAccountMembers(w http.ResponseWriter, r *http.Request) {
	account := r.Context().Value(AccountCtx).(*domain.Account)

	members, err := h.repository.GetAccountMembers(account.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取成员列表成功", members)
}

func (h *Handler) AddAccountMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string                `json:"username" validate:"required"`
		Role     domain.MembershipRole `json:"role" validate:"required,oneof=owner manager employee"`
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
	myMembership := r.Context().Value(MyMembershipCtx).(*domain.Membership)

	// 只有负责人能添加新的负责人
	if req.Role == domain.RoleOwner && myMembership.Role != domain.RoleOwner {
		h.errorResponse(w, r, "权限不足")
		return
	}

	user, err := h.repository.GetUserByUsername(req.Username)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.badRequest(w, r, errors.New("用户不存在"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	membership := &domain.Membership{
		AccountID: account.ID,
		UserID:    user.ID,
		Role:      req.Role,
	}

	if err := h.repository.CreateMembership(membership); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "memberships_account_id_user_id_key":
			h.badRequest(w, r, errors.New("该用户已经是账户成员"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "成员添加成功", membership)
}
