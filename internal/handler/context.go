package handler

type ContextKey string

var (
	SubCtxKey        ContextKey = "sub"
	StaffCtxKey      ContextKey = "staff"
	MyInfoCtx        ContextKey = "myInfo"
	UserInfoCtx      ContextKey = "userInfo"
	AccountCtx       ContextKey = "account"
	MyMembershipCtx  ContextKey = "myMembership"
	TargetMonthCtx   ContextKey = "targetMonth"
)
