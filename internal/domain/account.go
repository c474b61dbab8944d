package domain

import "time"

type MembershipRole string

const (
	RoleOwner    MembershipRole = "owner"    // 账户负责人
	RoleManager  MembershipRole = "manager"  // 排班经理
	RoleEmployee MembershipRole = "employee" // 普通员工
)

type Account struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}

// Membership 表示用户在某个账户下的成员关系
// 一个用户在一个账户下最多只有一条成员记录
type Membership struct {
	ID        int64          `json:"id"`
	AccountID int64          `json:"accountID"`
	UserID    int64          `json:"userID"`
	Role      MembershipRole `json:"role"`
	CreatedAt time.Time      `json:"createdAt"`
}

// AccountMember 是成员列表里返回给前端的视图
type AccountMember struct {
	UserID   int64          `json:"userID"`
	Username string         `json:"username"`
	FullName string         `json:"fullName"`
	Email    string         `json:"email"`
	Role     MembershipRole `json:"role"`
	IsActive bool           `json:"isActive"`
}
