package seed

import (
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/tim3-dev/availability-manager/backend/internal/config"
	"github.com/tim3-dev/availability-manager/backend/internal/domain"
	"github.com/tim3-dev/availability-manager/backend/internal/repository"
	"github.com/tim3-dev/availability-manager/backend/internal/roster"
	"github.com/tim3-dev/availability-manager/backend/internal/utils"
)

// 演示账户的成员构成：一个负责人、一个经理、若干普通员工
const demoEmployeeCount = 6

func getOrCreateUser(repo *repository.Repository, user *domain.User) (*domain.User, error) {
	existing, err := repo.GetUserByUsername(user.Username)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	if err := repo.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SeedDemoData 往数据库里插入一套完整的演示数据：
// 一个演示账户、三种角色的成员、本月的可用状态记录，以及一个已锁定的上个月
func SeedDemoData(cfg *config.Config, repo *repository.Repository) {
	account := &domain.Account{
		Name: "示例排班团队",
	}

	// 负责人
	owner, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain, "demo_")
	if err != nil {
		slog.Error("无法生成负责人", "error", err)
		return
	}
	owner, err = getOrCreateUser(repo, owner)
	if err != nil {
		slog.Error("无法插入负责人", "error", err)
		return
	}

	if err := repo.CreateAccountWithOwner(account, owner.ID); err != nil {
		slog.Error("无法创建演示账户", "error", err)
		return
	}
	slog.Info("演示账户已创建", "account_id", account.ID, "owner", owner.Username)

	// 经理
	manager, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain, "demo_")
	if err != nil {
		slog.Error("无法生成经理", "error", err)
		return
	}
	manager, err = getOrCreateUser(repo, manager)
	if err != nil {
		slog.Error("无法插入经理", "error", err)
		return
	}
	if err := repo.CreateMembership(&domain.Membership{
		AccountID: account.ID,
		UserID:    manager.ID,
		Role:      domain.RoleManager,
	}); err != nil {
		slog.Error("无法插入经理的成员关系", "error", err)
		return
	}

	// 普通员工，每个人都随机填满本月的可用状态
	now := time.Now().UTC()
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < demoEmployeeCount; i++ {
		employee, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain, "demo_")
		if err != nil {
			slog.Error("无法生成员工", "error", err)
			continue
		}
		employee, err = getOrCreateUser(repo, employee)
		if err != nil {
			slog.Error("无法插入员工", "error", err)
			continue
		}

		if err := repo.CreateMembership(&domain.Membership{
			AccountID: account.ID,
			UserID:    employee.ID,
			Role:      domain.RoleEmployee,
		}); err != nil {
			slog.Error("无法插入员工的成员关系", "error", err)
			continue
		}

		entries := utils.GenerateRandomMonthEntries(employee.ID, month, now)
		if err := repo.SaveAvailabilityEntries(employee.ID, entries); err != nil {
			slog.Error("无法插入员工的可用状态", "error", err, "username", employee.Username)
			continue
		}
	}

	// 上个月锁定，方便演示锁定后的只读效果
	lastMonth := month.AddDate(0, -1, 0)
	lockedAt := now
	lock := &domain.AvailabilityLock{
		AccountID: account.ID,
		MonthDate: lastMonth.Format(roster.DateLayout),
		IsLocked:  true,
		LockedAt:  &lockedAt,
	}
	if err := repo.SetAvailabilityLock(lock); err != nil {
		slog.Error("无法锁定上个月", "error", err)
		return
	}

	slog.Info("演示数据插入完成", "account_id", account.ID)
}
