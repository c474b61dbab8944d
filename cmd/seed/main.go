package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/tim3-dev/availability-manager/backend/internal/config"
	"github.com/tim3-dev/availability-manager/backend/internal/domain"
	"github.com/tim3-dev/availability-manager/backend/internal/repository"
	"github.com/tim3-dev/availability-manager/backend/internal/roster"
	"github.com/tim3-dev/availability-manager/backend/internal/seed"
	"github.com/tim3-dev/availability-manager/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var userID int64
	var accountID int64
	var month string
	var prefix string

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机用户, 2: 创建随机账户, 3: 插入随机可用状态, 4: 锁定月份, 5: 插入演示数据, 6: 按前缀清理测试用户)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.Int64Var(&userID, "user-id", 0, "插入可用状态的用户 ID")
	flag.Int64Var(&accountID, "account-id", 0, "锁定月份的账户 ID")
	flag.StringVar(&month, "month", "", "目标月份 (YYYY-MM)")
	flag.StringVar(&prefix, "prefix", "test_", "要清理的测试用户的用户名前缀")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的用户数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain, prefix)
				if err != nil {
					slog.Error("无法生成随机用户", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateUser(user); err != nil {
					slog.Error("无法插入用户", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入用户成功", slog.Int("count", n-cnt))
		}
	case 2:
		// 创建一个随机账户，随机选一个用户当负责人
		users, err := repo.GetAllUsers()
		if err != nil {
			slog.Error("无法获取用户列表", slog.String("error", err.Error()))
			return
		}
		if len(users) == 0 {
			slog.Error("数据库中没有用户，请先插入用户")
			return
		}

		account := &domain.Account{
			Name: "测试账户" + utils.GenerateRandomID(3, 3),
		}
		owner := users[0]
		if err := repo.CreateAccountWithOwner(account, owner.ID); err != nil {
			slog.Error("无法创建账户", slog.String("error", err.Error()))
			return
		}

		// 剩下的用户都作为普通员工加入
		cnt := 0
		for _, user := range users[1:] {
			if err := repo.CreateMembership(&domain.Membership{
				AccountID: account.ID,
				UserID:    user.ID,
				Role:      domain.RoleEmployee,
			}); err != nil {
				slog.Error("无法插入成员关系", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}

		slog.Info("创建账户成功", slog.Int64("account_id", account.ID), slog.Int("member_count", cnt+1))
	case 3:
		if userID <= 0 {
			slog.Error("请输入合法的用户 ID")
			return
		}

		targetMonth, err := roster.ParseMonth(month)
		if err != nil {
			slog.Error("请输入合法的月份", slog.String("error", err.Error()))
			return
		}

		// 确认用户存在
		user, err := repo.GetUserByID(userID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				slog.Error("指定的用户不存在", slog.Int64("user_id", userID))
			default:
				slog.Error("无法获取用户", slog.String("error", err.Error()))
			}
			return
		}

		entries := utils.GenerateRandomMonthEntries(user.ID, targetMonth, time.Now().UTC())
		if err := repo.SaveAvailabilityEntries(user.ID, entries); err != nil {
			slog.Error("无法插入可用状态", slog.String("error", err.Error()))
			return
		}

		slog.Info("插入可用状态成功", slog.Int("count", len(entries)))
	case 4:
		if accountID <= 0 {
			slog.Error("请输入合法的账户 ID")
			return
		}

		targetMonth, err := roster.ParseMonth(month)
		if err != nil {
			slog.Error("请输入合法的月份", slog.String("error", err.Error()))
			return
		}

		now := time.Now().UTC()
		lock := &domain.AvailabilityLock{
			AccountID: accountID,
			MonthDate: targetMonth.Format(roster.DateLayout),
			IsLocked:  true,
			LockedAt:  &now,
		}
		if err := repo.SetAvailabilityLock(lock); err != nil {
			slog.Error("无法锁定月份", slog.String("error", err.Error()))
			return
		}

		slog.Info("锁定月份成功", slog.Int64("account_id", accountID), slog.String("month", lock.MonthDate))
	case 5:
		seed.SeedDemoData(cfg, repo)
	case 6:
		if prefix == "" {
			slog.Error("请输入合法的用户名前缀")
			return
		}

		count, err := repo.DeleteUsersByUsernamePrefix(prefix)
		if err != nil {
			slog.Error("无法清理测试用户", slog.String("error", err.Error()))
			return
		}

		slog.Info("清理测试用户成功", slog.Int64("count", count))
	default:
		slog.Error("指定的操作非法")
	}
}
