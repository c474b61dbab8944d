package repository

import (
	"context"
	"time"

	"github.com/tim3-dev/availability-manager/backend/internal/domain"
)

func (r *Repository) CreateAccount(account *domain.Account) error {
	query := `
		INSERT INTO accounts (name)
		VALUES ($1)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, account.Name).Scan(&account.ID, &account.CreatedAt, &account.Version); err != nil {
		return err
	}

	return nil
}

// CreateAccountWithOwner 创建账户并把创建者设为负责人，两步在同一个事务里完成
func (r *Repository) CreateAccountWithOwner(account *domain.Account, ownerID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO accounts (name)
		VALUES ($1)
		RETURNING id, created_at, version
	`
	if err := tx.QueryRowContext(ctx, query, account.Name).Scan(&account.ID, &account.CreatedAt, &account.Version); err != nil {
		return err
	}

	query = `
		INSERT INTO memberships (account_id, user_id, role)
		VALUES ($1, $2, $3)
	`
	if _, err := tx.ExecContext(ctx, query, account.ID, ownerID, domain.RoleOwner); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAccountByID(id int64) (*domain.Account, error) {
	query := `
		SELECT name, created_at, version FROM accounts WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	account := &domain.Account{
		ID: id,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&account.Name, &account.CreatedAt, &account.Version); err != nil {
		return nil, err
	}

	return account, nil
}

func (r *Repository) CreateMembership(membership *domain.Membership) error {
	query := `
		INSERT INTO memberships (account_id, user_id, role)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{membership.AccountID, membership.UserID, membership.Role}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&membership.ID, &membership.CreatedAt); err != nil {
		return err
	}

	return nil
}

// GetMembership 获取某个用户在某个账户下的成员记录
// 记录不存在时返回 sql.ErrNoRows，表示该用户不是这个账户的成员
func (r *Repository) GetMembership(accountID int64, userID int64) (*domain.Membership, error) {
	query := `
		SELECT id, role, created_at
		FROM memberships
		WHERE account_id = $1 AND user_id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	membership := &domain.Membership{
		AccountID: accountID,
		UserID:    userID,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, accountID, userID).Scan(&membership.ID, &membership.Role, &membership.CreatedAt); err != nil {
		return nil, err
	}

	return membership, nil
}

func (r *Repository) GetAccountsByUserID(userID int64) ([]*domain.Account, error) {
	query := `
		SELECT a.id, a.name, a.created_at, a.version
		FROM accounts a
		JOIN memberships m ON m.account_id = a.id
		WHERE m.user_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		account := &domain.Account{}
		if err := rows.Scan(&account.ID, &account.Name, &account.CreatedAt, &account.Version); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return accounts, nil
}

func (r *Repository) GetAccountMembers(accountID int64) ([]*domain.AccountMember, error) {
	query := `
		SELECT u.id, u.username, u.full_name, u.email, m.role, u.is_active
		FROM memberships m
		JOIN users u ON u.id = m.user_id
		WHERE m.account_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]*domain.AccountMember, 0)
	for rows.Next() {
		member := &domain.AccountMember{}
		dst := []any{&member.UserID, &member.Username, &member.FullName, &member.Email, &member.Role, &member.IsActive}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return members, nil
}
