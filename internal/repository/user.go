package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"

	"github.com/shixiaoya/materials/internal/model"
	"github.com/shixiaoya/materials/pkg/db/transactor"
)

// UserRepository is back office account storage
type UserRepository interface {
	FindByUsername(context.Context, string) (*model.User, error)
	FindByID(context.Context, string) (*model.User, error)
	UpdateLastLogin(context.Context, string, time.Time) error
	UpdatePasswordHash(context.Context, string, string) error
}

type postgresUserRepository struct {
	trx transactor.PgxTransactor
}

// NewPostgresUserRepository builds UserRepository on top of pgx transactor
func NewPostgresUserRepository(trx transactor.PgxTransactor) UserRepository {
	return &postgresUserRepository{trx: trx}
}

const userColumns = "id, username, email, name, role, password_hash, is_active, last_login, created_at"

func (r *postgresUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	q := "SELECT " + userColumns + " FROM users WHERE username = $1 AND is_active = true"
	row := r.trx.Executor(ctx).QueryRow(ctx, q, username)
	return r.scanRow(row)
}

func (r *postgresUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	q := "SELECT " + userColumns + " FROM users WHERE id = $1"
	row := r.trx.Executor(ctx).QueryRow(ctx, q, id)
	return r.scanRow(row)
}

func (r *postgresUserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	q := "UPDATE users SET last_login = $1 WHERE id = $2"
	if _, err := r.trx.Executor(ctx).Exec(ctx, q, at, id); err != nil {
		return err
	}
	return nil
}

func (r *postgresUserRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	q := "UPDATE users SET password_hash = $1 WHERE id = $2"
	if _, err := r.trx.Executor(ctx).Exec(ctx, q, hash, id); err != nil {
		return err
	}
	return nil
}

func (r *postgresUserRepository) scanRow(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Name, &u.Role, &u.PasswordHash, &u.IsActive, &u.LastLogin, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
