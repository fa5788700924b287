package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/sajhahub/sajha-hub-backend/internal/domain"
)

type AccountRepository struct {
	db *sqlx.DB
}

func NewAccountRepo(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	const query = `
		SELECT id, email, name, password_hash, password_salt, created_at, updated_at
		FROM member_account
		WHERE email = $1
	`

	var account domain.Account
	if err := r.db.GetContext(ctx, &account, query, email); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	const query = `
		INSERT INTO member_account (email, name, password_hash, password_salt)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, name, password_hash, password_salt, created_at, updated_at
	`

	row := r.db.QueryRowxContext(ctx, query, account.Email, account.Name, account.PasswordHash, account.PasswordSalt)
	var created domain.Account
	if err := row.StructScan(&created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *AccountRepository) UpsertByEmail(ctx context.Context, email, name string) (*domain.Account, error) {
	const query = `
		INSERT INTO member_account (email, name)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE
		SET name = COALESCE(NULLIF(EXCLUDED.name, ''), member_account.name),
		    updated_at = NOW()
		RETURNING id, email, name, password_hash, password_salt, created_at, updated_at
	`

	row := r.db.QueryRowxContext(ctx, query, email, name)
	var account domain.Account
	if err := row.StructScan(&account); err != nil {
		return nil, err
	}
	return &account, nil
}
