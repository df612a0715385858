package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/auth-service/internal/domain"
)

// AccountRepository defines persistence access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Account, error)
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	const query = `
        INSERT INTO accounts (email, password_hash, role)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		account.Email,
		account.PasswordHash,
		account.Role,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
}

func (r *accountRepository) Update(ctx context.Context, account *domain.Account) error {
	const query = `
        UPDATE accounts SET email=$1, password_hash=$2, role=$3, updated_at=NOW()
        WHERE id=$4`

	cmd, err := r.pool.Exec(ctx, query,
		account.Email,
		account.PasswordHash,
		account.Role,
		account.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	const query = `
        SELECT id, email, password_hash, role, created_at, updated_at
        FROM accounts WHERE id=$1`

	var account domain.Account
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.Role,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	const query = `
        SELECT id, email, password_hash, role, created_at, updated_at
        FROM accounts WHERE email=$1`

	var account domain.Account
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.Role,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM accounts WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *accountRepository) List(ctx context.Context) ([]domain.Account, error) {
	const query = `
        SELECT id, email, password_hash, role, created_at, updated_at
        FROM accounts ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Account
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.ID,
			&account.Email,
			&account.PasswordHash,
			&account.Role,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, account)
	}
	return result, rows.Err()
}
