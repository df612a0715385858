package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/auth-service/internal/domain"
)

// SessionEventRepository stores the append-only session journal.
type SessionEventRepository interface {
	Create(ctx context.Context, event *domain.SessionEvent) error
	ListByAccount(ctx context.Context, accountID string) ([]domain.SessionEvent, error)
	DeleteByAccount(ctx context.Context, accountID string) error
}

type sessionEventRepository struct {
	pool *pgxpool.Pool
}

// NewSessionEventRepository builds repository.
func NewSessionEventRepository(pool *pgxpool.Pool) SessionEventRepository {
	return &sessionEventRepository{pool: pool}
}

func (r *sessionEventRepository) Create(ctx context.Context, event *domain.SessionEvent) error {
	const query = `
        INSERT INTO session_events (account_id, action)
        VALUES ($1, $2)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		event.AccountID,
		event.Action,
	).Scan(&event.ID, &event.CreatedAt)
}

func (r *sessionEventRepository) ListByAccount(ctx context.Context, accountID string) ([]domain.SessionEvent, error) {
	const query = `
        SELECT id, account_id, action, created_at
        FROM session_events WHERE account_id=$1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.SessionEvent
	for rows.Next() {
		var event domain.SessionEvent
		if err := rows.Scan(
			&event.ID,
			&event.AccountID,
			&event.Action,
			&event.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}

func (r *sessionEventRepository) DeleteByAccount(ctx context.Context, accountID string) error {
	const query = `DELETE FROM session_events WHERE account_id=$1`
	_, err := r.pool.Exec(ctx, query, accountID)
	return err
}
