package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LoginEventRepo records session lifecycle events for auditing. A nil pool
// turns every write into a no-op so a degraded API keeps serving logins.
type LoginEventRepo struct {
	pool *pgxpool.Pool
}

func NewLoginEventRepo(pool *pgxpool.Pool) *LoginEventRepo {
	return &LoginEventRepo{pool: pool}
}

func (r *LoginEventRepo) Insert(ctx context.Context, userID, event string, occurredAt time.Time) error {
	if r.pool == nil {
		return nil
	}
	if event == "" {
		return fmt.Errorf("login event name is required")
	}

	const query = `
INSERT INTO login_events (
	user_id,
	event,
	occurred_at,
	created_at
) VALUES (
	$1,
	$2,
	$3,
	NOW()
)
`

	at := occurredAt.UTC()
	if at.IsZero() {
		at = time.Now().UTC()
	}

	var uid any
	if userID != "" {
		uid = userID
	}

	if _, err := r.pool.Exec(ctx, query, uid, event, at); err != nil {
		return fmt.Errorf("insert login event: %w", err)
	}

	return nil
}
