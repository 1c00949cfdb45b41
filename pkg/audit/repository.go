package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// Store appends an entry and returns its generated id.
	Store(ctx context.Context, entry Entry) (int, error)
	// GetByOrderId returns the order's entries, oldest first.
	GetByOrderId(ctx context.Context, orderId int) ([]Entry, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r RepositoryImpl) Store(ctx context.Context, entry Entry) (int, error) {
	query := `INSERT INTO audit_log (
                    order_id,
                    field,
                    recorded_at,
                    actor_name,
                    actor_role,
                    logged_at
				) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	var id int
	err := r.db.QueryRowContext(ctx, query,
		entry.OrderId,
		entry.Field,
		entry.RecordedAt.UnixMilli(),
		entry.ActorName,
		entry.ActorRole,
		entry.LoggedAt.UnixMilli(),
	).Scan(&id)
	if err != nil {
		log.Errorf("could not store audit entry: %v", err)
		return 0, fmt.Errorf("could not store audit entry: %w", err)
	}
	return id, nil
}

func (r RepositoryImpl) GetByOrderId(ctx context.Context, orderId int) ([]Entry, error) {
	query := `SELECT id, order_id, field, recorded_at, actor_name, actor_role, logged_at
				FROM audit_log
				WHERE order_id = $1
				ORDER BY recorded_at, id`
	rows, err := r.db.QueryContext(ctx, query, orderId)
	if err != nil {
		log.Errorf("could not read audit entries: %v", err)
		return nil, fmt.Errorf("could not read audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var entry Entry
		var recordedAt, loggedAt int64
		if err := rows.Scan(
			&entry.Id,
			&entry.OrderId,
			&entry.Field,
			&recordedAt,
			&entry.ActorName,
			&entry.ActorRole,
			&loggedAt,
		); err != nil {
			return nil, fmt.Errorf("could not scan audit entry: %w", err)
		}
		entry.RecordedAt = time.UnixMilli(recordedAt).UTC()
		entry.LoggedAt = time.UnixMilli(loggedAt).UTC()
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not read audit entries: %w", err)
	}
	return entries, nil
}
