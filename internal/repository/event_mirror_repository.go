package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sees-portal/internal/models"
)

// EventSnapshot is a mirrored copy of one scope's normalised events.
type EventSnapshot struct {
	ID         string         `db:"id"`
	Scope      string         `db:"scope"`
	Payload    []byte         `db:"payload"`
	EventCount int            `db:"event_count"`
	FetchedAt  time.Time      `db:"fetched_at"`
	Events     []models.Event `db:"-"`
}

// EventMirrorRepository persists event snapshots in Postgres.
type EventMirrorRepository struct {
	db *sqlx.DB
}

// NewEventMirrorRepository constructs the repository.
func NewEventMirrorRepository(db *sqlx.DB) *EventMirrorRepository {
	return &EventMirrorRepository{db: db}
}

// Save inserts a snapshot for scope and prunes older rows of the same scope.
func (r *EventMirrorRepository) Save(ctx context.Context, scope string, events []models.Event, fetchedAt time.Time) error {
	payload, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", scope, err)
	}
	snapshot := EventSnapshot{
		ID:         uuid.NewString(),
		Scope:      scope,
		Payload:    payload,
		EventCount: len(events),
		FetchedAt:  fetchedAt.UTC(),
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const insert = `INSERT INTO event_snapshots (id, scope, payload, event_count, fetched_at)
VALUES (:id, :scope, :payload, :event_count, :fetched_at)`
	if _, err := tx.NamedExecContext(ctx, insert, snapshot); err != nil {
		return fmt.Errorf("insert snapshot %s: %w", scope, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM event_snapshots WHERE scope = $1 AND id <> $2", scope, snapshot.ID); err != nil {
		return fmt.Errorf("prune snapshots %s: %w", scope, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot %s: %w", scope, err)
	}
	return nil
}

// Latest returns the newest snapshot for scope, or sql.ErrNoRows.
func (r *EventMirrorRepository) Latest(ctx context.Context, scope string) (*EventSnapshot, error) {
	const query = `SELECT id, scope, payload, event_count, fetched_at FROM event_snapshots WHERE scope = $1 ORDER BY fetched_at DESC LIMIT 1`
	var snapshot EventSnapshot
	if err := r.db.GetContext(ctx, &snapshot, query, scope); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(snapshot.Payload, &snapshot.Events); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", scope, err)
	}
	return &snapshot, nil
}
