// Package postgres appends events to a PostgreSQL journal. The journal is
// write-only; it is never replayed into the store.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"callorder/pkg/event"
)

// Schema creates the journal table.
const Schema = `CREATE TABLE IF NOT EXISTS call_events (
	id BIGSERIAL PRIMARY KEY,
	type TEXT NOT NULL,
	call_id TEXT,
	payload JSONB NOT NULL,
	at TIMESTAMPTZ NOT NULL
)`

// Journal persists events in PostgreSQL.
type Journal struct {
	db *sql.DB
}

// New creates a PostgreSQL journal.
func New(db *sql.DB) *Journal {
	return &Journal{db: db}
}

// Migrate ensures the journal table exists.
func (j *Journal) Migrate(ctx context.Context) error {
	if _, err := j.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create call_events: %w", err)
	}
	return nil
}

// Publish implements event.Publisher.
func (j *Journal) Publish(ctx context.Context, e event.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	var callID sql.NullString
	if e.CallID != "" {
		callID = sql.NullString{String: e.CallID, Valid: true}
	}
	_, err = j.db.ExecContext(ctx, "INSERT INTO call_events (type,call_id,payload,at) VALUES ($1,$2,$3,$4)", string(e.Type), callID, payload, e.At)
	return err
}
