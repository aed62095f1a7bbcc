package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/lib/pq"

	"callorder/pkg/event"
)

const insertEvent = "INSERT INTO call_events (type,call_id,payload,at) VALUES ($1,$2,$3,$4)"

// eventPayload matches a JSON payload carrying the given event type.
type eventPayload event.Type

func (want eventPayload) Match(v driver.Value) bool {
	raw, ok := v.([]byte)
	if !ok {
		return false
	}
	var e event.Event
	if err := json.Unmarshal(raw, &e); err != nil {
		return false
	}
	return e.Type == event.Type(want)
}

func newMock(t *testing.T) (*Journal, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func TestMigrate(t *testing.T) {
	j, mock := newMock(t)
	mock.ExpectExec(Schema).WillReturnResult(sqlmock.NewResult(0, 0))

	if err := j.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPublishInsertsEvent(t *testing.T) {
	j, mock := newMock(t)
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectExec(insertEvent).
		WithArgs("order.items_added", "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d", eventPayload(event.OrderItemsAdded), at).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(insertEvent).
		WithArgs("menu.cleared", nil, eventPayload(event.MenuCleared), at).
		WillReturnResult(sqlmock.NewResult(2, 1))

	ctx := context.Background()
	if err := j.Publish(ctx, event.Event{Type: event.OrderItemsAdded, CallID: "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d", Item: "Coffee", Quantity: 2, At: at}); err != nil {
		t.Fatalf("publish with call id: %v", err)
	}
	if err := j.Publish(ctx, event.Event{Type: event.MenuCleared, At: at}); err != nil {
		t.Fatalf("publish without call id: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPublishReportsUnreachableDatabase(t *testing.T) {
	db, err := sql.Open("postgres", "postgres://callorder@127.0.0.1:1/callorder?sslmode=disable&connect_timeout=1")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	j := New(db)
	if err := j.Migrate(ctx); err == nil {
		t.Fatal("expected migrate to fail without a server")
	}
	if err := j.Publish(ctx, event.Event{Type: event.CallCreated, CallID: "x", At: time.Now()}); err == nil {
		t.Fatal("expected publish to fail without a server")
	}
}
