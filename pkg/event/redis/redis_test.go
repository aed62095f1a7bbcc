package redis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"callorder/pkg/event"
)

func TestPublish(t *testing.T) {
	db, mock := redismock.NewClientMock()
	p := New(db, "callorder.events")

	e := event.Event{
		Type:     event.OrderItemsAdded,
		CallID:   "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d",
		Item:     "Coffee",
		Quantity: 2,
		At:       time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	payload, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	mock.ExpectPublish("callorder.events", string(payload)).SetVal(1)

	if err := p.Publish(context.Background(), e); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPublishError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	p := New(db, "callorder.events")

	e := event.Event{Type: event.MenuCleared, At: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	payload, _ := json.Marshal(e)
	mock.ExpectPublish("callorder.events", string(payload)).SetErr(errors.New("connection refused"))

	if err := p.Publish(context.Background(), e); err == nil {
		t.Error("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
