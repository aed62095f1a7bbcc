package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (r *recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

func TestMulti(t *testing.T) {
	a, b := &recorder{}, &recorder{err: errors.New("down")}
	m := Multi{a, b, Nop{}}

	e := Event{Type: CallCreated, CallID: "x", At: time.Now()}
	err := m.Publish(context.Background(), e)
	if err == nil || !errors.Is(err, b.err) {
		t.Fatalf("expected joined error, got %v", err)
	}
	if len(a.events) != 1 || len(b.events) != 1 {
		t.Fatalf("every publisher must receive the event: a=%d b=%d", len(a.events), len(b.events))
	}

	if err := (Multi{a}).Publish(context.Background(), e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (Multi{}).Publish(context.Background(), e); err != nil {
		t.Fatalf("empty multi: %v", err)
	}
}
