package controller_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Goofygiraffe06/authpanel/internal/controller"
)

func TestRegistry_NotifyAndWait(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{name: "basic", id: "panel-123"},
		{name: "id with special chars", id: "panel+with+special@chars#123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := controller.NewRegistry()
			registry.Register(tt.id)

			if registry.Count() != 1 {
				t.Errorf("Expected count=1 after register, got %d", registry.Count())
			}

			go func() {
				time.Sleep(10 * time.Millisecond)
				registry.Notify(tt.id, controller.Event{Type: "success", Message: "ok"})
			}()

			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			ev, err := registry.Wait(ctx, tt.id)
			if err != nil {
				t.Fatalf("Wait failed: %v", err)
			}
			if ev.Type != "success" {
				t.Errorf("unexpected event %+v", ev)
			}

			registry.Delete(tt.id)
			if registry.Count() != 0 {
				t.Errorf("Expected count=0 after delete, got %d", registry.Count())
			}
		})
	}
}

func TestRegistry_BuffersBetweenWaits(t *testing.T) {
	registry := controller.NewRegistry()
	registry.Register("p")

	if !registry.Notify("p", controller.Event{Type: "rejected"}) {
		t.Fatal("expected event to be queued")
	}
	registry.Notify("p", controller.Event{Type: "success"})

	for _, want := range []string{"rejected", "success"} {
		ev, err := registry.Wait(context.Background(), "p")
		if err != nil || ev.Type != want {
			t.Errorf("expected %s, got %+v (%v)", want, ev, err)
		}
	}
}

func TestRegistry_NotifyUnknown(t *testing.T) {
	registry := controller.NewRegistry()
	if registry.Notify("missing", controller.Event{}) {
		t.Error("notify to unknown mailbox should report false")
	}
	if _, err := registry.Wait(context.Background(), "missing"); !errors.Is(err, controller.ErrNotRegistered) {
		t.Errorf("expected ErrNotRegistered, got %v", err)
	}
}

func TestRegistry_FullMailboxDrops(t *testing.T) {
	registry := controller.NewRegistry()
	registry.Register("p")

	delivered := 0
	for i := 0; i < 20; i++ {
		if registry.Notify("p", controller.Event{Type: "x"}) {
			delivered++
		}
	}
	if delivered == 0 || delivered == 20 {
		t.Errorf("expected a bounded mailbox, delivered %d", delivered)
	}
}

func TestRegistry_DeleteWakesWaiter(t *testing.T) {
	registry := controller.NewRegistry()
	registry.Register("p")

	errCh := make(chan error, 1)
	go func() {
		_, err := registry.Wait(context.Background(), "p")
		errCh <- err
	}()

	time.Sleep(10 * time.Millisecond)
	registry.Delete("p")
	registry.Delete("p")

	select {
	case err := <-errCh:
		if !errors.Is(err, controller.ErrNotRegistered) {
			t.Errorf("expected ErrNotRegistered, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("waiter not woken by Delete")
	}
}

func TestRegistry_WaitTimeout(t *testing.T) {
	registry := controller.NewRegistry()
	registry.Register("p")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := registry.Wait(ctx, "p"); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline, got %v", err)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	registry := controller.NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i%26))
			registry.Register(id)
			registry.Notify(id, controller.Event{Type: "x"})
			registry.Count()
		}(i)
	}
	wg.Wait()
	if registry.Count() != 26 {
		t.Errorf("expected 26 mailboxes, got %d", registry.Count())
	}
}
