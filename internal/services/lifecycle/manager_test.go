package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestShutdown_ReverseOrder(t *testing.T) {
	m := New(time.Second, nil)

	var order []string
	for _, name := range []string{"store", "cache", "server"} {
		name := name
		m.Register(name, func(ctx context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	if err := m.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() err=%v", err)
	}

	want := []string{"server", "cache", "store"}
	if len(order) != len(want) {
		t.Fatalf("order=%v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order=%v, want %v", order, want)
		}
	}
}

func TestShutdown_CollectsHookErrors(t *testing.T) {
	m := New(time.Second, nil)

	boom := errors.New("flush failed")
	var ran bool
	m.Register("healthy", func(ctx context.Context) error {
		ran = true
		return nil
	})
	m.Register("broken", func(ctx context.Context) error { return boom })

	err := m.Shutdown(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Shutdown() err=%v, want it to wrap %v", err, boom)
	}
	if !ran {
		t.Fatalf("a failing hook must not stop the remaining hooks")
	}
}

func TestShutdown_NilHookIgnored(t *testing.T) {
	m := New(time.Second, nil)
	m.Register("noop", nil)

	if err := m.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() err=%v, want nil", err)
	}
}
