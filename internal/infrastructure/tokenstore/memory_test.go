package tokenstore

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore_SetGetRemove(t *testing.T) {
	ctx := context.Background()
	s := NewMemory(Config{})

	if _, ok, err := s.Get(ctx, "access_token"); err != nil || ok {
		t.Fatalf("expected empty store, got ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "access_token", "abc"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	v, ok, err := s.Get(ctx, "access_token")
	if err != nil || !ok || v != "abc" {
		t.Fatalf("unexpected get: %q %v %v", v, ok, err)
	}
	if err := s.Remove(ctx, "access_token"); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if err := s.Remove(ctx, "access_token"); err != nil {
		t.Fatalf("second Remove error: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "access_token"); ok {
		t.Fatalf("expected key removed")
	}
}

func TestMemoryStore_TTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemory(Config{TTL: time.Minute}).(*memoryStore)
	s.now = func() time.Time { return now }

	_ = s.Set(ctx, "k", "v")
	now = now.Add(59 * time.Second)
	if _, ok, _ := s.Get(ctx, "k"); !ok {
		t.Fatalf("entry expired too early")
	}
	now = now.Add(time.Second)
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Fatalf("entry should have expired")
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	if _, err := New(context.Background(), Config{Driver: "etcd"}, Dependencies{}); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestNew_DriverRequiresDependency(t *testing.T) {
	for _, driver := range []string{DriverRedis, DriverMongo} {
		if _, err := New(context.Background(), Config{Driver: driver}, Dependencies{}); err == nil {
			t.Fatalf("%s: expected error without dependency", driver)
		}
	}
}

func TestNew_DefaultsToMemory(t *testing.T) {
	b, err := New(context.Background(), Config{}, Dependencies{})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if _, ok := b.(*memoryStore); !ok {
		t.Fatalf("expected memory store, got %T", b)
	}
}
