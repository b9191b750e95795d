package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Minute)

	store.Set(ctx, "players", []string{"a", "b"})
	value, ok := store.Get(ctx, "players")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got := value.([]string); len(got) != 2 {
		t.Fatalf("unexpected cached value: %v", got)
	}

	store.Delete(ctx, "players")
	if _, ok := store.Get(ctx, "players"); ok {
		t.Fatal("expected cache miss after delete")
	}
}

func TestStore_ExpiresEntries(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Nanosecond)

	store.Set(ctx, "k", "v")
	time.Sleep(time.Millisecond)

	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatal("expected expired entry to miss")
	}
}

func TestStore_GetOrLoad(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Minute)
	loads := 0

	for i := 0; i < 3; i++ {
		value, err := store.GetOrLoad(ctx, "k", func(context.Context) (any, error) {
			loads++
			return "loaded", nil
		})
		if err != nil {
			t.Fatalf("get or load: %v", err)
		}
		if value != "loaded" {
			t.Fatalf("unexpected value: %v", value)
		}
	}

	if loads != 1 {
		t.Fatalf("expected single load, got %d", loads)
	}
}

func TestStore_GetOrLoad_ErrorNotCached(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Minute)
	boom := errors.New("boom")
	loads := 0

	_, err := store.GetOrLoad(ctx, "k", func(context.Context) (any, error) {
		loads++
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}

	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatal("failed load must not populate the cache")
	}
	if loads != 1 {
		t.Fatalf("unexpected load count: %d", loads)
	}
}
