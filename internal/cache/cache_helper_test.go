package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestHelper(t *testing.T) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewCacheHelper(client, "user:"), mr
}

type cachedUser struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

func TestCacheHelperRoundTrip(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	in := cachedUser{ID: 7, Email: "t1@x.com"}
	if err := helper.Set(ctx, "id:7", in, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var out cachedUser
	if err := helper.Get(ctx, "id:7", &out); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if out != in {
		t.Errorf("got %+v, want %+v", out, in)
	}

	if err := helper.Delete(ctx, "id:7"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := helper.Get(ctx, "id:7", &out); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("expected ErrCacheNotFound after delete, got %v", err)
	}
}

func TestCacheOrExecute(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	calls := 0
	load := func() (interface{}, error) {
		calls++
		return cachedUser{ID: 1, Email: "a@x.com"}, nil
	}

	var out cachedUser
	if err := helper.CacheOrExecute(ctx, "id:1", &out, time.Minute, load); err != nil {
		t.Fatalf("first CacheOrExecute failed: %v", err)
	}
	if err := helper.CacheOrExecute(ctx, "id:1", &out, time.Minute, load); err != nil {
		t.Fatalf("second CacheOrExecute failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("loader should run once, ran %d times", calls)
	}
	if out.Email != "a@x.com" {
		t.Errorf("unexpected cached value: %+v", out)
	}
}

func TestCacheHelperNilClientDegrades(t *testing.T) {
	helper := NewCacheHelper(nil, "user:")
	ctx := context.Background()

	if err := helper.Set(ctx, "id:1", cachedUser{}, time.Minute); err != nil {
		t.Errorf("Set with nil client should be a no-op, got %v", err)
	}
	var out cachedUser
	if err := helper.Get(ctx, "id:1", &out); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("expected ErrCacheNotAvailable, got %v", err)
	}

	// CacheOrExecute must still serve the loader's value.
	err := helper.CacheOrExecute(ctx, "id:1", &out, time.Minute, func() (interface{}, error) {
		return cachedUser{ID: 9, Email: "b@x.com"}, nil
	})
	if err != nil {
		t.Fatalf("CacheOrExecute with nil client failed: %v", err)
	}
	if out.ID != 9 {
		t.Errorf("expected loader value, got %+v", out)
	}
}

func TestInvalidatePattern(t *testing.T) {
	helper, mr := newTestHelper(t)
	ctx := context.Background()

	for _, key := range []string{"email:a@x.com", "email:b@x.com", "id:3"} {
		if err := helper.Set(ctx, key, cachedUser{}, time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	if err := helper.InvalidatePattern(ctx, "email:*"); err != nil {
		t.Fatalf("InvalidatePattern failed: %v", err)
	}

	if mr.Exists("user:email:a@x.com") || mr.Exists("user:email:b@x.com") {
		t.Error("email keys should be gone")
	}
	if !mr.Exists("user:id:3") {
		t.Error("id key should survive")
	}
}
