package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func newAttemptRepo(t *testing.T) *AttemptRepository {
	t.Helper()
	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewAttemptRepository(rdb, time.Minute)
}

func TestIncrWrong(t *testing.T) {
	repo := newAttemptRepo(t)
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		got, err := repo.IncrWrong(ctx, "u:1", "task-a")
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("IncrWrong #%d = %d", want, got)
		}
	}

	// Another owner's streak on the same task is independent.
	got, err := repo.IncrWrong(ctx, "u:2", "task-a")
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Errorf("other owner's counter = %d, want 1", got)
	}
}

func TestTouchDiscardsStaleCounter(t *testing.T) {
	repo := newAttemptRepo(t)
	ctx := context.Background()

	if err := repo.Touch(ctx, "u:1", "task-a"); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if _, err := repo.IncrWrong(ctx, "u:1", "task-a"); err != nil {
			t.Fatal(err)
		}
	}

	// Switching tasks drops the old streak; coming back starts fresh.
	if err := repo.Touch(ctx, "u:1", "task-b"); err != nil {
		t.Fatal(err)
	}
	if err := repo.Touch(ctx, "u:1", "task-a"); err != nil {
		t.Fatal(err)
	}

	got, err := repo.IncrWrong(ctx, "u:1", "task-a")
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Errorf("counter after task switch = %d, want 1", got)
	}
}

func TestReset(t *testing.T) {
	repo := newAttemptRepo(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := repo.IncrWrong(ctx, "u:1", "task-a"); err != nil {
			t.Fatal(err)
		}
	}
	if err := repo.Reset(ctx, "u:1", "task-a"); err != nil {
		t.Fatal(err)
	}

	got, err := repo.IncrWrong(ctx, "u:1", "task-a")
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Errorf("counter after reset = %d, want 1", got)
	}
}

func TestNilClientDegradesQuietly(t *testing.T) {
	repo := NewAttemptRepository(nil, time.Minute)
	ctx := context.Background()

	if err := repo.Touch(ctx, "u:1", "task-a"); err != nil {
		t.Errorf("Touch: %v", err)
	}
	n, err := repo.IncrWrong(ctx, "u:1", "task-a")
	if err != nil || n != 0 {
		t.Errorf("IncrWrong = (%d, %v), want (0, nil)", n, err)
	}
	if err := repo.Reset(ctx, "u:1", "task-a"); err != nil {
		t.Errorf("Reset: %v", err)
	}
}
