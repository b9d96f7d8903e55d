package service

import (
	"context"
	"testing"
	"time"

	"devlingo_backend/internal/model"
	"devlingo_backend/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func newPracticeServiceWithRedis(t *testing.T) (*PracticeService, *model.Task) {
	t.Helper()
	db := newTestDB(t)

	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { rdb.Close() })

	progress := NewProgressService(
		repository.NewProgressRepository(db),
		repository.NewScoreRepository(db),
		repository.NewUserRepository(db),
	)
	svc := NewPracticeService(
		repository.NewTaskRepository(db),
		progress,
		repository.NewAttemptRepository(rdb, time.Minute),
		3,
	)

	task := &model.Task{
		Level:   model.Junior,
		Type:    model.TaskInput,
		Prompt:  `error = "____"`,
		Correct: "merge conflict",
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatal(err)
	}
	return svc, task
}

func TestHintAppearsAfterThirdFailure(t *testing.T) {
	svc, task := newPracticeServiceWithRedis(t)
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		res, err := svc.Submit(ctx, task.ID, Submission{Answer: "rebase"}, 0, "s:abc")
		if err != nil {
			t.Fatal(err)
		}
		if res.Hint != "" {
			t.Fatalf("hint appeared after %d failures: %q", i, res.Hint)
		}
	}

	res, err := svc.Submit(ctx, task.ID, Submission{Answer: "rebase"}, 0, "s:abc")
	if err != nil {
		t.Fatal(err)
	}
	if res.Hint != "m...t" {
		t.Errorf("hint after third failure = %q, want %q", res.Hint, "m...t")
	}

	// The hint sticks around on further failures, identical each time.
	res, err = svc.Submit(ctx, task.ID, Submission{Answer: "still wrong"}, 0, "s:abc")
	if err != nil {
		t.Fatal(err)
	}
	if res.Hint != "m...t" {
		t.Errorf("hint after fourth failure = %q, want %q", res.Hint, "m...t")
	}
}

func TestHintClearedByPass(t *testing.T) {
	svc, task := newPracticeServiceWithRedis(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Submit(ctx, task.ID, Submission{Answer: "wrong"}, 0, "s:abc"); err != nil {
			t.Fatal(err)
		}
	}

	res, err := svc.Submit(ctx, task.ID, Submission{Answer: "merge conflict"}, 0, "s:abc")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Passed || res.Hint != "" {
		t.Fatalf("pass result = %+v", res)
	}

	// The streak restarts from zero after the pass.
	res, err = svc.Submit(ctx, task.ID, Submission{Answer: "wrong again"}, 0, "s:abc")
	if err != nil {
		t.Fatal(err)
	}
	if res.Hint != "" {
		t.Errorf("hint survived a pass: %q", res.Hint)
	}
}

func TestHintStreaksAreIndependentPerOwner(t *testing.T) {
	svc, task := newPracticeServiceWithRedis(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Submit(ctx, task.ID, Submission{Answer: "wrong"}, 0, "s:one"); err != nil {
			t.Fatal(err)
		}
	}

	res, err := svc.Submit(ctx, task.ID, Submission{Answer: "wrong"}, 0, "s:two")
	if err != nil {
		t.Fatal(err)
	}
	if res.Hint != "" {
		t.Errorf("second session inherited a hint: %q", res.Hint)
	}
}

func TestNoHintForChoiceTasks(t *testing.T) {
	svc, _ := newPracticeServiceWithRedis(t)
	ctx := context.Background()

	choice := &model.Task{
		Level:   model.Junior,
		Type:    model.TaskChoice,
		Options: []byte(`{"a":"commit","b":"push"}`),
		Correct: "a",
	}
	if err := svc.TaskRepo.Create(choice); err != nil {
		t.Fatal(err)
	}

	// Choice feedback stays generic no matter how often it fails.
	for i := 0; i < 5; i++ {
		res, err := svc.Submit(ctx, choice.ID, Submission{Option: "b"}, 0, "s:abc")
		if err != nil {
			t.Fatal(err)
		}
		if res.Hint != "" {
			t.Fatalf("choice task produced a hint: %q", res.Hint)
		}
	}
}
