package service

import (
	"sync"
	"testing"
	"time"

	"devlingo_backend/internal/model"
	"devlingo_backend/internal/repository"

	"gorm.io/gorm"
)

func newProgressService(t *testing.T) (*ProgressService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewProgressService(
		repository.NewProgressRepository(db),
		repository.NewScoreRepository(db),
		repository.NewUserRepository(db),
	), db
}

func seedUser(t *testing.T, db *gorm.DB, name, email string) *model.User {
	t.Helper()
	user := &model.User{Name: name, Email: email, Password: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatal(err)
	}
	return user
}

func TestRecordAwardsOnePoint(t *testing.T) {
	svc, db := newProgressService(t)
	user := seedUser(t, db, "ada", "ada@example.com")

	task := &model.Task{Level: model.Junior}
	task.ID = "task-1"

	if err := svc.Record(user.ID, task, time.Now()); err != nil {
		t.Fatal(err)
	}

	rec, err := svc.ScoreRepo.FindByUser(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Score != 1 {
		t.Errorf("score = %d, want 1", rec.Score)
	}
	if rec.Username != "ada" {
		t.Errorf("username = %q, want %q", rec.Username, "ada")
	}
}

func TestRecordIsIdempotent(t *testing.T) {
	svc, db := newProgressService(t)
	user := seedUser(t, db, "ada", "ada@example.com")

	task := &model.Task{Level: model.Junior}
	task.ID = "task-1"

	for i := 0; i < 3; i++ {
		if err := svc.Record(user.ID, task, time.Now()); err != nil {
			t.Fatal(err)
		}
	}

	rec, err := svc.ScoreRepo.FindByUser(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Score != 1 {
		t.Errorf("score after repeated solves = %d, want 1", rec.Score)
	}

	ids, err := svc.CompletedTaskIDs(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 {
		t.Errorf("completed tasks = %v, want one entry", ids)
	}
}

func TestRecordConcurrentSubmits(t *testing.T) {
	svc, db := newProgressService(t)
	user := seedUser(t, db, "ada", "ada@example.com")

	task := &model.Task{Level: model.Senior}
	task.ID = "task-race"

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := svc.Record(user.ID, task, time.Now()); err != nil {
				t.Errorf("Record: %v", err)
			}
		}()
	}
	wg.Wait()

	rec, err := svc.ScoreRepo.FindByUser(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Score != 1 {
		t.Errorf("score after concurrent submits = %d, want 1", rec.Score)
	}
}

func TestRecordDistinctTasksAccumulate(t *testing.T) {
	svc, db := newProgressService(t)
	user := seedUser(t, db, "ada", "ada@example.com")

	for _, id := range []string{"t1", "t2", "t3"} {
		task := &model.Task{Level: model.Junior}
		task.ID = id
		if err := svc.Record(user.ID, task, time.Now()); err != nil {
			t.Fatal(err)
		}
	}

	rec, err := svc.ScoreRepo.FindByUser(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Score != 3 {
		t.Errorf("score = %d, want 3", rec.Score)
	}
}

func TestStats(t *testing.T) {
	svc, db := newProgressService(t)
	user := seedUser(t, db, "ada", "ada@example.com")

	levels := map[string]model.TaskLevel{
		"j1": model.Junior,
		"j2": model.Junior,
		"s1": model.Senior,
	}
	for id, level := range levels {
		task := &model.Task{Level: level}
		task.ID = id
		if err := svc.Record(user.ID, task, time.Now()); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := svc.Stats(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Total != 3 {
		t.Errorf("total = %d, want 3", stats.Total)
	}
	if stats.ByLevel[model.Junior] != 2 || stats.ByLevel[model.Senior] != 1 {
		t.Errorf("byLevel = %v", stats.ByLevel)
	}
}
