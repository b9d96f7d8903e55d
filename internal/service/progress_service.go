package service

import (
	"devlingo_backend/internal/model"
	"devlingo_backend/internal/repository"
	"time"
)

// ProgressService makes completions durable and keeps the leaderboard
// score equal to each user's completion count.
type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	ScoreRepo    *repository.ScoreRepository
	UserRepo     *repository.UserRepository
}

func NewProgressService(progressRepo *repository.ProgressRepository, scoreRepo *repository.ScoreRepository, userRepo *repository.UserRepository) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		ScoreRepo:    scoreRepo,
		UserRepo:     userRepo,
	}
}

// Record stores the first completion of a task by a user and awards one
// leaderboard point for it. Solving the same task again is a no-op: the
// conditional insert reports whether this call actually created the
// record, and only the creating call increments the score. Repeated or
// concurrent submits therefore never double-count.
func (s *ProgressService) Record(userID uint, task *model.Task, now time.Time) error {
	created, err := s.ProgressRepo.CreateIfAbsent(userID, task.ID, now, task.Level)
	if err != nil {
		return err
	}
	if !created {
		return nil
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return err
	}

	return s.ScoreRepo.IncrementScore(userID, 1, user.DisplayName(), user.Avatar)
}

// CompletedTaskIDs returns the ids of every task the user has solved.
func (s *ProgressService) CompletedTaskIDs(userID uint) ([]string, error) {
	return s.ProgressRepo.FindTaskIDsByUser(userID)
}

// Activity returns per-day completion counts for the last n days, the
// data behind the profile contribution graph.
func (s *ProgressService) Activity(userID uint, days int) ([]model.DailyActivity, error) {
	if days <= 0 {
		days = 180
	}
	since := time.Now().AddDate(0, 0, -days)
	return s.ProgressRepo.DailyCounts(userID, since)
}

// ProgressStats summarizes one user's completions.
type ProgressStats struct {
	Total   int64                   `json:"total"`
	ByLevel map[model.TaskLevel]int `json:"byLevel"`
}

func (s *ProgressService) Stats(userID uint) (*ProgressStats, error) {
	total, err := s.ProgressRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	byLevel, err := s.ProgressRepo.CountByUserAndLevel(userID)
	if err != nil {
		return nil, err
	}
	return &ProgressStats{Total: total, ByLevel: byLevel}, nil
}
