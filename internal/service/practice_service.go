package service

import (
	"context"
	"devlingo_backend/internal/model"
	"devlingo_backend/internal/repository"
	"devlingo_backend/internal/util"
	"devlingo_backend/pkg/logger"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PracticeService serves the practice IDE: task trees per level,
// submission evaluation, hint escalation and the hand-off to progress
// recording.
type PracticeService struct {
	TaskRepo      *repository.TaskRepository
	Progress      *ProgressService
	Attempts      *repository.AttemptRepository
	HintThreshold int
}

func NewPracticeService(taskRepo *repository.TaskRepository, progress *ProgressService, attempts *repository.AttemptRepository, hintThreshold int) *PracticeService {
	if hintThreshold <= 0 {
		hintThreshold = 3
	}
	return &PracticeService{
		TaskRepo:      taskRepo,
		Progress:      progress,
		Attempts:      attempts,
		HintThreshold: hintThreshold,
	}
}

// TaskView is a task as the learner sees it: the answer key never
// leaves the server (Correct is not serialized on model.Task), and a
// malformed record is flagged instead of dropped so the IDE can show a
// "cannot render" file.
type TaskView struct {
	model.Task
	Completed  bool `json:"completed"`
	Renderable bool `json:"renderable"`
}

// ListTasks returns every task of a level with the category fallback
// applied and, for signed-in users, per-task completion flags.
func (s *PracticeService) ListTasks(level model.TaskLevel, userID uint) ([]TaskView, error) {
	tasks, err := s.TaskRepo.FindByLevel(level)
	if err != nil {
		return nil, err
	}

	completed := map[string]bool{}
	if userID > 0 {
		ids, err := s.Progress.CompletedTaskIDs(userID)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			completed[id] = true
		}
	}

	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		if t.Category == "" {
			t.Category = model.DefaultCategory
		}
		views = append(views, TaskView{
			Task:       t,
			Completed:  completed[t.ID],
			Renderable: t.Renderable(),
		})
	}
	return views, nil
}

// GetTask returns a single task view.
func (s *PracticeService) GetTask(id string, userID uint) (*TaskView, error) {
	task, err := s.TaskRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}

	view := TaskView{Task: *task, Renderable: task.Renderable()}
	if view.Category == "" {
		view.Category = model.DefaultCategory
	}

	if userID > 0 {
		ids, err := s.Progress.CompletedTaskIDs(userID)
		if err != nil {
			return nil, err
		}
		for _, done := range ids {
			if done == id {
				view.Completed = true
				break
			}
		}
	}
	return &view, nil
}

// SubmitResult is the feedback for one submission: the fake terminal
// output, and a hint once an input task has failed often enough.
type SubmitResult struct {
	Passed bool   `json:"passed"`
	Output string `json:"output"`
	Hint   string `json:"hint,omitempty"`
}

// Submit evaluates a submission and, on a first-time pass by a
// signed-in user, records progress in the background. Feedback is
// computed purely from the loaded task, so a store outage can cost the
// learner credit but never their pass/fail answer.
//
// owner identifies whose attempt state to track: the user id for
// signed-in learners, the client session for anonymous practice.
func (s *PracticeService) Submit(ctx context.Context, taskID string, sub Submission, userID uint, owner string) (*SubmitResult, error) {
	task, err := s.TaskRepo.FindByID(taskID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}

	// Attempt state follows the learner's current task; switching
	// tasks discards the stale counter. Redis trouble only degrades
	// hints, never evaluation.
	if err := s.Attempts.Touch(ctx, owner, taskID); err != nil {
		logger.Log.Warn("attempt tracking unavailable", zap.Error(err))
	}

	result := Evaluate(task, sub)

	if result.Passed {
		if err := s.Attempts.Reset(ctx, owner, taskID); err != nil {
			logger.Log.Warn("attempt reset failed", zap.Error(err))
		}

		if userID > 0 {
			// Fire and forget: the learner already has their
			// feedback, recording must not delay or retract it.
			go func(uid uint, t model.Task) {
				if err := s.Progress.Record(uid, &t, time.Now()); err != nil {
					logger.Log.Error("failed to record progress",
						zap.Uint("userId", uid),
						zap.String("taskId", t.ID),
						zap.Error(err))
				}
			}(userID, *task)
		}

		return &SubmitResult{
			Passed: true,
			Output: fmt.Sprintf(">> BUILD SUCCESSFUL [0.5s]\n>> Result: %q\n>> Status: Saved.", result.Value),
		}, nil
	}

	res := &SubmitResult{
		Passed: false,
		Output: fmt.Sprintf(">> FATAL ERROR: LogicException.\n>> The argument %q caused a runtime error.\n>> Process finished with exit code 1.", result.Value),
	}

	// Hints exist only for free-text tasks. Choice and builder feedback
	// stays generic so a wrong submit never narrows down the answer key.
	if task.Type == model.TaskInput {
		wrong, err := s.Attempts.IncrWrong(ctx, owner, taskID)
		if err != nil {
			logger.Log.Warn("attempt counter unavailable", zap.Error(err))
		} else if wrong >= s.HintThreshold {
			res.Hint = HintPattern(task.Correct)
		}
	}

	return res, nil
}
