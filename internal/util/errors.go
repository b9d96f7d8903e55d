package util

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailRegistered  = errors.New("email is already registered")
	ErrPermissionDenied = errors.New("permission denied")
	ErrTaskNotFound     = errors.New("task not found")
	ErrMalformedTask    = errors.New("task cannot be rendered")
	ErrUnknownTaskType  = errors.New("unknown task type")
	ErrNoteNotFound     = errors.New("note not found")
	ErrNotRanked        = errors.New("user has no leaderboard entry")
)
