package model

import (
	"encoding/json"
	"strings"
)

type TaskLevel string

const (
	Junior TaskLevel = "junior"
	Middle TaskLevel = "middle"
	Senior TaskLevel = "senior"
)

// ValidLevel reports whether s is one of the known difficulty tiers.
func ValidLevel(s string) bool {
	switch TaskLevel(s) {
	case Junior, Middle, Senior:
		return true
	}
	return false
}

type TaskType string

const (
	TaskChoice  TaskType = "choice"
	TaskInput   TaskType = "input"
	TaskBuilder TaskType = "builder"
)

// BlankMarker splits the prompt of input/builder tasks into the code
// before and after the learner's answer.
const BlankMarker = "____"

// DefaultCategory is applied when a task was authored without one.
const DefaultCategory = "General Modules"

// Task is a single practice exercise. Authored by admins, read-only for
// learners; the correct answer and option texts are stripped from learner
// responses in the practice controller.
// swagger:model Task
type Task struct {
	UUIDBase
	Level     TaskLevel       `gorm:"size:20;not null;index" json:"level"`
	Category  string          `gorm:"size:100" json:"category"`
	Type      TaskType        `gorm:"size:20;not null" json:"type"`
	Title     string          `gorm:"size:255" json:"title"`
	Prompt    string          `gorm:"type:text" json:"prompt"`
	Options   json.RawMessage `gorm:"type:json" json:"options,omitempty"`   // choice: {"a": "...", "b": "..."}
	Fragments json.RawMessage `gorm:"type:json" json:"fragments,omitempty"` // builder: ["word", ...]
	Correct   string          `gorm:"type:text" json:"-"`
}

func (Task) TableName() string {
	return "tasks"
}

// OptionMap decodes the choice options. Nil for non-choice tasks.
func (t *Task) OptionMap() map[string]string {
	if len(t.Options) == 0 {
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(t.Options, &m); err != nil {
		return nil
	}
	return m
}

// FragmentList decodes the builder fragments in author order.
func (t *Task) FragmentList() []string {
	if len(t.Fragments) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(t.Fragments, &list); err != nil {
		return nil
	}
	return list
}

// Renderable reports whether the task can be presented to a learner.
// A malformed record (missing blank marker, missing options, no answer
// key) degrades to a "cannot render" state instead of breaking the
// whole task list.
func (t *Task) Renderable() bool {
	if t.Correct == "" {
		return false
	}
	switch t.Type {
	case TaskChoice:
		opts := t.OptionMap()
		return opts["a"] != "" && opts["b"] != ""
	case TaskInput:
		return strings.Contains(t.Prompt, BlankMarker)
	case TaskBuilder:
		return strings.Contains(t.Prompt, BlankMarker) && len(t.FragmentList()) > 0
	}
	return false
}
