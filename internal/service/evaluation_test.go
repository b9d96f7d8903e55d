package service

import (
	"encoding/json"
	"testing"

	"devlingo_backend/internal/model"
)

func choiceTask(correct string) *model.Task {
	opts, _ := json.Marshal(map[string]string{"a": "commit", "b": "push"})
	return &model.Task{
		Type:    model.TaskChoice,
		Prompt:  "git ____",
		Options: opts,
		Correct: correct,
	}
}

func inputTask(correct string) *model.Task {
	return &model.Task{
		Type:    model.TaskInput,
		Prompt:  "error = \"____\"",
		Correct: correct,
	}
}

func builderTask(correct string, fragments ...string) *model.Task {
	frags, _ := json.Marshal(fragments)
	return &model.Task{
		Type:      model.TaskBuilder,
		Prompt:    "report = \"____\"",
		Fragments: frags,
		Correct:   correct,
	}
}

func TestEvaluateChoice(t *testing.T) {
	tests := []struct {
		name   string
		option string
		want   bool
	}{
		{"matching key passes", "a", true},
		{"wrong key fails", "b", false},
		{"empty option fails", "", false},
		{"option text is not a key", "commit", false},
		{"keys are case sensitive", "A", false},
	}

	task := choiceTask("a")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(task, Submission{Option: tt.option})
			if got.Passed != tt.want {
				t.Errorf("Evaluate(option=%q).Passed = %v, want %v", tt.option, got.Passed, tt.want)
			}
		})
	}
}

func TestEvaluateInput(t *testing.T) {
	tests := []struct {
		name    string
		correct string
		answer  string
		want    bool
	}{
		{"exact match", "merge conflict", "merge conflict", true},
		{"case insensitive", "merge conflict", "MERGE Conflict", true},
		{"surrounding whitespace ignored", "merge conflict", "  merge conflict \n", true},
		{"inner whitespace preserved", "merge conflict", "merge  conflict", false},
		{"wrong answer", "merge conflict", "rebase", false},
		{"empty answer", "merge conflict", "", false},
		{"whitespace-only answer", "merge conflict", "   ", false},
		{"correct stored with padding", "  deploy  ", "deploy", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(inputTask(tt.correct), Submission{Answer: tt.answer})
			if got.Passed != tt.want {
				t.Errorf("Evaluate(answer=%q).Passed = %v, want %v", tt.answer, got.Passed, tt.want)
			}
		})
	}
}

func TestEvaluateBuilder(t *testing.T) {
	correct := "I am blocked by the review"

	tests := []struct {
		name      string
		fragments []string
		want      bool
	}{
		{"right order passes", []string{"I", "am", "blocked", "by", "the", "review"}, true},
		{"case folded", []string{"i", "AM", "blocked", "by", "the", "review"}, true},
		{"wrong order fails", []string{"blocked", "I", "am", "by", "the", "review"}, false},
		{"missing fragment fails", []string{"I", "am", "blocked"}, false},
		{"extra fragment fails", []string{"I", "am", "blocked", "by", "the", "review", "deploy"}, false},
		{"no fragments fails", nil, false},
	}

	task := builderTask(correct, "I", "am", "blocked", "by", "the", "review", "deploy")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(task, Submission{Fragments: tt.fragments})
			if got.Passed != tt.want {
				t.Errorf("Evaluate(%v).Passed = %v, want %v", tt.fragments, got.Passed, tt.want)
			}
		})
	}
}

func TestEvaluateEmptyCorrectNeverPasses(t *testing.T) {
	tasks := []*model.Task{
		choiceTask(""),
		inputTask(""),
		builderTask(""),
	}
	subs := []Submission{
		{},
		{Option: "a"},
		{Answer: ""},
		{Answer: "anything"},
		{Fragments: []string{}},
	}

	for _, task := range tasks {
		for _, sub := range subs {
			if got := Evaluate(task, sub); got.Passed {
				t.Errorf("Evaluate(%s task, %+v) passed despite empty answer key", task.Type, sub)
			}
		}
	}
}

func TestEvaluateUnknownTypeFailsClosed(t *testing.T) {
	task := &model.Task{Type: "essay", Correct: "whatever"}
	if got := Evaluate(task, Submission{Answer: "whatever"}); got.Passed {
		t.Error("unknown task type must never pass")
	}
}

func TestEvaluateValue(t *testing.T) {
	// Passing submissions echo the normalized answer, failing ones echo
	// the raw input for the terminal transcript.
	got := Evaluate(inputTask("merge conflict"), Submission{Answer: " MERGE conflict "})
	if !got.Passed || got.Value != "merge conflict" {
		t.Errorf("pass value = %q, want %q", got.Value, "merge conflict")
	}

	got = Evaluate(inputTask("merge conflict"), Submission{Answer: "Rebase "})
	if got.Passed || got.Value != "Rebase " {
		t.Errorf("fail value = %q, want raw %q", got.Value, "Rebase ")
	}
}

func TestHintPattern(t *testing.T) {
	tests := []struct {
		correct string
		want    string
	}{
		{"merge conflict", "m...t"},
		{"deploy", "d...y"},
		{"ab", "a...b"},
		{"a", "..."},
		{"", "..."},
		{"  x  ", "..."},
		{" окно ", "о...о"},
	}

	for _, tt := range tests {
		if got := HintPattern(tt.correct); got != tt.want {
			t.Errorf("HintPattern(%q) = %q, want %q", tt.correct, got, tt.want)
		}
	}
}
