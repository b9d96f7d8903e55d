package model

import (
	"encoding/json"
	"testing"
)

func mustJSON(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestRenderable(t *testing.T) {
	tests := []struct {
		name string
		task Task
		want bool
	}{
		{
			name: "complete choice task",
			task: Task{
				Type:    TaskChoice,
				Options: json.RawMessage(`{"a":"commit","b":"push"}`),
				Correct: "a",
			},
			want: true,
		},
		{
			name: "choice missing second option",
			task: Task{
				Type:    TaskChoice,
				Options: json.RawMessage(`{"a":"commit"}`),
				Correct: "a",
			},
			want: false,
		},
		{
			name: "choice without options",
			task: Task{Type: TaskChoice, Correct: "a"},
			want: false,
		},
		{
			name: "choice with broken options json",
			task: Task{
				Type:    TaskChoice,
				Options: json.RawMessage(`{"a":`),
				Correct: "a",
			},
			want: false,
		},
		{
			name: "input with blank marker",
			task: Task{
				Type:    TaskInput,
				Prompt:  `error = "____"`,
				Correct: "merge conflict",
			},
			want: true,
		},
		{
			name: "input without blank marker",
			task: Task{
				Type:    TaskInput,
				Prompt:  "no placeholder here",
				Correct: "merge conflict",
			},
			want: false,
		},
		{
			name: "builder with marker and fragments",
			task: Task{
				Type:      TaskBuilder,
				Prompt:    `report = "____"`,
				Fragments: json.RawMessage(`["I","am","blocked"]`),
				Correct:   "I am blocked",
			},
			want: true,
		},
		{
			name: "builder without fragments",
			task: Task{
				Type:    TaskBuilder,
				Prompt:  `report = "____"`,
				Correct: "I am blocked",
			},
			want: false,
		},
		{
			name: "missing answer key",
			task: Task{
				Type:    TaskInput,
				Prompt:  `error = "____"`,
				Correct: "",
			},
			want: false,
		},
		{
			name: "unknown type",
			task: Task{Type: "essay", Correct: "x"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.Renderable(); got != tt.want {
				t.Errorf("Renderable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOptionMapAndFragmentList(t *testing.T) {
	task := Task{
		Options:   mustJSON(t, map[string]string{"a": "commit", "b": "push"}),
		Fragments: mustJSON(t, []string{"I", "am", "blocked"}),
	}

	opts := task.OptionMap()
	if opts["a"] != "commit" || opts["b"] != "push" {
		t.Errorf("OptionMap() = %v", opts)
	}

	frags := task.FragmentList()
	if len(frags) != 3 || frags[0] != "I" {
		t.Errorf("FragmentList() = %v", frags)
	}

	empty := Task{}
	if empty.OptionMap() != nil {
		t.Error("OptionMap() on empty task should be nil")
	}
	if empty.FragmentList() != nil {
		t.Error("FragmentList() on empty task should be nil")
	}
}

func TestValidLevel(t *testing.T) {
	for _, good := range []string{"junior", "middle", "senior"} {
		if !ValidLevel(good) {
			t.Errorf("ValidLevel(%q) = false", good)
		}
	}
	for _, bad := range []string{"", "Junior", "expert", "mid"} {
		if ValidLevel(bad) {
			t.Errorf("ValidLevel(%q) = true", bad)
		}
	}
}
