package service

import (
	"devlingo_backend/internal/model"
	"strings"
)

// Submission is one answer to one task. Which field matters depends on
// the task type: Option for choice, Answer for input, Fragments (in the
// order the learner picked them) for builder.
type Submission struct {
	Option    string   `json:"option"`
	Answer    string   `json:"answer"`
	Fragments []string `json:"fragments"`
}

// EvalResult is the outcome of evaluating a submission. On a pass,
// Value holds the normalized matched answer; on a fail it holds the raw
// submission for display in the fake terminal.
type EvalResult struct {
	Passed bool
	Value  string
}

// Evaluate decides whether a submission solves a task. It is a pure
// function of its inputs and touches no stores.
//
// Free-text and builder answers are compared case-insensitively with
// surrounding whitespace trimmed; builder fragments are joined with
// single spaces first, so order matters. Choice answers are compared
// exactly on the option key.
//
// A task without a correct answer can never pass, including against an
// empty submission.
func Evaluate(task *model.Task, sub Submission) EvalResult {
	if task.Correct == "" {
		return EvalResult{Passed: false, Value: rawValue(task, sub)}
	}

	switch task.Type {
	case model.TaskChoice:
		if sub.Option == task.Correct {
			return EvalResult{Passed: true, Value: sub.Option}
		}
		return EvalResult{Passed: false, Value: sub.Option}

	case model.TaskInput:
		normalized := normalizeAnswer(sub.Answer)
		if normalized == normalizeAnswer(task.Correct) {
			return EvalResult{Passed: true, Value: normalized}
		}
		return EvalResult{Passed: false, Value: sub.Answer}

	case model.TaskBuilder:
		joined := strings.Join(sub.Fragments, " ")
		normalized := normalizeAnswer(joined)
		if normalized == normalizeAnswer(task.Correct) {
			return EvalResult{Passed: true, Value: normalized}
		}
		return EvalResult{Passed: false, Value: joined}
	}

	// Unknown task type fails closed.
	return EvalResult{Passed: false, Value: rawValue(task, sub)}
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func rawValue(task *model.Task, sub Submission) string {
	switch task.Type {
	case model.TaskChoice:
		return sub.Option
	case model.TaskBuilder:
		return strings.Join(sub.Fragments, " ")
	}
	return sub.Answer
}

// HintPattern derives the partial-reveal hint from a correct answer:
// first character, ellipsis, last character. Answers shorter than two
// characters would reveal everything, so those fall back to a bare
// placeholder.
func HintPattern(correct string) string {
	trimmed := []rune(strings.TrimSpace(correct))
	if len(trimmed) < 2 {
		return "..."
	}
	return string(trimmed[0]) + "..." + string(trimmed[len(trimmed)-1])
}
