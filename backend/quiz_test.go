package backend

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// scriptedGenerator returns one canned batch per call.
type scriptedGenerator struct {
	batches [][]QuizQuestion
	errs    []error
	calls   []QuizRequest
}

func (s *scriptedGenerator) GenerateQuiz(_ context.Context, req QuizRequest) (*Quiz, error) {
	i := len(s.calls)
	s.calls = append(s.calls, req)
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	var qs []QuizQuestion
	if i < len(s.batches) {
		qs = s.batches[i]
	}
	return &Quiz{ID: fmt.Sprintf("quiz_%d", i), Questions: qs}, nil
}

func mcq(question string) QuizQuestion {
	return QuizQuestion{
		Type:          "mcq",
		Question:      question,
		Options:       []string{"a", "b", "c", "d"},
		CorrectAnswer: "a",
	}
}

func TestQuizRetrierFullBatchFirstTry(t *testing.T) {
	gen := &scriptedGenerator{batches: [][]QuizQuestion{
		{mcq("q1"), mcq("q2"), mcq("q3")},
	}}
	retrier := NewQuizRetrier(gen)

	quiz, err := retrier.Generate(context.Background(), QuizRequest{Material: "m", NumQuestions: 3})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(quiz.Questions) != 3 {
		t.Errorf("got %d questions, want 3", len(quiz.Questions))
	}
	if len(gen.calls) != 1 {
		t.Errorf("generator called %d times, want 1", len(gen.calls))
	}
}

func TestQuizRetrierTopsUpShortfall(t *testing.T) {
	gen := &scriptedGenerator{batches: [][]QuizQuestion{
		{mcq("q1"), mcq("q2")},
		{mcq("q2"), mcq("q3"), mcq("q4")}, // q2 is a duplicate and must be dropped
	}}
	retrier := NewQuizRetrier(gen)

	quiz, err := retrier.Generate(context.Background(), QuizRequest{Material: "m", NumQuestions: 4})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(quiz.Questions) != 4 {
		t.Fatalf("got %d questions, want 4", len(quiz.Questions))
	}
	want := []string{"q1", "q2", "q3", "q4"}
	for i, q := range quiz.Questions {
		if q.Question != want[i] {
			t.Errorf("question %d = %q, want %q", i, q.Question, want[i])
		}
	}

	// The retry must request only the remainder.
	if gen.calls[1].NumQuestions != 2 {
		t.Errorf("retry asked for %d questions, want 2", gen.calls[1].NumQuestions)
	}
}

func TestQuizRetrierReportsPartialAfterMaxAttempts(t *testing.T) {
	gen := &scriptedGenerator{batches: [][]QuizQuestion{
		{mcq("q1")},
		{}, {}, {},
	}}
	retrier := NewQuizRetrier(gen)

	quiz, err := retrier.Generate(context.Background(), QuizRequest{Material: "m", NumQuestions: 5})
	if err != nil {
		t.Fatalf("partial success must not be an error: %v", err)
	}
	if len(quiz.Questions) != 1 {
		t.Errorf("got %d questions, want the 1 that was generated", len(quiz.Questions))
	}
	// Initial call plus exactly 3 bounded retries.
	if len(gen.calls) != 4 {
		t.Errorf("generator called %d times, want 4", len(gen.calls))
	}
}

func TestQuizRetrierFirstCallErrorPropagates(t *testing.T) {
	boom := errors.New("backend down")
	gen := &scriptedGenerator{errs: []error{boom}}
	retrier := NewQuizRetrier(gen)

	_, err := retrier.Generate(context.Background(), QuizRequest{Material: "m", NumQuestions: 3})
	if !errors.Is(err, boom) {
		t.Errorf("expected the first-call error, got %v", err)
	}
}

func TestQuizRetrierKeepsPartialWhenRetryFails(t *testing.T) {
	gen := &scriptedGenerator{
		batches: [][]QuizQuestion{{mcq("q1"), mcq("q2")}},
		errs:    []error{nil, errors.New("flaky")},
	}
	retrier := NewQuizRetrier(gen)

	quiz, err := retrier.Generate(context.Background(), QuizRequest{Material: "m", NumQuestions: 4})
	if err != nil {
		t.Fatalf("retry failure must not discard the partial quiz: %v", err)
	}
	if len(quiz.Questions) != 2 {
		t.Errorf("got %d questions, want the 2 from the first batch", len(quiz.Questions))
	}
}

func TestQuizRetrierTruncatesOverDelivery(t *testing.T) {
	gen := &scriptedGenerator{batches: [][]QuizQuestion{
		{mcq("q1"), mcq("q2"), mcq("q3"), mcq("q4")},
	}}
	retrier := NewQuizRetrier(gen)

	quiz, err := retrier.Generate(context.Background(), QuizRequest{Material: "m", NumQuestions: 3})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(quiz.Questions) != 3 {
		t.Errorf("got %d questions, want 3", len(quiz.Questions))
	}
}
