package storage

import (
	"testing"

	"edumind/backend"
)

func newTestQuizStorage(t *testing.T) *QuizStorage {
	t.Helper()
	qs, err := NewQuizStorage(t.TempDir())
	if err != nil {
		t.Fatalf("new quiz storage: %v", err)
	}
	t.Cleanup(func() { qs.Close() })
	return qs
}

func savedQuiz(material string) *SavedQuiz {
	return &SavedQuiz{
		BackendID:  "quiz_2026-01-15_10-30-00",
		Material:   material,
		Type:       backend.QuizMultipleChoice,
		Difficulty: "medium",
		Questions: []backend.QuizQuestion{
			{
				Type:          "mcq",
				Question:      "What is the powerhouse of the cell?",
				Options:       []string{"Nucleus", "Mitochondria", "Ribosome", "Golgi"},
				CorrectAnswer: "Mitochondria",
			},
		},
	}
}

func TestQuizSaveAndLoad(t *testing.T) {
	qs := newTestQuizStorage(t)

	id, err := qs.Save(savedQuiz("cell biology"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if id == "" {
		t.Fatal("save must assign an id")
	}

	loaded, err := qs.Load(id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Material != "cell biology" {
		t.Errorf("material = %q", loaded.Material)
	}
	if len(loaded.Questions) != 1 {
		t.Fatalf("got %d questions, want 1", len(loaded.Questions))
	}
	q := loaded.Questions[0]
	if q.CorrectAnswer != "Mitochondria" || len(q.Options) != 4 {
		t.Errorf("question round-trip mangled: %+v", q)
	}
}

func TestQuizListRecent(t *testing.T) {
	qs := newTestQuizStorage(t)

	for _, material := range []string{"one", "two", "three"} {
		if _, err := qs.Save(savedQuiz(material)); err != nil {
			t.Fatal(err)
		}
	}

	quizzes, err := qs.ListRecent(2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(quizzes) != 2 {
		t.Errorf("got %d quizzes, want 2", len(quizzes))
	}
}

func TestQuizLoadMissing(t *testing.T) {
	qs := newTestQuizStorage(t)
	if _, err := qs.Load("does-not-exist"); err == nil {
		t.Error("expected an error for a missing quiz")
	}
}
