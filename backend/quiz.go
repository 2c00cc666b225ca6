package backend

import (
	"context"

	"edumind/config"
)

// Quiz question types understood by the backend.
const (
	QuizMultipleChoice  = "multiple-choice"
	QuizTrueFalse       = "true-false"
	QuizFillInTheBlank  = "fill-in-the-blank"
	DefaultQuizCount    = 5
	DefaultQuizLevel    = "medium"
	maxQuizRetries      = 3
)

// QuizRequest describes the material to generate questions from.
type QuizRequest struct {
	Material     string `json:"text"`
	Type         string `json:"question_type"`
	NumQuestions int    `json:"num_questions"`
	Difficulty   string `json:"difficulty"`
}

// QuizQuestion is one generated question. Options is empty for
// true/false and fill-in-the-blank questions.
type QuizQuestion struct {
	Type          string   `json:"type"`
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer"`
}

// Quiz is the backend's reply to a generation request.
type Quiz struct {
	ID        string         `json:"quiz_id"`
	Questions []QuizQuestion `json:"questions"`
}

// GenerateQuiz asks the backend for a single batch of questions. Unlike the
// chat path, quiz errors do propagate: the quiz screen shows them instead of
// degrading silently.
func (c *Client) GenerateQuiz(ctx context.Context, req QuizRequest) (*Quiz, error) {
	if req.Type == "" {
		req.Type = QuizMultipleChoice
	}
	if req.NumQuestions <= 0 {
		req.NumQuestions = DefaultQuizCount
	}
	if req.Difficulty == "" {
		req.Difficulty = DefaultQuizLevel
	}

	var quiz Quiz
	if err := c.post(ctx, "/generate_quiz", req, &quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

// QuizGenerator is the slice of Client the retrier needs.
type QuizGenerator interface {
	GenerateQuiz(ctx context.Context, req QuizRequest) (*Quiz, error)
}

// QuizRetrier tops up short quiz batches. Models frequently return fewer
// questions than asked for; the retrier re-requests only the remainder,
// drops duplicates by question text, and stops after a fixed number of
// attempts, reporting partial success rather than failing.
type QuizRetrier struct {
	generator   QuizGenerator
	maxAttempts int
}

func NewQuizRetrier(generator QuizGenerator) *QuizRetrier {
	return &QuizRetrier{generator: generator, maxAttempts: maxQuizRetries}
}

// Generate requests req.NumQuestions questions, retrying for the shortfall.
// The returned quiz may hold fewer questions than requested when the
// backend keeps under-delivering; that is not an error.
func (r *QuizRetrier) Generate(ctx context.Context, req QuizRequest) (*Quiz, error) {
	if req.NumQuestions <= 0 {
		req.NumQuestions = DefaultQuizCount
	}

	quiz, err := r.generator.GenerateQuiz(ctx, req)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(quiz.Questions))
	unique := quiz.Questions[:0]
	for _, q := range quiz.Questions {
		if !seen[q.Question] {
			seen[q.Question] = true
			unique = append(unique, q)
		}
	}
	quiz.Questions = unique

	for attempt := 0; attempt < r.maxAttempts && len(quiz.Questions) < req.NumQuestions; attempt++ {
		retryReq := req
		retryReq.NumQuestions = req.NumQuestions - len(quiz.Questions)

		more, err := r.generator.GenerateQuiz(ctx, retryReq)
		if err != nil {
			// Keep what we already have rather than discarding a partial quiz.
			if config.DebugLog != nil {
				config.DebugLog.Printf("[quiz] retry %d failed: %v", attempt+1, err)
			}
			break
		}
		for _, q := range more.Questions {
			if !seen[q.Question] {
				seen[q.Question] = true
				quiz.Questions = append(quiz.Questions, q)
			}
		}
	}

	if len(quiz.Questions) > req.NumQuestions {
		quiz.Questions = quiz.Questions[:req.NumQuestions]
	}
	if len(quiz.Questions) < req.NumQuestions && config.DebugLog != nil {
		config.DebugLog.Printf("[quiz] returning %d of %d requested questions", len(quiz.Questions), req.NumQuestions)
	}
	return quiz, nil
}
