package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"edumind/backend"
)

// SavedQuiz is a generated quiz archived locally so it can be reviewed
// without asking the backend again.
type SavedQuiz struct {
	ID         string
	BackendID  string // quiz_id assigned by the backend, may be empty
	Material   string
	Type       string
	Difficulty string
	Questions  []backend.QuizQuestion
	CreatedAt  time.Time
}

// QuizStorage archives generated quizzes in a local sqlite database.
type QuizStorage struct {
	db *sql.DB
}

func NewQuizStorage(dataDir string) (*QuizStorage, error) {
	dbPath := filepath.Join(dataDir, "quizzes.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	storage := &QuizStorage{db: db}
	if err := storage.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return storage, nil
}

func (qs *QuizStorage) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS quizzes (
		id TEXT PRIMARY KEY,
		backend_id TEXT,
		material TEXT NOT NULL,
		type TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		questions TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_quizzes_created_at ON quizzes(created_at);
	`
	_, err := qs.db.Exec(schema)
	return err
}

// Save archives a quiz and returns its local id.
func (qs *QuizStorage) Save(quiz *SavedQuiz) (string, error) {
	if quiz.ID == "" {
		quiz.ID = uuid.New().String()
	}
	if quiz.CreatedAt.IsZero() {
		quiz.CreatedAt = time.Now()
	}

	questions, err := json.Marshal(quiz.Questions)
	if err != nil {
		return "", fmt.Errorf("failed to marshal questions: %w", err)
	}

	_, err = qs.db.Exec(
		`INSERT INTO quizzes (id, backend_id, material, type, difficulty, questions, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		quiz.ID, quiz.BackendID, quiz.Material, quiz.Type, quiz.Difficulty, string(questions), quiz.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert quiz: %w", err)
	}

	return quiz.ID, nil
}

// Load returns an archived quiz by local id.
func (qs *QuizStorage) Load(id string) (*SavedQuiz, error) {
	row := qs.db.QueryRow(
		`SELECT id, backend_id, material, type, difficulty, questions, created_at
		 FROM quizzes WHERE id = ?`, id)

	var quiz SavedQuiz
	var questions string
	if err := row.Scan(&quiz.ID, &quiz.BackendID, &quiz.Material, &quiz.Type,
		&quiz.Difficulty, &questions, &quiz.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to load quiz: %w", err)
	}

	if err := json.Unmarshal([]byte(questions), &quiz.Questions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal questions: %w", err)
	}

	return &quiz, nil
}

// ListRecent returns up to limit quizzes, newest first.
func (qs *QuizStorage) ListRecent(limit int) ([]SavedQuiz, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := qs.db.Query(
		`SELECT id, backend_id, material, type, difficulty, questions, created_at
		 FROM quizzes ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []SavedQuiz
	for rows.Next() {
		var quiz SavedQuiz
		var questions string
		if err := rows.Scan(&quiz.ID, &quiz.BackendID, &quiz.Material, &quiz.Type,
			&quiz.Difficulty, &questions, &quiz.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan quiz: %w", err)
		}
		if err := json.Unmarshal([]byte(questions), &quiz.Questions); err != nil {
			continue // skip corrupted rows
		}
		quizzes = append(quizzes, quiz)
	}

	return quizzes, rows.Err()
}

// Close releases the database handle.
func (qs *QuizStorage) Close() error {
	return qs.db.Close()
}
