package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"edumind/backend"
)

var (
	quizTypes        = []string{backend.QuizMultipleChoice, backend.QuizTrueFalse, backend.QuizFillInTheBlank}
	quizCounts       = []int{3, 5, 10}
	quizDifficulties = []string{"easy", "medium", "hard"}
)

const (
	quizFieldMaterial = iota
	quizFieldType
	quizFieldCount
	quizFieldDifficulty
)

// QuizModalState holds everything the quiz modal needs: the setup form,
// the in-flight state and the generated quiz being reviewed.
type QuizModalState struct {
	MaterialInput textinput.Model
	FocusedField  int
	TypeIdx       int
	CountIdx      int
	DifficultyIdx int

	Generating bool
	Err        error

	Quiz             *backend.Quiz
	SavedID          string
	SelectedQuestion int
	ShowAnswer       bool
}

func NewQuizModalState() QuizModalState {
	materialInput := textinput.New()
	materialInput.Prompt = "Topic: "
	materialInput.Placeholder = "e.g. photosynthesis, the French Revolution..."
	materialInput.CharLimit = 500
	materialInput.Width = 60

	return QuizModalState{
		MaterialInput: materialInput,
		CountIdx:      1, // 5 questions
		DifficultyIdx: 1, // medium
	}
}

func (q *QuizModalState) Reset() {
	q.MaterialInput.SetValue("")
	q.FocusedField = quizFieldMaterial
	q.Generating = false
	q.Err = nil
	q.Quiz = nil
	q.SavedID = ""
	q.SelectedQuestion = 0
	q.ShowAnswer = false
}

func (q *QuizModalState) Focus() {
	q.MaterialInput.Focus()
}

func (q *QuizModalState) Blur() {
	q.MaterialInput.Blur()
}

func (a AppView) handleQuizModalUpdate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Review phase: a quiz has been generated
	if a.quizState.Quiz != nil {
		switch msg.String() {
		case "esc":
			a.showQuizModal = false
			return a, nil
		case "j", "down":
			if a.quizState.SelectedQuestion < len(a.quizState.Quiz.Questions)-1 {
				a.quizState.SelectedQuestion++
				a.quizState.ShowAnswer = false
			}
			return a, nil
		case "k", "up":
			if a.quizState.SelectedQuestion > 0 {
				a.quizState.SelectedQuestion--
				a.quizState.ShowAnswer = false
			}
			return a, nil
		case "a":
			a.quizState.ShowAnswer = !a.quizState.ShowAnswer
			return a, nil
		case "n":
			a.quizState.Reset()
			a.quizState.Focus()
			return a, nil
		}
		return a, nil
	}

	if a.quizState.Generating {
		if msg.String() == "esc" {
			a.showQuizModal = false
		}
		return a, nil
	}

	// Setup phase
	switch msg.String() {
	case "esc":
		a.showQuizModal = false
		a.quizState.Blur()
		return a, nil

	case "tab", "shift+tab":
		if msg.String() == "tab" {
			a.quizState.FocusedField = (a.quizState.FocusedField + 1) % 4
		} else {
			a.quizState.FocusedField = (a.quizState.FocusedField + 3) % 4
		}
		if a.quizState.FocusedField == quizFieldMaterial {
			a.quizState.Focus()
		} else {
			a.quizState.Blur()
		}
		return a, nil

	case "left", "right":
		delta := 1
		if msg.String() == "left" {
			delta = -1
		}
		switch a.quizState.FocusedField {
		case quizFieldType:
			a.quizState.TypeIdx = cycle(a.quizState.TypeIdx, delta, len(quizTypes))
		case quizFieldCount:
			a.quizState.CountIdx = cycle(a.quizState.CountIdx, delta, len(quizCounts))
		case quizFieldDifficulty:
			a.quizState.DifficultyIdx = cycle(a.quizState.DifficultyIdx, delta, len(quizDifficulties))
		}
		return a, nil

	case "enter":
		material := strings.TrimSpace(a.quizState.MaterialInput.Value())
		if material == "" {
			a.quizState.Err = fmt.Errorf("enter a topic to quiz yourself on")
			return a, nil
		}
		a.quizState.Err = nil
		a.quizState.Generating = true
		return a, tea.Batch(
			a.loadingSpinner.Tick,
			a.dataModel.GenerateQuizCmd(
				material,
				quizTypes[a.quizState.TypeIdx],
				quizCounts[a.quizState.CountIdx],
				quizDifficulties[a.quizState.DifficultyIdx],
			),
		)
	}

	if a.quizState.FocusedField == quizFieldMaterial {
		var cmd tea.Cmd
		a.quizState.MaterialInput, cmd = a.quizState.MaterialInput.Update(msg)
		return a, cmd
	}

	return a, nil
}

func cycle(idx, delta, length int) int {
	return (idx + delta + length) % length
}

func renderQuizModal(q QuizModalState, spinnerView string, width, height int) string {
	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dimColor).
		Padding(1, 2).
		Width(76)

	title := TitleStyle.Render("📝 Quiz Generator")

	var body, footer string
	switch {
	case q.Generating:
		body = fmt.Sprintf("%s Generating your quiz...", spinnerView)
		footer = FormatFooter("Esc", "Close")

	case q.Quiz != nil:
		body = renderQuizQuestion(q)
		footer = FormatFooter("j/k", "Questions", "a", "Show Answer", "n", "New Quiz", "Esc", "Close")

	default:
		body = renderQuizForm(q)
		footer = FormatFooter("Tab", "Next Field", "←/→", "Change", "Enter", "Generate", "Esc", "Close")
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		body,
		"",
		footer,
	)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		modalStyle.Render(content))
}

func renderQuizForm(q QuizModalState) string {
	fieldLabel := func(field int, label string) string {
		if q.FocusedField == field {
			return SelectedStyle.Render("▶ " + label)
		}
		return "  " + label
	}

	lines := []string{
		fieldLabel(quizFieldMaterial, q.MaterialInput.View()),
		"",
		fieldLabel(quizFieldType, fmt.Sprintf("Type:       ◂ %s ▸", quizTypes[q.TypeIdx])),
		fieldLabel(quizFieldCount, fmt.Sprintf("Questions:  ◂ %d ▸", quizCounts[q.CountIdx])),
		fieldLabel(quizFieldDifficulty, fmt.Sprintf("Difficulty: ◂ %s ▸", quizDifficulties[q.DifficultyIdx])),
	}

	if q.Err != nil {
		lines = append(lines, "", DangerStyle.Render(q.Err.Error()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderQuizQuestion(q QuizModalState) string {
	total := len(q.Quiz.Questions)
	if total == 0 {
		return DimStyle.Render("The quiz came back empty. Try a different topic.")
	}

	question := q.Quiz.Questions[q.SelectedQuestion]

	var b strings.Builder
	b.WriteString(DimStyle.Render(fmt.Sprintf("Question %d of %d", q.SelectedQuestion+1, total)))
	b.WriteString("\n\n")
	b.WriteString(question.Question)
	b.WriteString("\n")

	for i, option := range question.Options {
		b.WriteString(fmt.Sprintf("\n  %c) %s", 'A'+i, option))
	}

	b.WriteString("\n\n")
	if q.ShowAnswer {
		b.WriteString(UserStyle.Render("Answer: " + question.CorrectAnswer))
	} else {
		b.WriteString(DimStyle.Render("Press 'a' to reveal the answer"))
	}

	return b.String()
}
