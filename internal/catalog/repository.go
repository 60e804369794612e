// Package catalog loads and serves the static question bank. The bank is
// read from a JSON file once at startup; all accessors are pure lookups over
// the loaded set.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ErrNotLoaded is returned by operations that need a loaded catalog.
var ErrNotLoaded = errors.New("question catalog not loaded")

// Repository is the in-memory question catalog.
type Repository struct {
	questions []Question
	byID      map[int]Question
	loaded    bool
}

// NewRepository creates an empty, unloaded repository.
func NewRepository() *Repository {
	return &Repository{byID: make(map[int]Question)}
}

type catalogFile struct {
	Questions []Question `json:"questions"`
}

// Load reads and validates the catalog file at path. A failed load leaves the
// repository unchanged and is safe to retry. Loading again after a success is
// a no-op.
func (r *Repository) Load(path string) error {
	if r.loaded {
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read question file: %w", err)
	}

	if err := validateCatalog(raw); err != nil {
		return fmt.Errorf("validate question file: %w", err)
	}

	var file catalogFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse question file: %w", err)
	}

	byID := make(map[int]Question, len(file.Questions))
	for _, q := range file.Questions {
		if _, dup := byID[q.ID]; dup {
			return fmt.Errorf("duplicate question id %d", q.ID)
		}
		if err := checkAnswerKey(q); err != nil {
			return fmt.Errorf("question %d: %w", q.ID, err)
		}
		byID[q.ID] = q
	}

	r.questions = file.Questions
	r.byID = byID
	r.loaded = true
	return nil
}

// checkAnswerKey enforces the per-type answer invariants the structural
// schema cannot express.
func checkAnswerKey(q Question) error {
	switch q.Type {
	case TypeMultipleChoice:
		if len(q.Options) < 2 {
			return fmt.Errorf("multiple_choice needs at least 2 options, got %d", len(q.Options))
		}
		for i := range q.Options {
			if q.CorrectAnswer == OptionLetters[i] {
				return nil
			}
		}
		return fmt.Errorf("correct_answer %q is not an option letter", q.CorrectAnswer)
	case TypeTrueFalse:
		if q.CorrectAnswer != "true" && q.CorrectAnswer != "false" {
			return fmt.Errorf("correct_answer %q must be \"true\" or \"false\"", q.CorrectAnswer)
		}
		if len(q.Options) > 0 {
			return errors.New("true_false questions must not carry options")
		}
		return nil
	default:
		return fmt.Errorf("unknown question type %q", q.Type)
	}
}

// FromQuestions builds a loaded repository directly from a question slice,
// applying the same invariant checks as Load.
func FromQuestions(questions []Question) (*Repository, error) {
	byID := make(map[int]Question, len(questions))
	for _, q := range questions {
		if _, dup := byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %d", q.ID)
		}
		if err := checkAnswerKey(q); err != nil {
			return nil, fmt.Errorf("question %d: %w", q.ID, err)
		}
		byID[q.ID] = q
	}
	return &Repository{questions: questions, byID: byID, loaded: true}, nil
}

// Loaded reports whether a catalog has been successfully loaded.
func (r *Repository) Loaded() bool {
	return r.loaded
}

// All returns a copy of the full question list.
func (r *Repository) All() []Question {
	out := make([]Question, len(r.questions))
	copy(out, r.questions)
	return out
}

// Count returns the number of loaded questions.
func (r *Repository) Count() int {
	return len(r.questions)
}

// ByID returns the question with the given id, if present.
func (r *Repository) ByID(id int) (Question, bool) {
	q, ok := r.byID[id]
	return q, ok
}

// ByCategory returns all questions in the given category.
func (r *Repository) ByCategory(category string) []Question {
	var out []Question
	for _, q := range r.questions {
		if q.Category == category {
			out = append(out, q)
		}
	}
	return out
}

// ByType returns all questions of the given type.
func (r *Repository) ByType(t QuestionType) []Question {
	var out []Question
	for _, q := range r.questions {
		if q.Type == t {
			out = append(out, q)
		}
	}
	return out
}

// Categories returns the distinct category names, sorted.
func (r *Repository) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, q := range r.questions {
		if !seen[q.Category] {
			seen[q.Category] = true
			out = append(out, q.Category)
		}
	}
	sort.Strings(out)
	return out
}

// DefaultQuestionsPath resolves the catalog file path in priority order:
// 1. ROADREADY_QUESTIONS environment variable
// 2. data/questions.json next to the working directory
func DefaultQuestionsPath() string {
	if p := os.Getenv("ROADREADY_QUESTIONS"); p != "" {
		return p
	}
	return filepath.Join("data", "questions.json")
}
