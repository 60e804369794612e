package catalog

// QuestionType distinguishes how a question is answered.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeTrueFalse      QuestionType = "true_false"
)

// Question is a single immutable catalog entry. The catalog is loaded once at
// startup and never mutated afterwards.
type Question struct {
	ID            int          `json:"id"`
	Category      string       `json:"category"`
	Type          QuestionType `json:"type"`
	Prompt        string       `json:"question"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correct_answer"`
	Explanation   string       `json:"explanation"`
}

// OptionLetters are the answer keys for multiple-choice questions, in
// display order.
var OptionLetters = []string{"a", "b", "c", "d"}

// AnswerText returns the option text matching an answer key. For true/false
// questions the key itself ("true" or "false") is returned.
func (q Question) AnswerText(key string) string {
	if q.Type == TypeTrueFalse {
		return key
	}
	for i, letter := range OptionLetters {
		if letter == key && i < len(q.Options) {
			return q.Options[i]
		}
	}
	return ""
}
