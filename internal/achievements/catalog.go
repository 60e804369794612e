package achievements

import "roadready/internal/store"

// Achievement is a single badge. Stat-driven achievements carry a Condition
// over the aggregate stats; event-driven ones (perfect test, category
// mastery) have a nil Condition and are only awarded explicitly.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Condition   func(*store.AggregateStats) bool
}

// Event-driven achievement ids.
const (
	IDPerfectTest    = "perfect_test"
	IDCategoryMaster = "category_master"
)

// Catalog is the fixed badge set, in declaration order. Scan discovery order
// follows this order.
var Catalog = []Achievement{
	{
		ID:          "first_correct",
		Name:        "First Steps",
		Description: "Answer your first question correctly",
		Icon:        "👣",
		Condition: func(s *store.AggregateStats) bool {
			return s.TotalCorrect >= 1
		},
	},
	{
		ID:          "ten_correct",
		Name:        "10 in a Row",
		Description: "Get 10 consecutive correct answers",
		Icon:        "🔟",
		Condition: func(s *store.AggregateStats) bool {
			return s.LongestStreak >= 10
		},
	},
	{
		ID:          "fifty_correct",
		Name:        "Halfway There",
		Description: "Answer 50 questions correctly",
		Icon:        "🏁",
		Condition: func(s *store.AggregateStats) bool {
			return s.TotalCorrect >= 50
		},
	},
	{
		ID:          "hundred_correct",
		Name:        "Century Club",
		Description: "Answer 100 questions correctly",
		Icon:        "💯",
		Condition: func(s *store.AggregateStats) bool {
			return s.TotalCorrect >= 100
		},
	},
	{
		ID:          IDPerfectTest,
		Name:        "Perfect Score",
		Description: "Complete a practice test with 100% accuracy",
		Icon:        "🌟",
	},
	{
		ID:          "mastered_ten",
		Name:        "Master Learner",
		Description: "Master 10 questions",
		Icon:        "🎓",
		Condition: func(s *store.AggregateStats) bool {
			return s.QuestionsMastered >= 10
		},
	},
	{
		ID:          "mastered_twenty_five",
		Name:        "Expert",
		Description: "Master 25 questions",
		Icon:        "🏆",
		Condition: func(s *store.AggregateStats) bool {
			return s.QuestionsMastered >= 25
		},
	},
	{
		ID:          "mastered_fifty",
		Name:        "Master of All",
		Description: "Master 50 questions",
		Icon:        "👑",
		Condition: func(s *store.AggregateStats) bool {
			return s.QuestionsMastered >= 50
		},
	},
	{
		ID:          IDCategoryMaster,
		Name:        "Category Expert",
		Description: "Get 100% accuracy in a category",
		Icon:        "📚",
	},
	{
		ID:          "long_streak",
		Name:        "On Fire",
		Description: "Get a 20-question streak",
		Icon:        "🔥",
		Condition: func(s *store.AggregateStats) bool {
			return s.LongestStreak >= 20
		},
	},
	{
		ID:          "consistent",
		Name:        "Consistent Learner",
		Description: "Maintain 90% or higher accuracy across all attempts",
		Icon:        "📈",
		Condition: func(s *store.AggregateStats) bool {
			return s.TotalAttempts >= 20 && s.Accuracy() >= 0.9
		},
	},
}

// ByID returns the catalog entry with the given id.
func ByID(id string) (Achievement, bool) {
	for _, a := range Catalog {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}
