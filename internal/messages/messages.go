// Package messages provides the encouraging feedback copy shown during and
// after sessions. Pure data plus pickers; the screens decide where it goes.
package messages

import (
	"math/rand"
	"strings"
)

// Message pairs a short line of copy with an emoji.
type Message struct {
	Text  string
	Emoji string
}

var correctMessages = []Message{
	{"Excellent!", "🌟"},
	{"You got it!", "✅"},
	{"Perfect!", "🎯"},
	{"Great job!", "💪"},
	{"Nailed it!", "🔥"},
	{"Outstanding!", "🚀"},
	{"Well done!", "👏"},
	{"You're crushing it!", "💯"},
	{"Absolutely right!", "⭐"},
}

var incorrectMessages = []Message{
	{"Not quite, but you're learning!", "📚"},
	{"Close! Let's review this.", "🔍"},
	{"You'll get it next time!", "💡"},
	{"That's okay, keep practicing!", "🎓"},
	{"Great attempt! Let's see the answer.", "👀"},
	{"Learning moment! Check this out.", "📖"},
}

var masteryMessages = []Message{
	{"Question Mastered!", "🎉"},
	{"You've conquered this one!", "🏅"},
	{"This question is yours!", "👑"},
	{"Mastery unlocked!", "🔓"},
	{"Question complete!", "✨"},
}

// streakMilestones map streak lengths to celebration copy. Lookup falls back
// to the nearest lower milestone.
var streakMilestones = []struct {
	Streak int
	Msg    Message
}{
	{25, Message{"25 consecutive correct! Phenomenal!", "🏆"}},
	{20, Message{"20 in a row! You're a star!", "⭐"}},
	{15, Message{"15 in a row! Absolutely incredible!", "💫"}},
	{10, Message{"10 in a row! You're unstoppable!", "⚡"}},
	{5, Message{"5 in a row! Amazing progress!", "🚀"}},
	{3, Message{"3 in a row! You're on fire!", "🔥"}},
}

var greetings = []string{
	"Welcome back, {name}!",
	"Ready to practice, {name}?",
	"Great to see you, {name}!",
	"Let's ace this, {name}!",
	"Time to master, {name}!",
}

// Correct returns a random correct-answer message.
func Correct(rng *rand.Rand) Message {
	return correctMessages[rng.Intn(len(correctMessages))]
}

// Incorrect returns a random incorrect-answer message.
func Incorrect(rng *rand.Rand) Message {
	return incorrectMessages[rng.Intn(len(incorrectMessages))]
}

// Mastery returns a random question-mastered message.
func Mastery(rng *rand.Rand) Message {
	return masteryMessages[rng.Intn(len(masteryMessages))]
}

// Streak returns the celebration message for the given streak length, or
// false when the streak is below the first milestone.
func Streak(streak int) (Message, bool) {
	for _, m := range streakMilestones {
		if streak >= m.Streak {
			return m.Msg, true
		}
	}
	return Message{}, false
}

// Result returns the summary message matching a session percentage.
func Result(percentage int) Message {
	switch {
	case percentage == 100:
		return Message{"Perfect score! You're absolutely crushing it!", "🏆"}
	case percentage >= 90:
		return Message{"Excellent work! You really know this stuff!", "🌟"}
	case percentage >= 80:
		return Message{"Great job! Keep practicing and you'll master this!", "💪"}
	case percentage >= 70:
		return Message{"Good effort! You're making solid progress!", "📈"}
	case percentage >= 60:
		return Message{"Nice try! Keep practicing and it'll click!", "🎓"}
	default:
		return Message{"Keep practicing! Every attempt helps you learn!", "📚"}
	}
}

// Greeting returns a random dashboard greeting with the user's name filled
// in.
func Greeting(rng *rand.Rand, name string) string {
	g := greetings[rng.Intn(len(greetings))]
	return strings.ReplaceAll(g, "{name}", name)
}
