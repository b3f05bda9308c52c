package fallback

import (
	"math/rand"
	"strings"
	"sync"

	"github.com/pmoncada/gemchat/internal/model/chat"
)

// Category labels one canned-reply bucket.
type Category string

const (
	Greeting  Category = "greeting"
	Code      Category = "code"
	Technical Category = "technical"
	Creative  Category = "creative"
	Default   Category = "default"
)

// priority fixes the order categories are tested in; the first match wins, so
// a greeting keyword beats a code keyword in the same message.
var priority = []Category{Greeting, Code, Technical, Creative}

var keywordBuckets = map[Category][]string{
	Greeting: {"hello", "hi", "hey"},
	Code: {
		"code", "coding", "program", "function", "debug", "bug",
		"javascript", "python", "golang", "script",
	},
	Technical: {
		"how to", "how do", "explain", "what is", "why does", "optimize",
	},
	Creative: {
		"write", "poem", "story", "creative", "imagine",
	},
}

var replies = map[Category][]string{
	Greeting: {
		"Hello! How can I help you today?",
		"Hi there! What would you like to talk about?",
		"Hey! Ask me anything and I'll do my best.",
		"Hello! I'm ready when you are.",
	},
	Code: {
		"I'd love to help with your code. Could you share the snippet and what it should do?",
		"Debugging tip: reproduce the problem with the smallest possible input, then work outward.",
		"Breaking the problem into small functions usually makes both the bug and the fix obvious.",
		"Happy to look at code. What language are you working in?",
	},
	Technical: {
		"Good question. Let's break it down into smaller steps and tackle them one at a time.",
		"The best way to understand a system is to follow one request through it end to end.",
		"Start from what you can observe, then form a hypothesis and test it.",
	},
	Creative: {
		"Words are a playground. Give me a theme and a mood and we can build from there.",
		"Every story needs a character who wants something. Who is yours?",
		"Try starting in the middle of the action and filling in the backstory later.",
	},
	Default: {
		"That's interesting. Tell me more about what you're trying to do.",
		"I'm not sure I follow. Could you rephrase that?",
		"Let's dig into that. What outcome are you hoping for?",
		"Can you give me a bit more context?",
	},
}

// Categorize maps a message to its reply bucket by case-insensitive substring
// matching in priority order.
func Categorize(message string) Category {
	lowered := strings.ToLower(message)
	for _, category := range priority {
		for _, keyword := range keywordBuckets[category] {
			if strings.Contains(lowered, keyword) {
				return category
			}
		}
	}
	return Default
}

// Replies returns a copy of the canned replies for a category.
func Replies(category Category) []string {
	return append([]string(nil), replies[category]...)
}

// Responder picks canned replies when the generation provider is unavailable.
// It is keyword-triggered template selection, nothing more. The random source
// is injected so tests can pin the selection; draws are serialized because one
// Responder is shared by every in-flight request.
type Responder struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New builds a Responder drawing from the supplied source.
func New(rng *rand.Rand) *Responder {
	return &Responder{rng: rng}
}

// Reply returns one reply from the message's category, chosen uniformly at
// random. History is accepted for signature symmetry with the provider but is
// not consulted.
func (r *Responder) Reply(message string, _ []chat.Turn) string {
	options := replies[Categorize(message)]

	r.mu.Lock()
	idx := r.rng.Intn(len(options))
	r.mu.Unlock()

	return options[idx]
}
