package chat

import "strings"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	default:
		return false
	}
}

type Message struct {
	Role    Role
	Content string
}

// LastUserMessage returns the content of the most recent user message.
func LastUserMessage(msgs []Message) (string, bool) {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == RoleUser {
			return msgs[i].Content, true
		}
	}
	return "", false
}

var courseKeywords = []string{
	"course", "courses", "learn", "learning", "study", "training",
	"tutorial", "class", "certification", "certificate", "recommend",
	"skill", "skills", "what should i learn", "how to learn", "resources",
	"where can i", "udemy", "coursera", "linkedin learning",
}

// WantsCourses reports whether text asks, in any casing, for learning
// material. Matching is by substring.
func WantsCourses(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range courseKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// ShouldRecommendCourses applies WantsCourses to the latest user message.
func ShouldRecommendCourses(msgs []Message) bool {
	last, ok := LastUserMessage(msgs)
	return ok && WantsCourses(last)
}
