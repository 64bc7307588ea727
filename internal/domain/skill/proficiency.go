package skill

import "strings"

type Proficiency string

const (
	Beginner     Proficiency = "Beginner"
	Intermediate Proficiency = "Intermediate"
	Advanced     Proficiency = "Advanced"
	Expert       Proficiency = "Expert"
)

var proficiencyAliases = map[string]Proficiency{
	"beginner":     Beginner,
	"novice":       Beginner,
	"intermediate": Intermediate,
	"advanced":     Advanced,
	"expert":       Expert,
	"professional": Expert,
}

// ParseProficiency maps a label from either vocabulary in use by clients
// onto the canonical set. ok is false for unknown or empty labels.
func ParseProficiency(raw string) (Proficiency, bool) {
	p, ok := proficiencyAliases[strings.ToLower(strings.TrimSpace(raw))]
	return p, ok
}

// NormalizeProficiency is ParseProficiency with a fallback for unknown labels.
func NormalizeProficiency(raw string, def Proficiency) Proficiency {
	if p, ok := ParseProficiency(raw); ok {
		return p
	}
	return def
}

func (p Proficiency) String() string { return string(p) }
