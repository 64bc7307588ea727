package skill

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxNameLength is the longest skill name, in characters after trimming,
// that may enter the catalog.
const MaxNameLength = 50

type Skill struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

type UserSkill struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	SkillID          uuid.UUID
	SkillName        string
	ProficiencyLevel Proficiency
	LastUpdated      time.Time
}

// Submitted is a skill as reported by a user or inferred from a résumé.
type Submitted struct {
	Name  string
	Level string
}

// Key is the case-insensitive catalog key of a skill name.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ValidName reports whether name, once trimmed, may be inserted into the
// catalog.
func ValidName(name string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	return n >= 1 && n <= MaxNameLength
}
