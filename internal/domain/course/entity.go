package course

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID              uuid.UUID
	Title           string
	Description     string
	Provider        string
	URL             string
	DurationHours   *float64
	Rating          *float64
	UserCount       *int
	DifficultyLevel string
	Skills          []string
	Similarity      float64
}

const StatusRecommended = "recommended"

type UserCourse struct {
	UserID          uuid.UUID
	CourseID        uuid.UUID
	Status          string
	ProgressPercent int
	StartedAt       *time.Time
	UpdatedAt       time.Time
	Course          Course
}
