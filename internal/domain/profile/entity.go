package profile

import (
	"time"

	"github.com/google/uuid"
)

type CareerProfile struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	CurrentPosition    string
	ExpectedCareerPath string
	EducationLevel     string
	ResumeURL          string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// PendingSummary marks an assessment whose AI summary is not generated yet.
const PendingSummary = "Pending Analysis"

type Assessment struct {
	UserID    uuid.UUID
	Responses map[string]any
	AISummary string
	UpdatedAt time.Time
}
