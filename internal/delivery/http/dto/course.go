package dto

import (
	"time"

	"careerpath/internal/domain/course"

	"github.com/google/uuid"
)

type CourseResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Provider        string    `json:"provider"`
	URL             string    `json:"url,omitempty"`
	DurationHours   *float64  `json:"duration_hours,omitempty"`
	Rating          *float64  `json:"rating,omitempty"`
	UserCount       *int      `json:"user_count,omitempty"`
	DifficultyLevel string    `json:"difficulty_level,omitempty"`
	Skills          []string  `json:"skills"`
	Similarity      float64   `json:"similarity,omitempty"`
}

func NewCourseResponse(c course.Course) CourseResponse {
	skills := c.Skills
	if skills == nil {
		skills = []string{}
	}
	return CourseResponse{
		ID:              c.ID,
		Title:           c.Title,
		Description:     c.Description,
		Provider:        c.Provider,
		URL:             c.URL,
		DurationHours:   c.DurationHours,
		Rating:          c.Rating,
		UserCount:       c.UserCount,
		DifficultyLevel: c.DifficultyLevel,
		Skills:          skills,
		Similarity:      c.Similarity,
	}
}

func NewCourseResponses(items []course.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(items))
	for _, c := range items {
		out = append(out, NewCourseResponse(c))
	}
	return out
}

type UserCourseResponse struct {
	CourseID        uuid.UUID      `json:"course_id"`
	Status          string         `json:"status"`
	ProgressPercent int            `json:"progress_percent"`
	StartedAt       *time.Time     `json:"started_at,omitempty"`
	UpdatedAt       time.Time      `json:"updated_at"`
	Course          CourseResponse `json:"course"`
}

func NewUserCourseResponses(items []course.UserCourse) []UserCourseResponse {
	out := make([]UserCourseResponse, 0, len(items))
	for _, it := range items {
		out = append(out, UserCourseResponse{
			CourseID:        it.CourseID,
			Status:          it.Status,
			ProgressPercent: it.ProgressPercent,
			StartedAt:       it.StartedAt,
			UpdatedAt:       it.UpdatedAt,
			Course:          NewCourseResponse(it.Course),
		})
	}
	return out
}
