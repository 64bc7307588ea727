package dto

import (
	"time"

	"careerpath/internal/domain/profile"
	"careerpath/internal/domain/skill"
	"careerpath/internal/usecase"

	"github.com/google/uuid"
)

type ProfileResponse struct {
	UserID             uuid.UUID `json:"user_id"`
	CurrentPosition    string    `json:"current_position"`
	ExpectedCareerPath string    `json:"expected_careerpath"`
	EducationLevel     string    `json:"education_level"`
	ResumeURL          string    `json:"resume_url,omitempty"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func NewProfileResponse(p profile.CareerProfile) ProfileResponse {
	return ProfileResponse{
		UserID:             p.UserID,
		CurrentPosition:    p.CurrentPosition,
		ExpectedCareerPath: p.ExpectedCareerPath,
		EducationLevel:     p.EducationLevel,
		ResumeURL:          p.ResumeURL,
		UpdatedAt:          p.UpdatedAt,
	}
}

type SubmittedSkill struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

type AssessmentRequest struct {
	Answers      map[string]any                 `json:"answers"`
	PersonalInfo usecase.AssessmentPersonalInfo `json:"personalInfo"`
	Skills       []SubmittedSkill               `json:"skills"`
}

func (r AssessmentRequest) Input() usecase.AssessmentInput {
	skills := make([]skill.Submitted, 0, len(r.Skills))
	for _, s := range r.Skills {
		skills = append(skills, skill.Submitted{Name: s.Name, Level: s.Level})
	}
	answers := r.Answers
	if answers == nil {
		answers = map[string]any{}
	}
	return usecase.AssessmentInput{Answers: answers, PersonalInfo: r.PersonalInfo, Skills: skills}
}

type AssessmentResponse struct {
	Profile ProfileResponse         `json:"profile"`
	Skills  usecase.ReconcileResult `json:"skills"`
}

type UserSkillResponse struct {
	SkillID          uuid.UUID `json:"skill_id"`
	Name             string    `json:"name"`
	ProficiencyLevel string    `json:"proficiency_level"`
	LastUpdated      time.Time `json:"last_updated"`
}

func NewUserSkillResponse(s skill.UserSkill) UserSkillResponse {
	return UserSkillResponse{
		SkillID:          s.SkillID,
		Name:             s.SkillName,
		ProficiencyLevel: s.ProficiencyLevel.String(),
		LastUpdated:      s.LastUpdated,
	}
}

type AddUserSkillRequest struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

type UpdateUserSkillRequest struct {
	Level string `json:"level"`
}
