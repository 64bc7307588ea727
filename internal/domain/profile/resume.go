package profile

import (
	"strings"

	"careerpath/internal/domain/skill"
)

var YearsExperienceBuckets = []string{
	"0-1 years",
	"1-3 years",
	"3-5 years",
	"5-10 years",
	"10+ years",
}

var EducationLevels = []string{
	"High School",
	"Bootcamp / Certificate",
	"Associate Degree",
	"Bachelor's Degree",
	"Master's Degree",
	"PhD",
	"Self-Taught",
}

type PersonalInfo struct {
	CurrentJobTitle string `json:"currentJobTitle"`
	YearsExperience string `json:"yearsExperience"`
	EducationLevel  string `json:"educationLevel"`
}

type TechnicalSkill struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

// ResumeProfile is the structured candidate profile extracted from a résumé.
type ResumeProfile struct {
	PersonalInfo    PersonalInfo     `json:"personalInfo"`
	TechnicalSkills []TechnicalSkill `json:"technicalSkills"`
	SoftSkills      []string         `json:"softSkills"`
	SuggestedPath   string           `json:"suggestedPath"`
}

// Normalize coerces p onto its documented value sets: enum fields outside
// their set are blanked, skill levels default to Intermediate, and empty
// names are dropped.
func (p ResumeProfile) Normalize() ResumeProfile {
	out := ResumeProfile{
		PersonalInfo: PersonalInfo{
			CurrentJobTitle: strings.TrimSpace(p.PersonalInfo.CurrentJobTitle),
			YearsExperience: matchEnum(p.PersonalInfo.YearsExperience, YearsExperienceBuckets),
			EducationLevel:  matchEnum(p.PersonalInfo.EducationLevel, EducationLevels),
		},
		TechnicalSkills: make([]TechnicalSkill, 0, len(p.TechnicalSkills)),
		SoftSkills:      make([]string, 0, len(p.SoftSkills)),
		SuggestedPath:   strings.TrimSpace(p.SuggestedPath),
	}

	for _, s := range p.TechnicalSkills {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			continue
		}
		out.TechnicalSkills = append(out.TechnicalSkills, TechnicalSkill{
			Name:  name,
			Level: skill.NormalizeProficiency(s.Level, skill.Intermediate).String(),
		})
	}
	for _, s := range p.SoftSkills {
		if s = strings.TrimSpace(s); s != "" {
			out.SoftSkills = append(out.SoftSkills, s)
		}
	}
	return out
}

func matchEnum(v string, allowed []string) string {
	v = strings.TrimSpace(v)
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return a
		}
	}
	return ""
}
