package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"careerpath/internal/domain/profile"
	"careerpath/internal/domain/skill"
	"careerpath/internal/pkg/logger"
	"careerpath/internal/repository"

	"github.com/google/uuid"
)

const regenerateTimeout = 2 * time.Minute

type AssessmentPersonalInfo struct {
	CurrentStatus    string `json:"currentStatus"`
	CurrentJobTitle  string `json:"currentJobTitle"`
	TargetCareerPath string `json:"targetCareerPath"`
	YearsExperience  string `json:"yearsExperience"`
	EducationLevel   string `json:"educationLevel"`
}

type AssessmentInput struct {
	Answers      map[string]any
	PersonalInfo AssessmentPersonalInfo
	Skills       []skill.Submitted
}

type AssessmentResult struct {
	Profile profile.CareerProfile
	Skills  ReconcileResult
}

type AssessmentUsecase interface {
	Submit(ctx context.Context, userID uuid.UUID, in AssessmentInput) (AssessmentResult, error)
}

// AsyncRunner runs fn detached from the request. Production uses a
// goroutine.
type AsyncRunner func(fn func())

func goAsync(fn func()) { go fn() }

type Assessment struct {
	profiles    repository.ProfileRepository
	assessments repository.AssessmentRepository
	reconciler  *SkillReconciler
	recommender RecommendationUsecase
	async       AsyncRunner
	now         func() time.Time
	log         *logger.Logger
}

func NewAssessmentUsecase(
	profiles repository.ProfileRepository,
	assessments repository.AssessmentRepository,
	reconciler *SkillReconciler,
	recommender RecommendationUsecase,
	log *logger.Logger,
) *Assessment {
	return &Assessment{
		profiles:    profiles,
		assessments: assessments,
		reconciler:  reconciler,
		recommender: recommender,
		async:       goAsync,
		now:         time.Now,
		log:         logger.OrNop(log).With("component", "assessment"),
	}
}

// WithAsyncRunner replaces how background regeneration is scheduled.
func (u *Assessment) WithAsyncRunner(r AsyncRunner) *Assessment {
	if r != nil {
		u.async = r
	}
	return u
}

func (u *Assessment) Submit(ctx context.Context, userID uuid.UUID, in AssessmentInput) (AssessmentResult, error) {
	if userID == uuid.Nil {
		return AssessmentResult{}, ErrUnauthorized
	}
	log := u.log.With("user_id", userID)

	info := repository.CareerInfo{
		CurrentPosition:    firstNonEmpty(answerString(in.Answers, "q_current_job"), in.PersonalInfo.CurrentJobTitle),
		EducationLevel:     firstNonEmpty(answerString(in.Answers, "q_education"), in.PersonalInfo.EducationLevel),
		ExpectedCareerPath: firstNonEmpty(answerString(in.Answers, "q_target_path"), in.PersonalInfo.TargetCareerPath),
	}

	saved, err := u.profiles.UpsertCareerInfo(ctx, userID, info)
	if err != nil {
		log.Error("update profile failed", "error", err)
		return AssessmentResult{}, fmt.Errorf("update profile: %w", err)
	}

	rec, err := u.reconciler.Reconcile(ctx, userID, in.Skills)
	if err != nil {
		log.Error("reconcile skills failed", "error", err)
	}

	if err := u.assessments.Upsert(ctx, userID, assessmentResponses(in, u.now()), profile.PendingSummary); err != nil {
		log.Error("save assessment failed", "error", err)
		return AssessmentResult{}, fmt.Errorf("save assessment: %w", err)
	}

	if u.recommender != nil && info.CurrentPosition != "" && info.ExpectedCareerPath != "" {
		gap := GapInput{
			CurrentPosition:   info.CurrentPosition,
			DesiredCareerPath: info.ExpectedCareerPath,
			Skills:            submittedNames(in.Skills),
		}
		bg := context.WithoutCancel(ctx)
		u.async(func() {
			ctx, cancel := context.WithTimeout(bg, regenerateTimeout)
			defer cancel()
			res, err := u.recommender.Generate(ctx, userID, gap)
			if err != nil {
				log.Error("regenerate recommendations failed", "error", err)
				return
			}
			log.Info("recommendations regenerated", "query", res.Query, "count", len(res.Courses))
		})
	}

	return AssessmentResult{Profile: saved, Skills: rec}, nil
}

func assessmentResponses(in AssessmentInput, at time.Time) map[string]any {
	out := make(map[string]any, len(in.Answers)+3)
	for k, v := range in.Answers {
		out[k] = v
	}
	out["personalInfo"] = in.PersonalInfo

	selected := make([]map[string]string, 0, len(in.Skills))
	for _, s := range in.Skills {
		selected = append(selected, map[string]string{"name": s.Name, "level": s.Level})
	}
	out["selectedSkills"] = selected
	out["timestamp"] = at.UTC().Format(time.RFC3339Nano)
	return out
}

func answerString(answers map[string]any, key string) string {
	v, ok := answers[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func submittedNames(items []skill.Submitted) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if n := strings.TrimSpace(it.Name); n != "" {
			out = append(out, n)
		}
	}
	return out
}
