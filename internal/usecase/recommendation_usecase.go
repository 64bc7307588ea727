package usecase

import (
	"context"
	"strings"

	"careerpath/internal/domain/course"
	"careerpath/internal/domain/matching"
	"careerpath/internal/pkg/logger"
	"careerpath/internal/repository"

	"github.com/google/uuid"
)

type RecommendationResult struct {
	Query   string
	Courses []course.Course
}

type RecommendationUsecase interface {
	Generate(ctx context.Context, userID uuid.UUID, in GapInput) (RecommendationResult, error)
}

type Recommendation struct {
	matcher     *CourseMatcher
	userCourses repository.UserCourseRepository
	notifier    RecommendationNotifier
	log         *logger.Logger
}

func NewRecommendationUsecase(matcher *CourseMatcher, userCourses repository.UserCourseRepository, notifier RecommendationNotifier, log *logger.Logger) *Recommendation {
	if notifier == nil {
		notifier = NotifierFunc(nil)
	}
	return &Recommendation{
		matcher:     matcher,
		userCourses: userCourses,
		notifier:    notifier,
		log:         logger.OrNop(log).With("component", "recommendations"),
	}
}

// Generate refines a gap query, matches courses against it and records them
// as the user's recommendations. Matching and saving failures only narrow
// the result.
func (u *Recommendation) Generate(ctx context.Context, userID uuid.UUID, in GapInput) (RecommendationResult, error) {
	in.CurrentPosition = strings.TrimSpace(in.CurrentPosition)
	in.DesiredCareerPath = strings.TrimSpace(in.DesiredCareerPath)
	if in.CurrentPosition == "" || in.DesiredCareerPath == "" {
		return RecommendationResult{}, ErrInvalidInput
	}
	if userID == uuid.Nil {
		return RecommendationResult{}, ErrUnauthorized
	}

	query := u.matcher.RefineForGap(ctx, in)
	courses := u.matcher.Find(ctx, query, matching.FlowRecommendations)

	if len(courses) > 0 {
		ids := make([]uuid.UUID, 0, len(courses))
		for _, c := range courses {
			ids = append(ids, c.ID)
		}
		if err := u.userCourses.UpsertRecommended(ctx, userID, ids); err != nil {
			u.log.Error("save user courses failed", "user_id", userID, "count", len(ids), "error", err)
		} else {
			u.notifier.NotifyRecommendationsUpdated(userID, len(ids))
		}
	}

	return RecommendationResult{Query: query, Courses: courses}, nil
}
