package usecase

import (
	"context"
	"errors"

	"careerpath/internal/domain/course"
	"careerpath/internal/domain/profile"
	"careerpath/internal/pkg/logger"
	"careerpath/internal/repository"

	"github.com/google/uuid"
)

type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (profile.CareerProfile, error)
	ListCourses(ctx context.Context, userID uuid.UUID) ([]course.UserCourse, error)
}

type Profile struct {
	profiles    repository.ProfileRepository
	userCourses repository.UserCourseRepository
	log         *logger.Logger
}

func NewProfileUsecase(profiles repository.ProfileRepository, userCourses repository.UserCourseRepository, log *logger.Logger) *Profile {
	return &Profile{
		profiles:    profiles,
		userCourses: userCourses,
		log:         logger.OrNop(log).With("component", "profile"),
	}
}

func (u *Profile) GetProfile(ctx context.Context, userID uuid.UUID) (profile.CareerProfile, error) {
	p, err := u.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return profile.CareerProfile{}, ErrNotFound
		}
		u.log.Error("load profile failed", "user_id", userID, "error", err)
		return profile.CareerProfile{}, ErrInternal
	}
	return p, nil
}

func (u *Profile) ListCourses(ctx context.Context, userID uuid.UUID) ([]course.UserCourse, error) {
	items, err := u.userCourses.ListByUser(ctx, userID)
	if err != nil {
		u.log.Error("list user courses failed", "user_id", userID, "error", err)
		return nil, ErrInternal
	}
	if items == nil {
		items = []course.UserCourse{}
	}
	return items, nil
}
