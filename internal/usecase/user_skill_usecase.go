package usecase

import (
	"context"
	"errors"
	"strings"

	"careerpath/internal/database"
	"careerpath/internal/domain/skill"
	"careerpath/internal/pkg/logger"
	"careerpath/internal/repository"

	"github.com/google/uuid"
)

type AddUserSkillInput struct {
	Name  string
	Level string
}

type UserSkillUsecase interface {
	ListUserSkills(ctx context.Context, userID uuid.UUID) ([]skill.UserSkill, error)
	AddUserSkill(ctx context.Context, userID uuid.UUID, in AddUserSkillInput) (skill.UserSkill, error)
	UpdateUserSkillLevel(ctx context.Context, userID uuid.UUID, skillID uuid.UUID, level string) (skill.UserSkill, error)
	RemoveUserSkill(ctx context.Context, userID uuid.UUID, skillID uuid.UUID) error
}

type UserSkill struct {
	skills     repository.SkillRepository
	userSkills repository.UserSkillRepository
	log        *logger.Logger
}

func NewUserSkillUsecase(skills repository.SkillRepository, userSkills repository.UserSkillRepository, log *logger.Logger) *UserSkill {
	return &UserSkill{
		skills:     skills,
		userSkills: userSkills,
		log:        logger.OrNop(log).With("component", "user_skills"),
	}
}

func (u *UserSkill) ListUserSkills(ctx context.Context, userID uuid.UUID) ([]skill.UserSkill, error) {
	items, err := u.userSkills.FindByUserID(ctx, userID)
	if err != nil {
		u.log.Error("list user skills failed", "user_id", userID, "error", err)
		return nil, ErrInternal
	}
	if items == nil {
		items = []skill.UserSkill{}
	}
	return items, nil
}

// AddUserSkill links a skill by name, creating the catalog row when no
// case-insensitive match exists.
func (u *UserSkill) AddUserSkill(ctx context.Context, userID uuid.UUID, in AddUserSkillInput) (skill.UserSkill, error) {
	name := strings.TrimSpace(in.Name)
	if !skill.ValidName(name) {
		return skill.UserSkill{}, ErrInvalidInput
	}
	level := skill.Beginner
	if strings.TrimSpace(in.Level) != "" {
		p, ok := skill.ParseProficiency(in.Level)
		if !ok {
			return skill.UserSkill{}, ErrInvalidProficiencyLevel
		}
		level = p
	}

	existing, err := u.userSkills.FindByUserID(ctx, userID)
	if err != nil {
		u.log.Error("list user skills failed", "user_id", userID, "error", err)
		return skill.UserSkill{}, ErrInternal
	}
	for _, it := range existing {
		if skill.Key(it.SkillName) == skill.Key(name) {
			return skill.UserSkill{}, ErrSkillAlreadyExists
		}
	}

	s, err := u.findOrCreate(ctx, name)
	if err != nil {
		u.log.Error("resolve skill failed", "name", name, "error", err)
		return skill.UserSkill{}, ErrInternal
	}

	if err := u.userSkills.UpsertMany(ctx, userID, []repository.UserSkillUpsert{{SkillID: s.ID, Level: level}}); err != nil {
		if database.IsForeignKeyViolation(err) {
			return skill.UserSkill{}, ErrSkillNotFound
		}
		u.log.Error("link user skill failed", "user_id", userID, "skill_id", s.ID, "error", err)
		return skill.UserSkill{}, ErrInternal
	}

	linked, err := u.userSkills.FindByUserAndSkill(ctx, userID, s.ID)
	if err != nil {
		return skill.UserSkill{UserID: userID, SkillID: s.ID, SkillName: s.Name, ProficiencyLevel: level}, nil
	}
	return linked, nil
}

func (u *UserSkill) findOrCreate(ctx context.Context, name string) (skill.Skill, error) {
	s, err := u.skills.FindByName(ctx, name)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, repository.ErrSkillNotFound) {
		return skill.Skill{}, err
	}

	s, err = u.skills.CreateSkill(ctx, name)
	if err == nil {
		return s, nil
	}
	// Lost a race with a concurrent insert of the same name.
	if database.IsUniqueViolation(err) {
		return u.skills.FindByName(ctx, name)
	}
	return skill.Skill{}, err
}

func (u *UserSkill) UpdateUserSkillLevel(ctx context.Context, userID uuid.UUID, skillID uuid.UUID, level string) (skill.UserSkill, error) {
	if skillID == uuid.Nil {
		return skill.UserSkill{}, ErrInvalidInput
	}
	p, ok := skill.ParseProficiency(level)
	if !ok {
		return skill.UserSkill{}, ErrInvalidProficiencyLevel
	}

	updated, err := u.userSkills.UpdateLevel(ctx, userID, skillID, p)
	if err != nil {
		if errors.Is(err, repository.ErrUserSkillNotFound) {
			return skill.UserSkill{}, ErrSkillNotFound
		}
		u.log.Error("update user skill failed", "user_id", userID, "skill_id", skillID, "error", err)
		return skill.UserSkill{}, ErrInternal
	}
	return updated, nil
}

func (u *UserSkill) RemoveUserSkill(ctx context.Context, userID uuid.UUID, skillID uuid.UUID) error {
	if skillID == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.userSkills.Delete(ctx, userID, skillID); err != nil {
		if errors.Is(err, repository.ErrUserSkillNotFound) {
			return ErrSkillNotFound
		}
		u.log.Error("remove user skill failed", "user_id", userID, "skill_id", skillID, "error", err)
		return ErrInternal
	}
	return nil
}
