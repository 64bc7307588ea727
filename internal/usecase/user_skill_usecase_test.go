package usecase

import (
	"context"
	"errors"
	"testing"

	"careerpath/internal/domain/skill"
	"careerpath/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

func newUserSkillFixture(seed ...string) (*UserSkill, *fakeSkillRepo, *fakeUserSkillRepo) {
	skills := &fakeSkillRepo{}
	for _, n := range seed {
		skills.rows = append(skills.rows, skill.Skill{ID: uuid.New(), Name: n})
	}
	us := newFakeUserSkillRepo(skills)
	return NewUserSkillUsecase(skills, us, nil), skills, us
}

func TestAddUserSkill_ReusesCatalogRow(t *testing.T) {
	u, skills, _ := newUserSkillFixture("TypeScript")
	userID := uuid.New()

	got, err := u.AddUserSkill(context.Background(), userID, AddUserSkillInput{Name: "  typescript "})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.SkillName != "TypeScript" || got.ProficiencyLevel != skill.Beginner {
		t.Fatalf("unexpected link %+v", got)
	}
	if len(skills.rows) != 1 {
		t.Fatalf("must not create a duplicate catalog row")
	}
}

func TestAddUserSkill_RejectsDuplicateAndBadInput(t *testing.T) {
	u, _, _ := newUserSkillFixture()
	userID := uuid.New()
	ctx := context.Background()

	if _, err := u.AddUserSkill(ctx, userID, AddUserSkillInput{Name: "Rust", Level: "Expert"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := u.AddUserSkill(ctx, userID, AddUserSkillInput{Name: "RUST"}); !errors.Is(err, ErrSkillAlreadyExists) {
		t.Fatalf("expected ErrSkillAlreadyExists, got %v", err)
	}
	if _, err := u.AddUserSkill(ctx, userID, AddUserSkillInput{Name: "  "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := u.AddUserSkill(ctx, userID, AddUserSkillInput{Name: "Zig", Level: "wizard"}); !errors.Is(err, ErrInvalidProficiencyLevel) {
		t.Fatalf("expected ErrInvalidProficiencyLevel, got %v", err)
	}
}

type racingSkillRepo struct {
	*fakeSkillRepo
	lookups int
}

func (r *racingSkillRepo) FindByName(ctx context.Context, name string) (skill.Skill, error) {
	r.lookups++
	if r.lookups == 1 {
		return skill.Skill{}, repository.ErrSkillNotFound
	}
	return r.fakeSkillRepo.FindByName(ctx, name)
}

func (r *racingSkillRepo) CreateSkill(context.Context, string) (skill.Skill, error) {
	return skill.Skill{}, &pgconn.PgError{Code: "23505"}
}

func TestAddUserSkill_RecoversFromInsertRace(t *testing.T) {
	base := &fakeSkillRepo{rows: []skill.Skill{{ID: uuid.New(), Name: "Elixir"}}}
	repo := &racingSkillRepo{fakeSkillRepo: base}
	us := newFakeUserSkillRepo(base)
	u := NewUserSkillUsecase(repo, us, nil)

	got, err := u.AddUserSkill(context.Background(), uuid.New(), AddUserSkillInput{Name: "elixir"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.SkillID != base.rows[0].ID {
		t.Fatalf("expected existing row after race, got %+v", got)
	}
}

func TestUpdateAndRemoveUserSkill(t *testing.T) {
	u, _, _ := newUserSkillFixture()
	userID := uuid.New()
	ctx := context.Background()

	added, err := u.AddUserSkill(ctx, userID, AddUserSkillInput{Name: "Go"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	updated, err := u.UpdateUserSkillLevel(ctx, userID, added.SkillID, "professional")
	if err != nil || updated.ProficiencyLevel != skill.Expert {
		t.Fatalf("expected Expert, got %+v %v", updated, err)
	}
	if _, err := u.UpdateUserSkillLevel(ctx, userID, added.SkillID, "nope"); !errors.Is(err, ErrInvalidProficiencyLevel) {
		t.Fatalf("expected ErrInvalidProficiencyLevel, got %v", err)
	}
	if _, err := u.UpdateUserSkillLevel(ctx, userID, uuid.New(), "Expert"); !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}

	if err := u.RemoveUserSkill(ctx, userID, added.SkillID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := u.RemoveUserSkill(ctx, userID, added.SkillID); !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound on second remove, got %v", err)
	}

	items, err := u.ListUserSkills(ctx, userID)
	if err != nil || len(items) != 0 {
		t.Fatalf("expected empty list, got %v %v", items, err)
	}
}
