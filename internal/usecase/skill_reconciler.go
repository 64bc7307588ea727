package usecase

import (
	"context"
	"fmt"
	"strings"

	"careerpath/internal/domain/skill"
	"careerpath/internal/pkg/logger"
	"careerpath/internal/repository"

	"github.com/google/uuid"
)

type ReconcileResult struct {
	Linked  int      `json:"linked"`
	Created int      `json:"created"`
	Skipped []string `json:"skipped"`
}

// SkillReconciler replaces a user's skill set with a submitted list,
// creating missing catalog entries on the way. Steps are not wrapped in a
// transaction: a failure after the reset can leave the user with no skills
// until the next submission.
type SkillReconciler struct {
	skills     repository.SkillRepository
	userSkills repository.UserSkillRepository
	log        *logger.Logger
}

func NewSkillReconciler(skills repository.SkillRepository, userSkills repository.UserSkillRepository, log *logger.Logger) *SkillReconciler {
	return &SkillReconciler{
		skills:     skills,
		userSkills: userSkills,
		log:        logger.OrNop(log).With("component", "skill_reconciler"),
	}
}

// Reconcile returns an error only when the final link write fails. Earlier
// failures are logged and narrow the result instead.
func (r *SkillReconciler) Reconcile(ctx context.Context, userID uuid.UUID, items []skill.Submitted) (ReconcileResult, error) {
	res := ReconcileResult{Skipped: []string{}}
	if userID == uuid.Nil {
		return res, ErrInvalidInput
	}
	log := r.log.With("user_id", userID)

	if err := r.userSkills.DeleteAllForUser(ctx, userID); err != nil {
		log.Error("clear user skills failed", "error", err)
	}

	submitted := dedupeSubmitted(items)
	if len(submitted) == 0 {
		return res, nil
	}

	index := map[string]skill.Skill{}
	catalog, err := r.skills.GetAllSkills(ctx)
	if err != nil {
		log.Error("fetch skill catalog failed", "error", err)
	}
	for _, s := range catalog {
		index[skill.Key(s.Name)] = s
	}

	var missing []string
	for _, it := range submitted {
		if _, ok := index[skill.Key(it.Name)]; ok {
			continue
		}
		name := strings.TrimSpace(it.Name)
		if !skill.ValidName(name) {
			continue
		}
		missing = append(missing, name)
	}

	if len(missing) > 0 {
		created, err := r.skills.CreateSkills(ctx, missing)
		if err != nil {
			log.Error("create skills failed", "count", len(missing), "error", err)
		}
		for _, s := range created {
			k := skill.Key(s.Name)
			if _, ok := index[k]; !ok {
				res.Created++
			}
			index[k] = s
		}
	}

	seen := map[uuid.UUID]struct{}{}
	links := make([]repository.UserSkillUpsert, 0, len(submitted))
	for _, it := range submitted {
		s, ok := index[skill.Key(it.Name)]
		if !ok {
			log.Warn("skipping unresolved skill", "name", it.Name)
			res.Skipped = append(res.Skipped, it.Name)
			continue
		}
		if _, dup := seen[s.ID]; dup {
			continue
		}
		seen[s.ID] = struct{}{}
		links = append(links, repository.UserSkillUpsert{
			SkillID: s.ID,
			Level:   skill.NormalizeProficiency(it.Level, skill.Intermediate),
		})
	}

	if err := r.userSkills.UpsertMany(ctx, userID, links); err != nil {
		log.Error("link user skills failed", "count", len(links), "error", err)
		return res, fmt.Errorf("link user skills: %w", err)
	}
	res.Linked = len(links)
	return res, nil
}

// dedupeSubmitted drops blank names and case-insensitive repeats, keeping
// the first occurrence.
func dedupeSubmitted(items []skill.Submitted) []skill.Submitted {
	seen := make(map[string]struct{}, len(items))
	out := make([]skill.Submitted, 0, len(items))
	for _, it := range items {
		k := skill.Key(it.Name)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}
	return out
}
