package usecase

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"careerpath/internal/domain/chat"
	"careerpath/internal/domain/course"
	"careerpath/internal/domain/matching"
	"careerpath/internal/domain/profile"
	"careerpath/internal/domain/skill"
	"careerpath/internal/repository"

	"github.com/google/uuid"
)

type fakeSkillRepo struct {
	mu        sync.Mutex
	rows      []skill.Skill
	getErr    error
	createErr error
	creates   [][]string
}

func (f *fakeSkillRepo) GetAllSkills(context.Context) ([]skill.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return append([]skill.Skill(nil), f.rows...), nil
}

func (f *fakeSkillRepo) FindByName(_ context.Context, name string) (skill.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.rows {
		if skill.Key(s.Name) == skill.Key(name) {
			return s, nil
		}
	}
	return skill.Skill{}, repository.ErrSkillNotFound
}

func (f *fakeSkillRepo) CreateSkill(_ context.Context, name string) (skill.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return skill.Skill{}, f.createErr
	}
	s := skill.Skill{ID: uuid.New(), Name: name, CreatedAt: time.Now()}
	f.rows = append(f.rows, s)
	return s, nil
}

func (f *fakeSkillRepo) CreateSkills(_ context.Context, names []string) ([]skill.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, append([]string(nil), names...))
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := make([]skill.Skill, 0, len(names))
	for _, n := range names {
		var found *skill.Skill
		for i := range f.rows {
			if skill.Key(f.rows[i].Name) == skill.Key(n) {
				found = &f.rows[i]
				break
			}
		}
		if found == nil {
			s := skill.Skill{ID: uuid.New(), Name: n, CreatedAt: time.Now()}
			f.rows = append(f.rows, s)
			found = &f.rows[len(f.rows)-1]
		}
		out = append(out, *found)
	}
	return out, nil
}

func (f *fakeSkillRepo) SearchByPrefix(_ context.Context, prefix string, limit int) ([]skill.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []skill.Skill{}
	for _, s := range f.rows {
		if strings.HasPrefix(strings.ToLower(s.Name), strings.ToLower(prefix)) {
			out = append(out, s)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type userSkillKey struct {
	user  uuid.UUID
	skill uuid.UUID
}

type fakeUserSkillRepo struct {
	mu        sync.Mutex
	skills    *fakeSkillRepo
	rows      map[userSkillKey]skill.Proficiency
	deleteErr error
	upsertErr error
}

func newFakeUserSkillRepo(skills *fakeSkillRepo) *fakeUserSkillRepo {
	return &fakeUserSkillRepo{skills: skills, rows: map[userSkillKey]skill.Proficiency{}}
}

func (f *fakeUserSkillRepo) nameOf(id uuid.UUID) string {
	f.skills.mu.Lock()
	defer f.skills.mu.Unlock()
	for _, s := range f.skills.rows {
		if s.ID == id {
			return s.Name
		}
	}
	return ""
}

func (f *fakeUserSkillRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]skill.UserSkill, error) {
	f.mu.Lock()
	keys := make([]userSkillKey, 0)
	for k := range f.rows {
		if k.user == userID {
			keys = append(keys, k)
		}
	}
	levels := make([]skill.Proficiency, 0, len(keys))
	for _, k := range keys {
		levels = append(levels, f.rows[k])
	}
	f.mu.Unlock()

	out := make([]skill.UserSkill, 0, len(keys))
	for i, k := range keys {
		out = append(out, skill.UserSkill{UserID: k.user, SkillID: k.skill, SkillName: f.nameOf(k.skill), ProficiencyLevel: levels[i]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SkillName < out[j].SkillName })
	return out, nil
}

func (f *fakeUserSkillRepo) FindByUserAndSkill(_ context.Context, userID uuid.UUID, skillID uuid.UUID) (skill.UserSkill, error) {
	f.mu.Lock()
	lvl, ok := f.rows[userSkillKey{userID, skillID}]
	f.mu.Unlock()
	if !ok {
		return skill.UserSkill{}, repository.ErrUserSkillNotFound
	}
	return skill.UserSkill{UserID: userID, SkillID: skillID, SkillName: f.nameOf(skillID), ProficiencyLevel: lvl}, nil
}

func (f *fakeUserSkillRepo) DeleteAllForUser(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for k := range f.rows {
		if k.user == userID {
			delete(f.rows, k)
		}
	}
	return nil
}

func (f *fakeUserSkillRepo) UpsertMany(_ context.Context, userID uuid.UUID, items []repository.UserSkillUpsert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	for _, it := range items {
		f.rows[userSkillKey{userID, it.SkillID}] = it.Level
	}
	return nil
}

func (f *fakeUserSkillRepo) UpdateLevel(ctx context.Context, userID uuid.UUID, skillID uuid.UUID, level skill.Proficiency) (skill.UserSkill, error) {
	f.mu.Lock()
	k := userSkillKey{userID, skillID}
	if _, ok := f.rows[k]; !ok {
		f.mu.Unlock()
		return skill.UserSkill{}, repository.ErrUserSkillNotFound
	}
	f.rows[k] = level
	f.mu.Unlock()
	return f.FindByUserAndSkill(ctx, userID, skillID)
}

func (f *fakeUserSkillRepo) Delete(_ context.Context, userID uuid.UUID, skillID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := userSkillKey{userID, skillID}
	if _, ok := f.rows[k]; !ok {
		return repository.ErrUserSkillNotFound
	}
	delete(f.rows, k)
	return nil
}

type fakeProfileRepo struct {
	mu        sync.Mutex
	rows      map[uuid.UUID]profile.CareerProfile
	findErr   error
	upsertErr error
	resumeErr error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{rows: map[uuid.UUID]profile.CareerProfile{}}
}

func (f *fakeProfileRepo) FindByUserID(_ context.Context, userID uuid.UUID) (profile.CareerProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return profile.CareerProfile{}, f.findErr
	}
	p, ok := f.rows[userID]
	if !ok {
		return profile.CareerProfile{}, repository.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) UpsertCareerInfo(_ context.Context, userID uuid.UUID, info repository.CareerInfo) (profile.CareerProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return profile.CareerProfile{}, f.upsertErr
	}
	p := f.rows[userID]
	p.UserID = userID
	p.CurrentPosition = info.CurrentPosition
	p.ExpectedCareerPath = info.ExpectedCareerPath
	p.EducationLevel = info.EducationLevel
	f.rows[userID] = p
	return p, nil
}

func (f *fakeProfileRepo) UpsertResumeURL(_ context.Context, userID uuid.UUID, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.resumeErr != nil {
		return f.resumeErr
	}
	p := f.rows[userID]
	p.UserID = userID
	p.ResumeURL = url
	f.rows[userID] = p
	return nil
}

type fakeCourseRepo struct {
	mu       sync.Mutex
	hits     []matching.Hit
	courses  []course.Course
	matchErr error
	findErr  error

	matchCalls []matchCall
}

type matchCall struct {
	embedding []float32
	threshold float64
	count     int
}

func (f *fakeCourseRepo) MatchCourses(_ context.Context, embedding []float32, threshold float64, count int) ([]matching.Hit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.matchCalls = append(f.matchCalls, matchCall{embedding: embedding, threshold: threshold, count: count})
	if f.matchErr != nil {
		return nil, f.matchErr
	}
	return f.hits, nil
}

func (f *fakeCourseRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]course.Course, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	want := map[uuid.UUID]bool{}
	for _, id := range ids {
		want[id] = true
	}
	out := []course.Course{}
	for _, c := range f.courses {
		if want[c.ID] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCourseRepo) ListWithoutEmbedding(context.Context, int) ([]repository.CourseForEmbedding, error) {
	return nil, nil
}

func (f *fakeCourseRepo) UpdateEmbedding(context.Context, uuid.UUID, []float32) error { return nil }

type fakeUserCourseRepo struct {
	mu      sync.Mutex
	upserts map[uuid.UUID][]uuid.UUID
	err     error
}

func (f *fakeUserCourseRepo) UpsertRecommended(_ context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upserts == nil {
		f.upserts = map[uuid.UUID][]uuid.UUID{}
	}
	f.upserts[userID] = append([]uuid.UUID(nil), ids...)
	return f.err
}

func (f *fakeUserCourseRepo) ListByUser(context.Context, uuid.UUID) ([]course.UserCourse, error) {
	return nil, nil
}

type fakeAssessmentRepo struct {
	mu        sync.Mutex
	responses map[uuid.UUID]map[string]any
	summaries map[uuid.UUID]string
	err       error
}

func (f *fakeAssessmentRepo) Upsert(_ context.Context, userID uuid.UUID, responses map[string]any, summary string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.responses == nil {
		f.responses = map[uuid.UUID]map[string]any{}
		f.summaries = map[uuid.UUID]string{}
	}
	f.responses[userID] = responses
	f.summaries[userID] = summary
	return nil
}

// fakeCompleter answers with replies in order; the last reply repeats.
type fakeCompleter struct {
	mu      sync.Mutex
	replies []string
	errs    []error
	calls   [][]chat.Message
	opts    []chat.CompletionOptions
}

func (f *fakeCompleter) Complete(_ context.Context, msgs []chat.Message, opts chat.CompletionOptions) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := len(f.calls)
	f.calls = append(f.calls, msgs)
	f.opts = append(f.opts, opts)
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	if err != nil {
		return "", err
	}
	if len(f.replies) == 0 {
		return "", nil
	}
	if i >= len(f.replies) {
		i = len(f.replies) - 1
	}
	return f.replies[i], nil
}

func (f *fakeCompleter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeEmbedder struct {
	mu      sync.Mutex
	queries []string
	err     error
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, text)
	if f.err != nil {
		return nil, f.err
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

type fakeStorage struct {
	mu        sync.Mutex
	objects   map[string][]byte
	uploadErr error
	deleteErr error
	deleted   []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (f *fakeStorage) Upload(_ context.Context, key string, _ string, r io.Reader) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = b
	return nil
}

func (f *fakeStorage) DeletePrefix(_ context.Context, prefix string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, prefix)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for k := range f.objects {
		if strings.HasPrefix(k, prefix) {
			delete(f.objects, k)
		}
	}
	return nil
}

func (f *fakeStorage) PublicURL(key string) string {
	return "https://storage.example.com/resumes/" + key
}

type memSearchCache struct {
	mu sync.Mutex
	m  map[string]any
}

func (c *memSearchCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.m[key]
	if !ok {
		return false, nil
	}
	dst, ok := out.(*[]string)
	src, ok2 := v.([]string)
	if !ok || !ok2 {
		return false, errors.New("unsupported cache value")
	}
	*dst = append([]string(nil), src...)
	return true, nil
}

func (c *memSearchCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.m == nil {
		c.m = map[string]any{}
	}
	c.m[key] = value
	return nil
}
