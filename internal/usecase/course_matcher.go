package usecase

import (
	"context"
	"fmt"
	"strings"

	"careerpath/internal/domain/chat"
	"careerpath/internal/domain/course"
	"careerpath/internal/domain/matching"
	"careerpath/internal/pkg/logger"
	"careerpath/internal/repository"

	"github.com/google/uuid"
)

const gapQueryPrompt = "You are an expert career counselor. Analyze the skill gap between the user current position (and their existing skills) and the desired career path. Return a single, concise search query that covers the most critical technical skills MISSING. Do not suggest skills they already have. Do not include quotes or explanations, just the query text."

const chatQueryPromptTemplate = `You are an expert at refining search queries for career courses.
Based on the user's profile and request, generate a SINGLE, keywords-focused search query to find the most relevant courses.
Do not include words like "course" or "learn". Focus on specific skills, technologies, or roles.
User Target Path: %s
User Skills: %s`

// GapInput describes the distance between where a user is and where they
// want to be.
type GapInput struct {
	CurrentPosition   string
	DesiredCareerPath string
	Skills            []string
}

// CourseMatcher turns free text into a ranked course list: LLM query
// refinement, embedding, vector search, hydration.
type CourseMatcher struct {
	llm      Completer
	embedder Embedder
	courses  repository.CourseRepository
	log      *logger.Logger
}

func NewCourseMatcher(llm Completer, embedder Embedder, courses repository.CourseRepository, log *logger.Logger) *CourseMatcher {
	return &CourseMatcher{
		llm:      llm,
		embedder: embedder,
		courses:  courses,
		log:      logger.OrNop(log).With("component", "course_matcher"),
	}
}

func skillsOrNone(skills []string) string {
	kept := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return "None listed"
	}
	return strings.Join(kept, ", ")
}

// RefineForGap asks the LLM for a query covering the skills missing between
// the current position and the desired path.
func (m *CourseMatcher) RefineForGap(ctx context.Context, in GapInput) string {
	msgs := []chat.Message{
		{Role: chat.RoleSystem, Content: gapQueryPrompt},
		{Role: chat.RoleUser, Content: fmt.Sprintf("Current Position: %s\nCurrent Skills: %s\nDesired Career Path: %s",
			in.CurrentPosition, skillsOrNone(in.Skills), in.DesiredCareerPath)},
	}
	return m.refine(ctx, msgs, chat.CompletionOptions{}, in.DesiredCareerPath)
}

// RefineForChat rewrites the latest user message into a keyword query.
func (m *CourseMatcher) RefineForChat(ctx context.Context, uc UserContext, lastMessage string) string {
	msgs := []chat.Message{
		{Role: chat.RoleSystem, Content: fmt.Sprintf(chatQueryPromptTemplate, uc.TargetCareer, uc.SkillsList)},
		{Role: chat.RoleUser, Content: lastMessage},
	}
	return m.refine(ctx, msgs, chat.CompletionOptions{Temperature: 0.3, MaxTokens: 50}, uc.TargetCareer)
}

func (m *CourseMatcher) refine(ctx context.Context, msgs []chat.Message, opts chat.CompletionOptions, target string) string {
	out, err := m.llm.Complete(ctx, msgs, opts)
	if err != nil {
		m.log.Warn("query refinement failed, using fallback", "error", err)
		return matching.FallbackQuery(target)
	}
	q := matching.CleanQuery(out)
	if q == "" {
		return matching.FallbackQuery(target)
	}
	m.log.Debug("refined search query", "query", q)
	return q
}

// Find returns the courses nearest to query, best first. Any failure along
// the way yields an empty list.
func (m *CourseMatcher) Find(ctx context.Context, query string, flow matching.Flow) []course.Course {
	log := m.log.With("flow", string(flow))

	vec, err := m.embedder.Embed(ctx, query)
	if err != nil {
		log.Error("embed query failed", "error", err)
		return []course.Course{}
	}

	hits, err := m.courses.MatchCourses(ctx, vec, matching.SimilarityThreshold, matching.MatchCount(flow))
	if err != nil {
		log.Error("match courses failed", "error", err)
		return []course.Course{}
	}
	hits = matching.Dedupe(hits)
	if len(hits) == 0 {
		return []course.Course{}
	}

	ids := matching.IDs(hits)
	rows, err := m.courses.FindByIDs(ctx, ids)
	if err != nil {
		log.Error("hydrate courses failed", "count", len(ids), "error", err)
		return []course.Course{}
	}

	sim := make(map[uuid.UUID]float64, len(hits))
	for _, h := range hits {
		sim[h.CourseID] = h.Similarity
	}
	for i := range rows {
		rows[i].Similarity = sim[rows[i].ID]
	}
	return matching.OrderByRank(ids, rows, func(c course.Course) uuid.UUID { return c.ID })
}
