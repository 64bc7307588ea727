package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"careerpath/internal/domain/course"
	"careerpath/internal/domain/matching"

	"github.com/google/uuid"
)

func TestRefineForGap_FallbackOnErrorOrEmpty(t *testing.T) {
	cases := []struct {
		name string
		llm  *fakeCompleter
	}{
		{"error", &fakeCompleter{errs: []error{errors.New("rate limited")}}},
		{"empty", &fakeCompleter{replies: []string{"   "}}},
		{"only quotes", &fakeCompleter{replies: []string{`""`}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewCourseMatcher(tc.llm, &fakeEmbedder{}, &fakeCourseRepo{}, nil)
			got := m.RefineForGap(context.Background(), GapInput{CurrentPosition: "Analyst", DesiredCareerPath: "Data Scientist"})
			if got != "Data Scientist skills" {
				t.Fatalf("expected fallback query, got %q", got)
			}
		})
	}
}

func TestRefineForGap_PromptCarriesSkills(t *testing.T) {
	llm := &fakeCompleter{replies: []string{"PyTorch statistics"}}
	m := NewCourseMatcher(llm, &fakeEmbedder{}, &fakeCourseRepo{}, nil)

	m.RefineForGap(context.Background(), GapInput{CurrentPosition: "Analyst", DesiredCareerPath: "ML Engineer"})
	user := llm.calls[0][1].Content
	if !strings.Contains(user, "Current Skills: None listed") {
		t.Fatalf("empty skills must read None listed, got %q", user)
	}

	m.RefineForGap(context.Background(), GapInput{CurrentPosition: "Analyst", DesiredCareerPath: "ML Engineer", Skills: []string{"SQL", "Excel"}})
	user = llm.calls[1][1].Content
	want := "Current Position: Analyst\nCurrent Skills: SQL, Excel\nDesired Career Path: ML Engineer"
	if user != want {
		t.Fatalf("unexpected user prompt %q", user)
	}
}

func TestRefineForChat_Options(t *testing.T) {
	llm := &fakeCompleter{replies: []string{"kubernetes operators"}}
	m := NewCourseMatcher(llm, &fakeEmbedder{}, &fakeCourseRepo{}, nil)

	q := m.RefineForChat(context.Background(), UserContext{TargetCareer: "SRE", SkillsList: "Go (Advanced)"}, "how do I learn k8s?")
	if q != "kubernetes operators" {
		t.Fatalf("unexpected query %q", q)
	}
	opts := llm.opts[0]
	if opts.MaxTokens != 50 || opts.Temperature != 0.3 {
		t.Fatalf("unexpected options %+v", opts)
	}
	if !strings.Contains(llm.calls[0][0].Content, "User Target Path: SRE\nUser Skills: Go (Advanced)") {
		t.Fatalf("system prompt must carry the user context")
	}
}

func TestFind_PassesRefinedQueryUnmodified(t *testing.T) {
	llm := &fakeCompleter{replies: []string{"  Python, TensorFlow  "}}
	emb := &fakeEmbedder{}
	m := NewCourseMatcher(llm, emb, &fakeCourseRepo{}, nil)

	q := m.RefineForGap(context.Background(), GapInput{CurrentPosition: "Dev", DesiredCareerPath: "ML Engineer"})
	m.Find(context.Background(), q, matching.FlowRecommendations)

	if len(emb.queries) != 1 || emb.queries[0] != "Python, TensorFlow" {
		t.Fatalf("embedder got %v", emb.queries)
	}
}

func TestFind_RanksBySimilarityAndUsesFlowCount(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	repo := &fakeCourseRepo{
		hits: []matching.Hit{{CourseID: b, Similarity: 0.5}, {CourseID: a, Similarity: 0.9}, {CourseID: b, Similarity: 0.4}},
		courses: []course.Course{
			{ID: b, Title: "B"},
			{ID: c, Title: "C"},
			{ID: a, Title: "A"},
		},
	}
	m := NewCourseMatcher(&fakeCompleter{}, &fakeEmbedder{}, repo, nil)

	got := m.Find(context.Background(), "go", matching.FlowChat)
	if len(got) != 2 || got[0].ID != a || got[1].ID != b {
		t.Fatalf("unexpected order %+v", got)
	}
	if got[0].Similarity != 0.9 || got[1].Similarity != 0.5 {
		t.Fatalf("similarities not carried: %+v", got)
	}
	call := repo.matchCalls[0]
	if call.count != 5 || call.threshold != matching.SimilarityThreshold {
		t.Fatalf("unexpected match call %+v", call)
	}
}

func TestFind_DegradesToEmpty(t *testing.T) {
	ctx := context.Background()

	m := NewCourseMatcher(&fakeCompleter{}, &fakeEmbedder{err: errors.New("model down")}, &fakeCourseRepo{}, nil)
	if got := m.Find(ctx, "q", matching.FlowChat); got == nil || len(got) != 0 {
		t.Fatalf("embed failure must yield empty list, got %v", got)
	}

	m = NewCourseMatcher(&fakeCompleter{}, &fakeEmbedder{}, &fakeCourseRepo{matchErr: errors.New("rpc")}, nil)
	if got := m.Find(ctx, "q", matching.FlowChat); len(got) != 0 {
		t.Fatalf("match failure must yield empty list")
	}

	repo := &fakeCourseRepo{hits: []matching.Hit{{CourseID: uuid.New(), Similarity: 0.8}}, findErr: errors.New("timeout")}
	m = NewCourseMatcher(&fakeCompleter{}, &fakeEmbedder{}, repo, nil)
	if got := m.Find(ctx, "q", matching.FlowChat); len(got) != 0 {
		t.Fatalf("hydration failure must yield empty list")
	}
}
