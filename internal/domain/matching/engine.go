package matching

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// SimilarityThreshold is the minimum cosine similarity a course must reach
// to be returned by the vector search.
const SimilarityThreshold = 0.3

type Flow string

const (
	FlowChat            Flow = "chat"
	FlowRecommendations Flow = "recommendations"
)

// MatchCount returns how many nearest courses a flow asks for.
func MatchCount(f Flow) int {
	if f == FlowRecommendations {
		return 30
	}
	return 5
}

type Hit struct {
	CourseID   uuid.UUID
	Similarity float64
}

// FallbackQuery is the deterministic search query used whenever the LLM
// cannot refine one.
func FallbackQuery(targetCareerPath string) string {
	return strings.TrimSpace(targetCareerPath) + " skills"
}

// CleanQuery trims whitespace and surrounding quotes from a refined query.
// An empty result means the refinement produced nothing usable.
func CleanQuery(raw string) string {
	q := strings.TrimSpace(raw)
	q = strings.Trim(q, "\"'`")
	return strings.TrimSpace(q)
}

// Dedupe drops repeated course ids, keeping the highest similarity, and
// returns hits best first.
func Dedupe(hits []Hit) []Hit {
	best := make(map[uuid.UUID]Hit, len(hits))
	for _, h := range hits {
		if h.CourseID == uuid.Nil {
			continue
		}
		if cur, ok := best[h.CourseID]; !ok || h.Similarity > cur.Similarity {
			best[h.CourseID] = h
		}
	}
	out := make([]Hit, 0, len(best))
	for _, h := range best {
		out = append(out, h)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Similarity == out[j].Similarity {
			return out[i].CourseID.String() < out[j].CourseID.String()
		}
		return out[i].Similarity > out[j].Similarity
	})
	return out
}

// IDs returns the course ids of hits in order.
func IDs(hits []Hit) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.CourseID)
	}
	return out
}

// OrderByRank reorders items to follow the order of ids. Items whose id is
// not in ids are dropped.
func OrderByRank[T any](ids []uuid.UUID, items []T, idOf func(T) uuid.UUID) []T {
	byID := make(map[uuid.UUID]T, len(items))
	for _, it := range items {
		byID[idOf(it)] = it
	}
	out := make([]T, 0, len(items))
	for _, id := range ids {
		if it, ok := byID[id]; ok {
			out = append(out, it)
		}
	}
	return out
}
