package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

type searchCacheKeyInput struct {
	Kind  string `json:"kind"`
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

func normalizeSearchValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// SearchCacheKey is stable across casing and whitespace differences in q.
func SearchCacheKey(kind, q string, limit int) string {
	b, _ := json.Marshal(searchCacheKeyInput{
		Kind:  kind,
		Query: normalizeSearchValue(q),
		Limit: limit,
	})
	sum := sha256.Sum256(b)
	return "search:" + kind + ":" + hex.EncodeToString(sum[:])
}
