package repository

import (
	"testing"

	"github.com/google/uuid"
)

func TestEscapeLike(t *testing.T) {
	cases := map[string]string{
		"go":        "go",
		"100%":      `100\%`,
		"snake_key": `snake\_key`,
		`a\b`:       `a\\b`,
	}
	for in, want := range cases {
		if got := escapeLike(in); got != want {
			t.Fatalf("escapeLike(%q)=%q want %q", in, got, want)
		}
	}
}

func TestUUIDStrings(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	got := uuidStrings([]uuid.UUID{a, b})
	if len(got) != 2 || got[0] != a.String() || got[1] != b.String() {
		t.Fatalf("unexpected %v", got)
	}
}
