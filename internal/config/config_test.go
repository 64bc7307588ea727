package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("DATABASE_URL", "postgres://localhost/careerpath")
	t.Setenv("SUPABASE_JWT_SECRET", "secret")
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("EMBEDDING_BASE_URL", "http://localhost:8081/v1")
	t.Setenv("RESUME_BUCKET", "resumes")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.LLM.BaseURL != defaultGroqBaseURL {
		t.Fatalf("expected default groq base url, got %q", cfg.LLM.BaseURL)
	}
	if cfg.LLM.Model != defaultGroqModel {
		t.Fatalf("expected default model, got %q", cfg.LLM.Model)
	}
	if cfg.Embedding.Model != defaultEmbeddingModel {
		t.Fatalf("expected default embedding model, got %q", cfg.Embedding.Model)
	}
	if cfg.App.UploadMaxBytes != defaultUploadMaxBytes {
		t.Fatalf("expected default upload limit, got %d", cfg.App.UploadMaxBytes)
	}
	if cfg.Redis.TTL != 600*time.Second {
		t.Fatalf("expected default redis ttl, got %s", cfg.Redis.TTL)
	}
	if cfg.Auth.Audience != "authenticated" {
		t.Fatalf("expected default audience, got %q", cfg.Auth.Audience)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("RESUME_BUCKET", " ")

	_, err := Load()
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected errMissingRequiredEnv, got %v", err)
	}
	if !strings.Contains(err.Error(), "GROQ_API_KEY") || !strings.Contains(err.Error(), "RESUME_BUCKET") {
		t.Fatalf("expected both keys reported, got %v", err)
	}
}

func TestLoad_DatabaseHostOrURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error without DATABASE_URL or DB_HOST")
	}

	t.Setenv("DB_HOST", "db")
	if _, err := Load(); err != nil {
		t.Fatalf("unexpected err with DB_HOST: %v", err)
	}
}

func TestIntFromString(t *testing.T) {
	cases := []struct {
		raw  string
		def  int
		want int
	}{
		{"", 5, 5},
		{"12", 5, 12},
		{"-1", 5, 5},
		{"abc", 5, 5},
	}
	for _, tc := range cases {
		if got := intFromString(tc.raw, tc.def); got != tc.want {
			t.Fatalf("intFromString(%q,%d)=%d want %d", tc.raw, tc.def, got, tc.want)
		}
	}
}
