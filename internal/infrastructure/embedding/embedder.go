package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"careerpath/internal/config"
	"careerpath/internal/pkg/logger"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Dimensions is the vector size of all-MiniLM-L6-v2 and of courses.embedding.
const Dimensions = 384

const cacheTTL = 24 * time.Hour

var ErrDimensionMismatch = errors.New("embedding: unexpected vector dimensions")

type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Factory builds the underlying embedder. It runs at most once per
// successful initialisation.
type Factory func() (embeddings.Embedder, error)

// Service embeds text with a lazily created, process-wide embedder. Query
// embeddings are cached by model and normalised text.
type Service struct {
	model   string
	factory Factory
	cache   Cache
	log     *logger.Logger

	mu       sync.Mutex
	embedder embeddings.Embedder
}

func New(cfg config.EmbeddingConfig, cache Cache, log *logger.Logger) *Service {
	return NewWithFactory(cfg.Model, openAICompatibleFactory(cfg), cache, log)
}

func NewWithFactory(model string, factory Factory, cache Cache, log *logger.Logger) *Service {
	return &Service{
		model:   model,
		factory: factory,
		cache:   cache,
		log:     logger.OrNop(log).With("component", "embedding", "model", model),
	}
}

func openAICompatibleFactory(cfg config.EmbeddingConfig) Factory {
	return func() (embeddings.Embedder, error) {
		token := cfg.APIKey
		if token == "" {
			// The client refuses an empty token; self-hosted servers ignore it.
			token = "unused"
		}
		client, err := openai.New(
			openai.WithToken(token),
			openai.WithBaseURL(cfg.BaseURL),
			openai.WithEmbeddingModel(cfg.Model),
		)
		if err != nil {
			return nil, err
		}
		return embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	}
}

func (s *Service) get() (embeddings.Embedder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.embedder != nil {
		return s.embedder, nil
	}
	e, err := s.factory()
	if err != nil {
		return nil, fmt.Errorf("embedding: init: %w", err)
	}
	s.embedder = e
	s.log.Info("embedder initialised")
	return e, nil
}

// Embed returns the vector for a search query.
func (s *Service) Embed(ctx context.Context, text string) ([]float32, error) {
	key := s.cacheKey(text)
	if s.cache != nil {
		var cached []float32
		if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit && len(cached) == Dimensions {
			return cached, nil
		}
	}

	e, err := s.get()
	if err != nil {
		return nil, err
	}
	vec, err := e.EmbedQuery(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embedding: embed query: %w", err)
	}
	if len(vec) != Dimensions {
		return nil, fmt.Errorf("%w: got %d want %d", ErrDimensionMismatch, len(vec), Dimensions)
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, vec, cacheTTL); err != nil {
			s.log.Debug("embedding cache write failed", "error", err)
		}
	}
	return vec, nil
}

// EmbedDocuments embeds texts in one call, preserving order.
func (s *Service) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	e, err := s.get()
	if err != nil {
		return nil, err
	}
	vecs, err := e.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding: embed documents: %w", err)
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("embedding: got %d vectors for %d texts", len(vecs), len(texts))
	}
	for _, v := range vecs {
		if len(v) != Dimensions {
			return nil, fmt.Errorf("%w: got %d want %d", ErrDimensionMismatch, len(v), Dimensions)
		}
	}
	return vecs, nil
}

func (s *Service) cacheKey(text string) string {
	norm := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	sum := sha256.Sum256([]byte(s.model + "\x00" + norm))
	return "embedding:query:" + hex.EncodeToString(sum[:])
}
