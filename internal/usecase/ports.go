package usecase

import (
	"context"
	"io"

	"careerpath/internal/domain/chat"

	"github.com/google/uuid"
)

type Completer interface {
	Complete(ctx context.Context, msgs []chat.Message, opts chat.CompletionOptions) (string, error)
}

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type ResumeStorage interface {
	Upload(ctx context.Context, key string, contentType string, r io.Reader) error
	DeletePrefix(ctx context.Context, prefix string) error
	PublicURL(key string) string
}

// RecommendationNotifier is told when a user's stored recommendations change.
type RecommendationNotifier interface {
	NotifyRecommendationsUpdated(userID uuid.UUID, count int)
}

type NotifierFunc func(userID uuid.UUID, count int)

func (f NotifierFunc) NotifyRecommendationsUpdated(userID uuid.UUID, count int) {
	if f != nil {
		f(userID, count)
	}
}
