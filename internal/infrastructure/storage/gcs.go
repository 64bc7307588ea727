package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"careerpath/internal/config"
	"careerpath/internal/pkg/logger"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// ResumeBucket stores résumé files in a single GCS bucket.
type ResumeBucket struct {
	client        *storage.Client
	bucket        string
	publicBaseURL string
	log           *logger.Logger
}

func NewResumeBucket(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) (*ResumeBucket, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("storage: missing bucket name")
	}

	opts := clientOptionsFromEnv()
	opts = append(opts, option.WithScopes(storage.ScopeReadWrite))
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: create client: %w", err)
	}

	return &ResumeBucket{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		log:           logger.OrNop(log).With("component", "storage", "bucket", cfg.Bucket),
	}, nil
}

func clientOptionsFromEnv() []option.ClientOption {
	creds := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"))
	if creds == "" {
		creds = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if creds == "" {
		return nil
	}
	if strings.HasPrefix(creds, "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	}
	return []option.ClientOption{option.WithCredentialsFile(creds)}
}

func (b *ResumeBucket) Upload(ctx context.Context, key string, contentType string, r io.Reader) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := b.client.Bucket(b.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("storage: write %q: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("storage: close writer %q: %w", key, err)
	}
	return nil
}

func (b *ResumeBucket) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	it := b.client.Bucket(b.bucket).Objects(ctx, &storage.Query{Prefix: prefix})
	out := []string{}
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("storage: list %q: %w", prefix, err)
		}
		out = append(out, attrs.Name)
	}
	return out, nil
}

func (b *ResumeBucket) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := b.client.Bucket(b.bucket).Object(key).Delete(ctx); err != nil {
		return fmt.Errorf("storage: delete %q: %w", key, err)
	}
	return nil
}

// DeletePrefix removes every object under prefix. Individual delete
// failures are logged and the first one is returned after all attempts.
func (b *ResumeBucket) DeletePrefix(ctx context.Context, prefix string) error {
	keys, err := b.ListKeys(ctx, prefix)
	if err != nil {
		return err
	}
	var firstErr error
	for _, k := range keys {
		if err := b.Delete(ctx, k); err != nil {
			b.log.Warn("delete object failed", "key", k, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (b *ResumeBucket) PublicURL(key string) string {
	return PublicURL(b.bucket, b.publicBaseURL, key)
}

func (b *ResumeBucket) Close() error {
	return b.client.Close()
}

// PublicURL builds the public object URL, preferring a configured CDN base.
func PublicURL(bucket, baseURL, key string) string {
	if baseURL != "" {
		return baseURL + "/" + key
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, key)
}
