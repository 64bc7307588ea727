package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"careerpath/internal/config"
	"careerpath/internal/domain/chat"
	"careerpath/internal/pkg/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Client talks to Groq through its OpenAI-compatible endpoint.
type Client struct {
	model llms.Model
	name  string
	log   *logger.Logger
}

func New(cfg config.LLMConfig, log *logger.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("llm: missing api key")
	}
	m, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("llm: init client: %w", err)
	}
	return NewWithModel(m, cfg.Model, log), nil
}

// NewWithModel wraps an existing langchaingo model.
func NewWithModel(m llms.Model, name string, log *logger.Logger) *Client {
	return &Client{
		model: m,
		name:  name,
		log:   logger.OrNop(log).With("component", "llm", "model", name),
	}
}

// Complete returns the first choice's content, which may be empty.
func (c *Client) Complete(ctx context.Context, msgs []chat.Message, opts chat.CompletionOptions) (string, error) {
	content := make([]llms.MessageContent, 0, len(msgs))
	for _, m := range msgs {
		content = append(content, llms.TextParts(messageType(m.Role), m.Content))
	}

	callOpts := []llms.CallOption{llms.WithTemperature(opts.Temperature)}
	if opts.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(opts.MaxTokens))
	}
	if opts.JSON {
		callOpts = append(callOpts, llms.WithJSONMode())
	}

	start := time.Now()
	resp, err := c.model.GenerateContent(ctx, content, callOpts...)
	if err != nil {
		c.log.Warn("completion failed", "error", err, "took", time.Since(start))
		return "", fmt.Errorf("llm: generate: %w", err)
	}
	c.log.Debug("completion done", "messages", len(msgs), "took", time.Since(start))

	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return "", nil
	}
	return resp.Choices[0].Content, nil
}

func messageType(r chat.Role) llms.ChatMessageType {
	switch r {
	case chat.RoleSystem:
		return llms.ChatMessageTypeSystem
	case chat.RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}
