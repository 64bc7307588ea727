package llm

import (
	"context"
	"errors"
	"testing"

	"careerpath/internal/domain/chat"

	"github.com/tmc/langchaingo/llms"
)

type fakeModel struct {
	got  []llms.MessageContent
	opts llms.CallOptions
	resp *llms.ContentResponse
	err  error
}

func (f *fakeModel) GenerateContent(_ context.Context, msgs []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.got = msgs
	for _, o := range options {
		o(&f.opts)
	}
	return f.resp, f.err
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func TestComplete_MapsRolesAndOptions(t *testing.T) {
	m := &fakeModel{resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: `{"ok":true}`}}}}
	c := NewWithModel(m, "test-model", nil)

	out, err := c.Complete(context.Background(), []chat.Message{
		{Role: chat.RoleSystem, Content: "sys"},
		{Role: chat.RoleUser, Content: "hi"},
		{Role: chat.RoleAssistant, Content: "hello"},
	}, chat.CompletionOptions{Temperature: 0.1, MaxTokens: 50, JSON: true})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out != `{"ok":true}` {
		t.Fatalf("unexpected content %q", out)
	}

	wantRoles := []llms.ChatMessageType{llms.ChatMessageTypeSystem, llms.ChatMessageTypeHuman, llms.ChatMessageTypeAI}
	if len(m.got) != len(wantRoles) {
		t.Fatalf("expected %d messages, got %d", len(wantRoles), len(m.got))
	}
	for i, r := range wantRoles {
		if m.got[i].Role != r {
			t.Fatalf("message %d: role %q want %q", i, m.got[i].Role, r)
		}
	}
	if m.opts.Temperature != 0.1 || m.opts.MaxTokens != 50 || !m.opts.JSONMode {
		t.Fatalf("unexpected call options: %+v", m.opts)
	}
}

func TestComplete_EmptyChoices(t *testing.T) {
	c := NewWithModel(&fakeModel{resp: &llms.ContentResponse{}}, "m", nil)
	out, err := c.Complete(context.Background(), []chat.Message{{Role: chat.RoleUser, Content: "x"}}, chat.CompletionOptions{})
	if err != nil || out != "" {
		t.Fatalf("expected empty content without error, got %q %v", out, err)
	}
}

func TestComplete_Error(t *testing.T) {
	c := NewWithModel(&fakeModel{err: errors.New("boom")}, "m", nil)
	if _, err := c.Complete(context.Background(), nil, chat.CompletionOptions{}); err == nil {
		t.Fatalf("expected error")
	}
}
