package chat

// CompletionOptions tunes a single chat-completion call.
type CompletionOptions struct {
	Temperature float64
	MaxTokens   int
	JSON        bool
}
