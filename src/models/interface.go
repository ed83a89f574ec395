package models

import "context"

// Chat roles. Only these two appear in analysis exchanges.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is a single role-tagged turn sent to a chat model.
type Message struct {
	Role    string
	Content string
}

// ChatOptions tune a single chat call. NumCtx is the context-window budget
// forwarded to providers that accept one; zero means provider default.
type ChatOptions struct {
	NumCtx int
}

// Agent is a chat-completion model. Implementations send the ordered message
// sequence as-is and return the generated text verbatim.
type Agent interface {
	Chat(ctx context.Context, messages []Message, opts ChatOptions) (string, error)
}
