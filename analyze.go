package insight

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Protocol-Lattice/repo-insight/src/models"
)

// analyze sends the message sequence to the chat model: the system prompt,
// an optional second system message carrying the serialized context
// verbatim, and an optional user message. Unlike tool fetches, a provider
// failure here is fatal for the current workflow invocation and propagates.
func (o *Orchestrator) analyze(ctx context.Context, systemPrompt, contextJSON, userPrompt string) (string, error) {
	messages := []models.Message{{Role: models.RoleSystem, Content: systemPrompt}}
	if contextJSON != "" {
		messages = append(messages, models.Message{Role: models.RoleSystem, Content: contextJSON})
	}
	if userPrompt != "" {
		messages = append(messages, models.Message{Role: models.RoleUser, Content: userPrompt})
	}

	if tokens, ok := estimateTokens(contextJSON); ok && contextJSON != "" {
		o.logger.Debug("analysis context size", zap.Int("approx_tokens", tokens))
	}

	out, err := o.model.Chat(ctx, messages, models.ChatOptions{NumCtx: o.numCtx})
	if err != nil {
		return "", fmt.Errorf("analysis failed: %w", err)
	}
	return out, nil
}
