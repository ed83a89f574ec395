package models

import (
	"context"
	"errors"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ---------------------------- Google Gemini ----------------------------------

type GeminiLLM struct {
	Client *genai.Client
	Model  string
}

func NewGeminiLLM(ctx context.Context, model, apiKey string) (*GeminiLLM, error) {
	if apiKey == "" {
		return nil, errors.New("missing GOOGLE_API_KEY or GEMINI_API_KEY")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini init: %w", err)
	}
	return &GeminiLLM{Client: client, Model: model}, nil
}

func (g *GeminiLLM) Chat(ctx context.Context, messages []Message, opts ChatOptions) (string, error) {
	model := g.Client.GenerativeModel(g.Model)

	var system []string
	var user []string
	for _, m := range messages {
		if m.Role == RoleSystem {
			system = append(system, m.Content)
		} else {
			user = append(user, m.Content)
		}
	}
	// Gemini needs at least one content part; fold the trailing system
	// message into the user content when no user turn exists.
	if len(user) == 0 && len(system) > 0 {
		user = append(user, system[len(system)-1])
		system = system[:len(system)-1]
	}
	if len(system) > 0 {
		parts := make([]genai.Part, 0, len(system))
		for _, s := range system {
			parts = append(parts, genai.Text(s))
		}
		model.SystemInstruction = &genai.Content{Parts: parts}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(strings.Join(user, "\n\n")))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini: empty response")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String(), nil
}

var _ Agent = (*GeminiLLM)(nil)
