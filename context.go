package insight

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// Tool names negotiated with the provider, with the context label each one
// feeds.
const (
	toolRepoInfo      = "get_repo_info"
	toolCommitHistory = "get_commit_history"
)

// ToolInvoker is the slice of the tool channel the assembler consumes.
// channel.Channel satisfies it.
type ToolInvoker interface {
	Invoke(ctx context.Context, name string, args map[string]any) (json.RawMessage, bool)
	Disabled() bool
}

// AnalysisContext bundles the data fetched for one request. A label is
// present only when its tool call returned usable data; an entirely empty
// context serializes to {}. Contexts are built fresh per request and never
// shared.
type AnalysisContext struct {
	Repo    json.RawMessage `json:"repo,omitempty"`
	Commits json.RawMessage `json:"commits,omitempty"`
}

// Empty reports whether no data was collected.
func (c AnalysisContext) Empty() bool {
	return c.Repo == nil && c.Commits == nil
}

// Serialize renders the context as indented JSON for the model.
func (c AnalysisContext) Serialize() (string, error) {
	out, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// assemble invokes one tool per flagged need, strictly sequentially, and
// collects whatever came back. A failed or empty fetch narrows the context
// instead of aborting it. Both flags false short-circuits without touching
// the channel.
func (o *Orchestrator) assemble(ctx context.Context, target Target, needs QueryNeeds) AnalysisContext {
	var out AnalysisContext
	if !needs.Repo && !needs.Commits {
		return out
	}

	if needs.Repo {
		raw, ok := o.channel.Invoke(ctx, toolRepoInfo, map[string]any{
			"owner": target.Owner,
			"repo":  target.Repo,
		})
		if ok {
			out.Repo = raw
		}
	}
	if needs.Commits {
		raw, ok := o.channel.Invoke(ctx, toolCommitHistory, map[string]any{
			"owner": target.Owner,
			"repo":  target.Repo,
			"limit": o.commitLimit,
		})
		if ok {
			out.Commits = raw
		}
	}

	o.logger.Debug("assembled analysis context",
		zap.Bool("repo", out.Repo != nil),
		zap.Bool("commits", out.Commits != nil))
	return out
}
