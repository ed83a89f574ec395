// Package insight answers free-form questions about a source-code
// repository by combining repository metadata and commit history, fetched
// through an MCP tool provider, with a chat-completion call. The
// orchestrator degrades gracefully: missing tool data narrows the analysis
// context, it never aborts a workflow.
package insight

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Protocol-Lattice/repo-insight/src/models"
)

// Workflow selects one of the end-to-end request types.
type Workflow int

const (
	// WorkflowCommits analyzes recent commit history.
	WorkflowCommits Workflow = iota
	// WorkflowRepo analyzes repository metadata.
	WorkflowRepo
	// WorkflowCustom answers a free-form prompt, fetching whatever data the
	// prompt appears to need.
	WorkflowCustom
)

func (w Workflow) String() string {
	switch w {
	case WorkflowCommits:
		return "commits"
	case WorkflowRepo:
		return "repo"
	case WorkflowCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Target names the repository under analysis.
type Target struct {
	Owner string
	Repo  string
}

func (t Target) String() string {
	return t.Owner + "/" + t.Repo
}

// Orchestrator runs analysis workflows against one tool channel and one
// chat model. Workflows execute strictly sequentially; the orchestrator
// never issues concurrent tool or model calls.
type Orchestrator struct {
	channel     ToolInvoker
	model       models.Agent
	commitLimit int
	numCtx      int
	logger      *zap.Logger
}

// Options configure a new Orchestrator.
type Options struct {
	Channel     ToolInvoker
	Model       models.Agent
	CommitLimit int
	NumCtx      int
	Logger      *zap.Logger
}

// New creates an Orchestrator with the provided options.
func New(opts Options) (*Orchestrator, error) {
	if opts.Model == nil {
		return nil, errors.New("orchestrator requires a chat model")
	}
	if opts.Channel == nil {
		return nil, errors.New("orchestrator requires a tool channel")
	}
	limit := opts.CommitLimit
	if limit <= 0 {
		limit = 5
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		channel:     opts.Channel,
		model:       opts.Model,
		commitLimit: limit,
		numCtx:      opts.NumCtx,
		logger:      logger,
	}, nil
}

// Run executes one workflow invocation against target and returns the
// generated analysis. For WorkflowCustom, prompt carries the user's
// question; an empty prompt aborts silently with no output and no error.
// An analysis-provider failure aborts only this invocation; the channel
// stays usable for subsequent runs.
func (o *Orchestrator) Run(ctx context.Context, workflow Workflow, target Target, prompt string) (string, error) {
	o.logger.Debug("running workflow",
		zap.Stringer("workflow", workflow),
		zap.Stringer("target", target))

	switch workflow {
	case WorkflowCommits:
		return o.runFixed(ctx, target, QueryNeeds{Commits: true}, commitAnalysisPrompt)
	case WorkflowRepo:
		return o.runFixed(ctx, target, QueryNeeds{Repo: true}, repoAnalysisPrompt)
	case WorkflowCustom:
		return o.runCustom(ctx, target, prompt)
	default:
		return "", fmt.Errorf("unknown workflow %d", workflow)
	}
}

// runFixed executes a constant-needs workflow. With the channel disabled
// the model is called with no context at all.
func (o *Orchestrator) runFixed(ctx context.Context, target Target, needs QueryNeeds, systemPrompt string) (string, error) {
	if o.channel.Disabled() {
		return o.analyze(ctx, systemPrompt, "", "")
	}
	assembled := o.assemble(ctx, target, needs)
	serialized, err := assembled.Serialize()
	if err != nil {
		return "", err
	}
	return o.analyze(ctx, systemPrompt, serialized, "")
}

// runCustom classifies the prompt, fetches only the data it appears to
// need, and forwards prompt and context to the model. The context may
// serialize to {} when no predicate matched or every fetch failed.
func (o *Orchestrator) runCustom(ctx context.Context, target Target, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		// User declined to provide input; not an error.
		o.logger.Debug("custom workflow aborted: empty prompt")
		return "", nil
	}
	if o.channel.Disabled() {
		return o.analyze(ctx, customAnalysisPrompt, "", prompt)
	}

	needs := classifyQuery(prompt)
	assembled := o.assemble(ctx, target, needs)
	serialized, err := assembled.Serialize()
	if err != nil {
		return "", err
	}
	return o.analyze(ctx, customAnalysisPrompt, serialized, prompt)
}
