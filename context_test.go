package insight

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestAssembleEmptyNeeds(t *testing.T) {
	ch := &stubChannel{ready: true}
	o := newTestOrchestrator(t, ch, &stubModel{})

	assembled := o.assemble(context.Background(), testTarget, QueryNeeds{})
	if !assembled.Empty() {
		t.Errorf("expected empty context, got %+v", assembled)
	}
	if len(ch.calls) != 0 {
		t.Errorf("expected zero invocations for empty needs, got %d", len(ch.calls))
	}

	serialized, err := assembled.Serialize()
	if err != nil {
		t.Fatalf("Serialize returned error: %v", err)
	}
	if serialized != "{}" {
		t.Errorf("empty context must serialize to {}, got %q", serialized)
	}
}

func TestAssemblePartialFailureNarrowsContext(t *testing.T) {
	ch := &stubChannel{
		ready: true,
		responses: map[string]json.RawMessage{
			// get_repo_info missing: that fetch yields no data.
			toolCommitHistory: json.RawMessage(`[{"sha":"abc"}]`),
		},
	}
	o := newTestOrchestrator(t, ch, &stubModel{})

	assembled := o.assemble(context.Background(), testTarget, QueryNeeds{Repo: true, Commits: true})
	if len(ch.calls) != 2 {
		t.Fatalf("expected both tools invoked, got %d calls", len(ch.calls))
	}
	if assembled.Repo != nil {
		t.Errorf("failed fetch must be omitted, got %s", assembled.Repo)
	}
	if assembled.Commits == nil {
		t.Errorf("successful fetch must be present")
	}
	if assembled.Empty() {
		t.Errorf("context with one label is not empty")
	}
}

func TestAssembleIdempotent(t *testing.T) {
	ch := &stubChannel{
		ready: true,
		responses: map[string]json.RawMessage{
			toolRepoInfo:      json.RawMessage(`{"name":"hello"}`),
			toolCommitHistory: json.RawMessage(`[{"sha":"abc"}]`),
		},
	}
	o := newTestOrchestrator(t, ch, &stubModel{})
	ctx := context.Background()
	needs := QueryNeeds{Repo: true, Commits: true}

	first, err := o.assemble(ctx, testTarget, needs).Serialize()
	if err != nil {
		t.Fatalf("Serialize returned error: %v", err)
	}
	second, err := o.assemble(ctx, testTarget, needs).Serialize()
	if err != nil {
		t.Fatalf("Serialize returned error: %v", err)
	}
	if first != second {
		t.Errorf("assemble is not idempotent:\n%s\n%s", first, second)
	}
}

func TestSerializeLabelOrder(t *testing.T) {
	assembled := AnalysisContext{
		Repo:    json.RawMessage(`{"name":"hello"}`),
		Commits: json.RawMessage(`[{"sha":"abc"}]`),
	}
	serialized, err := assembled.Serialize()
	if err != nil {
		t.Fatalf("Serialize returned error: %v", err)
	}
	repoIdx := strings.Index(serialized, `"repo"`)
	commitsIdx := strings.Index(serialized, `"commits"`)
	if repoIdx < 0 || commitsIdx < 0 {
		t.Fatalf("missing labels in %s", serialized)
	}
	if repoIdx > commitsIdx {
		t.Errorf("expected repo before commits in %s", serialized)
	}
}

func TestAssembleUnreadyChannelYieldsEmpty(t *testing.T) {
	ch := &stubChannel{ready: false}
	o := newTestOrchestrator(t, ch, &stubModel{})

	assembled := o.assemble(context.Background(), testTarget, QueryNeeds{Repo: true, Commits: true})
	if !assembled.Empty() {
		t.Errorf("expected empty context from unready channel, got %+v", assembled)
	}
}
