package channel

import (
	"context"
	"errors"
	"testing"
)

func TestDisabledChannel(t *testing.T) {
	ctx := context.Background()
	ch := New(Options{Disabled: true})

	if !ch.Disabled() {
		t.Fatalf("expected channel to report disabled")
	}
	if err := ch.Connect(ctx); err != nil {
		t.Fatalf("Connect on disabled channel returned error: %v", err)
	}
	if ch.State() != StateDisabled {
		t.Errorf("expected state disabled after no-op connect, got %s", ch.State())
	}

	payload, ok := ch.Invoke(ctx, "get_repo_info", map[string]any{"owner": "a", "repo": "b"})
	if ok || payload != nil {
		t.Errorf("expected no data from disabled channel, got %q", payload)
	}
	if err := ch.Close(); err != nil {
		t.Errorf("Close returned error: %v", err)
	}
	if ch.State() != StateDisabled {
		t.Errorf("close must not move a disabled channel out of disabled, got %s", ch.State())
	}
}

func TestInvokeBeforeConnect(t *testing.T) {
	ch := New(Options{Command: "provider"})
	if _, ok := ch.Invoke(context.Background(), "get_repo_info", nil); ok {
		t.Errorf("expected no data before connect")
	}
	if ch.State() != StateDisconnected {
		t.Errorf("expected disconnected, got %s", ch.State())
	}
}

func TestConnectWithoutCommand(t *testing.T) {
	ch := New(Options{})
	err := ch.Connect(context.Background())
	if !errors.Is(err, ErrConnection) {
		t.Fatalf("expected ErrConnection, got %v", err)
	}
	if ch.State() != StateFailed {
		t.Errorf("expected failed state, got %s", ch.State())
	}
}

func TestConnectFailureReleasesResources(t *testing.T) {
	ch := New(Options{Command: "/nonexistent/tool-provider"})
	err := ch.Connect(context.Background())
	if !errors.Is(err, ErrConnection) {
		t.Fatalf("expected ErrConnection, got %v", err)
	}
	if ch.Ready() {
		t.Errorf("channel must not be ready after failed connect")
	}
	// Close after a failed connect must be safe and idempotent.
	if err := ch.Close(); err != nil {
		t.Errorf("Close returned error: %v", err)
	}
	if err := ch.Close(); err != nil {
		t.Errorf("second Close returned error: %v", err)
	}
}

func TestStateString(t *testing.T) {
	states := map[State]string{
		StateDisconnected: "disconnected",
		StateConnecting:   "connecting",
		StateReady:        "ready",
		StateFailed:       "failed",
		StateClosed:       "closed",
		StateDisabled:     "disabled",
	}
	for state, want := range states {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", state, got, want)
		}
	}
}
