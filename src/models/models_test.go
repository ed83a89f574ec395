package models

import (
	"context"
	"strings"
	"testing"
)

func TestDummyChatEchoesLastLine(t *testing.T) {
	d := NewDummyLLM("echo:")
	out, err := d.Chat(context.Background(), []Message{
		{Role: RoleSystem, Content: "You analyze repositories."},
		{Role: RoleUser, Content: "first line\nwhat changed recently?\n"},
	}, ChatOptions{})
	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if out != "echo: what changed recently?" {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestDummyChatEmptyMessages(t *testing.T) {
	d := NewDummyLLM("")
	out, err := d.Chat(context.Background(), nil, ChatOptions{})
	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if !strings.Contains(out, "<empty prompt>") {
		t.Errorf("expected empty-prompt marker, got %q", out)
	}
}

func TestNewProviderUnknown(t *testing.T) {
	if _, err := NewProvider(context.Background(), "mystery", "m"); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestNewProviderDummy(t *testing.T) {
	agent, err := NewProvider(context.Background(), "dummy", "")
	if err != nil {
		t.Fatalf("NewProvider returned error: %v", err)
	}
	if _, ok := agent.(*DummyLLM); !ok {
		t.Errorf("expected *DummyLLM, got %T", agent)
	}
}
