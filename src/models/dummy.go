package models

import (
	"context"
	"fmt"
	"strings"
)

// DummyLLM is a lightweight model implementation useful for local testing without API calls.
type DummyLLM struct {
	Prefix string
}

func NewDummyLLM(prefix string) *DummyLLM {
	if strings.TrimSpace(prefix) == "" {
		prefix = "Dummy response:"
	}
	return &DummyLLM{Prefix: prefix}
}

// Chat echoes the last non-empty line of the final message, prefixed.
func (d *DummyLLM) Chat(_ context.Context, messages []Message, _ ChatOptions) (string, error) {
	var last string
	for i := len(messages) - 1; i >= 0 && last == ""; i-- {
		lines := strings.Split(messages[i].Content, "\n")
		for j := len(lines) - 1; j >= 0; j-- {
			if candidate := strings.TrimSpace(lines[j]); candidate != "" {
				last = candidate
				break
			}
		}
	}
	if last == "" {
		last = "<empty prompt>"
	}
	return fmt.Sprintf("%s %s", d.Prefix, last), nil
}

var _ Agent = (*DummyLLM)(nil)
