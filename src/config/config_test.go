package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Provider != "ollama" {
		t.Errorf("expected default provider ollama, got %q", cfg.Provider)
	}
	if cfg.Model != "qwen2.5:7b" {
		t.Errorf("expected default model qwen2.5:7b, got %q", cfg.Model)
	}
	if cfg.CommitLimit != 5 {
		t.Errorf("expected default commit limit 5, got %d", cfg.CommitLimit)
	}
	if cfg.NoTools {
		t.Errorf("tools must be enabled by default")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("REPO_INSIGHT_PROVIDER", "dummy")
	t.Setenv("REPO_INSIGHT_NO_TOOLS", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Provider != "dummy" {
		t.Errorf("expected env provider override, got %q", cfg.Provider)
	}
	if !cfg.NoTools {
		t.Errorf("expected no_tools override from env")
	}
}
