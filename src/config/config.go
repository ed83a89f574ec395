// Package config loads repo-insight settings from a config file and the
// environment.
package config

import (
	"errors"

	"github.com/spf13/viper"
)

// Config carries everything the analysis runtime consumes.
type Config struct {
	// Provider selects the chat model backend: ollama|openai|anthropic|gemini|dummy.
	Provider string `mapstructure:"provider"`
	// Model is the provider-specific model identifier.
	Model string `mapstructure:"model"`
	// ServerCommand launches the tool-provider process.
	ServerCommand string `mapstructure:"server_command"`
	// ServerArgs are passed to ServerCommand.
	ServerArgs []string `mapstructure:"server_args"`
	// NoTools forces the tool channel into its no-op mode.
	NoTools bool `mapstructure:"no_tools"`
	// CommitLimit bounds commit-history fetches.
	CommitLimit int `mapstructure:"commit_limit"`
	// NumCtx is the context-window budget forwarded to the model provider.
	NumCtx int `mapstructure:"num_ctx"`
}

// Load reads repo-insight.yaml from the working directory or $HOME/.config/repo-insight,
// overlays REPO_INSIGHT_* environment variables, and applies defaults.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("repo-insight")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/repo-insight")

	v.SetDefault("provider", "ollama")
	v.SetDefault("model", "qwen2.5:7b")
	v.SetDefault("server_command", "repo-insight-server")
	v.SetDefault("no_tools", false)
	v.SetDefault("commit_limit", 5)
	v.SetDefault("num_ctx", 0)

	v.SetEnvPrefix("REPO_INSIGHT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
