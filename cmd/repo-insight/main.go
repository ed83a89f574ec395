// repo-insight answers questions about a GitHub repository by combining
// repository metadata and commit history, fetched over an MCP tool
// provider, with a chat-model analysis call.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	insight "github.com/Protocol-Lattice/repo-insight"
	"github.com/Protocol-Lattice/repo-insight/src/channel"
	"github.com/Protocol-Lattice/repo-insight/src/config"
	"github.com/Protocol-Lattice/repo-insight/src/logutil"
	"github.com/Protocol-Lattice/repo-insight/src/models"
)

var (
	flagNoTools bool
	flagVerbose bool
)

func main() {
	// Best effort; a missing .env is the normal case.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "repo-insight",
		Short:         "GitHub repository analysis tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&flagNoTools, "no-tools", false, "skip the tool provider and analyze without repository context")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		&cobra.Command{
			Use:   "repo <owner> <repo>",
			Short: "Analyze repository information",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runWorkflow(cmd, insight.WorkflowRepo, args[0], args[1], "")
			},
		},
		&cobra.Command{
			Use:   "commits <owner> <repo>",
			Short: "Analyze recent commits",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runWorkflow(cmd, insight.WorkflowCommits, args[0], args[1], "")
			},
		},
		&cobra.Command{
			Use:   "custom <owner> <repo> [prompt...]",
			Short: "Run a custom analysis prompt",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				prompt := strings.Join(args[2:], " ")
				return runWorkflow(cmd, insight.WorkflowCustom, args[0], args[1], prompt)
			},
		},
		toolsCommand(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runWorkflow(cmd *cobra.Command, workflow insight.Workflow, owner, repo, prompt string) error {
	logger, err := logutil.NewLogger(flagVerbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flagNoTools {
		cfg.NoTools = true
	}

	ctx := cmd.Context()
	model, err := models.NewProvider(ctx, cfg.Provider, cfg.Model)
	if err != nil {
		return err
	}

	ch := channel.New(channel.Options{
		Command:  cfg.ServerCommand,
		Args:     cfg.ServerArgs,
		Env:      os.Environ(),
		Disabled: cfg.NoTools,
		Logger:   logger,
	})
	defer ch.Close()

	// Connection failure is fatal for the session; tool failures later are not.
	if err := ch.Connect(ctx); err != nil {
		return err
	}

	orchestrator, err := insight.New(insight.Options{
		Channel:     ch,
		Model:       model,
		CommitLimit: cfg.CommitLimit,
		NumCtx:      cfg.NumCtx,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	out, err := orchestrator.Run(ctx, workflow, insight.Target{Owner: owner, Repo: repo}, prompt)
	if err != nil {
		return err
	}
	if out != "" {
		fmt.Println(out)
	}
	return nil
}

// toolsCommand connects to the provider and lists the discovered tools.
func toolsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the tools exposed by the provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := logutil.NewLogger(flagVerbose)
			if err != nil {
				return err
			}
			defer logger.Sync()

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ch := channel.New(channel.Options{
				Command: cfg.ServerCommand,
				Args:    cfg.ServerArgs,
				Env:     os.Environ(),
				Logger:  logger,
			})
			defer ch.Close()

			if err := ch.Connect(cmd.Context()); err != nil {
				return err
			}
			for _, tool := range ch.Tools() {
				fmt.Printf("%s: %s\n", tool.Name, tool.Description)
			}
			logger.Debug("tool listing complete", zap.Int("count", len(ch.Tools())))
			return nil
		},
	}
}
