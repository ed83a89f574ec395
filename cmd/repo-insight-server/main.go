// repo-insight-server is the tool-provider process: an MCP stdio server
// exposing GitHub repository metadata and commit history as tools.
package main

import (
	"context"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/Protocol-Lattice/repo-insight/src/github"
	"github.com/Protocol-Lattice/repo-insight/src/logutil"
)

func main() {
	// All logging goes to stderr; stdout carries the MCP transport.
	logger, err := logutil.NewLogger(false)
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	gh := github.NewClient()

	s := server.NewMCPServer("GitHub Analysis", "0.1.0")

	repoTool := mcp.NewTool("get_repo_info",
		mcp.WithDescription("Fetch repository information from the GitHub API."),
		mcp.WithString("owner", mcp.Required(), mcp.Description("Repository owner")),
		mcp.WithString("repo", mcp.Required(), mcp.Description("Repository name")),
	)
	s.AddTool(repoTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		owner, err := req.RequireString("owner")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		repo, err := req.RequireString("repo")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		raw, err := gh.RepoInfo(ctx, owner, repo)
		if err != nil {
			logger.Warn("repo info fetch failed", zap.String("repo", owner+"/"+repo), zap.Error(err))
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(raw)), nil
	})

	commitsTool := mcp.NewTool("get_commit_history",
		mcp.WithDescription("Fetch commit history from the GitHub API."),
		mcp.WithString("owner", mcp.Required(), mcp.Description("Repository owner")),
		mcp.WithString("repo", mcp.Required(), mcp.Description("Repository name")),
		mcp.WithNumber("limit", mcp.DefaultNumber(github.DefaultCommitLimit), mcp.Description("Maximum number of commits to return")),
	)
	s.AddTool(commitsTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		owner, err := req.RequireString("owner")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		repo, err := req.RequireString("repo")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		limit := req.GetInt("limit", github.DefaultCommitLimit)
		raw, err := gh.CommitHistory(ctx, owner, repo, limit)
		if err != nil {
			logger.Warn("commit history fetch failed", zap.String("repo", owner+"/"+repo), zap.Error(err))
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(raw)), nil
	})

	logger.Info("starting GitHub analysis server")
	if err := server.ServeStdio(s); err != nil {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
