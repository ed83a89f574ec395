// Package channel manages the lifecycle of a connection to an MCP tool
// provider: process launch, capability discovery, invocation, teardown.
// A single tool failure never crosses this boundary as an error; it is
// downgraded to "no data" so callers can treat tool access as optional.
package channel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

// ErrConnection indicates that channel setup failed. It is the only error
// this package surfaces to callers.
var ErrConnection = errors.New("channel: connection failed")

// State tracks the tool-provider session lifecycle.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateReady
	StateFailed
	StateClosed
	// StateDisabled marks a channel configured to never connect. Connect is
	// a no-op and Invoke always reports no data.
	StateDisabled
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	case StateClosed:
		return "closed"
	case StateDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// ToolDescriptor mirrors a tool advertised by the provider during discovery.
type ToolDescriptor struct {
	Name        string
	Description string
}

// Options configure a Channel.
type Options struct {
	// Command plus Args launch the tool-provider process over stdio.
	Command string
	Args    []string
	Env     []string
	// Disabled puts the channel in the intentional no-op mode.
	Disabled bool
	Logger   *zap.Logger
}

// Channel owns at most one live tool-provider session. Invocations are
// issued strictly sequentially; the channel never parallelizes tool calls.
type Channel struct {
	mu     sync.Mutex
	state  State
	client *mcpclient.Client
	tools  []ToolDescriptor

	command string
	args    []string
	env     []string
	logger  *zap.Logger
}

// New constructs a Channel. It does not connect.
func New(opts Options) *Channel {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	state := StateDisconnected
	if opts.Disabled {
		state = StateDisabled
	}
	return &Channel{
		state:   state,
		command: opts.Command,
		args:    opts.Args,
		env:     opts.Env,
		logger:  logger,
	}
}

// Connect launches the provider process, runs the initialize handshake, and
// discovers the advertised tools. Any failure releases every partially
// acquired resource before the error returns. Connecting while Ready closes
// the existing session first rather than leaking it. On a disabled channel
// Connect is a no-op.
func (c *Channel) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateDisabled {
		c.logger.Debug("tool channel disabled, skipping connect")
		return nil
	}
	if c.client != nil {
		c.closeLocked()
	}
	if strings.TrimSpace(c.command) == "" {
		c.state = StateFailed
		return fmt.Errorf("%w: no provider command configured", ErrConnection)
	}

	c.state = StateConnecting
	cl, err := mcpclient.NewStdioMCPClient(c.command, c.env, c.args...)
	if err != nil {
		c.state = StateFailed
		return fmt.Errorf("%w: start provider: %v", ErrConnection, err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "repo-insight", Version: "0.1.0"}
	initReq.Params.Capabilities = mcp.ClientCapabilities{}

	if _, err := cl.Initialize(ctx, initReq); err != nil {
		_ = cl.Close()
		c.state = StateFailed
		return fmt.Errorf("%w: initialize: %v", ErrConnection, err)
	}

	listed, err := cl.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		_ = cl.Close()
		c.state = StateFailed
		return fmt.Errorf("%w: list tools: %v", ErrConnection, err)
	}

	tools := make([]ToolDescriptor, 0, len(listed.Tools))
	names := make([]string, 0, len(listed.Tools))
	for _, tool := range listed.Tools {
		tools = append(tools, ToolDescriptor{Name: tool.Name, Description: tool.Description})
		names = append(names, tool.Name)
	}

	c.client = cl
	c.tools = tools
	c.state = StateReady
	c.logger.Info("connected to tool provider", zap.Strings("tools", names))
	return nil
}

// Invoke calls a named tool and returns its JSON payload. The second return
// reports whether usable data came back: transport errors, provider-side
// tool errors, non-text content, and unparseable payloads all normalize to
// (nil, false). Invoking a channel that is not Ready also reports no data.
func (c *Channel) Invoke(ctx context.Context, name string, args map[string]any) (json.RawMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateReady {
		c.logger.Debug("tool invocation skipped", zap.String("tool", name), zap.Stringer("state", c.state))
		return nil, false
	}

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	result, err := c.client.CallTool(ctx, req)
	if err != nil {
		c.logger.Warn("tool call failed", zap.String("tool", name), zap.Error(err))
		return nil, false
	}
	if result == nil || result.IsError {
		c.logger.Warn("tool reported an error", zap.String("tool", name))
		return nil, false
	}

	for _, item := range result.Content {
		text, ok := item.(mcp.TextContent)
		if !ok {
			continue
		}
		payload := strings.TrimSpace(text.Text)
		if payload == "" || !json.Valid([]byte(payload)) {
			break
		}
		return json.RawMessage(payload), true
	}
	c.logger.Debug("tool returned no usable payload", zap.String("tool", name))
	return nil, false
}

// Tools returns the descriptors discovered at connect time.
func (c *Channel) Tools() []ToolDescriptor {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ToolDescriptor, len(c.tools))
	copy(out, c.tools)
	return out
}

// State reports the current session state.
func (c *Channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Ready reports whether invocations can be served.
func (c *Channel) Ready() bool {
	return c.State() == StateReady
}

// Disabled reports whether the channel was configured to never connect.
func (c *Channel) Disabled() bool {
	return c.State() == StateDisabled
}

// Close releases the provider process and transport. It is idempotent and
// safe to call after a partial or failed Connect, or no Connect at all.
func (c *Channel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
	return nil
}

func (c *Channel) closeLocked() {
	if c.client != nil {
		if err := c.client.Close(); err != nil {
			c.logger.Debug("provider shutdown", zap.Error(err))
		}
		c.client = nil
	}
	c.tools = nil
	if c.state != StateDisabled {
		c.state = StateClosed
	}
}
