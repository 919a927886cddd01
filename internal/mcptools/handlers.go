// internal/mcptools/handlers.go
package mcptools

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/redtable/uno/internal/uno"
)

const defaultWaitTimeout = 60 * time.Second

// StatusHandler renders the player's view of the table.
func StatusHandler(game *uno.Game) mcp.ToolHandlerFor[StatusInput, StatusResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ StatusInput) (*mcp.CallToolResult, StatusResult, error) {
		view, err := game.Status(ctx)
		if err != nil {
			return nil, StatusResult{}, err
		}
		return nil, StatusResult{View: view}, nil
	}
}

// PlayHandler plays a card for this seat. Validation failures come back as
// tool errors with the engine's message intact.
func PlayHandler(game *uno.Game) mcp.ToolHandlerFor[PlayInput, PlayResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PlayInput) (*mcp.CallToolResult, PlayResult, error) {
		msg, err := game.Play(ctx, input.Card, input.ChosenColor)
		if err != nil {
			return nil, PlayResult{}, err
		}
		return nil, PlayResult{Message: msg}, nil
	}
}

// DrawHandler draws one card for this seat.
func DrawHandler(game *uno.Game) mcp.ToolHandlerFor[DrawInput, DrawResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ DrawInput) (*mcp.CallToolResult, DrawResult, error) {
		msg, err := game.Draw(ctx)
		if err != nil {
			return nil, DrawResult{}, err
		}
		return nil, DrawResult{Message: msg}, nil
	}
}

// WaitHandler blocks until it is this seat's turn or the timeout elapses.
func WaitHandler(game *uno.Game) mcp.ToolHandlerFor[WaitInput, WaitResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input WaitInput) (*mcp.CallToolResult, WaitResult, error) {
		timeout := defaultWaitTimeout
		if input.Timeout > 0 {
			timeout = time.Duration(input.Timeout * float64(time.Second))
		}
		last, err := game.Wait(ctx, timeout)
		if err != nil {
			return nil, WaitResult{}, err
		}
		return nil, WaitResult{LastAction: last}, nil
	}
}
