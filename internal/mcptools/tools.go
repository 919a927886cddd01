// internal/mcptools/tools.go
package mcptools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/redtable/uno/internal/uno"
)

// StatusInput has no fields; the game binding supplies everything.
type StatusInput struct{}

// StatusResult carries the rendered table view for this player.
type StatusResult struct {
	View string `json:"view" jsonschema:"rendered game status: your hand, the table and whose turn it is"`
}

// PlayInput names the card to play and, for wilds, the chosen color.
type PlayInput struct {
	Card        string `json:"card" jsonschema:"card to play, e.g. \"Red 5\", \"Green Skip\", \"Wild\""`
	ChosenColor string `json:"chosen_color,omitempty" jsonschema:"required when playing a Wild card; one of Red, Yellow, Green, Blue"`
}

// PlayResult reports the outcome of a play.
type PlayResult struct {
	Message string `json:"message" jsonschema:"outcome of the play, including any effects"`
}

// DrawInput has no fields.
type DrawInput struct{}

// DrawResult names the card drawn.
type DrawResult struct {
	Message string `json:"message" jsonschema:"the card drawn from the pile"`
}

// WaitInput optionally bounds how long to block.
type WaitInput struct {
	Timeout float64 `json:"timeout,omitempty" jsonschema:"max seconds to wait (default 60)"`
}

// WaitResult carries the last table action as the wake payload.
type WaitResult struct {
	LastAction string `json:"last_action" jsonschema:"most recent action on the table"`
}

// StatusTool defines the MCP tool schema for reading game state.
func StatusTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "status",
		Description: "Show the current game state: your hand, the table, and whose turn it is.",
	}
}

// PlayTool defines the MCP tool schema for playing a card.
func PlayTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "play",
		Description: "Play a card from your hand. Provide the full card name " +
			`(e.g. "Red 5", "Wild Draw Four"). For Wild cards you must also provide chosen_color.`,
	}
}

// DrawTool defines the MCP tool schema for drawing a card.
func DrawTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "draw",
		Description: "Draw a card from the draw pile. Ends your turn.",
	}
}

// WaitTool defines the MCP tool schema for blocking until the player's turn.
func WaitTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "wait",
		Description: "Block until it is your turn. Returns the last action.",
	}
}

// Register binds all four game tools onto the server.
func Register(server *mcp.Server, game *uno.Game) {
	mcp.AddTool(server, StatusTool(), StatusHandler(game))
	mcp.AddTool(server, PlayTool(), PlayHandler(game))
	mcp.AddTool(server, DrawTool(), DrawHandler(game))
	mcp.AddTool(server, WaitTool(), WaitHandler(game))
}
