// cmd/server/main.go is the player-facing process: it exposes the game as
// MCP tools over stdio and serves a browser view of the table. Without
// --game/--player flags it runs in lobby mode, dealing tables on demand and
// playing the non-human seats itself.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/redtable/uno/internal/config"
	"github.com/redtable/uno/internal/mcptools"
	"github.com/redtable/uno/internal/store"
	"github.com/redtable/uno/internal/uno"
	"github.com/redtable/uno/internal/web"
)

// seatPorts fixes one web port per seat so several players can run on the
// same machine.
var seatPorts = map[string]int{"A": 19000, "B": 19001, "C": 19002, "D": 19003}

func main() {
	gameID := flag.String("game", "", "game id (omit for lobby mode)")
	seat := flag.String("player", "", "seat to play, A-D (omit for lobby mode)")
	numPlayers := flag.Int("num-players", 2, "number of players, 2-4")
	flag.Parse()

	logger := logrus.New()
	// stdout carries the MCP stdio transport; keep logs off it.
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}

	st, err := store.Connect(cfg)
	if err != nil {
		logger.Fatalf("redis: %v", err)
	}
	defer st.Close()

	ctx := context.Background()

	if *gameID != "" && *seat != "" {
		runPlayer(ctx, logger, st, *gameID, *seat, *numPlayers)
		return
	}
	runLobby(logger, st)
}

// runPlayer joins one seat of one game: MCP stdio tools for the agent
// driving this seat, plus a web view on the seat's port.
func runPlayer(ctx context.Context, logger *logrus.Logger, st *store.Store, gameID, seat string, numPlayers int) {
	game, err := uno.New(st, logger, gameID, seat, numPlayers)
	if err != nil {
		logger.Fatalf("seat: %v", err)
	}
	if err := game.Ensure(ctx); err != nil {
		logger.Fatalf("ensure game: %v", err)
	}

	ws := web.NewServer(logger, st, game)
	addr := fmt.Sprintf("localhost:%d", seatPorts[seat])
	go func() {
		logger.Infof("web view on http://%s/", addr)
		if err := http.ListenAndServe(addr, ws.Routes()); err != nil {
			logger.Errorf("web server exited: %v", err)
		}
	}()

	srv := mcp.NewServer(&mcp.Implementation{Name: "uno", Version: "0.3.0"}, nil)
	mcptools.Register(srv, game)
	if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil {
		logger.Fatalf("mcp server exited: %v", err)
	}
}

// runLobby serves the lobby UI only; no MCP stdio.
func runLobby(logger *logrus.Logger, st *store.Store) {
	ws := web.NewLobbyServer(logger, st)
	addr := "localhost:19000"
	logger.Infof("UNO lobby running at http://%s/", addr)
	if err := http.ListenAndServe(addr, ws.Routes()); err != nil {
		logger.Fatalf("web server exited: %v", err)
	}
}
