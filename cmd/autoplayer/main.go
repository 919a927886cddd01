// cmd/autoplayer/main.go runs one scripted seat to completion: wait for the
// turn, play the first legal card (or draw), repeat. Useful for exercising a
// game against an agent-driven opponent.
package main

import (
	"context"
	"flag"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/redtable/uno/internal/autoplay"
	"github.com/redtable/uno/internal/config"
	"github.com/redtable/uno/internal/store"
	"github.com/redtable/uno/internal/uno"
)

func main() {
	gameID := flag.String("game", "", "game id (required)")
	seat := flag.String("player", "B", "seat to play, A-D")
	numPlayers := flag.Int("num-players", 2, "number of players, 2-4")
	flag.Parse()

	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	if *gameID == "" {
		logger.Fatal("--game is required")
	}

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

	game, err := uno.New(st, logger, *gameID, *seat, *numPlayers)
	if err != nil {
		logger.Fatalf("seat: %v", err)
	}
	if err := game.Ensure(ctx); err != nil {
		logger.Fatalf("ensure game: %v", err)
	}

	runner := &autoplay.Runner{
		Game: game,
		Log:  logger.WithFields(logrus.Fields{"game": *gameID, "seat": *seat}),
	}
	runner.Run(ctx)

	rec, err := game.State(ctx)
	if err != nil {
		logger.Fatalf("final state: %v", err)
	}
	logger.Infof("game over: %s", uno.StatusLine(rec, *seat))
}
