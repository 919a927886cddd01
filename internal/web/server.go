// internal/web/server.go
package web

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/redtable/uno/internal/autoplay"
	"github.com/redtable/uno/internal/middleware"
	"github.com/redtable/uno/internal/store"
	"github.com/redtable/uno/internal/uno"
)

// runnerDelay paces scripted opponents so a human can follow the game.
const runnerDelay = 800 * time.Millisecond

// Server renders one player's browser view of a game. In lobby mode it also
// creates games on demand and runs scripted opponents for the other seats.
type Server struct {
	log   *logrus.Logger
	store *store.Store

	mu            sync.Mutex
	game          *uno.Game // nil in lobby mode until a game starts
	lobbyMode     bool
	cancelRunners context.CancelFunc
}

// NewServer returns a web server bound to a fixed game and seat.
func NewServer(logger *logrus.Logger, st *store.Store, game *uno.Game) *Server {
	return &Server{log: logger, store: st, game: game}
}

// NewLobbyServer returns a web server with no fixed game: the player picks a
// seat count in the lobby and the server deals a fresh table, playing every
// seat but A itself.
func NewLobbyServer(logger *logrus.Logger, st *store.Store) *Server {
	return &Server{log: logger, store: st, lobbyMode: true}
}

// Routes assembles the HTTP handler tree.
func (s *Server) Routes() http.Handler {
	logged := middleware.LogMiddleware(s.log)

	mux := http.NewServeMux()
	mux.Handle("/", logged(http.HandlerFunc(s.handleTable)))
	mux.Handle("/play", logged(http.HandlerFunc(s.handlePlay)))
	mux.Handle("/draw", logged(http.HandlerFunc(s.handleDraw)))
	mux.Handle("/auto", logged(http.HandlerFunc(s.handleAuto)))
	mux.Handle("/ws", http.HandlerFunc(s.handleWS))
	if s.lobbyMode {
		mux.Handle("/new-game", logged(http.HandlerFunc(s.handleNewGame)))
		mux.Handle("/end-game", logged(http.HandlerFunc(s.handleEndGame)))
	}
	return mux
}

func (s *Server) currentGame() *uno.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game
}

// newGameID derives a short id from a v4 uuid, plenty for a handful of
// concurrent tables.
func newGameID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// startRunnersLocked launches scripted players for every seat but A. The
// caller holds s.mu.
func (s *Server) startRunnersLocked(gameID string, numPlayers int) {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancelRunners = cancel

	for _, seat := range []string{"B", "C", "D"}[:numPlayers-1] {
		g, err := uno.New(s.store, s.log, gameID, seat, numPlayers)
		if err != nil {
			s.log.WithError(err).Errorf("cannot seat scripted player %s", seat)
			continue
		}
		runner := &autoplay.Runner{
			Game:  g,
			Log:   s.log.WithField("runner", seat),
			Delay: runnerDelay,
		}
		go runner.Run(ctx)
	}
}

// stopRunnersLocked cancels any scripted players. The caller holds s.mu.
func (s *Server) stopRunnersLocked() {
	if s.cancelRunners != nil {
		s.cancelRunners()
		s.cancelRunners = nil
	}
}
