// internal/web/handlers.go
package web

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/redtable/uno/internal/autoplay"
	"github.com/redtable/uno/internal/deck"
	"github.com/redtable/uno/internal/uno"
)

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	game := s.currentGame()
	if game == nil {
		if s.lobbyMode {
			if err := lobbyTmpl.Execute(w, nil); err != nil {
				s.log.WithError(err).Error("lobby render failed")
			}
			return
		}
		http.Error(w, "no game bound to this server", http.StatusServiceUnavailable)
		return
	}

	rec, err := game.State(r.Context())
	if err != nil {
		http.Error(w, "failed to load game state: "+err.Error(), http.StatusInternalServerError)
		return
	}

	q := r.URL.Query()
	view := buildTableView(rec, game.Seat, q.Get("msg"), q.Get("err"), q.Get("auto") == "1", s.lobbyMode)
	if err := tableTmpl.Execute(w, view); err != nil {
		s.log.WithError(err).Error("table render failed")
	}
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	game := s.currentGame()
	if game == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	card := r.PostFormValue("card")
	chosenColor := r.PostFormValue("chosen_color")

	msg, err := game.Play(r.Context(), card, chosenColor)
	if err != nil {
		http.Redirect(w, r, "/?err="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/?msg="+url.QueryEscape(msg), http.StatusSeeOther)
}

func (s *Server) handleDraw(w http.ResponseWriter, r *http.Request) {
	game := s.currentGame()
	if game == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	msg, err := game.Draw(r.Context())
	if err != nil {
		http.Redirect(w, r, "/?err="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/?msg="+url.QueryEscape(msg), http.StatusSeeOther)
}

// handleAuto makes one scripted move for the human seat, keeping auto mode
// engaged across the redirect.
func (s *Server) handleAuto(w http.ResponseWriter, r *http.Request) {
	game := s.currentGame()
	if game == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	rec, err := game.State(r.Context())
	if err != nil {
		http.Redirect(w, r, "/?auto=1&err="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}
	if rec.Over() || rec.CurrentTurn != game.Seat {
		http.Redirect(w, r, "/?auto=1", http.StatusSeeOther)
		return
	}

	mv := autoplay.FirstLegal(rec.Hands[game.Seat], rec.Top(), deck.Color(rec.CurrentColor))
	var msg string
	if mv.Action == "play" {
		msg, err = game.Play(r.Context(), mv.Card, mv.ChosenColor)
	} else {
		msg, err = game.Draw(r.Context())
	}
	if err != nil {
		http.Redirect(w, r, "/?auto=1&err="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/?auto=1&msg="+url.QueryEscape(msg), http.StatusSeeOther)
}

// handleNewGame deals a fresh table from the lobby, tearing down any
// previous game and its scripted players first.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	numPlayers, err := strconv.Atoi(r.PostFormValue("num_players"))
	if err != nil || numPlayers < 2 || numPlayers > 4 {
		numPlayers = 2
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopRunnersLocked()
	if s.game != nil {
		if err := s.store.Delete(r.Context(), s.game.ID); err != nil {
			s.log.WithError(err).Warn("failed to delete previous game keys")
		}
		s.game = nil
	}

	gameID := newGameID()
	game, err := uno.New(s.store, s.log, gameID, "A", numPlayers)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := game.Ensure(r.Context()); err != nil {
		http.Error(w, "failed to create game: "+err.Error(), http.StatusInternalServerError)
		return
	}

	s.game = game
	s.startRunnersLocked(gameID, numPlayers)
	s.log.WithField("game", gameID).Infof("new %d-player game", numPlayers)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleEndGame tears down the current game and returns to the lobby.
func (s *Server) handleEndGame(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopRunnersLocked()
	if s.game != nil {
		if err := s.store.Delete(r.Context(), s.game.ID); err != nil {
			s.log.WithError(err).Warn("failed to delete game keys")
		}
		s.game = nil
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
