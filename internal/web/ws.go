// internal/web/ws.go
package web

import (
	"net/http"

	"github.com/coder/websocket"

	"github.com/redtable/uno/internal/middleware"
)

// handleWS upgrades the connection and forwards the game's turn
// notifications to the browser, which re-renders on each signal. The
// subscription is dropped when the client goes away.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	game := s.currentGame()
	if game == nil {
		http.Error(w, "no game in progress", http.StatusNotFound)
		return
	}

	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"}, // local single-user UI
	})
	if err != nil {
		s.log.WithError(err).Warn("websocket accept failed")
		return
	}
	middleware.LogWebSocketConnect(s.log, game.ID, r.RemoteAddr)
	defer c.Close(websocket.StatusInternalError, "handler exit")

	ctx := r.Context()
	sub, err := s.store.Subscribe(ctx, game.ID)
	if err != nil {
		s.log.WithError(err).Warn("websocket subscribe failed")
		c.Close(websocket.StatusInternalError, "subscribe failed")
		return
	}
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			c.Close(websocket.StatusNormalClosure, "")
			middleware.LogWebSocketDisconnect(s.log, game.ID, r.RemoteAddr, nil)
			return
		case _, ok := <-sub.Updates():
			if !ok {
				c.Close(websocket.StatusNormalClosure, "")
				return
			}
			if err := c.Write(ctx, websocket.MessageText, []byte("update")); err != nil {
				middleware.LogWebSocketDisconnect(s.log, game.ID, r.RemoteAddr, err)
				return
			}
		}
	}
}
