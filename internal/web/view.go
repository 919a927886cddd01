// internal/web/view.go
package web

import (
	"strings"

	"github.com/redtable/uno/internal/models"
	"github.com/redtable/uno/internal/uno"
)

type colorView struct {
	Name    string
	Initial string
	CSS     string
}

// wildColors drives the four-color chooser shown on wild cards.
var wildColors = []colorView{
	{Name: "Red", Initial: "R", CSS: "#e74c3c"},
	{Name: "Yellow", Initial: "Y", CSS: "#f1c40f"},
	{Name: "Green", Initial: "G", CSS: "#2ecc71"},
	{Name: "Blue", Initial: "B", CSS: "#3498db"},
}

type cardView struct {
	Token string
	CSS   string
	Wild  bool
}

type opponentView struct {
	Label string
	Count int
}

// tableView is the template model for the table page.
type tableView struct {
	Seat         string
	StatusLine   string
	LastAction   string
	Msg          string
	Err          string
	Top          cardView
	CurrentColor string
	ColorCSS     string
	DrawCount    int
	Opponents    []opponentView
	Direction    string // empty for two-seat games
	Hand         []cardView
	HandCount    int
	Colors       []colorView
	SeatCount    int
	CanMove      bool
	MyTurn       bool
	Over         bool
	Auto         bool
	LobbyMode    bool
}

// cardCSS maps a card token to its display color; wilds render dark.
func cardCSS(token string) string {
	switch {
	case strings.HasPrefix(token, "Red"):
		return "#e74c3c"
	case strings.HasPrefix(token, "Yellow"):
		return "#f1c40f"
	case strings.HasPrefix(token, "Green"):
		return "#2ecc71"
	case strings.HasPrefix(token, "Blue"):
		return "#3498db"
	}
	return "#555"
}

// buildTableView assembles the template model for seat's view of rec.
func buildTableView(rec *models.Record, seat, msg, errMsg string, auto, lobbyMode bool) tableView {
	twoSeats := len(rec.PlayerOrder) == 2
	myTurn := rec.CurrentTurn == seat

	view := tableView{
		Seat:         seat,
		StatusLine:   uno.StatusLine(rec, seat),
		LastAction:   rec.LastAction,
		Msg:          msg,
		Err:          errMsg,
		Top:          cardView{Token: rec.Top(), CSS: cardCSS(rec.Top())},
		CurrentColor: rec.CurrentColor,
		ColorCSS:     cardCSS(rec.CurrentColor),
		DrawCount:    len(rec.DrawPile),
		Colors:       wildColors,
		SeatCount:    len(rec.PlayerOrder),
		CanMove:      myTurn && !rec.Over(),
		MyTurn:       myTurn,
		Over:         rec.Over(),
		Auto:         auto,
		LobbyMode:    lobbyMode,
	}

	for _, other := range rec.PlayerOrder {
		if other == seat {
			continue
		}
		label := "Player " + other
		if twoSeats {
			label = "Opponent"
		}
		view.Opponents = append(view.Opponents, opponentView{Label: label, Count: len(rec.Hands[other])})
	}
	if !twoSeats {
		if rec.Direction == 1 {
			view.Direction = "Clockwise"
		} else {
			view.Direction = "Counter-clockwise"
		}
	}

	hand := rec.Hands[seat]
	view.HandCount = len(hand)
	for _, card := range hand {
		view.Hand = append(view.Hand, cardView{
			Token: card,
			CSS:   cardCSS(card),
			Wild:  card == "Wild" || card == "Wild Draw Four",
		})
	}
	return view
}
