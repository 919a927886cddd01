// internal/models/record.go
package models

// Record is the single persisted entity for one game. It is stored as one
// JSON value per game id and always rewritten whole, never patched, so
// readers only ever observe complete states.
type Record struct {
	DrawPile     []string            `json:"draw_pile"`
	DiscardPile  []string            `json:"discard_pile"`
	Hands        map[string][]string `json:"hands"`
	CurrentTurn  string              `json:"current_turn"`
	CurrentColor string              `json:"current_color"`
	LastAction   string              `json:"last_action"`
	Winner       string              `json:"winner,omitempty"`
	PlayerOrder  []string            `json:"player_order,omitempty"`
	Direction    int                 `json:"direction,omitempty"`
}

// Normalize fills in pre-multiplayer schema defaults on a freshly decoded
// record: two seats in natural order, forward direction. Records that
// already carry seating data are left alone, and the fill is never written
// back to the store.
func (r *Record) Normalize() {
	if len(r.PlayerOrder) == 0 {
		r.PlayerOrder = []string{"A", "B"}
	}
	if r.Direction == 0 {
		r.Direction = 1
	}
}

// Top returns the active discard card.
func (r *Record) Top() string {
	return r.DiscardPile[len(r.DiscardPile)-1]
}

// Over reports whether the record is terminal. A terminal record accepts no
// further mutation.
func (r *Record) Over() bool {
	return r.Winner != ""
}

// SeatIndex returns the position of seat in the turn order, or -1.
func (r *Record) SeatIndex(seat string) int {
	for i, s := range r.PlayerOrder {
		if s == seat {
			return i
		}
	}
	return -1
}

// NextSeat returns the seat `skip` steps away from `from` in the current
// direction. The wrap uses a non-negative modulus since direction can be -1.
func (r *Record) NextSeat(from string, skip int) string {
	n := len(r.PlayerOrder)
	pos := (r.SeatIndex(from) + r.Direction*skip) % n
	if pos < 0 {
		pos += n
	}
	return r.PlayerOrder[pos]
}

// CardCount sums every pile and hand. A well-formed game always reports the
// full deck size.
func (r *Record) CardCount() int {
	total := len(r.DrawPile) + len(r.DiscardPile)
	for _, hand := range r.Hands {
		total += len(hand)
	}
	return total
}
