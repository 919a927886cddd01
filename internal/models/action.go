// internal/models/action.go
package models

// ActionRecord is one entry in the action history queue, pushed on every
// successful mutation and drained by the historian into Postgres.
type ActionRecord struct {
	GameID      string `json:"game_id"`
	Seat        string `json:"seat"`
	Action      string `json:"action"` // "play" or "draw"
	Card        string `json:"card,omitempty"`
	ChosenColor string `json:"chosen_color,omitempty"`
	Detail      string `json:"detail"`
	Timestamp   int64  `json:"timestamp"` // epoch millis
}
