// internal/deck/card.go
package deck

import (
	"errors"
	"fmt"
	"strings"
)

// Color is one of the four playable card colors.
type Color string

const (
	Red    Color = "Red"
	Yellow Color = "Yellow"
	Green  Color = "Green"
	Blue   Color = "Blue"
)

// Colors lists the playable colors in deck order.
var Colors = []Color{Red, Yellow, Green, Blue}

// ValidColor reports whether s names one of the four playable colors.
func ValidColor(s string) bool {
	for _, c := range Colors {
		if string(c) == s {
			return true
		}
	}
	return false
}

// Kind tags the decoded form of a card.
type Kind int

const (
	Number Kind = iota
	Skip
	Reverse
	DrawTwo
	Wild
	WildDrawFour
)

// ErrBadCard is returned by Parse for tokens matching no color/face combination.
var ErrBadCard = errors.New("unrecognized card")

// Card is the decoded form of a card token. Wild cards carry no color until
// one is chosen at play time, so Color stays empty for them.
type Card struct {
	Color Color
	Kind  Kind
	Digit int // 0-9, meaningful only when Kind == Number
}

// Parse decodes a wire token such as "Red 5", "Green Skip" or "Wild Draw Four".
func Parse(token string) (Card, error) {
	switch token {
	case "Wild":
		return Card{Kind: Wild}, nil
	case "Wild Draw Four":
		return Card{Kind: WildDrawFour}, nil
	}
	for _, color := range Colors {
		face, ok := strings.CutPrefix(token, string(color)+" ")
		if !ok {
			continue
		}
		switch face {
		case "Skip":
			return Card{Color: color, Kind: Skip}, nil
		case "Reverse":
			return Card{Color: color, Kind: Reverse}, nil
		case "Draw Two":
			return Card{Color: color, Kind: DrawTwo}, nil
		}
		if len(face) == 1 && face[0] >= '0' && face[0] <= '9' {
			return Card{Color: color, Kind: Number, Digit: int(face[0] - '0')}, nil
		}
	}
	return Card{}, fmt.Errorf("%w: %q", ErrBadCard, token)
}

// Token renders the wire form of the card. Hands and piles match cards by
// exact token equality, so Token must round-trip with Parse.
func (c Card) Token() string {
	switch c.Kind {
	case Wild:
		return "Wild"
	case WildDrawFour:
		return "Wild Draw Four"
	case Skip:
		return string(c.Color) + " Skip"
	case Reverse:
		return string(c.Color) + " Reverse"
	case DrawTwo:
		return string(c.Color) + " Draw Two"
	default:
		return fmt.Sprintf("%s %d", c.Color, c.Digit)
	}
}
