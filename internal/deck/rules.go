// internal/deck/rules.go
package deck

// IsWild reports whether token is a Wild or Wild Draw Four.
func IsWild(token string) bool {
	return token == "Wild" || token == "Wild Draw Four"
}

// IsLegal reports whether card may be played on top given the active color.
// Wilds are always legal; any other card must match the active color or
// share a face with the top card (number-to-number or action-to-action,
// independent of color). Returns ErrBadCard for malformed tokens.
func IsLegal(card, top string, active Color) (bool, error) {
	if IsWild(card) {
		return true, nil
	}
	c, err := Parse(card)
	if err != nil {
		return false, err
	}
	t, err := Parse(top)
	if err != nil {
		return false, err
	}
	if c.Color == active {
		return true, nil
	}
	if c.Kind == t.Kind && (c.Kind != Number || c.Digit == t.Digit) {
		return true, nil
	}
	return false, nil
}
