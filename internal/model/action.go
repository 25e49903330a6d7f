package model

// Action is a human-friendly label for a period's price move.
// Keep these values stable; they are intended for CSV output.
type Action string

const (
	ActionMarkup   Action = "MARKUP"
	ActionHold     Action = "HOLD"
	ActionMarkdown Action = "MARKDOWN"
	ActionNone     Action = "NONE"
)

// ActionFromPrices labels the move from prev to cur. A zero current price
// means no pricing decision was made (sold out or horizon reached).
func ActionFromPrices(prev, cur float64) Action {
	switch {
	case cur == 0:
		return ActionNone
	case prev == 0 || cur == prev:
		return ActionHold
	case cur < prev:
		return ActionMarkdown
	default:
		return ActionMarkup
	}
}
