package league

import "fmt"

// EventKind identifies one countable achievement recorded during a singles
// game. The set is closed on purpose: every kind maps onto exactly one
// PlayerStats counter, so adding a kind means adding a column.
type EventKind string

const (
	EventScore95  EventKind = "s95"
	EventScore133 EventKind = "s133"
	EventScore170 EventKind = "s170"

	EventCheckout3 EventKind = "checkout_3"
	EventCheckout4 EventKind = "checkout_4"
	EventCheckout5 EventKind = "checkout_5"
	EventCheckout6 EventKind = "checkout_6"

	// EventHighestCheckout is the one kind whose submitted count carries a
	// checkout value instead of an occurrence count.
	EventHighestCheckout EventKind = "highest_checkout"
)

// ParseEventKind validates a submitted event kind string.
func ParseEventKind(s string) (EventKind, error) {
	switch k := EventKind(s); k {
	case EventScore95, EventScore133, EventScore170,
		EventCheckout3, EventCheckout4, EventCheckout5, EventCheckout6,
		EventHighestCheckout:
		return k, nil
	default:
		return "", fmt.Errorf("unknown event kind %q", s)
	}
}

// GameType identifies one slot on the league's match card.
type GameType string

const (
	GameSingle        GameType = "single"
	GameDouble501     GameType = "double_501"
	GameDoubleCricket GameType = "double_cricket"
	GameTriple301     GameType = "triple_301"
	GameTiebreak701   GameType = "tiebreak_701"
)

// ParseGameType validates a submitted game type string.
func ParseGameType(s string) (GameType, error) {
	switch t := GameType(s); t {
	case GameSingle, GameDouble501, GameDoubleCricket, GameTriple301, GameTiebreak701:
		return t, nil
	default:
		return "", fmt.Errorf("unknown game type %q", s)
	}
}

// PlayersPerSide returns the required participant count per side for a game
// type. Singles are one on one, doubles two, the triple and the tiebreak are
// played three a side.
func (t GameType) PlayersPerSide() int {
	switch t {
	case GameSingle:
		return 1
	case GameDouble501, GameDoubleCricket:
		return 2
	default:
		return 3
	}
}

// Side marks the home or away half of a game.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// ParseSide validates a submitted winner side.
func ParseSide(s string) (Side, error) {
	switch v := Side(s); v {
	case SideHome, SideAway:
		return v, nil
	default:
		return "", fmt.Errorf("unknown side %q", s)
	}
}
