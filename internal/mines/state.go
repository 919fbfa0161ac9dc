package mines

import "fmt"

type GameState uint8

const (
	NotStarted GameState = iota
	Running
	Won
	Lost
)

var gameStateNames = [...]string{
	NotStarted: "not-started",
	Running:    "running",
	Won:        "won",
	Lost:       "lost",
}

func (s GameState) String() string {
	if int(s) < len(gameStateNames) {
		return gameStateNames[s]
	}
	return fmt.Sprintf("GameState(%d)", uint8(s))
}

// Terminal reports whether the board no longer accepts moves.
func (s GameState) Terminal() bool {
	return s == Won || s == Lost
}

// [GameState] implements [encoding.TextMarshaler]
func (s GameState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *GameState) UnmarshalText(text []byte) error {
	for i, name := range gameStateNames {
		if name == string(text) {
			*s = GameState(i)
			return nil
		}
	}
	return fmt.Errorf("unknown game state %q", text)
}
