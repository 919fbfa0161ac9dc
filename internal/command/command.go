package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type Kind string

const (
	Noop   Kind = "g"
	Reveal Kind = "o"
	Flag   Kind = "f"
)

// Maps known commands to number of arguments
var commandNargs = map[Kind]int{
	Noop:   0,
	Reveal: 2,
	Flag:   2,
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadNargs       = errors.New("invalid number of arguments")
)

type Command struct {
	Kind Kind
	X, Y int
}

func parseXY(twoStrings []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("first argument must be an int")
		return
	}
	if y, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("second argument must be an int")
		return
	}
	return
}

// Parse reads a single command line such as "o 3 4".
func Parse(line string) (Command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Command{}, ErrUnknownCommand
	}
	kind := Kind(strings.ToLower(parts[0]))
	nargs, ok := commandNargs[kind]
	if !ok {
		return Command{}, fmt.Errorf("%w %q", ErrUnknownCommand, parts[0])
	}
	if nargs != len(parts)-1 {
		return Command{}, fmt.Errorf("%w: %q takes %d", ErrBadNargs, parts[0], nargs)
	}
	c := Command{Kind: kind}
	if nargs == 2 {
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return Command{}, err
		}
		c.X, c.Y = x, y
	}
	return c, nil
}

func (c Command) String() string {
	if c.Kind == Noop {
		return string(c.Kind)
	}
	return fmt.Sprintf("%s %d %d", c.Kind, c.X, c.Y)
}

// Apply runs the command against b. Moves rejected by the board as harmless
// are not errors.
func (c Command) Apply(b *mines.Board) error {
	switch c.Kind {
	case Noop:
		return nil
	case Reveal:
		_, err := b.Reveal(c.X, c.Y)
		return err
	case Flag:
		_, err := b.ToggleFlag(c.X, c.Y)
		return err
	}
	return ErrUnknownCommand
}

// Split breaks a message into trimmed non-empty lines.
func Split(message string) []string {
	var lines []string
	for _, line := range strings.Split(message, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
