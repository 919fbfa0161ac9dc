package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		want Command
		err  error
	}{
		{"g", Command{Kind: Noop}, nil},
		{"o 1 2", Command{Kind: Reveal, X: 1, Y: 2}, nil},
		{"  F 0 9 ", Command{Kind: Flag, X: 0, Y: 9}, nil},
		{"", Command{}, ErrUnknownCommand},
		{"c 1 1", Command{}, ErrUnknownCommand},
		{"o 1", Command{}, ErrBadNargs},
		{"g 1", Command{}, ErrBadNargs},
	}
	for _, test := range tests {
		t.Run(test.line, func(t *testing.T) {
			c, err := Parse(test.line)
			if test.err != nil {
				assert.ErrorIs(t, err, test.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, c)
		})
	}
}

func TestParseBadInt(t *testing.T) {
	_, err := Parse("o x 1")
	assert.EqualError(t, err, "first argument must be an int")
	_, err = Parse("f 1 y")
	assert.EqualError(t, err, "second argument must be an int")
}

func TestString(t *testing.T) {
	assert.Equal(t, "g", Command{Kind: Noop}.String())
	assert.Equal(t, "o 3 4", Command{Kind: Reveal, X: 3, Y: 4}.String())
}

func TestSplit(t *testing.T) {
	assert.Equal(t, []string{"o 1 1", "f 2 2"}, Split(" o 1 1 \n\n f 2 2\n"))
	assert.Nil(t, Split("  \n"))
}

func TestApply(t *testing.T) {
	b, err := mines.NewBoard(3, 3, 1, nil)
	require.NoError(t, err)
	require.NoError(t, b.InitializeWithMines([]mines.Point{{X: 2, Y: 2}}))

	for _, line := range []string{"g", "f 2 2", "o 1 1"} {
		c, err := Parse(line)
		require.NoError(t, err)
		require.NoError(t, c.Apply(b))
	}

	mine, err := b.CellAt(2, 2)
	require.NoError(t, err)
	assert.True(t, mine.Flagged())

	cell, err := b.CellAt(1, 1)
	require.NoError(t, err)
	assert.True(t, cell.Visible())

	err = Command{Kind: Reveal, X: 5, Y: 5}.Apply(b)
	assert.ErrorIs(t, err, mines.ErrOutOfBounds)
}
