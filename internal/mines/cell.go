package mines

import "strconv"

// Cell is a single square of a [Board]. The board computes everything that
// needs knowledge of other cells; a cell only stores its own state.
type Cell struct {
	x, y           int
	hasMine        bool
	flagged        bool
	visible        bool
	minedNeighbors int
}

func NewCell(x, y int) Cell {
	return Cell{x: x, y: y}
}

func (c Cell) X() int { return c.x }

func (c Cell) Y() int { return c.y }

func (c Cell) HasMine() bool { return c.hasMine }

func (c Cell) Flagged() bool { return c.flagged }

func (c Cell) Visible() bool { return c.visible }

// MinedNeighbors is only meaningful once the cell is visible.
func (c Cell) MinedNeighbors() int { return c.minedNeighbors }

// Reveal marks the cell visible. Revealing a visible cell does nothing.
func (c *Cell) Reveal() {
	if c.visible {
		return
	}
	c.visible = true
}

func (c *Cell) setMinedNeighbors(n int) {
	c.minedNeighbors = n
}

func (c Cell) String() string {
	switch {
	case !c.visible && c.flagged:
		return "F"
	case !c.visible:
		return "-"
	case c.hasMine:
		return "*"
	case c.minedNeighbors == 0:
		return "."
	default:
		return strconv.Itoa(c.minedNeighbors)
	}
}
