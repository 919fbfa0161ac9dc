package mines

import (
	"fmt"
	"hash/maphash"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

const (
	DefaultColumns = 10
	DefaultRows    = 10
	DefaultMines   = 10
)

type Point struct {
	X, Y int
}

// Listener is called synchronously after every game state transition.
type Listener func(from, to GameState)

// Board holds the state of a single game. It is not safe for concurrent use;
// hosts serving several clients must serialize access themselves.
type Board struct {
	columns, rows, mines int

	cells     []Cell // row-major, index y*columns + x
	state     GameState
	rnd       *rand.Rand
	listeners []Listener
}

func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// NewBoard validates the board parameters. The board stays in [NotStarted]
// until [Board.Initialize] is called. A nil r is replaced with a randomly
// seeded source.
func NewBoard(columns, rows, mines int, r *rand.Rand) (*Board, error) {
	if columns <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadDimensions, columns, rows)
	}
	if mines < 0 || mines >= columns*rows {
		return nil, fmt.Errorf("%w: %d mines on %dx%d", ErrTooManyMines, mines, columns, rows)
	}
	if r == nil {
		r = NewRand()
	}
	b := &Board{
		columns: columns,
		rows:    rows,
		mines:   mines,
		rnd:     r,
	}
	return b, nil
}

func (b *Board) Columns() int { return b.columns }

func (b *Board) Rows() int { return b.rows }

func (b *Board) Mines() int { return b.mines }

func (b *Board) State() GameState { return b.state }

func (b *Board) Subscribe(l Listener) {
	b.listeners = append(b.listeners, l)
}

func (b *Board) setState(s GameState) {
	from := b.state
	if from == s {
		return
	}
	b.state = s
	Log.WithFields(logrus.Fields{
		"from": from.String(),
		"to":   s.String(),
	}).Debug("game state changed")
	for _, l := range b.listeners {
		l(from, s)
	}
}

func (b *Board) allocate() {
	b.cells = make([]Cell, b.columns*b.rows)
	for y := range b.rows {
		for x := range b.columns {
			b.cells[b.index(x, y)] = NewCell(x, y)
		}
	}
}

// Initialize builds the grid, places the mines at random and starts the game.
func (b *Board) Initialize() error {
	if b.state != NotStarted {
		return ErrAlreadyInitialized
	}
	b.allocate()
	b.placeMines(b.mines)
	b.setState(Running)
	return nil
}

// InitializeWithMines starts the game with mines at exactly the given points.
func (b *Board) InitializeWithMines(points []Point) error {
	if b.state != NotStarted {
		return ErrAlreadyInitialized
	}
	if len(points) != b.mines {
		return fmt.Errorf("%w: got %d mines, board expects %d", ErrBadLayout, len(points), b.mines)
	}
	for _, p := range points {
		if !b.InBounds(p.X, p.Y) {
			return outOfBounds(p.X, p.Y)
		}
	}
	b.allocate()
	for _, p := range points {
		c := &b.cells[b.index(p.X, p.Y)]
		if c.hasMine {
			b.cells = nil
			return fmt.Errorf("%w: duplicate mine at (%d, %d)", ErrBadLayout, p.X, p.Y)
		}
		c.hasMine = true
	}
	b.setState(Running)
	return nil
}

// placeMines uses rejection sampling: a random cell that already holds a mine
// is simply drawn again.
func (b *Board) placeMines(count int) {
	for count > 0 {
		x := b.rnd.IntN(b.columns)
		y := b.rnd.IntN(b.rows)
		c := &b.cells[b.index(x, y)]
		if c.hasMine {
			continue
		}
		c.hasMine = true
		count--
		Log.WithFields(logrus.Fields{"x": x, "y": y}).Debug("mine placed")
	}
}

func (b *Board) InBounds(x, y int) bool {
	return 0 <= x && x < b.columns && 0 <= y && y < b.rows
}

func (b *Board) index(x, y int) int {
	return y*b.columns + x
}

func (b *Board) check(x, y int) error {
	if b.state == NotStarted {
		return ErrNotInitialized
	}
	if !b.InBounds(x, y) {
		return outOfBounds(x, y)
	}
	return nil
}

func (b *Board) CellAt(x, y int) (Cell, error) {
	if err := b.check(x, y); err != nil {
		return Cell{}, err
	}
	return b.cells[b.index(x, y)], nil
}

// neighbors returns the indices of the in-bounds cells surrounding (x, y).
func (b *Board) neighbors(x, y int) []int {
	indices := make([]int, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if b.InBounds(x+dx, y+dy) {
				indices = append(indices, b.index(x+dx, y+dy))
			}
		}
	}
	return indices
}

func (b *Board) Neighbors(x, y int) ([]Cell, error) {
	if err := b.check(x, y); err != nil {
		return nil, err
	}
	indices := b.neighbors(x, y)
	cells := make([]Cell, len(indices))
	for i, j := range indices {
		cells[i] = b.cells[j]
	}
	return cells, nil
}

func (b *Board) countMinedNeighbors(x, y int) int {
	n := 0
	for _, j := range b.neighbors(x, y) {
		if b.cells[j].hasMine {
			n++
		}
	}
	return n
}

// show computes the neighbor count of cell i and makes it visible.
func (b *Board) show(i int) int {
	c := &b.cells[i]
	n := b.countMinedNeighbors(c.x, c.y)
	c.setMinedNeighbors(n)
	c.Reveal()
	return n
}

// Reveal opens the cell at (x, y). Opening a mine loses the game and exposes
// the whole board. Opening a cell without mined neighbors opens its
// neighbors as well, transitively. Flagged and visible cells are left alone,
// as is a board that has already been won or lost.
func (b *Board) Reveal(x, y int) (GameState, error) {
	if err := b.check(x, y); err != nil {
		return b.state, err
	}
	Log.WithFields(logrus.Fields{"x": x, "y": y}).Debug("reveal")
	if b.state != Running {
		return b.state, nil
	}

	i := b.index(x, y)
	if b.cells[i].flagged || b.cells[i].visible {
		return b.state, nil
	}

	if b.cells[i].hasMine {
		b.setState(Lost)
		b.revealAll()
		return b.state, nil
	}

	todo := []int{i}
	for len(todo) > 0 {
		j := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		if b.cells[j].visible || b.cells[j].flagged {
			continue
		}
		if b.show(j) != 0 {
			continue
		}
		for _, k := range b.neighbors(b.cells[j].x, b.cells[j].y) {
			if !b.cells[k].visible && !b.cells[k].flagged {
				todo = append(todo, k)
			}
		}
	}

	if b.HiddenCells() == b.mines {
		b.setState(Won)
	}
	return b.state, nil
}

// revealAll exposes every hidden cell without any win or loss checks.
// Flags stay set so that hosts can tell right and wrong flags apart.
func (b *Board) revealAll() {
	for i := range b.cells {
		if !b.cells[i].visible {
			b.show(i)
		}
	}
}

// ToggleFlag flips the flag on a hidden cell and returns the new value.
// Visible cells and finished games keep their current flag.
func (b *Board) ToggleFlag(x, y int) (bool, error) {
	if err := b.check(x, y); err != nil {
		return false, err
	}
	Log.WithFields(logrus.Fields{"x": x, "y": y}).Debug("toggle flag")
	c := &b.cells[b.index(x, y)]
	if b.state != Running || c.visible {
		return c.flagged, nil
	}
	c.flagged = !c.flagged
	return c.flagged, nil
}

func (b *Board) HiddenCells() int {
	n := 0
	for i := range b.cells {
		if !b.cells[i].visible {
			n++
		}
	}
	return n
}

func (b *Board) FlagCount() int {
	n := 0
	for i := range b.cells {
		if b.cells[i].flagged {
			n++
		}
	}
	return n
}

// Cells returns a copy of the grid in row-major order. It is empty before
// the board is initialized.
func (b *Board) Cells() []Cell {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return cells
}
