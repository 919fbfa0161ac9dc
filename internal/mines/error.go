package mines

import (
	"errors"
	"fmt"
)

var (
	ErrBadDimensions      = errors.New("board must have at least one column and one row")
	ErrTooManyMines       = errors.New("mine count must be non-negative and less than the number of cells")
	ErrNotInitialized     = errors.New("board is not initialized")
	ErrAlreadyInitialized = errors.New("board is already initialized")
	ErrOutOfBounds        = errors.New("coordinates out of bounds")
	ErrBadLayout          = errors.New("invalid mine layout")
)

func outOfBounds(x, y int) error {
	return fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, x, y)
}
