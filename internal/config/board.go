package config

import "github.com/vancomm/minesweeper-engine/internal/mines"

// Board holds the parameters used for new games that do not specify their own.
type Board struct {
	Columns int
	Rows    int
	Mines   int
}

func NewBoard() (*Board, error) {
	columns, err := lookupInt("BOARD_COLUMNS", mines.DefaultColumns)
	if err != nil {
		return nil, err
	}
	rows, err := lookupInt("BOARD_ROWS", mines.DefaultRows)
	if err != nil {
		return nil, err
	}
	count, err := lookupInt("BOARD_MINES", mines.DefaultMines)
	if err != nil {
		return nil, err
	}

	// same rules the engine applies
	if _, err := mines.NewBoard(columns, rows, count, nil); err != nil {
		return nil, err
	}

	board := &Board{
		Columns: columns,
		Rows:    rows,
		Mines:   count,
	}
	return board, nil
}
