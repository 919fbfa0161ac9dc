package handlers

import (
	"strconv"
	"time"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

type NewGameDTO struct {
	Columns int `schema:"columns"`
	Rows    int `schema:"rows"`
	Mines   int `schema:"mines"`
}

// ParseNewGameDTO fills the fields missing from src with defaults.
func ParseNewGameDTO(src map[string][]string, defaults *config.Board) (NewGameDTO, error) {
	dto := NewGameDTO{
		Columns: defaults.Columns,
		Rows:    defaults.Rows,
		Mines:   defaults.Mines,
	}
	err := decoder.Decode(&dto, src)
	return dto, err
}

type PositionDTO struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func ParsePosition(src map[string][]string) (PositionDTO, error) {
	var dto PositionDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

// CellDTO withholds whether a cell holds a mine until it is visible.
type CellDTO struct {
	X              int   `json:"x"`
	Y              int   `json:"y"`
	Visible        bool  `json:"visible"`
	Flagged        bool  `json:"flagged"`
	MinedNeighbors *int  `json:"mined_neighbors,omitempty"`
	Mine           *bool `json:"mine,omitempty"`
}

func NewCellDTO(c mines.Cell) CellDTO {
	dto := CellDTO{
		X:       c.X(),
		Y:       c.Y(),
		Visible: c.Visible(),
		Flagged: c.Flagged(),
	}
	if c.Visible() {
		mine := c.HasMine()
		dto.Mine = &mine
		if !mine {
			n := c.MinedNeighbors()
			dto.MinedNeighbors = &n
		}
	}
	return dto
}

type GameSessionDTO struct {
	GameSessionId string          `json:"game_session_id"`
	Columns       int             `json:"columns"`
	Rows          int             `json:"rows"`
	Mines         int             `json:"mines"`
	State         mines.GameState `json:"state"`
	FlagCount     int             `json:"flag_count"`
	Grid          []CellDTO       `json:"grid"`
	StartedAt     int64           `json:"started_at"`
	EndedAt       *int64          `json:"ended_at,omitempty"`
}

// NewGameSessionDTO must be called with exclusive access to b; see
// [session.Session.Do].
func NewGameSessionDTO(s *session.Session, b *mines.Board) *GameSessionDTO {
	cells := b.Cells()
	grid := make([]CellDTO, len(cells))
	for i, c := range cells {
		grid[i] = NewCellDTO(c)
	}
	dto := &GameSessionDTO{
		GameSessionId: strconv.FormatInt(s.ID, 10),
		Columns:       b.Columns(),
		Rows:          b.Rows(),
		Mines:         b.Mines(),
		State:         b.State(),
		FlagCount:     b.FlagCount(),
		Grid:          grid,
		StartedAt:     s.StartedAt.UnixMilli(),
	}
	return dto
}

func (dto *GameSessionDTO) setEndedAt(endedAt time.Time) {
	if endedAt.IsZero() {
		return
	}
	e := endedAt.UnixMilli()
	dto.EndedAt = &e
}

type CreatedGameDTO struct {
	*GameSessionDTO
	Token string `json:"token"`
}
