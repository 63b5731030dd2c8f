package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// Size is the side length of the board.
const Size = 3

// Cells is the number of cells on the board.
const Cells = Size * Size

// Cell is the content of a single square.
type Cell uint8

const (
	EmptyCell Cell = iota
	PlayerX
	PlayerO
)

// Opponent returns the other mark. EmptyCell has no opponent.
func (that Cell) Opponent() Cell {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

// IsMark reports whether the cell value is one of the two player marks.
func (that Cell) IsMark() bool {
	return that == PlayerX || that == PlayerO
}

func (that Cell) String() string {
	switch that {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return "."
	}
}

// ParseMark - converts "x"/"o" (or "1"/"2") into a player mark.
func ParseMark(s string) (Cell, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x", "1":
		return PlayerX, nil
	case "o", "2":
		return PlayerO, nil
	default:
		return EmptyCell, fmt.Errorf("%w: %q", apperror.ErrUnknownMark, s)
	}
}

// Position addresses a cell by row and column.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// InBounds reports whether the position lies on the board.
func (that Position) InBounds() bool {
	return that.Row >= 0 && that.Row < Size && that.Col >= 0 && that.Col < Size
}

func (that Position) String() string {
	return fmt.Sprintf("(%d, %d)", that.Row, that.Col)
}

// Board owns the grid and keeps marked equal to the number of non-empty cells.
type Board struct {
	grid   [Size][Size]Cell
	marked int
}

func NewBoard() *Board {
	return &Board{}
}

// BoardFromGrid - builds a board from an existing grid, recounting the marks.
func BoardFromGrid(grid [Size][Size]Cell) *Board {
	board := &Board{grid: grid}
	for row := range Size {
		for col := range Size {
			if grid[row][col] != EmptyCell {
				board.marked++
			}
		}
	}

	return board
}

// Mark - places the player's mark on an empty cell.
func (that *Board) Mark(row, col int, player Cell) error {
	if !player.IsMark() {
		return fmt.Errorf("%w: cannot mark with %v", apperror.ErrInvalidMove, player)
	}

	if !(Position{Row: row, Col: col}).InBounds() {
		return fmt.Errorf("%w: cell (%d, %d) is out of range", apperror.ErrInvalidMove, row, col)
	}

	if that.grid[row][col] != EmptyCell {
		return fmt.Errorf("%w: cell (%d, %d) is already occupied", apperror.ErrInvalidMove, row, col)
	}

	that.grid[row][col] = player
	that.marked++

	return nil
}

// Unmark - clears a marked cell. Used by search to backtrack over its own private copy.
func (that *Board) Unmark(row, col int) {
	if that.grid[row][col] == EmptyCell {
		return
	}

	that.grid[row][col] = EmptyCell
	that.marked--
}

// IsEmpty is false for coordinates off the board.
func (that *Board) IsEmpty(row, col int) bool {
	if !(Position{Row: row, Col: col}).InBounds() {
		return false
	}

	return that.grid[row][col] == EmptyCell
}

func (that *Board) At(row, col int) Cell {
	return that.grid[row][col]
}

func (that *Board) MarkCount() int {
	return that.marked
}

// Grid returns a copy of the cells.
func (that *Board) Grid() [Size][Size]Cell {
	return that.grid
}

// EmptyCells - lists the empty cells in row-major order.
func (that *Board) EmptyCells() []Position {
	cells := make([]Position, 0, Cells-that.marked)
	for row := range Size {
		for col := range Size {
			if that.grid[row][col] == EmptyCell {
				cells = append(cells, Position{Row: row, Col: col})
			}
		}
	}

	return cells
}

func (that *Board) IsFull() bool {
	return that.marked == Cells
}

func (that *Board) Clone() *Board {
	clone := *that
	return &clone
}

// Key - encodes the grid as nine characters, row-major.
func (that *Board) Key() string {
	var sb strings.Builder
	sb.Grow(Cells)
	for row := range Size {
		for col := range Size {
			sb.WriteString(that.grid[row][col].String())
		}
	}

	return sb.String()
}

func (that *Board) String() string {
	var sb strings.Builder
	for row := range Size {
		for col := range Size {
			sb.WriteString(that.grid[row][col].String())
		}
		if row < Size-1 {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

// MoveEvaluation is a chosen move together with its minimax value.
type MoveEvaluation struct {
	Move  Position `json:"move"`
	Value int      `json:"value"`
}
