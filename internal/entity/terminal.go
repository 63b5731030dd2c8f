package entity

// LineKind identifies which family of lines a winning line belongs to.
type LineKind uint8

const (
	LineNone LineKind = iota
	LineColumn
	LineRow
	LineDescDiagonal // top-left to bottom-right
	LineAscDiagonal  // bottom-left to top-right
)

func (that LineKind) String() string {
	switch that {
	case LineColumn:
		return "column"
	case LineRow:
		return "row"
	case LineDescDiagonal:
		return "desc-diagonal"
	case LineAscDiagonal:
		return "asc-diagonal"
	default:
		return "none"
	}
}

// WinLine names a row, column or diagonal. Index is the row or column number and is zero for diagonals.
type WinLine struct {
	Kind  LineKind `json:"kind"`
	Index int      `json:"index"`
}

// Cells returns the three positions of the line.
func (that WinLine) Cells() [Size]Position {
	var cells [Size]Position
	for i := range Size {
		switch that.Kind {
		case LineColumn:
			cells[i] = Position{Row: i, Col: that.Index}
		case LineRow:
			cells[i] = Position{Row: that.Index, Col: i}
		case LineDescDiagonal:
			cells[i] = Position{Row: i, Col: i}
		case LineAscDiagonal:
			cells[i] = Position{Row: Size - 1 - i, Col: i}
		}
	}

	return cells
}

// TerminalState is the result of scanning the board for three in a row.
// Winner is EmptyCell when no line is complete.
type TerminalState struct {
	Winner Cell
	Line   WinLine
}

func (that TerminalState) HasWinner() bool {
	return that.Winner != EmptyCell
}

// winLines are scanned in this order: columns, rows, descending diagonal, ascending diagonal.
var winLines = func() []WinLine {
	lines := make([]WinLine, 0, 2*Size+2)
	for col := range Size {
		lines = append(lines, WinLine{Kind: LineColumn, Index: col})
	}
	for row := range Size {
		lines = append(lines, WinLine{Kind: LineRow, Index: row})
	}

	return append(lines, WinLine{Kind: LineDescDiagonal}, WinLine{Kind: LineAscDiagonal})
}()

// TerminalState - returns the first complete line and its owner.
func (that *Board) TerminalState() TerminalState {
	for _, line := range winLines {
		cells := line.Cells()
		a := that.grid[cells[0].Row][cells[0].Col]
		b := that.grid[cells[1].Row][cells[1].Col]
		c := that.grid[cells[2].Row][cells[2].Col]

		if a != EmptyCell && a == b && b == c {
			return TerminalState{Winner: a, Line: line}
		}
	}

	return TerminalState{}
}

// IsDraw reports a full board without a winner.
func (that *Board) IsDraw() bool {
	return that.IsFull() && !that.TerminalState().HasWinner()
}
