package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const (
	colorX  = "#E88388"
	colorO  = "#71BEF2"
	colorUI = "#A8CC8C"
)

const helpText = `commands:
  <row> <col>     mark a cell, rows and columns count from 0
  m               next mode (pvp, pva, ava)
  d               toggle difficulty
  0 | 1           random | optimal difficulty
  n <1|2> <name>  rename player 1 (X) or 2 (O)
  r               new game
  q               quit
`

// Renderer draws controller snapshots as text. Colours are dropped when out is not a terminal.
type Renderer struct {
	output *termenv.Output
}

func NewRenderer(out io.Writer, opts ...termenv.OutputOption) *Renderer {
	return &Renderer{output: termenv.NewOutput(out, opts...)}
}

func (that *Renderer) Help() {
	fmt.Fprint(that.output, helpText)
}

// Render - settings line, the board with the winning line highlighted, then the status line.
func (that *Renderer) Render(snapshot tictactoe.Snapshot) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\nmode: %s  difficulty: %s\n", snapshot.Mode, snapshot.Difficulty)
	for idx, mark := range [2]entity.Cell{entity.PlayerX, entity.PlayerO} {
		fmt.Fprintf(&sb, "%s: %s (%s)\n", that.mark(mark), snapshot.Names[idx], snapshot.Participants[idx])
	}

	winning := winningCells(snapshot.Result)

	sb.WriteString("\n   0 1 2\n")
	for row := range entity.Size {
		fmt.Fprintf(&sb, "%d ", row)
		for col := range entity.Size {
			cell := that.cell(snapshot.Grid[row][col], winning[entity.Position{Row: row, Col: col}])
			sb.WriteString(" " + cell)
		}
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')

	sb.WriteString(that.status(snapshot))
	sb.WriteByte('\n')

	fmt.Fprint(that.output, sb.String())
}

func (that *Renderer) status(snapshot tictactoe.Snapshot) string {
	switch snapshot.Result.Kind {
	case tictactoe.ResultWin:
		message := snapshot.Name(snapshot.Result.Winner) + " wins"
		return that.output.String(message).Foreground(that.output.Color(colorUI)).Bold().String()
	case tictactoe.ResultDraw:
		return that.output.String("No one wins").Bold().String()
	default:
		return fmt.Sprintf("%s to move (%s)", snapshot.Name(snapshot.Current), that.mark(snapshot.Current))
	}
}

// Move - announces a move made by an automated participant.
func (that *Renderer) Move(name string, mark entity.Cell, move entity.Position) {
	fmt.Fprintf(that.output, "%s plays %s at %s\n", name, that.mark(mark), move)
}

func (that *Renderer) Error(err error) {
	fmt.Fprintln(that.output, that.output.String("error: "+err.Error()).Foreground(that.output.Color(colorX)).String())
}

func (that *Renderer) Prompt() {
	fmt.Fprint(that.output, "> ")
}

func (that *Renderer) mark(mark entity.Cell) string {
	style := that.output.String(mark.String()).Bold()

	switch mark {
	case entity.PlayerX:
		style = style.Foreground(that.output.Color(colorX))
	case entity.PlayerO:
		style = style.Foreground(that.output.Color(colorO))
	}

	return style.String()
}

func (that *Renderer) cell(cell entity.Cell, highlighted bool) string {
	if !cell.IsMark() {
		return cell.String()
	}

	if highlighted {
		return that.output.String(cell.String()).Bold().Reverse().String()
	}

	return that.mark(cell)
}

func winningCells(result tictactoe.Result) map[entity.Position]bool {
	cells := make(map[entity.Position]bool, entity.Size)
	if result.Kind != tictactoe.ResultWin {
		return cells
	}

	for _, position := range result.Line.Cells() {
		cells[position] = true
	}

	return cells
}
