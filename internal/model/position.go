package model

import "fmt"

const (
	MinRow = 1
	MaxRow = 8
	MinCol = 1
	MaxCol = 8
)

// Position is a board coordinate. Row is the rank (white's back rank is 1),
// Col is the file (a is 1). A Position may lie off the board.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Gradient is the direction from one position to another with both axis
// deltas reduced by their gcd. Positions on the same ray from a source share
// a gradient.
type Gradient struct {
	DRow int `json:"dRow"`
	DCol int `json:"dCol"`
}

func NewPosition(row, col int) Position {
	return Position{Row: row, Col: col}
}

func (p Position) OnBoard() bool {
	return p.Row >= MinRow && p.Row <= MaxRow && p.Col >= MinCol && p.Col <= MaxCol
}

// Delta returns the signed distance from p to other on each axis.
func (p Position) Delta(other Position) (int, int) {
	return other.Row - p.Row, other.Col - p.Col
}

func (p Position) Step(g Gradient) Position {
	return Position{Row: p.Row + g.DRow, Col: p.Col + g.DCol}
}

func (p Position) Gradient(other Position) Gradient {
	dRow, dCol := p.Delta(other)
	d := gcd(abs(dRow), abs(dCol))
	if d == 0 {
		return Gradient{}
	}
	return Gradient{DRow: dRow / d, DCol: dCol / d}
}

// IsUnit reports whether g is a single straight or diagonal step.
func (g Gradient) IsUnit() bool {
	return g != Gradient{} && abs(g.DRow) <= 1 && abs(g.DCol) <= 1
}

// Notation renders p as an algebraic square such as "e4". Off-board
// positions render as row:col.
func (p Position) Notation() string {
	if !p.OnBoard() {
		return fmt.Sprintf("%d:%d", p.Row, p.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+p.Col-1, p.Row)
}

func (p Position) String() string {
	return p.Notation()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
