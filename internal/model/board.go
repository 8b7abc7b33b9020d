package model

import (
	"sort"

	"github.com/pkg/errors"
)

// Board holds the pieces in an arena with a Position index. It answers
// occupancy questions and never validates moves.
type Board struct {
	pieces []Piece
	index  map[Position]int
}

var backRank = []PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func NewStandardBoard() *Board {
	board := &Board{index: make(map[Position]int, 32)}
	for _, side := range []Side{White, Black} {
		for i, kind := range backRank {
			board.place(NewPiece(side, kind, NewPosition(side.HomeRow(), i+1)))
		}
		for col := MinCol; col <= MaxCol; col++ {
			board.place(NewPiece(side, Pawn, NewPosition(side.PawnRow(), col)))
		}
	}
	return board
}

// NewBoard builds a board from arbitrary pieces. Two pieces on one square
// is an error.
func NewBoard(pieces ...Piece) (*Board, error) {
	board := &Board{index: make(map[Position]int, len(pieces))}
	for _, p := range pieces {
		if board.IsOccupied(p.Position) {
			return nil, errors.Wrapf(ErrBoardInconsistency, "two pieces on %s", p.Position)
		}
		if p.rules == nil {
			hasMoved := p.HasMoved
			p = NewPiece(p.Side, p.Kind, p.Position)
			p.HasMoved = hasMoved
		}
		board.place(p)
	}
	return board, nil
}

func (b *Board) place(p Piece) {
	b.index[p.Position] = len(b.pieces)
	b.pieces = append(b.pieces, p)
}

func (b *Board) PieceAt(pos Position) (Piece, bool) {
	slot, ok := b.index[pos]
	if !ok {
		return Piece{}, false
	}
	return b.pieces[slot], true
}

func (b *Board) IsOccupied(pos Position) bool {
	_, ok := b.index[pos]
	return ok
}

// Occupants returns a copy of every piece ordered by row, then column.
func (b *Board) Occupants() []Piece {
	out := make([]Piece, len(b.pieces))
	copy(out, b.pieces)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position.Row != out[j].Position.Row {
			return out[i].Position.Row < out[j].Position.Row
		}
		return out[i].Position.Col < out[j].Position.Col
	})
	return out
}

// Obstacles returns the pieces strictly between from and to. A piece is
// between when it sits inside the bounding box of the two squares and has
// the same gradient from the source as the target does.
func (b *Board) Obstacles(from, to Position) []Piece {
	minRow, maxRow := minMax(from.Row, to.Row)
	minCol, maxCol := minMax(from.Col, to.Col)
	want := from.Gradient(to)

	var found []Piece
	for _, p := range b.pieces {
		pos := p.Position
		if pos == from || pos == to {
			continue
		}
		if pos.Row < minRow || pos.Row > maxRow || pos.Col < minCol || pos.Col > maxCol {
			continue
		}
		if from.Gradient(pos) == want {
			found = append(found, p)
		}
	}
	return found
}

func (b *Board) PathClear(from, to Position) bool {
	return len(b.Obstacles(from, to)) == 0
}

// Remove deletes the piece at pos. Removing from an empty square is a no-op.
func (b *Board) Remove(pos Position) (Piece, bool) {
	slot, ok := b.index[pos]
	if !ok {
		return Piece{}, false
	}
	removed := b.pieces[slot]
	last := len(b.pieces) - 1
	if slot != last {
		b.pieces[slot] = b.pieces[last]
		b.index[b.pieces[slot].Position] = slot
	}
	b.pieces = b.pieces[:last]
	delete(b.index, pos)
	return removed, true
}

// Relocate moves the piece at from onto the empty square to.
func (b *Board) Relocate(from, to Position) error {
	slot, ok := b.index[from]
	if !ok {
		return errors.Wrapf(ErrBoardInconsistency, "relocate from empty square %s", from)
	}
	if b.IsOccupied(to) {
		return errors.Wrapf(ErrBoardInconsistency, "relocate onto occupied square %s", to)
	}
	b.pieces[slot].Position = to
	b.pieces[slot].HasMoved = true
	delete(b.index, from)
	b.index[to] = slot
	return nil
}

func (b *Board) Clone() *Board {
	clone := &Board{
		pieces: make([]Piece, len(b.pieces)),
		index:  make(map[Position]int, len(b.index)),
	}
	copy(clone.pieces, b.pieces)
	for pos, slot := range b.index {
		clone.index[pos] = slot
	}
	return clone
}

func minMax(a, c int) (int, int) {
	if a < c {
		return a, c
	}
	return c, a
}
