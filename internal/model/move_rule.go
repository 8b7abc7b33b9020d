package model

// MoveRule is one movement pattern. A piece may move to a target when any
// of its rules is satisfied. Implementations must not mutate the board or
// the piece.
type MoveRule interface {
	Satisfied(b *Board, p Piece, target Position) bool
}

func differentFromSource(p Piece, target Position) bool {
	return p.Position != target
}

func onBoard(target Position) bool {
	return target.OnBoard()
}

// targetNotOccupiedBySameSide allows empty squares and captures.
func targetNotOccupiedBySameSide(b *Board, p Piece, target Position) bool {
	occupant, ok := b.PieceAt(target)
	return !ok || occupant.Side != p.Side
}

func basicTarget(b *Board, p Piece, target Position) bool {
	return differentFromSource(p, target) &&
		onBoard(target) &&
		targetNotOccupiedBySameSide(b, p, target)
}

func straightLine(from, to Position) bool {
	dRow, dCol := from.Delta(to)
	return (dRow == 0) != (dCol == 0)
}

func diagonalLine(from, to Position) bool {
	dRow, dCol := from.Delta(to)
	return dRow != 0 && abs(dRow) == abs(dCol)
}

type rookRule struct{}

func (rookRule) Satisfied(b *Board, p Piece, target Position) bool {
	return basicTarget(b, p, target) &&
		straightLine(p.Position, target) &&
		b.PathClear(p.Position, target)
}

type bishopRule struct{}

func (bishopRule) Satisfied(b *Board, p Piece, target Position) bool {
	return basicTarget(b, p, target) &&
		diagonalLine(p.Position, target) &&
		b.PathClear(p.Position, target)
}

type queenRule struct{}

func (queenRule) Satisfied(b *Board, p Piece, target Position) bool {
	if !basicTarget(b, p, target) {
		return false
	}
	if !straightLine(p.Position, target) && !diagonalLine(p.Position, target) {
		return false
	}
	return b.PathClear(p.Position, target)
}

// knights jump, so nothing in between is checked
type knightRule struct{}

func (knightRule) Satisfied(b *Board, p Piece, target Position) bool {
	dRow, dCol := p.Position.Delta(target)
	dRow, dCol = abs(dRow), abs(dCol)
	return basicTarget(b, p, target) &&
		((dRow == 1 && dCol == 2) || (dRow == 2 && dCol == 1))
}

type kingRule struct{}

func (kingRule) Satisfied(b *Board, p Piece, target Position) bool {
	dRow, dCol := p.Position.Delta(target)
	return basicTarget(b, p, target) && abs(dRow) <= 1 && abs(dCol) <= 1
}
