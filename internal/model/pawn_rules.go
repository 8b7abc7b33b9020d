package model

// dir is +1 for pawns moving up the rows and -1 for pawns moving down.

type pawnFirstTurnRule struct {
	dir int
}

func (r pawnFirstTurnRule) Satisfied(b *Board, p Piece, target Position) bool {
	if p.HasMoved || !basicTarget(b, p, target) {
		return false
	}
	if target != NewPosition(p.Position.Row+2*r.dir, p.Position.Col) {
		return false
	}
	for _, sq := range p.FindPath(target) {
		if b.IsOccupied(sq) {
			return false
		}
	}
	return !b.IsOccupied(target)
}

type pawnAdvanceRule struct {
	dir int
}

func (r pawnAdvanceRule) Satisfied(b *Board, p Piece, target Position) bool {
	return basicTarget(b, p, target) &&
		target == NewPosition(p.Position.Row+r.dir, p.Position.Col) &&
		!b.IsOccupied(target)
}

type pawnCaptureRule struct {
	dir int
}

func (r pawnCaptureRule) Satisfied(b *Board, p Piece, target Position) bool {
	if !basicTarget(b, p, target) {
		return false
	}
	dRow, dCol := p.Position.Delta(target)
	if dRow != r.dir || abs(dCol) != 1 {
		return false
	}
	occupant, ok := b.PieceAt(target)
	return ok && occupant.Side != p.Side
}
