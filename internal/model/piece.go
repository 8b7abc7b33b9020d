package model

import (
	"fmt"

	"github.com/pkg/errors"
)

type Piece struct {
	Side     Side
	Kind     PieceKind
	Position Position
	HasMoved bool
	rules    []MoveRule
}

// NewPiece builds a piece with the movement rules of its kind attached.
func NewPiece(side Side, kind PieceKind, pos Position) Piece {
	return Piece{
		Side:     side,
		Kind:     kind,
		Position: pos,
		rules:    rulesFor(side, kind),
	}
}

func rulesFor(side Side, kind PieceKind) []MoveRule {
	switch kind {
	case King:
		return []MoveRule{kingRule{}}
	case Queen:
		return []MoveRule{queenRule{}}
	case Rook:
		return []MoveRule{rookRule{}}
	case Bishop:
		return []MoveRule{bishopRule{}}
	case Knight:
		return []MoveRule{knightRule{}}
	case Pawn:
		dir := side.PawnDirection()
		return []MoveRule{
			pawnFirstTurnRule{dir: dir},
			pawnAdvanceRule{dir: dir},
			pawnCaptureRule{dir: dir},
		}
	}
	return nil
}

func (p Piece) Rules() []MoveRule {
	return append([]MoveRule(nil), p.rules...)
}

// IsMovable reports whether any attached rule allows moving to target.
func (p Piece) IsMovable(target Position, b *Board) bool {
	for _, rule := range p.rules {
		if rule.Satisfied(b, p, target) {
			return true
		}
	}
	return false
}

// Move relocates the piece itself. The board is not updated; callers that
// own a board go through Board.Relocate.
func (p *Piece) Move(target Position, b *Board) error {
	if !p.IsMovable(target, b) {
		return errors.Wrapf(ErrIllegalMove, "%s %s to %s", p.Side, p.Kind, target)
	}
	p.Position = target
	p.HasMoved = true
	return nil
}

// FindPath returns the squares strictly between the piece and target along
// a straight or diagonal line, or nil when target is not on such a line.
func (p Piece) FindPath(target Position) []Position {
	return path(p.Position, target)
}

func path(from, to Position) []Position {
	g := from.Gradient(to)
	if !g.IsUnit() {
		return nil
	}
	var squares []Position
	for cur := from.Step(g); cur != to; cur = cur.Step(g) {
		squares = append(squares, cur)
	}
	return squares
}

// Equal compares side, kind and position.
func (p Piece) Equal(other Piece) bool {
	return p.Side == other.Side && p.Kind == other.Kind && p.Position == other.Position
}

func (p Piece) Notation() string {
	return p.Kind.Notation(p.Side)
}

func (p Piece) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Notation(), p.Position.Row, p.Position.Col)
}
