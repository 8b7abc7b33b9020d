package model

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/notnil/chess"
	"github.com/pkg/errors"
)

// PieceRow is the shape persistence and transport exchange for one live
// piece. X is the column and Y is the row.
type PieceRow struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Side   Side   `json:"side"`
	Symbol string `json:"symbol"`
}

type Snapshot []PieceRow

func RowOf(p Piece) PieceRow {
	return PieceRow{
		X:      p.Position.Col,
		Y:      p.Position.Row,
		Side:   p.Side,
		Symbol: p.Kind.Symbol(),
	}
}

func (r PieceRow) Position() Position {
	return NewPosition(r.Y, r.X)
}

// Piece rebuilds the piece a row describes. A pawn is treated as moved
// unless it still stands on its starting row.
func (r PieceRow) Piece() (Piece, error) {
	if !r.Side.Valid() {
		return Piece{}, errors.Errorf("unknown side %q", r.Side)
	}
	kind, err := KindFromSymbol(r.Symbol)
	if err != nil {
		return Piece{}, err
	}
	pos := r.Position()
	if !pos.OnBoard() {
		return Piece{}, errors.Errorf("square %s is off the board", pos)
	}
	p := NewPiece(r.Side, kind, pos)
	if kind == Pawn {
		p.HasMoved = pos.Row != r.Side.PawnRow()
	}
	return p, nil
}

func (b *Board) Snapshot() Snapshot {
	occupants := b.Occupants()
	snapshot := make(Snapshot, 0, len(occupants))
	for _, p := range occupants {
		snapshot = append(snapshot, RowOf(p))
	}
	return snapshot
}

// BoardFromSnapshot reconstructs a board. Every bad row is reported, not
// only the first one.
func BoardFromSnapshot(s Snapshot) (*Board, error) {
	var result *multierror.Error
	pieces := make([]Piece, 0, len(s))
	seen := make(map[Position]bool, len(s))
	for i, row := range s {
		p, err := row.Piece()
		if err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "row %d", i))
			continue
		}
		if seen[p.Position] {
			result = multierror.Append(result, errors.Errorf("row %d: square %s already occupied", i, p.Position))
			continue
		}
		seen[p.Position] = true
		pieces = append(pieces, p)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, errors.Wrap(ErrInvalidSnapshot, err.Error())
	}
	return NewBoard(pieces...)
}

// FEN renders the piece placement field of a FEN record.
func (s Snapshot) FEN() (string, error) {
	squares := make(map[chess.Square]chess.Piece, len(s))
	for _, row := range s {
		p, err := row.Piece()
		if err != nil {
			return "", errors.Wrap(ErrInvalidSnapshot, err.Error())
		}
		squares[toSquare(p.Position)] = toChessPiece(p)
	}
	return chess.NewBoard(squares).String(), nil
}

func toSquare(pos Position) chess.Square {
	return chess.Square((pos.Row-1)*8 + (pos.Col - 1))
}

func toChessPiece(p Piece) chess.Piece {
	white := p.Side == White
	switch p.Kind {
	case King:
		return pick(white, chess.WhiteKing, chess.BlackKing)
	case Queen:
		return pick(white, chess.WhiteQueen, chess.BlackQueen)
	case Rook:
		return pick(white, chess.WhiteRook, chess.BlackRook)
	case Bishop:
		return pick(white, chess.WhiteBishop, chess.BlackBishop)
	case Knight:
		return pick(white, chess.WhiteKnight, chess.BlackKnight)
	case Pawn:
		return pick(white, chess.WhitePawn, chess.BlackPawn)
	}
	panic(fmt.Sprintf("unknown piece kind %q", p.Kind))
}

func pick(white bool, w, b chess.Piece) chess.Piece {
	if white {
		return w
	}
	return b
}
