package model

import (
	"strings"

	"github.com/pkg/errors"
)

type PieceKind string

const (
	King   PieceKind = "king"
	Queen  PieceKind = "queen"
	Rook   PieceKind = "rook"
	Bishop PieceKind = "bishop"
	Knight PieceKind = "knight"
	Pawn   PieceKind = "pawn"
)

var PieceKinds = []PieceKind{King, Queen, Rook, Bishop, Knight, Pawn}

// Symbol returns the upper-case letter used in snapshots.
func (k PieceKind) Symbol() string {
	switch k {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return "P"
	}
	return ""
}

// Notation is the symbol in upper case for white and lower case for black.
func (k PieceKind) Notation(side Side) string {
	if side == Black {
		return strings.ToLower(k.Symbol())
	}
	return k.Symbol()
}

// Score is the material value. The king is never scored since losing it
// ends the game.
func (k PieceKind) Score() int {
	switch k {
	case Pawn:
		return 1
	case Knight, Bishop:
		return 3
	case Rook:
		return 5
	case Queen:
		return 9
	}
	return 0
}

func KindFromSymbol(symbol string) (PieceKind, error) {
	upper := strings.ToUpper(symbol)
	for _, k := range PieceKinds {
		if k.Symbol() == upper {
			return k, nil
		}
	}
	return "", errors.Errorf("unknown piece symbol %q", symbol)
}
