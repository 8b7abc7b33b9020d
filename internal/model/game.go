package model

import (
	"github.com/pkg/errors"
)

type StatusKind string

const (
	StatusInProgress StatusKind = "in_progress"
	StatusWon        StatusKind = "won"
	StatusDrawn      StatusKind = "drawn"
)

// Status is the game outcome. Winner is only set when Kind is StatusWon.
type Status struct {
	Kind   StatusKind `json:"kind"`
	Winner Side       `json:"winner,omitempty"`
}

func (s Status) IsOver() bool {
	return s.Kind != StatusInProgress
}

// Game owns its board and enforces turn order and legality. It is not safe
// for concurrent use; Room serialises access.
type Game struct {
	board  *Board
	turn   Side
	status Status
}

// MoveResult describes an accepted move. Relocated is false only for the
// move that captures a king.
type MoveResult struct {
	From      Position  `json:"from"`
	To        Position  `json:"to"`
	Piece     PieceRow  `json:"piece"`
	Captured  *PieceRow `json:"captured"`
	Relocated bool      `json:"relocated"`
	Snapshot  Snapshot  `json:"snapshot"`
	Turn      Side      `json:"turn"`
	Status    Status    `json:"status"`
}

func NewGame() *Game {
	return RestoreGame(NewStandardBoard(), White)
}

// RestoreGame resumes a game from a board, for example one rebuilt from a
// stored snapshot. A board missing a king is already decided.
func RestoreGame(board *Board, turn Side) *Game {
	g := &Game{
		board:  board,
		turn:   turn,
		status: Status{Kind: StatusInProgress},
	}
	whiteKing, blackKing := g.hasKing(White), g.hasKing(Black)
	switch {
	case whiteKing && !blackKing:
		g.status = Status{Kind: StatusWon, Winner: White}
	case blackKing && !whiteKing:
		g.status = Status{Kind: StatusWon, Winner: Black}
	}
	return g
}

func (g *Game) hasKing(side Side) bool {
	for _, p := range g.board.pieces {
		if p.Side == side && p.Kind == King {
			return true
		}
	}
	return false
}

func (g *Game) Turn() Side {
	return g.turn
}

func (g *Game) Status() Status {
	return g.status
}

// Board returns a copy so callers cannot bypass RequestMove.
func (g *Game) Board() *Board {
	return g.board.Clone()
}

func (g *Game) Snapshot() Snapshot {
	return g.board.Snapshot()
}

// Score sums the material of side's remaining pieces.
func (g *Game) Score(side Side) int {
	total := 0
	for _, p := range g.board.pieces {
		if p.Side == side {
			total += p.Kind.Score()
		}
	}
	return total
}

func (g *Game) RequestMove(from, to Position) (MoveResult, error) {
	if g.status.IsOver() {
		return MoveResult{}, errors.WithStack(ErrGameAlreadyOver)
	}
	piece, ok := g.board.PieceAt(from)
	if !ok {
		return MoveResult{}, errors.Wrapf(ErrNoPieceAtSource, "square %s", from)
	}
	if piece.Side != g.turn {
		return MoveResult{}, errors.Wrapf(ErrNotYourTurn, "%s to move", g.turn)
	}
	if !piece.IsMovable(to, g.board) {
		return MoveResult{}, errors.Wrapf(ErrIllegalMove, "%s %s from %s to %s", piece.Side, piece.Kind, from, to)
	}

	result := MoveResult{From: from, To: to, Piece: RowOf(piece)}
	if captured, ok := g.board.Remove(to); ok {
		row := RowOf(captured)
		result.Captured = &row
		if captured.Kind == King {
			// the game stops here: the mover stays on from, the turn stays
			g.status = Status{Kind: StatusWon, Winner: g.turn}
		}
	}
	if !g.status.IsOver() {
		if err := g.board.Relocate(from, to); err != nil {
			return MoveResult{}, err
		}
		result.Relocated = true
		g.turn = g.turn.Opponent()
	}

	result.Snapshot = g.board.Snapshot()
	result.Turn = g.turn
	result.Status = g.status
	return result, nil
}

// Resign ends the game in favour of side's opponent.
func (g *Game) Resign(side Side) error {
	if g.status.IsOver() {
		return errors.WithStack(ErrGameAlreadyOver)
	}
	g.status = Status{Kind: StatusWon, Winner: side.Opponent()}
	return nil
}

func (g *Game) AgreeDraw() error {
	if g.status.IsOver() {
		return errors.WithStack(ErrGameAlreadyOver)
	}
	g.status = Status{Kind: StatusDrawn}
	return nil
}
