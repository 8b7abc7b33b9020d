package model

// Side is the affiliation of a piece. White moves first.
type Side string

const (
	White Side = "white"
	Black Side = "black"
)

func (s Side) Opponent() Side {
	if s == White {
		return Black
	}
	return White
}

// PawnDirection is the row step of a forward pawn move.
func (s Side) PawnDirection() int {
	if s == White {
		return 1
	}
	return -1
}

func (s Side) HomeRow() int {
	if s == White {
		return MinRow
	}
	return MaxRow
}

func (s Side) PawnRow() int {
	return s.HomeRow() + s.PawnDirection()
}

func (s Side) Valid() bool {
	return s == White || s == Black
}
