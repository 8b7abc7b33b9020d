package model

// MoveRequest is the inbound move payload.
type MoveRequest struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

type SimpleMove struct {
	From     Position `json:"from"`
	To       Position `json:"to"`
	Notation string   `json:"notation"`
}

// notation is a short long-algebraic rendering such as "Ne2xd4".
func notation(result MoveResult) string {
	prefix := ""
	if kind, err := KindFromSymbol(result.Piece.Symbol); err == nil && kind != Pawn {
		prefix = kind.Symbol()
	}
	sep := "-"
	if result.Captured != nil {
		sep = "x"
	}
	return prefix + result.From.Notation() + sep + result.To.Notation()
}
