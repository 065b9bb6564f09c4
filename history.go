package chess

import "time"

// A MoveRecord is an immutable history entry for one accepted move.
type MoveRecord struct {
	Seq       uint64    // 1 for the first move of a game, strictly increasing
	At        time.Time // when the move was accepted, never earlier than the previous record
	PieceID   string
	PieceType PieceType // type before any promotion
	Color     Color
	From      Square
	To        Square
	Captured  Piece     // NoPiece when nothing was taken
	Promotion PieceType // NoPieceType unless a pawn promoted
	SAN       string
	FENAfter  string
	Check     bool
	Checkmate bool
	Stalemate bool
}

// IsCapture reports whether the move took a piece.
func (r MoveRecord) IsCapture() bool {
	return !r.Captured.Empty()
}

// Move returns the move the record describes.
func (r MoveRecord) Move() Move {
	return Move{From: r.From, To: r.To, Promo: r.Promotion}
}

func newMoveRecord(seq uint64, at time.Time, res *MoveResult) MoveRecord {
	return MoveRecord{
		Seq:       seq,
		At:        at,
		PieceID:   res.Piece.ID,
		PieceType: res.Piece.Type,
		Color:     res.Piece.Color,
		From:      res.Move.From,
		To:        res.Move.To,
		Captured:  res.Captured,
		Promotion: res.Promotion,
		SAN:       res.SAN,
		FENAfter:  res.Position.String(),
		Check:     res.Check,
		Checkmate: res.Checkmate,
		Stalemate: res.Stalemate,
	}
}
