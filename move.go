package chess

// A MoveTag describes a property of a move that is not visible from its
// squares alone.
type MoveTag uint16

const (
	// KingSideCastle indicates that the move is a king side castle.
	KingSideCastle MoveTag = 1 << iota
	// QueenSideCastle indicates that the move is a queen side castle.
	QueenSideCastle
	// Capture indicates that the move captures a piece.
	Capture
	// EnPassant indicates that the move captures via en passant.
	EnPassant
	// Check indicates that the move puts the opposing player in check.
	Check
)

// A Move is a candidate transition from one square to another. Promo is
// the piece a pawn turns into on the last rank; NoPieceType lets Apply
// pick a queen.
type Move struct {
	From  Square
	To    Square
	Promo PieceType
}

// String returns the move in UCI form, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promo != NoPieceType {
		s += string(m.Promo.Letter()[0] + ('a' - 'A'))
	}
	return s
}

// MoveResult describes an applied move.
type MoveResult struct {
	Move      Move
	Piece     Piece // the mover as it stood on the origin square
	Captured  Piece // NoPiece unless something was taken
	Promotion PieceType
	Tags      MoveTag
	SAN       string
	Check     bool
	Checkmate bool
	Stalemate bool
	Position  *Position
}

// HasTag reports whether every bit of tag is set.
func (r *MoveResult) HasTag(tag MoveTag) bool {
	return r.Tags&tag == tag
}
