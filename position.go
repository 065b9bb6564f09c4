package chess

// CastleRights records which castling moves remain available.
type CastleRights struct {
	WhiteKingSide  bool
	WhiteQueenSide bool
	BlackKingSide  bool
	BlackQueenSide bool
}

// A Side is the wing a king castles towards.
type Side int8

const (
	KingSide Side = iota
	QueenSide
)

// CanCastle reports whether color c still holds the right to castle on side.
func (cr CastleRights) CanCastle(c Color, side Side) bool {
	switch {
	case c == White && side == KingSide:
		return cr.WhiteKingSide
	case c == White && side == QueenSide:
		return cr.WhiteQueenSide
	case c == Black && side == KingSide:
		return cr.BlackKingSide
	case c == Black && side == QueenSide:
		return cr.BlackQueenSide
	}
	return false
}

// String returns the FEN castling field.
func (cr CastleRights) String() string {
	s := ""
	if cr.WhiteKingSide {
		s += "K"
	}
	if cr.WhiteQueenSide {
		s += "Q"
	}
	if cr.BlackKingSide {
		s += "k"
	}
	if cr.BlackQueenSide {
		s += "q"
	}
	if s == "" {
		return "-"
	}
	return s
}

// revoke drops any right tied to a king or rook leaving or being captured
// on sq.
func (cr *CastleRights) revoke(sq Square) {
	switch sq {
	case E1:
		cr.WhiteKingSide, cr.WhiteQueenSide = false, false
	case E8:
		cr.BlackKingSide, cr.BlackQueenSide = false, false
	case H1:
		cr.WhiteKingSide = false
	case A1:
		cr.WhiteQueenSide = false
	case H8:
		cr.BlackKingSide = false
	case A8:
		cr.BlackQueenSide = false
	}
}

// A Position is the full state needed to decide legality: placement, side
// to move, castling rights, en passant target and the move clocks.
type Position struct {
	board         *Board
	turn          Color
	castling      CastleRights
	enPassant     Square
	halfMoveClock int
	moveCount     int
	inCheck       bool
}

// StartingFEN is the standard initial position.
const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// StartingPosition returns the standard initial position. Piece IDs are
// numbered per color and type from the a-file outward, e.g. white-rook-1
// on a1 and white-rook-2 on h1.
func StartingPosition() *Position {
	pos, err := decodeFEN(StartingFEN)
	if err != nil {
		panic(err)
	}
	return pos
}

// Board returns a copy of the position's board.
func (pos *Position) Board() *Board {
	return pos.board.Clone()
}

// PieceAt returns the piece on sq; see Board.PieceAt.
func (pos *Position) PieceAt(sq Square) (Piece, bool) {
	return pos.board.PieceAt(sq)
}

// Turn returns the color to move.
func (pos *Position) Turn() Color {
	return pos.turn
}

// CastleRights returns the remaining castling rights.
func (pos *Position) CastleRights() CastleRights {
	return pos.castling
}

// EnPassantSquare returns the square a pawn may capture onto en passant,
// or NoSquare.
func (pos *Position) EnPassantSquare() Square {
	return pos.enPassant
}

// HalfMoveClock returns the number of plies since the last capture or
// pawn move.
func (pos *Position) HalfMoveClock() int {
	return pos.halfMoveClock
}

// MoveCount returns the fullmove number, starting at 1.
func (pos *Position) MoveCount() int {
	return pos.moveCount
}

// InCheck reports whether the side to move is in check.
func (pos *Position) InCheck() bool {
	return pos.inCheck
}

// Clone returns an independent copy of the position.
func (pos *Position) Clone() *Position {
	cp := *pos
	cp.board = pos.board.Clone()
	return &cp
}

// Status returns Checkmate or Stalemate when the side to move has no legal
// move, and NoMethod otherwise.
func (pos *Position) Status() Method {
	if pos.hasLegalMove() {
		return NoMethod
	}
	if pos.inCheck {
		return Checkmate
	}
	return Stalemate
}

// String implements the fmt.Stringer interface and returns the FEN.
func (pos *Position) String() string {
	return encodeFEN(pos)
}
