package chess

import "fmt"

// A Color is the color of a piece or of the side to move.
type Color int8

const (
	// NoColor is the color of an empty square.
	NoColor Color = iota
	// White is the side that moves first.
	White
	// Black is the side that moves second.
	Black
)

// Other returns the opposing color. NoColor has no opponent.
func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

// String implements the fmt.Stringer interface.
func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "none"
}

// FEN returns the side-to-move field used by FEN.
func (c Color) FEN() string {
	switch c {
	case White:
		return "w"
	case Black:
		return "b"
	}
	return "-"
}

// pawnDir is the internal rank delta of a forward pawn step.
func (c Color) pawnDir() int {
	if c == White {
		return -1
	}
	return 1
}

// backRank is the internal rank index of the color's first rank.
func (c Color) backRank() int {
	if c == White {
		return 7
	}
	return 0
}

// A PieceType is the kind of a piece without its color.
type PieceType int8

const (
	// NoPieceType is the type of an empty square.
	NoPieceType PieceType = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

// PieceTypes returns all piece types in value order.
func PieceTypes() [6]PieceType {
	return [6]PieceType{King, Queen, Rook, Bishop, Knight, Pawn}
}

// String implements the fmt.Stringer interface.
func (p PieceType) String() string {
	switch p {
	case King:
		return "king"
	case Queen:
		return "queen"
	case Rook:
		return "rook"
	case Bishop:
		return "bishop"
	case Knight:
		return "knight"
	case Pawn:
		return "pawn"
	}
	return ""
}

// Letter returns the upper case letter used in algebraic notation.
// Pawns return "P" even though SAN omits it.
func (p PieceType) Letter() string {
	switch p {
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

func (p PieceType) promotable() bool {
	return p == Queen || p == Rook || p == Bishop || p == Knight
}

func pieceTypeFromLetter(b byte) PieceType {
	switch b {
	case 'K', 'k':
		return King
	case 'Q', 'q':
		return Queen
	case 'R', 'r':
		return Rook
	case 'B', 'b':
		return Bishop
	case 'N', 'n':
		return Knight
	case 'P', 'p':
		return Pawn
	}
	return NoPieceType
}

// A Piece is a uniquely identified man on the board. The zero Piece
// stands for an empty square.
type Piece struct {
	ID    string
	Color Color
	Type  PieceType
}

// NoPiece is the empty square.
var NoPiece = Piece{}

// Empty reports whether p stands for an empty square.
func (p Piece) Empty() bool {
	return p.Type == NoPieceType
}

// String returns the FEN letter of the piece, upper case for White.
func (p Piece) String() string {
	if p.Empty() {
		return ""
	}
	if p.Color == White {
		return p.Type.Letter()
	}
	return string(p.Type.Letter()[0] + ('a' - 'A'))
}

var glyphs = map[Color]map[PieceType]string{
	White: {King: "♔", Queen: "♕", Rook: "♖", Bishop: "♗", Knight: "♘", Pawn: "♙"},
	Black: {King: "♚", Queen: "♛", Rook: "♜", Bishop: "♝", Knight: "♞", Pawn: "♟"},
}

// Glyph returns the Unicode chess symbol for the piece, or "" when empty.
func (p Piece) Glyph() string {
	return glyphs[p.Color][p.Type]
}

func pieceID(c Color, t PieceType, n int) string {
	return fmt.Sprintf("%s-%s-%d", c, t, n)
}
