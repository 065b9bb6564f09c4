package chess

import (
	"errors"
	"fmt"
)

// A Square is a coordinate on the board. File 0 is the a-file. Rank 0 is
// the eighth rank, the row farthest from White, so Rank grows towards White.
type Square struct {
	File int
	Rank int
}

// NoSquare is returned where a square is absent, such as a missing
// en passant target.
var NoSquare = Square{File: -1, Rank: -1}

// Named squares.
var (
	A8 = Square{File: 0, Rank: 0}
	B8 = Square{File: 1, Rank: 0}
	C8 = Square{File: 2, Rank: 0}
	D8 = Square{File: 3, Rank: 0}
	E8 = Square{File: 4, Rank: 0}
	F8 = Square{File: 5, Rank: 0}
	G8 = Square{File: 6, Rank: 0}
	H8 = Square{File: 7, Rank: 0}
	A7 = Square{File: 0, Rank: 1}
	B7 = Square{File: 1, Rank: 1}
	C7 = Square{File: 2, Rank: 1}
	D7 = Square{File: 3, Rank: 1}
	E7 = Square{File: 4, Rank: 1}
	F7 = Square{File: 5, Rank: 1}
	G7 = Square{File: 6, Rank: 1}
	H7 = Square{File: 7, Rank: 1}
	A6 = Square{File: 0, Rank: 2}
	B6 = Square{File: 1, Rank: 2}
	C6 = Square{File: 2, Rank: 2}
	D6 = Square{File: 3, Rank: 2}
	E6 = Square{File: 4, Rank: 2}
	F6 = Square{File: 5, Rank: 2}
	G6 = Square{File: 6, Rank: 2}
	H6 = Square{File: 7, Rank: 2}
	A5 = Square{File: 0, Rank: 3}
	B5 = Square{File: 1, Rank: 3}
	C5 = Square{File: 2, Rank: 3}
	D5 = Square{File: 3, Rank: 3}
	E5 = Square{File: 4, Rank: 3}
	F5 = Square{File: 5, Rank: 3}
	G5 = Square{File: 6, Rank: 3}
	H5 = Square{File: 7, Rank: 3}
	A4 = Square{File: 0, Rank: 4}
	B4 = Square{File: 1, Rank: 4}
	C4 = Square{File: 2, Rank: 4}
	D4 = Square{File: 3, Rank: 4}
	E4 = Square{File: 4, Rank: 4}
	F4 = Square{File: 5, Rank: 4}
	G4 = Square{File: 6, Rank: 4}
	H4 = Square{File: 7, Rank: 4}
	A3 = Square{File: 0, Rank: 5}
	B3 = Square{File: 1, Rank: 5}
	C3 = Square{File: 2, Rank: 5}
	D3 = Square{File: 3, Rank: 5}
	E3 = Square{File: 4, Rank: 5}
	F3 = Square{File: 5, Rank: 5}
	G3 = Square{File: 6, Rank: 5}
	H3 = Square{File: 7, Rank: 5}
	A2 = Square{File: 0, Rank: 6}
	B2 = Square{File: 1, Rank: 6}
	C2 = Square{File: 2, Rank: 6}
	D2 = Square{File: 3, Rank: 6}
	E2 = Square{File: 4, Rank: 6}
	F2 = Square{File: 5, Rank: 6}
	G2 = Square{File: 6, Rank: 6}
	H2 = Square{File: 7, Rank: 6}
	A1 = Square{File: 0, Rank: 7}
	B1 = Square{File: 1, Rank: 7}
	C1 = Square{File: 2, Rank: 7}
	D1 = Square{File: 3, Rank: 7}
	E1 = Square{File: 4, Rank: 7}
	F1 = Square{File: 5, Rank: 7}
	G1 = Square{File: 6, Rank: 7}
	H1 = Square{File: 7, Rank: 7}
)

var errBadSquare = errors.New("chess: invalid square")

// Sq returns the square for the given file and internal rank index.
func Sq(file, rank int) Square {
	return Square{File: file, Rank: rank}
}

// ParseSquare converts algebraic coordinates such as "e4" into a Square.
func ParseSquare(s string) (Square, error) {
	const squareLen = 2
	if len(s) != squareLen || !isFile(s[0]) || !isRank(s[1]) {
		return NoSquare, fmt.Errorf("%w: %q", errBadSquare, s)
	}
	return Square{File: int(s[0] - 'a'), Rank: int('8' - s[1])}, nil
}

// MustParseSquare is like ParseSquare but panics on malformed input.
// It is meant for tests and package-level tables.
func MustParseSquare(s string) Square {
	sq, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return sq
}

// Valid reports whether the square lies on the board.
func (sq Square) Valid() bool {
	return sq.File >= 0 && sq.File < 8 && sq.Rank >= 0 && sq.Rank < 8
}

// FileByte returns the file letter, 'a' through 'h'.
func (sq Square) FileByte() byte {
	return byte('a' + sq.File)
}

// RankByte returns the displayed rank digit, '1' through '8'.
func (sq Square) RankByte() byte {
	return byte('8' - sq.Rank)
}

// String returns algebraic coordinates, or "-" for squares off the board.
func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return string([]byte{sq.FileByte(), sq.RankByte()})
}

// Light reports whether the square is a light square (h1 and a8 are light).
func (sq Square) Light() bool {
	return (sq.File+sq.Rank)%2 == 0
}

func (sq Square) offset(df, dr int) Square {
	return Square{File: sq.File + df, Rank: sq.Rank + dr}
}

func isFile(b byte) bool { return b >= 'a' && b <= 'h' }

func isRank(b byte) bool { return b >= '1' && b <= '8' }
