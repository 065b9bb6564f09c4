package chess

import "strings"

// A Grid is a value snapshot of piece placement indexed [rank][file], with
// rank 0 at the top of the board (the eighth rank).
type Grid [8][8]Piece

// At returns the piece on sq. Squares off the board hold no piece.
func (g Grid) At(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return g[sq.Rank][sq.File]
}

// A Board holds piece placement. At most one piece occupies a square.
type Board struct {
	grid Grid
}

// NewBoard returns a board populated from the given square mapping.
func NewBoard(m map[Square]Piece) *Board {
	b := &Board{}
	for sq, p := range m {
		if sq.Valid() && !p.Empty() {
			b.grid[sq.Rank][sq.File] = p
		}
	}
	return b
}

// PieceAt returns the piece on sq and whether one was there. Squares off
// the board report no piece rather than an error.
func (b *Board) PieceAt(sq Square) (Piece, bool) {
	p := b.grid.At(sq)
	return p, !p.Empty()
}

// AllPieces maps each piece ID on the board to its square.
func (b *Board) AllPieces() map[string]Square {
	m := make(map[string]Square, 32)
	b.each(func(sq Square, p Piece) {
		m[p.ID] = sq
	})
	return m
}

// Grid returns an independent copy of the placement.
func (b *Board) Grid() Grid {
	return b.grid
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	return &Board{grid: b.grid}
}

// Count returns the number of pieces on the board.
func (b *Board) Count() int {
	n := 0
	b.each(func(Square, Piece) { n++ })
	return n
}

// Draw returns an ASCII diagram with White at the bottom.
func (b *Board) Draw() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")
	for r := 0; r < 8; r++ {
		sb.WriteByte(byte('8' - r))
		for f := 0; f < 8; f++ {
			sb.WriteByte(' ')
			p := b.grid[r][f]
			if p.Empty() {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(p.String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b *Board) set(sq Square, p Piece) {
	b.grid[sq.Rank][sq.File] = p
}

func (b *Board) clear(sq Square) {
	b.grid[sq.Rank][sq.File] = NoPiece
}

func (b *Board) at(sq Square) Piece {
	return b.grid[sq.Rank][sq.File]
}

// each visits occupied squares from a8 to h1.
func (b *Board) each(fn func(Square, Piece)) {
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			if p := b.grid[r][f]; !p.Empty() {
				fn(Square{File: f, Rank: r}, p)
			}
		}
	}
}

func (b *Board) kingSquare(c Color) Square {
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			if p := b.grid[r][f]; p.Type == King && p.Color == c {
				return Square{File: f, Rank: r}
			}
		}
	}
	return NoSquare
}

// hasSufficientMaterial reports whether either side could still mate.
// Lone kings, a single minor piece, and bishops confined to one square
// color are insufficient.
func (b *Board) hasSufficientMaterial() bool {
	var minors []Piece
	bishopsOnLight, bishopsOnDark := 0, 0
	sufficient := false
	b.each(func(sq Square, p Piece) {
		switch p.Type {
		case Pawn, Rook, Queen:
			sufficient = true
		case Knight:
			minors = append(minors, p)
		case Bishop:
			minors = append(minors, p)
			if sq.Light() {
				bishopsOnLight++
			} else {
				bishopsOnDark++
			}
		}
	})
	if sufficient {
		return true
	}
	if len(minors) <= 1 {
		return false
	}
	// only bishops, all on one square color
	if bishopsOnLight+bishopsOnDark == len(minors) && (bishopsOnLight == 0 || bishopsOnDark == 0) {
		return false
	}
	return true
}
