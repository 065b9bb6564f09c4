package chess

import (
	"fmt"
	"slices"
)

var (
	knightOffsets = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingOffsets   = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	diagonalDirs  = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	straightDirs  = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	promoTypes    = [4]PieceType{Queen, Rook, Bishop, Knight}
)

// isAttacked reports whether any piece of color by attacks sq. It looks at
// raw attack patterns only, so pins and the attacker's own king safety are
// ignored.
func (b *Board) isAttacked(sq Square, by Color) bool {
	if !sq.Valid() {
		return false
	}

	// a pawn of color by attacks from one rank behind sq, relative to by
	for _, df := range [2]int{-1, 1} {
		s := sq.offset(df, -by.pawnDir())
		if s.Valid() {
			if p := b.at(s); p.Type == Pawn && p.Color == by {
				return true
			}
		}
	}
	if b.jumpAttack(sq, by, Knight, knightOffsets) || b.jumpAttack(sq, by, King, kingOffsets) {
		return true
	}
	return b.slideAttack(sq, by, Bishop, diagonalDirs) || b.slideAttack(sq, by, Rook, straightDirs)
}

func (b *Board) jumpAttack(sq Square, by Color, t PieceType, offsets [8][2]int) bool {
	for _, o := range offsets {
		s := sq.offset(o[0], o[1])
		if !s.Valid() {
			continue
		}
		if p := b.at(s); p.Type == t && p.Color == by {
			return true
		}
	}
	return false
}

// slideAttack looks for a slider of type t, or a queen, along dirs.
func (b *Board) slideAttack(sq Square, by Color, t PieceType, dirs [4][2]int) bool {
	for _, d := range dirs {
		for s := sq.offset(d[0], d[1]); s.Valid(); s = s.offset(d[0], d[1]) {
			p := b.at(s)
			if p.Empty() {
				continue
			}
			if p.Color == by && (p.Type == t || p.Type == Queen) {
				return true
			}
			break
		}
	}
	return false
}

// IsAttacked reports whether color by attacks sq in this position.
func (pos *Position) IsAttacked(sq Square, by Color) bool {
	return pos.board.isAttacked(sq, by)
}

// pseudoMoves appends every move matching the movement pattern of the
// piece on from, without checking whether the mover's king is left
// attacked.
func (pos *Position) pseudoMoves(from Square, moves []Move) []Move {
	p := pos.board.at(from)
	switch p.Type {
	case Pawn:
		return pos.pawnMoves(from, p.Color, moves)
	case Knight:
		return pos.jumpMoves(from, p.Color, knightOffsets, moves)
	case Bishop:
		return pos.slideMoves(from, p.Color, diagonalDirs[:], moves)
	case Rook:
		return pos.slideMoves(from, p.Color, straightDirs[:], moves)
	case Queen:
		moves = pos.slideMoves(from, p.Color, diagonalDirs[:], moves)
		return pos.slideMoves(from, p.Color, straightDirs[:], moves)
	case King:
		moves = pos.jumpMoves(from, p.Color, kingOffsets, moves)
		return pos.castleMoves(from, p.Color, moves)
	}
	return moves
}

func (pos *Position) pawnMoves(from Square, c Color, moves []Move) []Move {
	b := pos.board
	dir := c.pawnDir()
	lastRank := c.Other().backRank()

	add := func(to Square) {
		if to.Rank == lastRank {
			for _, t := range promoTypes {
				moves = append(moves, Move{From: from, To: to, Promo: t})
			}
			return
		}
		moves = append(moves, Move{From: from, To: to})
	}

	one := from.offset(0, dir)
	if one.Valid() && b.at(one).Empty() {
		add(one)
		startRank := c.backRank() + dir
		two := one.offset(0, dir)
		if from.Rank == startRank && b.at(two).Empty() {
			add(two)
		}
	}

	for _, df := range [2]int{-1, 1} {
		to := from.offset(df, dir)
		if !to.Valid() {
			continue
		}
		target := b.at(to)
		if !target.Empty() && target.Color != c {
			add(to)
		} else if _, ok := pos.enPassantVictim(from, to, c); ok {
			add(to)
		}
	}
	return moves
}

func (pos *Position) jumpMoves(from Square, c Color, offsets [8][2]int, moves []Move) []Move {
	for _, o := range offsets {
		to := from.offset(o[0], o[1])
		if !to.Valid() {
			continue
		}
		if target := pos.board.at(to); target.Empty() || target.Color != c {
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}

func (pos *Position) slideMoves(from Square, c Color, dirs [][2]int, moves []Move) []Move {
	for _, d := range dirs {
		for to := from.offset(d[0], d[1]); to.Valid(); to = to.offset(d[0], d[1]) {
			target := pos.board.at(to)
			if target.Empty() {
				moves = append(moves, Move{From: from, To: to})
				continue
			}
			if target.Color != c {
				moves = append(moves, Move{From: from, To: to})
			}
			break
		}
	}
	return moves
}

// castleMoves adds castling when the right is held, the king and rook
// stand on their home squares, the squares between are empty, and the
// king neither starts in, passes through nor lands on an attacked square.
func (pos *Position) castleMoves(from Square, c Color, moves []Move) []Move {
	rank := c.backRank()
	if from != Sq(4, rank) || pos.board.isAttacked(from, c.Other()) {
		return moves
	}
	for _, side := range [2]Side{KingSide, QueenSide} {
		if !pos.castling.CanCastle(c, side) {
			continue
		}
		rookFile, between, path := 7, []int{5, 6}, []int{5, 6}
		if side == QueenSide {
			rookFile, between, path = 0, []int{1, 2, 3}, []int{3, 2}
		}
		if rook := pos.board.at(Sq(rookFile, rank)); rook.Type != Rook || rook.Color != c {
			continue
		}
		open := true
		for _, f := range between {
			if !pos.board.at(Sq(f, rank)).Empty() {
				open = false
				break
			}
		}
		for _, f := range path {
			if !open {
				break
			}
			if pos.board.isAttacked(Sq(f, rank), c.Other()) {
				open = false
			}
		}
		if open {
			moves = append(moves, Move{From: from, To: Sq(path[1], rank)})
		}
	}
	return moves
}

// legal reports whether m, already pseudo-legal, keeps the mover's king
// out of attack.
func (pos *Position) legal(m Move) bool {
	next, _, _ := pos.play(m)
	return !next.board.isAttacked(next.board.kingSquare(pos.turn), pos.turn.Other())
}

// legalMovesFrom returns the legal moves of the piece on from, which must
// belong to the side to move.
func (pos *Position) legalMovesFrom(from Square) []Move {
	p, ok := pos.board.PieceAt(from)
	if !ok || p.Color != pos.turn {
		return nil
	}
	pseudo := pos.pseudoMoves(from, make([]Move, 0, 28))
	legal := pseudo[:0]
	for _, m := range pseudo {
		if pos.legal(m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// LegalTargets returns the destination squares the piece on from can
// legally reach, sorted from a8 to h1 with no duplicates. The result is
// empty for an empty or off-board origin and for pieces of the side not to
// move.
func (pos *Position) LegalTargets(from Square) []Square {
	var targets []Square
	for _, m := range pos.legalMovesFrom(from) {
		if !slices.Contains(targets, m.To) {
			targets = append(targets, m.To)
		}
	}
	slices.SortFunc(targets, compareSquares)
	return targets
}

// ValidMoves returns every legal move for the side to move. Promotions
// appear once per promotion piece.
func (pos *Position) ValidMoves() []Move {
	var moves []Move
	pos.board.each(func(sq Square, p Piece) {
		if p.Color == pos.turn {
			moves = append(moves, pos.legalMovesFrom(sq)...)
		}
	})
	return moves
}

func (pos *Position) hasLegalMove() bool {
	found := false
	pos.board.each(func(sq Square, p Piece) {
		if found || p.Color != pos.turn {
			return
		}
		for _, m := range pos.pseudoMoves(sq, nil) {
			if pos.legal(m) {
				found = true
				return
			}
		}
	})
	return found
}

// Apply validates m and returns the position after it. The receiver is
// never modified. A pawn reaching the last rank promotes to m.Promo, or to
// a queen when m.Promo is NoPieceType.
func (pos *Position) Apply(m Move) (*MoveResult, error) {
	if !m.From.Valid() || !m.To.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrOutOfBounds, m)
	}
	p := pos.board.at(m.From)
	if p.Empty() {
		return nil, fmt.Errorf("%w: %s", ErrNoPiece, m.From)
	}
	if p.Color != pos.turn {
		return nil, fmt.Errorf("%w: %s is %s, %s to move", ErrWrongTurn, m.From, p.Color, pos.turn)
	}

	if p.Type == Pawn && m.To.Rank == pos.turn.Other().backRank() {
		if m.Promo == NoPieceType {
			m.Promo = Queen
		}
		if !m.Promo.promotable() {
			return nil, fmt.Errorf("%w: %s to %s", ErrInvalidPromotion, m, m.Promo)
		}
	} else if m.Promo != NoPieceType {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPromotion, m)
	}

	if !slices.Contains(pos.legalMovesFrom(m.From), m) {
		return nil, fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}

	next, captured, tags := pos.play(m)
	status := next.Status()
	if next.inCheck {
		tags |= Check
	}
	return &MoveResult{
		Move:      m,
		Piece:     p,
		Captured:  captured,
		Promotion: m.Promo,
		Tags:      tags,
		SAN:       encodeSAN(pos, m, tags, next.inCheck, status == Checkmate),
		Check:     next.inCheck,
		Checkmate: status == Checkmate,
		Stalemate: status == Stalemate,
		Position:  next,
	}, nil
}

// play executes a pseudo-legal move on a copy of the position.
func (pos *Position) play(m Move) (*Position, Piece, MoveTag) {
	next := pos.Clone()
	b := next.board
	p := b.at(m.From)
	captured := b.at(m.To)

	var tags MoveTag
	if !captured.Empty() {
		tags |= Capture
	}

	switch {
	case p.Type == Pawn && captured.Empty():
		if victim, ok := pos.enPassantVictim(m.From, m.To, p.Color); ok {
			captured = b.at(victim)
			b.clear(victim)
			tags |= Capture | EnPassant
		}
	case p.Type == King && m.To.File-m.From.File == 2:
		b.set(Sq(5, m.From.Rank), b.at(Sq(7, m.From.Rank)))
		b.clear(Sq(7, m.From.Rank))
		tags |= KingSideCastle
	case p.Type == King && m.From.File-m.To.File == 2:
		b.set(Sq(3, m.From.Rank), b.at(Sq(0, m.From.Rank)))
		b.clear(Sq(0, m.From.Rank))
		tags |= QueenSideCastle
	}

	b.clear(m.From)
	if m.Promo != NoPieceType {
		p.Type = m.Promo
	}
	b.set(m.To, p)

	next.castling.revoke(m.From)
	next.castling.revoke(m.To)

	next.enPassant = NoSquare
	if p.Type == Pawn && (m.To.Rank-m.From.Rank == 2 || m.From.Rank-m.To.Rank == 2) {
		next.enPassant = Sq(m.From.File, (m.From.Rank+m.To.Rank)/2)
	}

	if pos.board.at(m.From).Type == Pawn || !captured.Empty() {
		next.halfMoveClock = 0
	} else {
		next.halfMoveClock++
	}
	if pos.turn == Black {
		next.moveCount++
	}
	next.turn = pos.turn.Other()
	next.inCheck = b.isAttacked(b.kingSquare(next.turn), pos.turn)
	return next, captured, tags
}

// enPassantVictim returns the square of the pawn a pawn of color c on
// from captures by moving diagonally onto the empty en passant target to.
func (pos *Position) enPassantVictim(from, to Square, c Color) (Square, bool) {
	if to != pos.enPassant || from.File == to.File || !pos.board.at(to).Empty() {
		return NoSquare, false
	}
	victim := Sq(to.File, from.Rank)
	if p := pos.board.at(victim); p.Type != Pawn || p.Color != c.Other() {
		return NoSquare, false
	}
	return victim, true
}

func compareSquares(a, b Square) int {
	if a.Rank != b.Rank {
		return a.Rank - b.Rank
	}
	return a.File - b.File
}
