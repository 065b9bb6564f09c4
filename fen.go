package chess

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errInvalidFEN = errors.New("chess: invalid FEN")

// decodeFEN parses a FEN record. Piece IDs are assigned per color and type
// in scan order from a8 to h1.
func decodeFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return nil, fmt.Errorf("%w: expected 6 fields, got %d", errInvalidFEN, len(parts))
	}

	board, err := decodePlacement(parts[0])
	if err != nil {
		return nil, err
	}

	pos := &Position{board: board, enPassant: NoSquare}
	switch parts[1] {
	case "w":
		pos.turn = White
	case "b":
		pos.turn = Black
	default:
		return nil, fmt.Errorf("%w: turn must be 'w' or 'b'", errInvalidFEN)
	}

	if pos.castling, err = decodeCastleRights(parts[2]); err != nil {
		return nil, err
	}

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil || !validEnPassant(board, sq, pos.turn) {
			return nil, fmt.Errorf("%w: en passant square %q", errInvalidFEN, parts[3])
		}
		pos.enPassant = sq
	}

	if pos.halfMoveClock, err = strconv.Atoi(parts[4]); err != nil || pos.halfMoveClock < 0 {
		return nil, fmt.Errorf("%w: halfmove clock %q", errInvalidFEN, parts[4])
	}
	if pos.moveCount, err = strconv.Atoi(parts[5]); err != nil || pos.moveCount < 1 {
		return nil, fmt.Errorf("%w: fullmove number %q", errInvalidFEN, parts[5])
	}

	if pos.board.isAttacked(pos.board.kingSquare(pos.turn.Other()), pos.turn) {
		return nil, fmt.Errorf("%w: side not to move is in check", errInvalidFEN)
	}
	pos.inCheck = pos.board.isAttacked(pos.board.kingSquare(pos.turn), pos.turn.Other())
	return pos, nil
}

// validEnPassant reports whether sq can be the target left by the
// opponent's double step: it sits on the opponent's third rank, it and the
// pawn's start square are empty, and the opponent's pawn stands beyond it.
func validEnPassant(b *Board, sq Square, turn Color) bool {
	mover := turn.Other()
	if !sq.Valid() || sq.Rank != mover.backRank()+2*mover.pawnDir() {
		return false
	}
	start, victim := sq.offset(0, -mover.pawnDir()), sq.offset(0, mover.pawnDir())
	if !b.at(sq).Empty() || !b.at(start).Empty() {
		return false
	}
	p := b.at(victim)
	return p.Type == Pawn && p.Color == mover
}

func decodePlacement(field string) (*Board, error) {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("%w: expected 8 ranks", errInvalidFEN)
	}

	b := &Board{}
	counts := map[Color]map[PieceType]int{White: {}, Black: {}}
	for r, row := range ranks {
		file := 0
		for i := 0; i < len(row); i++ {
			ch := row[i]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			t := pieceTypeFromLetter(ch)
			if t == NoPieceType {
				return nil, fmt.Errorf("%w: unknown piece %q", errInvalidFEN, ch)
			}
			if file >= 8 {
				return nil, fmt.Errorf("%w: too many squares in rank %c", errInvalidFEN, '8'-r)
			}
			c := White
			if ch >= 'a' {
				c = Black
			}
			if t == Pawn && (r == 0 || r == 7) {
				return nil, fmt.Errorf("%w: pawn on rank %c", errInvalidFEN, '8'-r)
			}
			counts[c][t]++
			b.grid[r][file] = Piece{ID: pieceID(c, t, counts[c][t]), Color: c, Type: t}
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("%w: rank %c has %d files", errInvalidFEN, '8'-r, file)
		}
	}

	if counts[White][King] != 1 || counts[Black][King] != 1 {
		return nil, fmt.Errorf("%w: each side needs exactly one king", errInvalidFEN)
	}
	return b, nil
}

func decodeCastleRights(field string) (CastleRights, error) {
	var cr CastleRights
	if field == "-" {
		return cr, nil
	}
	for _, ch := range field {
		switch ch {
		case 'K':
			cr.WhiteKingSide = true
		case 'Q':
			cr.WhiteQueenSide = true
		case 'k':
			cr.BlackKingSide = true
		case 'q':
			cr.BlackQueenSide = true
		default:
			return cr, fmt.Errorf("%w: castling field %q", errInvalidFEN, field)
		}
	}
	return cr, nil
}

func encodeFEN(pos *Position) string {
	var sb strings.Builder
	for r := 0; r < 8; r++ {
		empty := 0
		for f := 0; f < 8; f++ {
			p := pos.board.grid[r][f]
			if p.Empty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if r < 7 {
			sb.WriteByte('/')
		}
	}
	fmt.Fprintf(&sb, " %s %s %s %d %d",
		pos.turn.FEN(), pos.castling, pos.enPassant, pos.halfMoveClock, pos.moveCount)
	return sb.String()
}
