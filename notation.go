package chess

import (
	"errors"
	"fmt"
	"strings"
)

// Notation is the interface implemented by objects that can encode and
// decode moves.
type Notation interface {
	Encode(pos *Position, m Move) string
	Decode(pos *Position, s string) (Move, error)
}

// AlgebraicNotation (or Standard Algebraic Notation) is the official chess
// notation used by FIDE. Examples: e4, Nf3, exd5, O-O, e8=Q+, Qxf7#.
//
// When another piece of the same type and color can reach the destination,
// the origin file is added; if one of those pieces shares the origin file,
// the origin rank follows it (Nbd2, Rd1d4).
type AlgebraicNotation struct{}

// String implements the fmt.Stringer interface.
func (AlgebraicNotation) String() string {
	return "Algebraic Notation"
}

// Encode implements the Notation interface. Moves that are not legal in
// pos fall back to their UCI form.
func (AlgebraicNotation) Encode(pos *Position, m Move) string {
	res, err := pos.Apply(m)
	if err != nil {
		return m.String()
	}
	return res.SAN
}

// Decode implements the Notation interface. Check, mate and annotation
// suffixes are ignored, as is the origin qualifier when it is not needed.
func (AlgebraicNotation) Decode(pos *Position, s string) (Move, error) {
	parts, err := algebraicNotationParts(s)
	if err != nil {
		return Move{}, err
	}

	var found []Move
	for _, m := range pos.ValidMoves() {
		if parts.matches(pos, m) {
			found = append(found, m)
		}
	}
	switch len(found) {
	case 0:
		return Move{}, fmt.Errorf("%w: %q", ErrIllegalMove, s)
	case 1:
		return found[0], nil
	}

	// an unqualified promotion matches all four pieces; SAN reads it as a queen
	for _, m := range found {
		if parts.promo == NoPieceType && m.Promo == Queen {
			return m, nil
		}
	}
	return Move{}, fmt.Errorf("chess: ambiguous move %q", s)
}

// ValidateSAN checks if a string is valid Standard Algebraic Notation
// syntax. It does not check whether the move is legal in any position.
func ValidateSAN(s string) error {
	_, err := algebraicNotationParts(s)
	return err
}

var errBadSAN = errors.New("chess: invalid algebraic notation")

type sanParts struct {
	castle   MoveTag
	piece    PieceType
	fromFile int // -1 when absent
	fromRank int // internal rank index, -1 when absent
	capture  bool
	to       Square
	promo    PieceType
}

func algebraicNotationParts(s string) (sanParts, error) {
	parts := sanParts{fromFile: -1, fromRank: -1}
	body := strings.TrimRight(strings.TrimSpace(s), "+#!?")

	switch body {
	case "O-O", "0-0":
		parts.castle = KingSideCastle
		return parts, nil
	case "O-O-O", "0-0-0":
		parts.castle = QueenSideCastle
		return parts, nil
	}

	if i := strings.IndexByte(body, '='); i >= 0 {
		if i != len(body)-2 {
			return parts, fmt.Errorf("%w: %q", errBadSAN, s)
		}
		parts.promo = pieceTypeFromLetter(body[i+1])
		if !parts.promo.promotable() || body[i+1] < 'A' || body[i+1] > 'Z' {
			return parts, fmt.Errorf("%w: promotion in %q", errBadSAN, s)
		}
		body = body[:i]
	}

	if body != "" && body[0] >= 'A' && body[0] <= 'Z' {
		parts.piece = pieceTypeFromLetter(body[0])
		if parts.piece == NoPieceType || parts.piece == Pawn {
			return parts, fmt.Errorf("%w: piece in %q", errBadSAN, s)
		}
		body = body[1:]
	} else {
		parts.piece = Pawn
	}

	if len(body) < 2 {
		return parts, fmt.Errorf("%w: %q", errBadSAN, s)
	}
	to, err := ParseSquare(body[len(body)-2:])
	if err != nil {
		return parts, fmt.Errorf("%w: destination in %q", errBadSAN, s)
	}
	parts.to = to
	body = body[:len(body)-2]

	if strings.HasSuffix(body, "x") {
		parts.capture = true
		body = body[:len(body)-1]
	}
	for i := 0; i < len(body); i++ {
		switch {
		case isFile(body[i]) && parts.fromFile < 0 && parts.fromRank < 0:
			parts.fromFile = int(body[i] - 'a')
		case isRank(body[i]) && parts.fromRank < 0:
			parts.fromRank = int('8' - body[i])
		default:
			return parts, fmt.Errorf("%w: qualifier in %q", errBadSAN, s)
		}
	}

	if parts.piece == Pawn {
		if parts.capture != (parts.fromFile >= 0) || parts.fromRank >= 0 {
			return parts, fmt.Errorf("%w: pawn move %q", errBadSAN, s)
		}
	} else if parts.promo != NoPieceType {
		return parts, fmt.Errorf("%w: only pawns promote in %q", errBadSAN, s)
	}
	return parts, nil
}

func (sp sanParts) matches(pos *Position, m Move) bool {
	p := pos.board.at(m.From)
	if sp.castle != 0 {
		if p.Type != King {
			return false
		}
		if sp.castle == KingSideCastle {
			return m.To.File-m.From.File == 2
		}
		return m.From.File-m.To.File == 2
	}
	if p.Type != sp.piece || m.To != sp.to {
		return false
	}
	if sp.fromFile >= 0 && m.From.File != sp.fromFile {
		return false
	}
	if sp.fromRank >= 0 && m.From.Rank != sp.fromRank {
		return false
	}
	return sp.promo == NoPieceType || m.Promo == sp.promo
}

func encodeSAN(pos *Position, m Move, tags MoveTag, check, mate bool) string {
	var sb strings.Builder
	switch {
	case tags&KingSideCastle != 0:
		sb.WriteString("O-O")
	case tags&QueenSideCastle != 0:
		sb.WriteString("O-O-O")
	default:
		p := pos.board.at(m.From)
		if p.Type == Pawn {
			if tags&Capture != 0 {
				sb.WriteByte(m.From.FileByte())
			}
		} else {
			sb.WriteString(p.Type.Letter())
			sb.WriteString(disambiguation(pos, m, p))
		}
		if tags&Capture != 0 {
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
		if m.Promo != NoPieceType {
			sb.WriteString("=" + m.Promo.Letter())
		}
	}

	switch {
	case mate:
		sb.WriteByte('#')
	case check:
		sb.WriteByte('+')
	}
	return sb.String()
}

// disambiguation returns the origin qualifier needed when another piece of
// the same type and color can also legally reach m.To.
func disambiguation(pos *Position, m Move, p Piece) string {
	var rivals []Square
	pos.board.each(func(sq Square, q Piece) {
		if sq == m.From || q.Type != p.Type || q.Color != p.Color {
			return
		}
		for _, lm := range pos.legalMovesFrom(sq) {
			if lm.To == m.To {
				rivals = append(rivals, sq)
				return
			}
		}
	})
	if len(rivals) == 0 {
		return ""
	}
	for _, sq := range rivals {
		if sq.File == m.From.File {
			return m.From.String()
		}
	}
	return string(m.From.FileByte())
}

// UCINotation is the coordinate notation used by the Universal Chess
// Interface, e.g. e2e4 or e7e8q.
type UCINotation struct{}

// String implements the fmt.Stringer interface.
func (UCINotation) String() string {
	return "UCI Notation"
}

// Encode implements the Notation interface.
func (UCINotation) Encode(_ *Position, m Move) string {
	return m.String()
}

// Decode implements the Notation interface. Only the syntax is checked;
// Position.Apply decides legality.
func (UCINotation) Decode(_ *Position, s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("chess: invalid UCI move %q", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return Move{}, err
	}
	m := Move{From: from, To: to}
	if len(s) == 5 {
		m.Promo = pieceTypeFromLetter(s[4])
		if !m.Promo.promotable() {
			return Move{}, fmt.Errorf("chess: invalid UCI promotion %q", s)
		}
	}
	return m, nil
}
