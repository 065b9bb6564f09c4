/*
Package chess provides PGN (Portable Game Notation) support: a Game prints
itself as PGN, and the PGN option rebuilds a game from a tag section and a
main line written in SAN or coordinate moves.
Example usage:

	opt, err := chess.PGN(strings.NewReader(`[White "Ana"] 1. e4 e5 2. Nf3 *`))
	if err != nil {
		return err
	}
	game := chess.NewGame(opt)
	fmt.Println(game)
*/
package chess

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// ErrNoGameFound is returned by PGN when the input holds neither tags nor moves.
var ErrNoGameFound = errors.New("chess: no game found in PGN data")

// PGN takes a reader and returns a function that updates the game to
// reflect the PGN data. Comments, NAGs and variations are skipped; only
// the main line is replayed. An error is returned if the data is malformed
// or contains an illegal move.
func PGN(r io.Reader) (func(*Game), error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	tags, movetext, err := splitPGN(raw)
	if err != nil {
		return nil, err
	}
	tokens, result, err := tokenizeMoveText(movetext)
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 && len(tokens) == 0 && result == NoOutcome {
		return nil, ErrNoGameFound
	}

	start := StartingPosition()
	if fen, ok := tags["FEN"]; ok {
		if start, err = decodeFEN(fen); err != nil {
			return nil, fmt.Errorf("chess: FEN tag: %w", err)
		}
	}

	// resolve every token against a scratch position so the option
	// itself cannot fail
	results := make([]*MoveResult, 0, len(tokens))
	pos := start
	for i, tok := range tokens {
		if status := pos.Status(); status != NoMethod {
			return nil, fmt.Errorf("chess: move %d %q: %w: %s", i+1, tok, ErrGameOver, status)
		}
		var notation Notation = AlgebraicNotation{}
		if isCoordinateMoveToken(tok) {
			notation = UCINotation{}
		}
		m, err := notation.Decode(pos, tok)
		if err != nil {
			return nil, fmt.Errorf("chess: move %d %q: %w", i+1, tok, err)
		}
		res, err := pos.Apply(m)
		if err != nil {
			return nil, fmt.Errorf("chess: move %d %q: %w", i+1, tok, err)
		}
		results = append(results, res)
		pos = res.Position
	}

	return func(g *Game) {
		for k, v := range tags {
			g.AddTagPair(k, v)
		}
		g.pos = start
		g.start = start
		g.history = nil
		g.seq = 0
		g.outcome, g.method = NoOutcome, NoMethod
		g.evaluatePositionStatus()
		for i, res := range results {
			// automatic draws depend on the game's options, so they can
			// only be found here
			if g.outcome != NoOutcome {
				g.logger.Warn("moves after the end of the game dropped",
					zap.Stringer("method", g.method),
					zap.Int("dropped", len(results)-i),
				)
				break
			}
			g.record(res)
		}
		// a decided result without a terminal position, e.g. a resignation
		if g.outcome == NoOutcome && result != NoOutcome {
			g.outcome = result
		}
	}, nil
}

// splitPGN separates the tag section from the movetext.
func splitPGN(raw []byte) (TagPairs, string, error) {
	tags := make(TagPairs)
	s := strings.TrimSpace(string(raw))
	for strings.HasPrefix(s, "[") {
		end := closingBracket(s)
		if end < 0 {
			return nil, "", fmt.Errorf("chess: unterminated tag pair %q", s)
		}
		k, v, err := parseTagPair(s[:end+1])
		if err != nil {
			return nil, "", err
		}
		tags[k] = v
		s = strings.TrimSpace(s[end+1:])
	}
	return tags, s, nil
}

// closingBracket returns the index of the ']' closing the tag pair that
// opens s, skipping brackets inside the quoted value.
func closingBracket(s string) int {
	quoted := false
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			quoted = !quoted
		case ']':
			if !quoted {
				return i
			}
		}
	}
	return -1
}

func parseTagPair(line string) (string, string, error) {
	if !strings.HasSuffix(line, "]") {
		return "", "", fmt.Errorf("chess: malformed tag pair %q", line)
	}
	body := strings.TrimSpace(line[1 : len(line)-1])
	key, value, ok := strings.Cut(body, " ")
	value = strings.TrimSpace(value)
	if !ok || key == "" || len(value) < 2 || value[0] != '"' || value[len(value)-1] != '"' {
		return "", "", fmt.Errorf("chess: malformed tag pair %q", line)
	}
	value = strings.ReplaceAll(value[1:len(value)-1], `\"`, `"`)
	return key, value, nil
}

// tokenizeMoveText returns the main line move tokens and the result token.
func tokenizeMoveText(s string) ([]string, Outcome, error) {
	var (
		tokens []string
		cur    strings.Builder
		depth  int
		result = NoOutcome
	)
	flush := func() {
		tok := cur.String()
		cur.Reset()
		if tok == "" || depth > 0 {
			return
		}
		switch tok {
		case "1-0", "0-1", "1/2-1/2", "*":
			result = Outcome(tok)
			return
		}
		if tok[0] == '$' {
			return
		}
		// strip move numbers such as "12." or "12..."
		if rest := strings.TrimLeft(tok, "0123456789"); rest != tok && strings.HasPrefix(rest, ".") {
			tok = strings.TrimLeft(rest, ".")
		}
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}

	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '{':
			flush()
			end := strings.IndexByte(s[i:], '}')
			if end < 0 {
				return nil, result, errors.New("chess: unterminated comment")
			}
			i += end
		case ';':
			flush()
			end := strings.IndexByte(s[i:], '\n')
			if end < 0 {
				end = len(s) - i
			}
			i += end
		case '(':
			flush()
			depth++
		case ')':
			flush()
			if depth == 0 {
				return nil, result, errors.New("chess: unbalanced variation")
			}
			depth--
		case ' ', '\t', '\n', '\r':
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	if depth != 0 {
		return nil, result, errors.New("chess: unbalanced variation")
	}
	return tokens, result, nil
}

func isCoordinateMoveToken(t string) bool {
	if len(t) != 4 && len(t) != 5 {
		return false
	}
	if !isFile(t[0]) || !isRank(t[1]) || !isFile(t[2]) || !isRank(t[3]) {
		return false
	}
	if len(t) == 5 {
		switch t[4] {
		case 'q', 'r', 'b', 'n', 'Q', 'R', 'B', 'N':
			return true
		default:
			return false
		}
	}
	return true
}

type tagPair struct {
	key, value string
}

// sevenTagRoster is the PGN mandated tag order; other tags follow sorted.
var sevenTagRoster = []string{"Event", "Site", "Date", "Round", "White", "Black", "Result"}

func cmpTags(a, b tagPair) int {
	if a.key == b.key {
		return 0
	}
	ai, bi := slices.Index(sevenTagRoster, a.key), slices.Index(sevenTagRoster, b.key)
	switch {
	case ai >= 0 && bi >= 0:
		return ai - bi
	case ai >= 0:
		return -1
	case bi >= 0:
		return 1
	}
	return strings.Compare(a.key, b.key)
}

// String implements the fmt.Stringer interface and returns
// the game's PGN.
func (g *Game) String() string {
	var sb strings.Builder

	tags := g.TagPairs()
	if _, ok := tags["Site"]; !ok {
		tags["Site"] = g.id.URN()
	}
	tags["Result"] = g.outcome.String()
	if g.start.String() != StartingFEN {
		tags["SetUp"] = "1"
		tags["FEN"] = g.start.String()
	}

	pairs := make([]tagPair, 0, len(tags))
	for k, v := range tags {
		pairs = append(pairs, tagPair{key: k, value: v})
	}
	slices.SortFunc(pairs, cmpTags)
	for _, tp := range pairs {
		fmt.Fprintf(&sb, "[%s \"%s\"]\n", tp.key, strings.ReplaceAll(tp.value, `"`, `\"`))
	}
	sb.WriteString("\n")

	moveNum := g.start.moveCount
	for i, rec := range g.history {
		switch {
		case rec.Color == White:
			fmt.Fprintf(&sb, "%d. ", moveNum)
		case i == 0:
			fmt.Fprintf(&sb, "%d... ", moveNum)
		}
		sb.WriteString(rec.SAN)
		sb.WriteString(" ")
		if rec.Color == Black {
			moveNum++
		}
	}
	sb.WriteString(g.outcome.String())
	return sb.String()
}

// MarshalText implements the encoding.TextMarshaler interface and
// encodes the game's PGN.
func (g *Game) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface and
// assumes the data is in the PGN format.
func (g *Game) UnmarshalText(text []byte) error {
	toGame, err := PGN(bytes.NewReader(text))
	if err != nil {
		return err
	}
	if g.tagPairs == nil {
		*g = *NewGame()
	}
	toGame(g)
	return nil
}
