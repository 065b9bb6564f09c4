package chess

import (
	"slices"
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var crossCheckFENs = []string{
	StartingFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
	"8/8/8/K2pP2r/8/8/8/7k w - d6 0 1",
}

func uciMoves(moves []Move) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	slices.Sort(out)
	return out
}

func referenceMoves(fen string) []string {
	b := dragontoothmg.ParseFen(fen)
	moves := b.GenerateLegalMoves()
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	slices.Sort(out)
	return out
}

// TestLegalMovesMatchReference compares legal move generation with an
// independent generator, one ply deep from every position in the suite.
func TestLegalMovesMatchReference(t *testing.T) {
	for _, fen := range crossCheckFENs {
		t.Run(fen, func(t *testing.T) {
			pos, err := decodeFEN(fen)
			require.NoError(t, err)
			assert.Equal(t, referenceMoves(fen), uciMoves(pos.ValidMoves()))

			if testing.Short() {
				return
			}
			for _, m := range pos.ValidMoves() {
				next, _, _ := pos.play(m)
				child := next.String()
				assert.Equal(t, referenceMoves(child), uciMoves(next.ValidMoves()), "after %s: %s", m, child)
			}
		})
	}
}
