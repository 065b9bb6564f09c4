/*
Package chess implements the rules engine and game session behind an
interactive two-player chess board.

A Game owns the authoritative position and an append-only move history.
Presentation code reads copies of the board and history, asks for the legal
targets of a square, submits moves and subscribes to change notifications.
Example usage:

	game := chess.NewGame()
	unsubscribe := game.Subscribe(func() {
		render(game.Board(), game.History())
	})
	defer unsubscribe()

	if !game.TryMove(chess.E2, chess.E4) {
		warn("illegal move")
	}

	if game.Outcome() != chess.NoOutcome {
		fmt.Printf("Game ended: %s by %s\n", game.Outcome(), game.Method())
	}

A Game is not safe for concurrent use, and subscriber callbacks must not
call back into the Game that notified them.
*/
package chess

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
)

// A Outcome is the result of a game.
type Outcome string

const (
	// NoOutcome indicates that a game is in progress or ended without a result.
	NoOutcome Outcome = "*"
	// WhiteWon indicates that white won the game.
	WhiteWon Outcome = "1-0"
	// BlackWon indicates that black won the game.
	BlackWon Outcome = "0-1"
	// Draw indicates that game was a draw.
	Draw Outcome = "1/2-1/2"
)

// String implements the fmt.Stringer interface.
func (o Outcome) String() string {
	return string(o)
}

// A Method is the method that generated the outcome.
type Method uint8

const (
	// NoMethod indicates that an outcome hasn't occurred or that the method can't be determined.
	NoMethod Method = iota
	// Checkmate indicates that the game was won checkmate.
	Checkmate
	// Stalemate indicates that the game was drawn by stalemate.
	Stalemate
	// FiftyMoveRule indicates that the game was drawn by a claim after
	// one hundred half moves without a capture or pawn move.
	FiftyMoveRule
	// SeventyFiveMoveRule indicates that the game was automatically drawn
	// after one hundred fifty half moves without a capture or pawn move.
	SeventyFiveMoveRule
	// InsufficientMaterial indicates that the game was automatically drawn
	// because there was insufficient material for checkmate.
	InsufficientMaterial
)

// String implements the fmt.Stringer interface.
func (m Method) String() string {
	switch m {
	case Checkmate:
		return "Checkmate"
	case Stalemate:
		return "Stalemate"
	case FiftyMoveRule:
		return "FiftyMoveRule"
	case SeventyFiveMoveRule:
		return "SeventyFiveMoveRule"
	case InsufficientMaterial:
		return "InsufficientMaterial"
	}
	return "NoMethod"
}

// TagPairs represents a collection of PGN tag pairs.
type TagPairs map[string]string

type subscriber struct {
	id int
	fn func()
}

// A Game is one session at the board: the live position, the history of
// accepted moves and the callbacks to run after every change.
type Game struct {
	id       uuid.UUID
	pos      *Position // live position, replaced on every move
	start    *Position // position the history starts from
	history  []MoveRecord
	seq      uint64
	outcome  Outcome
	method   Method
	tagPairs TagPairs
	subs     []subscriber
	nextSub  int
	logger   *zap.Logger
	clock    func() time.Time

	ignoreSeventyFiveMoveRuleDraw  bool
	ignoreInsufficientMaterialDraw bool
}

// NewGame returns a new game in the standard starting position.
// Optional functions can be provided to configure the initial game state.
//
// Example:
//
//	// Standard game
//	game := NewGame()
//
//	// Game from FEN
//	fen, err := FEN("8/3P4/8/8/8/7k/7p/7K w - - 2 70")
//	game := NewGame(fen, WithLogger(logger))
func NewGame(options ...func(*Game)) *Game {
	pos := StartingPosition()
	g := &Game{
		id:       uuid.New(),
		pos:      pos,
		start:    pos,
		outcome:  NoOutcome,
		method:   NoMethod,
		tagPairs: make(TagPairs),
		logger:   zap.NewNop(),
		clock:    time.Now,
	}
	for _, f := range options {
		if f != nil {
			f(g)
		}
	}
	return g
}

// FEN takes a string and returns a function that starts the game from
// the FEN position. An error is returned if the FEN cannot be decoded.
func FEN(fen string) (func(*Game), error) {
	pos, err := decodeFEN(fen)
	if err != nil {
		return nil, err
	}
	return func(g *Game) {
		g.pos = pos
		g.start = pos
		g.history = nil
		g.seq = 0
		g.outcome, g.method = NoOutcome, NoMethod
		g.evaluatePositionStatus()
	}, nil
}

// WithLogger returns a Game option that logs rejected moves at debug level
// and game endings at info level.
func WithLogger(logger *zap.Logger) func(*Game) {
	return func(g *Game) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithClock returns a Game option that stamps history records with the
// given clock instead of time.Now.
func WithClock(clock func() time.Time) func(*Game) {
	return func(g *Game) {
		if clock != nil {
			g.clock = clock
		}
	}
}

// IgnoreSeventyFiveMoveRuleDraw returns a Game option that disables
// automatic draws after one hundred fifty half moves without a capture or
// pawn move. The fifty move claim stays available.
func IgnoreSeventyFiveMoveRuleDraw() func(*Game) {
	return func(g *Game) {
		g.ignoreSeventyFiveMoveRuleDraw = true
	}
}

// IgnoreInsufficientMaterialDraw returns a Game option that disables automatic draws
// caused by insufficient material. When applied, the game will not automatically
// end in a draw even if checkmate is impossible with the remaining pieces.
func IgnoreInsufficientMaterialDraw() func(*Game) {
	return func(g *Game) {
		g.ignoreInsufficientMaterialDraw = true
	}
}

// ID returns the session identifier. It changes on Reset.
func (g *Game) ID() uuid.UUID {
	return g.id
}

// Board returns a copy of the current placement.
func (g *Game) Board() Grid {
	return g.pos.board.Grid()
}

// PieceAt returns the piece on sq. Squares off the board hold no piece.
func (g *Game) PieceAt(sq Square) (Piece, bool) {
	return g.pos.PieceAt(sq)
}

// Positions maps each piece ID on the board to its square.
func (g *Game) Positions() map[string]Square {
	return g.pos.board.AllPieces()
}

// Position returns a copy of the current position.
func (g *Game) Position() *Position {
	return g.pos.Clone()
}

// Turn returns the color to move.
func (g *Game) Turn() Color {
	return g.pos.turn
}

// InCheck reports whether the side to move is in check.
func (g *Game) InCheck() bool {
	return g.pos.inCheck
}

// FEN returns the FEN notation of the current position.
func (g *Game) FEN() string {
	return g.pos.String()
}

// Outcome returns the game outcome.
func (g *Game) Outcome() Outcome {
	return g.outcome
}

// Method returns the method in which the outcome occurred.
func (g *Game) Method() Method {
	return g.method
}

// History returns a copy of the accepted moves, oldest first.
func (g *Game) History() []MoveRecord {
	h := make([]MoveRecord, len(g.history))
	copy(h, g.history)
	return h
}

// LegalMovesFrom returns the squares the piece on sq may move to. It is
// empty for empty squares, squares off the board, pieces of the side not
// to move, and once the game is over.
func (g *Game) LegalMovesFrom(sq Square) []Square {
	if g.outcome != NoOutcome {
		return nil
	}
	return g.pos.LegalTargets(sq)
}

// TryMove moves the piece on from to to, promoting to a queen when a pawn
// reaches the last rank. It reports whether the move was accepted; a
// rejected move changes nothing.
func (g *Game) TryMove(from, to Square) bool {
	return g.TryMovePromote(from, to, NoPieceType)
}

// TryMovePromote is TryMove with an explicit promotion piece.
func (g *Game) TryMovePromote(from, to Square, promo PieceType) bool {
	if err := g.Move(Move{From: from, To: to, Promo: promo}); err != nil {
		g.logger.Debug("move rejected",
			zap.Stringer("from", from),
			zap.Stringer("to", to),
			zap.Stringer("turn", g.pos.turn),
			zap.Error(err),
		)
		return false
	}
	return true
}

// Move applies m, appends it to the history and notifies subscribers.
// The returned error explains a rejection; see the Err variables.
func (g *Game) Move(m Move) error {
	if g.outcome != NoOutcome {
		return fmt.Errorf("%w: %s by %s", ErrGameOver, g.outcome, g.method)
	}
	res, err := g.pos.Apply(m)
	if err != nil {
		return err
	}
	g.record(res)
	g.notify()
	return nil
}

// PushNotationMove decodes moveStr in the given notation and applies it.
//
// Example:
//
//	err := game.PushNotationMove("Nf3", chess.AlgebraicNotation{})
//	err = game.PushNotationMove("c7c5", chess.UCINotation{})
func (g *Game) PushNotationMove(moveStr string, notation Notation) error {
	m, err := notation.Decode(g.pos, moveStr)
	if err != nil {
		return err
	}
	return g.Move(m)
}

// Reset restores the standard starting position, clears the history and
// notifies subscribers. Existing unsubscribe functions stay valid.
func (g *Game) Reset() {
	g.id = uuid.New()
	g.pos = StartingPosition()
	g.start = g.pos
	g.history = nil
	g.seq = 0
	g.outcome = NoOutcome
	g.method = NoMethod
	g.logger.Info("game reset", zap.Stringer("game_id", g.id))
	g.notify()
}

// Subscribe registers fn to run after every accepted move and every
// Reset, after all earlier subscribers. The returned function removes the
// registration; calling it again is a no-op.
func (g *Game) Subscribe(fn func()) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	g.nextSub++
	id := g.nextSub
	g.subs = append(g.subs, subscriber{id: id, fn: fn})
	return func() {
		g.subs = slices.DeleteFunc(g.subs, func(s subscriber) bool { return s.id == id })
	}
}

func (g *Game) notify() {
	for _, s := range slices.Clone(g.subs) {
		s.fn()
	}
}

func (g *Game) record(res *MoveResult) {
	at := g.clock()
	if n := len(g.history); n > 0 && at.Before(g.history[n-1].At) {
		at = g.history[n-1].At
	}
	g.seq++
	g.history = append(g.history, newMoveRecord(g.seq, at, res))
	g.pos = res.Position
	g.evaluatePositionStatus()
}

// evaluatePositionStatus updates the game's outcome and method based on the current position.
func (g *Game) evaluatePositionStatus() {
	switch g.pos.Status() {
	case Stalemate:
		g.method = Stalemate
		g.outcome = Draw
	case Checkmate:
		g.method = Checkmate
		g.outcome = WhiteWon
		if g.pos.Turn() == White {
			g.outcome = BlackWon
		}
	}

	// the fifty move rule only makes a draw claimable, see Draw
	if g.outcome == NoOutcome && !g.ignoreSeventyFiveMoveRuleDraw && g.pos.halfMoveClock >= halfMovesForSeventyFiveMoveRule {
		g.outcome = Draw
		g.method = SeventyFiveMoveRule
	}

	if g.outcome == NoOutcome && !g.ignoreInsufficientMaterialDraw && !g.pos.board.hasSufficientMaterial() {
		g.outcome = Draw
		g.method = InsufficientMaterial
	}

	if g.outcome != NoOutcome {
		g.logGameOver()
	}
}

func (g *Game) logGameOver() {
	g.logger.Info("game over",
		zap.Stringer("game_id", g.id),
		zap.Stringer("outcome", g.outcome),
		zap.Stringer("method", g.method),
		zap.Int("moves", len(g.history)),
	)
}

const (
	halfMovesForFiftyMoveRule       = 100
	halfMovesForSeventyFiveMoveRule = 150
)

// Draw ends the game in a draw claimed by the given method and notifies
// subscribers. Only FiftyMoveRule can be claimed, once the half move
// clock reaches one hundred; see EligibleDraws.
func (g *Game) Draw(method Method) error {
	if g.outcome != NoOutcome {
		return fmt.Errorf("%w: %s by %s", ErrGameOver, g.outcome, g.method)
	}
	if !slices.Contains(g.EligibleDraws(), method) {
		return fmt.Errorf("%w: %s at half move clock %d", ErrDrawNotClaimable, method, g.pos.halfMoveClock)
	}
	g.outcome = Draw
	g.method = method
	g.logGameOver()
	g.notify()
	return nil
}

// EligibleDraws returns the methods Draw currently accepts. It is empty
// while no draw can be claimed and once the game is over.
func (g *Game) EligibleDraws() []Method {
	var draws []Method
	if g.outcome == NoOutcome && g.pos.halfMoveClock >= halfMovesForFiftyMoveRule {
		draws = append(draws, FiftyMoveRule)
	}
	return draws
}

// AddTagPair adds or updates a tag pair with the given key and
// value and returns true if the value is overwritten.
func (g *Game) AddTagPair(k, v string) bool {
	if g.tagPairs == nil {
		g.tagPairs = make(TagPairs)
	}
	_, existing := g.tagPairs[k]
	g.tagPairs[k] = v
	return existing
}

// GetTagPair returns the value for the given key or "" if it is not present.
func (g *Game) GetTagPair(k string) string {
	return g.tagPairs[k]
}

// RemoveTagPair removes the tag pair for the given key and
// returns true if a tag pair was removed.
func (g *Game) RemoveTagPair(k string) bool {
	if _, existing := g.tagPairs[k]; existing {
		delete(g.tagPairs, k)
		return true
	}
	return false
}

// TagPairs returns a copy of the tag pairs.
func (g *Game) TagPairs() TagPairs {
	tp := make(TagPairs, len(g.tagPairs))
	maps.Copy(tp, g.tagPairs)
	return tp
}
