package main

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	chess "github.com/mway1/chessboard"
	"github.com/mway1/chessboard/image"
	"github.com/mway1/chessboard/internal/config"
	"github.com/mway1/chessboard/internal/display"
)

const helpText = `Commands:
  <from> <to>      - Move a piece (e.g. e2 e4)
  <move>           - Move in coordinate or algebraic form (e2e4, e7e8q, Nf3, O-O)
  moves <square>   - Show the legal targets of the piece on a square
  board            - Redraw the board
  history          - List the accepted moves
  fen              - Print the current position as FEN
  pgn              - Print the game as PGN
  svg <file>       - Write the board as SVG
  png <file>       - Write the board as PNG
  flip             - Look at the board from the other side
  theme <name>     - Set board color theme (off|brown|green|gray)
  draw             - Claim a draw under the fifty move rule
  reset            - Start a new game
  help/?           - Show this help message
  quit/exit        - Exit the program`

var lastMoveColor = color.RGBA{R: 0xcd, G: 0xd2, B: 0x6a, A: 0xff}

// session binds one game to a terminal.
type session struct {
	game        *chess.Game
	cfg         *config.Config
	out         io.Writer
	logger      *zap.Logger
	colored     bool
	theme       display.Theme
	perspective chess.Color
}

func newSession(g *chess.Game, cfg *config.Config, out io.Writer, colored bool, logger *zap.Logger) *session {
	s := &session{
		game:        g,
		cfg:         cfg,
		out:         out,
		logger:      logger,
		colored:     colored,
		theme:       display.Theme(cfg.Theme),
		perspective: chess.White,
	}
	if !colored {
		s.theme = display.ThemeOff
	}
	if cfg.Perspective == "black" {
		s.perspective = chess.Black
	}
	g.Subscribe(s.onChange)
	return s
}

func (s *session) prompt() string {
	base := fmt.Sprintf("%s [%s]", s.cfg.Prompt, display.ColorForTurn(s.colored, s.game.Turn()))
	return display.Prompt(s.colored, base)
}

func (s *session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *session) errorf(format string, args ...any) {
	s.printf("%s\n", display.Colorize(s.colored, display.Red, fmt.Sprintf(format, args...)))
}

// execute runs one input line and reports whether the loop should go on.
func (s *session) execute(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}

	switch cmd := strings.ToLower(fields[0]); cmd {
	case "quit", "exit", "x":
		return false
	case "help", "?":
		s.printf("%s\n", helpText)
	case "board":
		s.render(nil)
	case "moves":
		s.showMoves(fields[1:])
	case "history":
		if len(s.game.History()) == 0 {
			s.printf("No moves yet\n")
			break
		}
		if err := display.History(s.out, s.game.History()); err != nil {
			s.errorf("%v", err)
		}
	case "fen":
		s.printf("%s\n", s.game.FEN())
	case "pgn":
		s.printf("%s\n", s.game.String())
	case "svg", "png":
		if len(fields) != 2 {
			s.errorf("usage: %s <file>", cmd)
			break
		}
		if err := s.export(cmd, fields[1]); err != nil {
			s.errorf("%v", err)
			break
		}
		s.printf("Wrote %s\n", fields[1])
	case "flip":
		s.perspective = s.perspective.Other()
		s.render(nil)
	case "theme":
		s.setTheme(fields[1:])
	case "draw":
		s.claimDraw()
	case "reset":
		s.game.Reset()
	default:
		s.move(fields)
	}
	return true
}

func (s *session) move(fields []string) {
	switch len(fields) {
	case 2:
		from, err := chess.ParseSquare(strings.ToLower(fields[0]))
		if err != nil {
			s.errorf("unknown command or square: %s", fields[0])
			return
		}
		to, err := chess.ParseSquare(strings.ToLower(fields[1]))
		if err != nil {
			s.errorf("invalid square: %s", fields[1])
			return
		}
		if !s.game.TryMove(from, to) {
			s.errorf("illegal move: %s -> %s", from, to)
		}
	case 1:
		var notation chess.Notation = chess.AlgebraicNotation{}
		if looksLikeUCI(fields[0]) {
			notation = chess.UCINotation{}
		}
		if err := s.game.PushNotationMove(fields[0], notation); err != nil {
			s.errorf("%s: %v", fields[0], explain(err))
		}
	default:
		s.errorf("unknown command: %s (type 'help')", strings.Join(fields, " "))
	}
}

func looksLikeUCI(s string) bool {
	if len(s) != 4 && len(s) != 5 {
		return false
	}
	_, err1 := chess.ParseSquare(s[0:2])
	_, err2 := chess.ParseSquare(s[2:4])
	return err1 == nil && err2 == nil
}

func explain(err error) string {
	switch {
	case errors.Is(err, chess.ErrGameOver):
		return "the game is over, type 'reset' for a new one"
	case errors.Is(err, chess.ErrNoPiece):
		return "no piece there"
	case errors.Is(err, chess.ErrWrongTurn):
		return "not your piece"
	case errors.Is(err, chess.ErrIllegalMove):
		return "illegal move"
	case errors.Is(err, chess.ErrInvalidPromotion):
		return "invalid promotion"
	}
	return err.Error()
}

func (s *session) showMoves(args []string) {
	if len(args) != 1 {
		s.errorf("usage: moves <square>")
		return
	}
	sq, err := chess.ParseSquare(strings.ToLower(args[0]))
	if err != nil {
		s.errorf("invalid square: %s", args[0])
		return
	}
	targets := s.game.LegalMovesFrom(sq)
	s.render(targets)
	if len(targets) == 0 {
		s.printf("No legal moves from %s\n", sq)
		return
	}
	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = t.String()
	}
	s.printf("%s: %s\n", sq, strings.Join(names, " "))
}

func (s *session) setTheme(args []string) {
	if len(args) != 1 {
		s.errorf("usage: theme <off|brown|green|gray>")
		return
	}
	theme, err := display.ParseTheme(strings.ToLower(args[0]))
	if err != nil {
		s.errorf("%v", err)
		return
	}
	if !s.colored && theme != display.ThemeOff {
		s.errorf("colors are disabled, output is not a terminal")
		return
	}
	s.theme = theme
	s.render(nil)
}

func (s *session) render(highlights []chess.Square) {
	opts := display.Options{
		Theme:       s.theme,
		Glyphs:      s.cfg.Glyphs,
		Highlights:  highlights,
		Perspective: s.perspective,
	}
	if err := display.RenderBoard(s.out, s.game.Board(), opts); err != nil {
		s.logger.Warn("render board", zap.Error(err))
	}
}

// onChange runs after every accepted move and every reset.
func (s *session) onChange() {
	s.render(nil)
	history := s.game.History()
	if len(history) > 0 {
		last := history[len(history)-1]
		s.printf("%d. %s\n", last.Seq, last.SAN)
	}
	switch {
	case s.game.Outcome() != chess.NoOutcome:
		s.printf("%s\n", display.Colorize(s.colored, display.Green,
			fmt.Sprintf("Game over: %s (%s)", s.game.Outcome(), s.game.Method())))
	case s.game.InCheck():
		s.printf("%s to move, in check\n", display.ColorForTurn(s.colored, s.game.Turn()))
	}
}

func (s *session) claimDraw() {
	draws := s.game.EligibleDraws()
	if len(draws) == 0 {
		s.errorf("no draw can be claimed")
		return
	}
	if err := s.game.Draw(draws[0]); err != nil {
		s.errorf("%v", err)
	}
}

func (s *session) export(kind, path string) error {
	opts := []image.Option{
		image.SquareSize(s.cfg.SVG.SquareSize),
		image.Perspective(s.perspective),
	}
	if history := s.game.History(); len(history) > 0 {
		last := history[len(history)-1]
		opts = append(opts, image.MarkSquares(lastMoveColor, last.From, last.To))
	}

	encode := image.SVG
	if kind == "png" {
		encode = image.PNG
	}
	return writeFile(path, func(w io.Writer) error {
		return encode(w, s.game.Board(), opts...)
	})
}

// writeFile creates path and fills it with write. A failed write leaves no
// file behind.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}
