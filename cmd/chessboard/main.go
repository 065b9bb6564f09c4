// Package main runs an interactive two-player chess board in the terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"go.uber.org/zap"
	"golang.org/x/term"

	chess "github.com/mway1/chessboard"
	"github.com/mway1/chessboard/internal/config"
	"github.com/mway1/chessboard/internal/display"
	"github.com/mway1/chessboard/internal/obslog"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("chessboard", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML config file")
	fen := fs.String("fen", "", "start from this FEN instead of the standard position")
	pgnPath := fs.String("pgn", "", "replay the game in this PGN file first")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logCfg := obslog.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, File: cfg.Log.File}
	if cfg.Log.Console {
		logCfg.Output = os.Stderr
	}
	logger, closeLog, err := obslog.New(logCfg)
	if err != nil {
		return err
	}
	defer closeLog()

	options, err := gameOptions(*fen, *pgnPath)
	if err != nil {
		return err
	}
	g := chess.NewGame(append([]func(*chess.Game){chess.WithLogger(logger)}, options...)...)
	logger.Info("game started", zap.Stringer("game_id", g.ID()), zap.String("fen", g.FEN()))

	colored := term.IsTerminal(int(os.Stdout.Fd()))
	s := newSession(g, cfg, os.Stdout, colored, logger)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.prompt(),
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Println(display.Colorize(colored, display.Cyan, "Chessboard"))
	fmt.Printf("Type 'help' for commands\n\n")
	s.render(nil)

	for {
		rl.SetPrompt(s.prompt())
		line, err := rl.Readline()
		if err == io.EOF {
			break
		}
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			return err
		}
		if !s.execute(strings.TrimSpace(line)) {
			break
		}
	}
	logger.Info("session closed", zap.Stringer("game_id", g.ID()), zap.Int("moves", len(g.History())))
	return nil
}

// gameOptions turns the -fen and -pgn flags into game options. A PGN
// carries its own start position, so the two are exclusive.
func gameOptions(fen, pgnPath string) ([]func(*chess.Game), error) {
	switch {
	case fen != "" && pgnPath != "":
		return nil, fmt.Errorf("use either -fen or -pgn, not both")
	case fen != "":
		opt, err := chess.FEN(fen)
		if err != nil {
			return nil, err
		}
		return []func(*chess.Game){opt}, nil
	case pgnPath != "":
		f, err := os.Open(pgnPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		opt, err := chess.PGN(f)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", pgnPath, err)
		}
		return []func(*chess.Game){opt}, nil
	}
	return nil, nil
}
