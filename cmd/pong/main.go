package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"pongcart/internal/config"
	"pongcart/internal/console"
	"pongcart/internal/pong"
	"pongcart/internal/renderer"
	"pongcart/internal/trace"
	"pongcart/internal/window"
)

func main() {
	if len(os.Args) == 1 {
		config.LoadConfig("")
	} else {
		config.LoadConfig(os.Args[1])
	}
	cfg := config.Config

	logOut, closeLog, err := logOutput(cfg)
	if err != nil {
		slog.Error("failed to open log file", slog.Any("error", err))
		os.Exit(1)
	}
	defer closeLog()

	slog.SetDefault(slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.Level(cfg.LogLevel)})))

	session := uuid.New()
	logger := slog.With(slog.String("session", session.String()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = run(ctx, cfg, session, logger)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("pong exited", slog.Any("error", err))
		stop()
		closeLog()
		os.Exit(1)
	}
}

// logOutput picks the log destination. The terminal frontend owns the screen,
// so without a log file its logs are dropped below warn level.
func logOutput(cfg config.Configuration) (io.Writer, func(), error) {
	if cfg.LogFile == "" {
		if cfg.Frontend == config.FrontendTerminal && cfg.LogLevel < int(slog.LevelWarn) {
			return io.Discard, func() {}, nil
		}
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", cfg.LogFile, err)
	}
	return f, func() { f.Close() }, nil
}

func run(ctx context.Context, cfg config.Configuration, session uuid.UUID, logger *slog.Logger) (err error) {
	var game *pong.Game

	opts := console.Options{
		TickRate: cfg.TickRate,
		MaxTicks: cfg.MaxTicks,
		Logger:   logger,
	}

	if cfg.TracePath != "" {
		tw, terr := trace.Create(cfg.TracePath, trace.Header{
			Session: session,
			Width:   console.ScreenWidth,
			Height:  console.ScreenHeight,
			Players: cfg.Players,
			Started: time.Now(),
		})
		if terr != nil {
			return terr
		}
		defer func() {
			if cerr := tw.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close trace: %w", cerr)
			}
		}()

		var traceErr error
		opts.OnTick = func(uint64) {
			if traceErr != nil {
				return
			}
			if traceErr = tw.WriteFrame(trace.FrameOf(game.Snapshot())); traceErr != nil {
				logger.Warn("tracing stopped", slog.Any("error", traceErr))
			}
		}
		logger.Info("tracing", slog.String("path", cfg.TracePath))
	}

	logger.Info("starting", slog.String("frontend", cfg.Frontend), slog.Int("players", cfg.Players))

	switch cfg.Frontend {
	case config.FrontendHeadless:
		rec := console.NewRecorder(cfg.Players)
		game = pong.New(rec, logger)
		opts.Unpaced = true
		err = console.Run(ctx, game, rec, opts)

	case config.FrontendTerminal:
		term, oerr := renderer.Open(cfg.Players, cfg.HoldFrames, logger)
		if oerr != nil {
			return oerr
		}
		game = pong.New(term, logger)
		err = console.Run(ctx, game, term, opts)
		if cerr := term.Close(); cerr != nil && err == nil {
			err = cerr
		}

	case config.FrontendWindow:
		w := window.New(ctx, cfg.Players, window.Options{
			Options: opts,
			Scale:   cfg.Scale,
			Title:   "pong",
		})
		game = pong.New(w, logger)
		err = w.Run(game)

	default:
		return fmt.Errorf("%w: unknown frontend %q", config.ErrInvalid, cfg.Frontend)
	}

	snap := game.Snapshot()
	logger.Info("stopped",
		slog.Uint64("tick", snap.Tick),
		slog.Float64("ballX", float64(snap.Ball.X)),
		slog.Float64("ballY", float64(snap.Ball.Y)),
	)
	return err
}
