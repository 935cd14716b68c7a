package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

const DefaultTickRate = 60

type Options struct {
	// TickRate is the number of frames per second. Zero means DefaultTickRate.
	TickRate int
	// MaxTicks stops the loop after that many frames. Zero runs until quit or cancel.
	MaxTicks uint64
	// Unpaced runs frames back to back instead of waiting on the ticker.
	Unpaced bool
	// OnTick runs after every Update, before Draw.
	OnTick func(tick uint64)
	Logger *slog.Logger
}

// Run initialises cart once and then drives one Update and one Draw per frame
// until ctx is cancelled, the frontend reports ErrQuit or MaxTicks is reached.
// A quit or an exhausted tick budget is a clean stop and returns nil.
func Run(ctx context.Context, cart Cartridge, fe Frontend, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rate := opts.TickRate
	if rate <= 0 {
		rate = DefaultTickRate
	}

	cart.Init()
	logger.Debug("cartridge initialised", slog.Int("tickRate", rate), slog.Bool("unpaced", opts.Unpaced))

	var tick uint64
	frame := func() (bool, error) {
		if err := fe.Poll(); err != nil {
			if errors.Is(err, ErrQuit) {
				logger.Info("quit requested", slog.Uint64("tick", tick))
				return true, nil
			}
			return true, fmt.Errorf("poll input: %w", err)
		}

		cart.Update()
		tick++
		if opts.OnTick != nil {
			opts.OnTick(tick)
		}

		cart.Draw()
		if err := fe.Present(); err != nil {
			return true, fmt.Errorf("present frame %d: %w", tick, err)
		}

		if opts.MaxTicks > 0 && tick >= opts.MaxTicks {
			logger.Info("tick budget reached", slog.Uint64("tick", tick))
			return true, nil
		}
		return false, nil
	}

	if opts.Unpaced {
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			if done, err := frame(); done {
				return err
			}
		}
	}

	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if done, err := frame(); done {
				return err
			}
		}
	}
}
