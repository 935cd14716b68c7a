// Command pongtrace prints a session trace written by pong.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"pongcart/internal/trace"
)

func main() {
	eventsOnly := flag.Bool("events", false, "only print ticks with a serve, bounce or paddle hit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-events] trace-file\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		slog.Error("failed to open trace", slog.Any("error", err))
		os.Exit(1)
	}
	defer f.Close()

	if err := dump(os.Stdout, f, *eventsOnly); err != nil {
		slog.Error("failed to read trace", slog.String("path", flag.Arg(0)), slog.Any("error", err))
		os.Exit(1)
	}
}

func dump(out io.Writer, in io.Reader, eventsOnly bool) error {
	r, err := trace.NewReader(in)
	if err != nil {
		return err
	}

	h := r.Header
	fmt.Fprintf(out, "session %s  %dx%d  players=%d  started=%s\n",
		h.Session, h.Width, h.Height, h.Players, h.Started.UTC().Format("2006-01-02T15:04:05Z"))

	frames := 0
	for {
		fr, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		frames++
		if eventsOnly && fr.Events == 0 {
			continue
		}
		fmt.Fprintf(out, "%8d  ball (%7.2f, %7.2f) vel (%5.2f, %5.2f)  paddles %6.2f %6.2f  %s\n",
			fr.Tick, fr.Ball.X, fr.Ball.Y, fr.Ball.XVel, fr.Ball.YVel, fr.PaddleY[0], fr.PaddleY[1], fr.Events)
	}
	fmt.Fprintf(out, "%d frames\n", frames)
	return nil
}
