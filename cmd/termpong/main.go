// Terminal front-end: plays in the terminal with the mouse as the paddle.
//
// Usage: go run ./cmd/termpong [-config path] [-seed n] [-log-file path]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/pthm-cable/handpong/config"
	"github.com/pthm-cable/handpong/sim"
	"github.com/pthm-cable/handpong/tui"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	fps := flag.Int("fps", 30, "Frames per second")
	logFile := flag.String("log-file", "", "Write logs to this file (the terminal is busy)")
	flag.Parse()

	// The screen owns stdout, so logs go to a file or nowhere
	var logOut io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logOut, nil)))

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	engine := sim.New(sim.ParamsFromConfig(cfg), sim.WithSeed(rngSeed))
	engine.Serve(0)
	session := sim.NewSession(engine)

	// Terminals deliver key repeats, not held keys
	step := cfg.Control.KeyboardStep * 3

	app, err := tui.NewApp(session, tui.Options{
		FPS:          *fps,
		MaxDT:        cfg.Control.MaxDT,
		KeyboardStep: step,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start terminal: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = app.Run(ctx)
	stop()
	app.Close()

	s := session.Snapshot()
	slog.Info("game over", "seed", rngSeed, "state", s)
	fmt.Printf("Final score %d : %d\n", s.ScoreLeft, s.ScoreRight)
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("terminal app failed", "error", err)
		os.Exit(1)
	}
}
