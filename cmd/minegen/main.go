package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/minededuce/engine/internal/mines"
)

var (
	log = logrus.New()

	width, height, mineCount int
	unique                   bool
	seed                     uint64
	startX, startY           int
	boardCount, concurrency  int
	verbose                  bool
)

func init() {
	flag.IntVar(&width, "width", 16, "board width")
	flag.IntVar(&height, "height", 16, "board height")
	flag.IntVar(&mineCount, "mines", 40, "number of mines")
	flag.BoolVar(&unique, "unique", true, "require a board solvable without guessing")
	flag.Uint64Var(&seed, "seed", 0, "PRNG seed; 0 draws one from system entropy")
	flag.IntVar(&startX, "start-x", -1, "x of the opening click; -1 picks the board center")
	flag.IntVar(&startY, "start-y", -1, "y of the opening click; -1 picks the board center")
	flag.IntVar(&boardCount, "count", 1, "number of boards to generate")
	flag.IntVar(&concurrency, "concurrency", 4, "number of boards to generate in parallel")
	flag.BoolVar(&verbose, "verbose", false, "log each generated board")
}

func setupLogging() {
	level := logrus.InfoLevel
	if verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
}

func main() {
	mainCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	flag.Parse()
	setupLogging()

	params := mines.GameParams{Width: width, Height: height, MineCount: mineCount, Unique: unique}
	if err := params.Validate(); err != nil {
		log.Fatal(err)
	}

	sx, sy := startX, startY
	if sx < 0 {
		sx = width / 2
	}
	if sy < 0 {
		sy = height / 2
	}

	effectiveSeed := seed
	if effectiveSeed == 0 {
		effectiveSeed = mines.NewGeneratorAuto().Seed()
	}
	log.WithFields(logrus.Fields{
		"params": params.String(),
		"seed":   effectiveSeed,
		"start":  fmt.Sprintf("%d,%d", sx, sy),
		"count":  boardCount,
	}).Info("generating")

	// Each board gets its own Generator: the engine is single-threaded
	// and blocking (the RNG it owns is not safe for concurrent use), so
	// the fan-out below runs one independent Generator per goroutine
	// rather than sharing one across the batch.
	var generated atomic.Int64
	g, gCtx := errgroup.WithContext(mainCtx)
	g.SetLimit(concurrency)

	for i := 0; i < boardCount; i++ {
		i := i
		g.Go(func() error {
			if gCtx.Err() != nil {
				return gCtx.Err()
			}

			gen := mines.NewGenerator(effectiveSeed + uint64(i))
			game, err := mines.NewGame(gen, params, sx, sy)
			if err != nil {
				return fmt.Errorf("board %d: %w", i, err)
			}

			generated.Add(1)
			if verbose {
				log.WithField("board", i).Debug("\n" + mines.ToString(game.Knowledge))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("generation failed: %s", err)
	}

	log.Infof("generated %d board(s)", generated.Load())
}
