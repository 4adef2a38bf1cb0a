package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"drawpoker-server/internal/rng"
	"drawpoker-server/pkg/poker/bot"
	"drawpoker-server/pkg/poker/draw"
	"drawpoker-server/pkg/poker/event"

	"github.com/sirupsen/logrus"
)

var (
	players = flag.Int("players", 4, "number of players")
	hands   = flag.Int("hands", 100, "maximum number of hands")
	chips   = flag.Int("chips", 1000, "starting chips")
	seed    = flag.Int64("seed", 0, "seed for a reproducible game (0 = random)")
	verbose = flag.Bool("v", false, "log every game event")
)

func main() {
	flag.Parse()

	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	options := draw.DefaultOptions()
	options.StartingChips = *chips
	options.MaxRounds = *hands
	options.Seed = *seed
	options.DecisionTimeout = 0 // bots answer immediately

	seats := make([]draw.Seat, *players)
	for i := range seats {
		var generator rng.Generator
		if *seed != 0 {
			generator = rng.NewSeeded(*seed + int64(i))
		}

		seats[i] = draw.Seat{
			ID:       int64(i + 1),
			Name:     fmt.Sprintf("bot-%d", i+1),
			Provider: bot.NewRandom(generator),
		}
	}

	g, err := draw.NewGame(logger, options, seats)
	if err != nil {
		logger.WithError(err).Fatal("could not create game")
	}

	if *verbose {
		g.SetSink(event.NewLogSink(logger))
	}

	if err := g.Run(context.Background()); err != nil {
		logger.WithError(err).Fatal("game failed")
	}

	fmt.Printf("game %s finished after %d hand(s)\n\n", g.ID(), g.Round()-1)
	for i, standing := range g.Standings() {
		fmt.Printf("%2d. %-12s $%d\n", i+1, standing.Name, standing.Chips)
	}
}
