package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"drawpoker-server/internal/config"
	"drawpoker-server/internal/mux"
	"drawpoker-server/pkg/poker/bot"
	"drawpoker-server/pkg/poker/draw"
	"drawpoker-server/pkg/poker/event"
	"drawpoker-server/pkg/store"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", ":5000", "the listen address")
var games = flag.Int("games", 1, "number of simulated games to host")
var players = flag.Int("players", 4, "players per game")

func main() {
	flag.Parse()
	setupLogger()

	var snapshots *store.SnapshotStore
	if dsn := config.Instance().PGDSN; dsn != "" {
		db, err := store.Connect(dsn)
		if err != nil {
			logrus.WithError(err).Fatal("could not connect to postgres")
		}

		if err := store.Migrate(db, migrationsPath()); err != nil {
			logrus.WithError(err).Fatal("could not run migrations")
		}

		snapshots = store.NewSnapshotStore(db)
	}

	m := mux.NewMux(Version, snapshots)
	for i := 0; i < *games; i++ {
		if err := startGame(m, snapshots); err != nil {
			logrus.WithError(err).Fatal("could not start game")
		}
	}

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization"},
		AllowedMethods: []string{http.MethodGet},
	})

	srv := &http.Server{
		Addr:         *addr,
		Handler:      handlers.CombinedLoggingHandler(os.Stdout, c.Handler(m)),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithField("addr", srv.Addr).Info("listening")
	logrus.Fatal(srv.ListenAndServe())
}

func startGame(m *mux.Mux, snapshots *store.SnapshotStore) error {
	seats := make([]draw.Seat, *players)
	for i := range seats {
		seats[i] = draw.Seat{
			ID:       int64(i + 1),
			Name:     fmt.Sprintf("bot-%d", i+1),
			Provider: bot.NewRandom(nil),
		}
	}

	logger := logrus.StandardLogger()
	g, err := draw.NewGame(logger, config.Instance().GameOptions(), seats)
	if err != nil {
		return err
	}

	lg := m.RegisterGame(g.ID(), logger)
	g.SetSink(event.MultiSink{event.NewLogSink(logger), lg.Hub()})

	recorders := draw.MultiRecorder{lg}
	if snapshots != nil {
		recorders = append(recorders, snapshots)
	}
	g.SetRecorder(recorders)

	go func() {
		if err := g.Run(context.Background()); err != nil {
			logger.WithError(err).WithField("gameId", g.ID()).Error("game failed")
			return
		}

		logger.WithField("gameId", g.ID()).Info("game finished")
	}()

	return nil
}

func migrationsPath() string {
	if path := config.Instance().MigrationsPath; path != "" {
		return path
	}

	return "./sql"
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if config.Instance().Log.JSON || strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
