package main

import (
	"flag"

	"drawpoker-server/internal/config"
	"drawpoker-server/pkg/store"

	"github.com/sirupsen/logrus"
)

var migrationsPath = flag.String("path", "", "migrations path (defaults to the configured path, then ./sql)")

func main() {
	flag.Parse()

	db, err := store.Connect(config.Instance().PGDSN)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to postgres")
	}

	if err := store.Migrate(db, path()); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	logrus.Info("migrations complete")
}

func path() string {
	if *migrationsPath != "" {
		return *migrationsPath
	}

	if configured := config.Instance().MigrationsPath; configured != "" {
		return configured
	}

	return "./sql"
}
