package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/pageza/cookbook/backend/config"
	"github.com/pageza/cookbook/backend/internal/database"
	"github.com/pageza/cookbook/backend/internal/logging"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := logging.Setup(cfg.LogLevel, "text"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	open := func() (migrator, error) {
		if cfg.DBDriver != config.DriverPostgres {
			return nil, fmt.Errorf("migrations only apply to postgres, DB_DRIVER is %q", cfg.DBDriver)
		}
		sqlDB, err := database.NewSQL(cfg)
		if err != nil {
			return nil, err
		}
		return database.NewMigrator(sqlDB)
	}

	if err := newRootCmd(open).Execute(); err != nil {
		logrus.WithError(err).Error("migration failed")
		os.Exit(1)
	}
}
