package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sirupsen/logrus"

	"github.com/pageza/cookbook/backend/config"
	"github.com/pageza/cookbook/backend/internal/database"
	"github.com/pageza/cookbook/backend/internal/logging"
	"github.com/pageza/cookbook/backend/internal/repository"
	"github.com/pageza/cookbook/backend/internal/seed"
	"github.com/pageza/cookbook/backend/internal/service"
)

func main() {
	fixturePath := flag.String("fixture", "", "YAML fixture to load instead of the built-in one")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := logging.Setup(cfg.LogLevel, "text"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fixture, err := loadFixture(*fixturePath)
	if err != nil {
		logrus.WithError(err).Fatal("failed to load fixture")
	}

	db, err := database.Open(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.RunMigrations(db); err != nil {
		logrus.WithError(err).Fatal("failed to run migrations")
	}

	recipes := service.NewRecipeService(repository.NewGormRepository(db, service.GenerateEmbedding))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	results, err := seed.NewSeeder(recipes).Run(ctx, fixture)
	printSummary(results)
	if err != nil {
		logrus.WithError(err).Fatal("seeding failed")
	}
}

func loadFixture(path string) (*seed.Fixture, error) {
	if path == "" {
		return seed.Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return seed.Parse(data)
}

func printSummary(results []seed.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Recipe", "ID", "Cook logs", "Status"})

	created := 0
	for _, r := range results {
		status, id := "created", r.ID.String()
		if r.Skipped {
			status, id = "skipped", "-"
		} else {
			created++
		}
		t.AppendRow(table.Row{r.Name, id, r.CookLogs, status})
	}
	t.AppendFooter(table.Row{"", "", "Created", created})
	t.Render()
}
