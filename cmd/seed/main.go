package main

import (
	"bytes"
	"context"
	_ "embed"
	"flag"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/staydesk/backoffice-api/internal/config"
	"github.com/staydesk/backoffice-api/internal/database"
	"github.com/staydesk/backoffice-api/internal/services"
)

//go:embed sample.yaml
var sampleFixtures []byte

func main() {
	var file string
	var reset bool
	flag.StringVar(&file, "file", "", "YAML fixture file (default: built-in sample hotel)")
	flag.BoolVar(&reset, "reset", false, "truncate all collections before seeding")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	var src io.Reader = bytes.NewReader(sampleFixtures)
	if file != "" {
		fh, err := os.Open(file)
		if err != nil {
			logger.Fatalf("Failed to open fixtures: %v", err)
		}
		defer fh.Close()
		src = fh
	}
	fixtures, err := parseFixtures(src)
	if err != nil {
		logger.Fatal(err)
	}

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		logger.Fatalf("Failed to migrate schema: %v", err)
	}
	if reset {
		if err := database.Truncate(ctx, db, database.Collections()...); err != nil {
			logger.Fatalf("Failed to reset data: %v", err)
		}
		logger.Info("Existing data cleared")
	}

	deps := services.Deps{Store: database.NewPostgresStore(db), Logger: logger}
	rooms := services.NewRoomService(deps)
	guests := services.NewGuestService(deps)
	s := &seeder{
		rooms:        rooms,
		guests:       guests,
		reservations: services.NewReservationService(deps, rooms, guests, cfg.Lifecycle.CoupleRoomStatus),
		tasks:        services.NewHousekeepingService(deps, rooms),
		today:        time.Now().UTC(),
	}

	counts, err := s.apply(ctx, fixtures)
	if err != nil {
		logger.WithField("created", counts.String()).Fatalf("Seeding stopped: %v", err)
	}
	logger.Infof("Seeded %s", counts)
}
