package main

import (
	"leaguedash/pkg/config"
	"leaguedash/pkg/database"
	"leaguedash/pkg/logger"
	"leaguedash/scheduler/jobs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Couldn't initialize the configuration: %v", err)
	}

	db, err := database.NewConnection(cfg)
	if err != nil {
		log.Fatal(err)
	}

	// Runs the migrations.
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	appLogger, err := logger.New(cfg.Bucket)
	if err != nil {
		log.Fatalf("Couldn't initialize the logger: %v", err)
	}

	log.Println("Starting scheduler.")

	// Create a new scheduler with options.
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	// Register the streak rebuild job - once per day at 4:00 AM.
	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(4, 0, 0),
			),
		),
		gocron.NewTask(
			jobs.RecalculateStreaks,
			cfg,
			appLogger,
		),
		gocron.WithName("streak-recalculation"),
		gocron.WithTags("streaks"),
		gocron.JobOption(gocron.WithStartImmediately()),
	)
	if err != nil {
		log.Fatalf("Failed to create streak recalculation job: %v", err)
	}

	// Register the log shipping job - once per day at 1:00 AM.
	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(1, 0, 0),
			),
		),
		gocron.NewTask(
			jobs.ShipLogs,
			appLogger,
		),
		gocron.WithName("log-shipping"),
		gocron.WithTags("logs"),
	)
	if err != nil {
		log.Fatalf("Failed to create log shipping job: %v", err)
	}

	// Start the scheduler.
	s.Start()

	defer func() {
		// Shutdown the scheduler when main() exits.
		err := s.Shutdown()
		if err != nil {
			log.Printf("Error shutting down scheduler: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Wait for termination signal.
	<-sigChan
	log.Println("Shutting down scheduler...")
}
