package main

import (
	"context"
	"flag"
	"os"

	"gradebook/internal/config"
	"gradebook/internal/db"
	"gradebook/internal/logger"
	"gradebook/internal/repository"
	"gradebook/internal/seed"
	"gradebook/internal/service"
)

func main() {
	source := flag.String("file", "students.json", "path or http(s) URL of a JSON array of students")
	flag.Parse()

	logger.Info("Starting seed script...")

	cfg := config.Load()
	logger.InitFromDebug(cfg.Debug)

	gormDB, err := db.Open(cfg)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Database migrations completed")

	ctx := context.Background()
	students, err := seed.Load(ctx, *source)
	if err != nil {
		logger.Fatalf("Failed to load students: %v", err)
	}
	logger.Infof("Loaded %d students from %s", len(students), *source)

	// Runs without the cache; a live server may serve stale students until
	// their cache TTL passes.
	svc := service.NewStudentService(repository.NewStudentRepository(gormDB), nil)
	res, err := seed.Apply(ctx, svc, students)
	if err != nil {
		logger.Errorf("Seed aborted: %v", err)
		os.Exit(1)
	}

	logger.Info("Seed completed successfully!")
	logger.Infof("  - New students created: %d", res.Created)
	logger.Infof("  - Existing students updated: %d", res.Updated)
	logger.Infof("  - Invalid records skipped: %d", res.Skipped)
}
