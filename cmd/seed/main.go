package main

import (
	"context"
	"log"
	"time"

	"hireflow/internal/config"
	"hireflow/internal/database/migration"
	dbpostgres "hireflow/internal/database/postgres"
	"hireflow/internal/database/seeder"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	runner := migration.Runner{Dir: cfg.Database.MigrationsDir}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	if err := (seeder.Runner{Seeders: seeder.Defaults()}).Run(ctx, db); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	log.Println("seeding complete")
}
