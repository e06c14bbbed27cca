package cmd

import (
	"context"
	"database/sql"
	"log"

	"github.com/jjenkins/gazette/internal/config"
	"github.com/jjenkins/gazette/internal/model"
	"github.com/jjenkins/gazette/internal/service"
	"github.com/jjenkins/gazette/internal/source"
	"github.com/jjenkins/gazette/internal/store"
)

// snapshotSource returns the loader for the configured notice source and a
// function releasing whatever it holds open.
func snapshotSource(cfg *config.Config) (service.SnapshotFunc, func(), error) {
	if cfg.UseDatabase() {
		db, err := store.NewDB(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		log.Println("Reading notices from PostgreSQL")
		noticeStore := store.NewNoticeStore(db)
		return noticeStore.LoadSnapshot, func() { db.Close() }, nil
	}

	log.Printf("Reading notices from %s", cfg.Source)
	client := source.NewClient()
	load := func(ctx context.Context) (*model.RecordSet, error) {
		table, err := client.Load(ctx, cfg.Source)
		if err != nil {
			return nil, err
		}
		return table.RecordSet(), nil
	}
	return load, func() {}, nil
}

// loadSnapshot loads the configured source once
func loadSnapshot(ctx context.Context, cfg *config.Config) *model.RecordSet {
	load, closeSource, err := snapshotSource(cfg)
	if err != nil {
		log.Fatalf("Failed to open notice source: %v", err)
	}
	defer closeSource()

	set, err := load(ctx)
	if err != nil {
		log.Fatalf("Failed to load notices: %v", err)
	}
	return set
}

// requireDB connects to the configured database or exits
func requireDB(cfg *config.Config) *sql.DB {
	if !cfg.UseDatabase() {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	log.Println("Connecting to database...")
	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}
