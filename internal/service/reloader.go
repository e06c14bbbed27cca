package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/jjenkins/gazette/internal/model"
	"github.com/jjenkins/gazette/internal/query"
)

// SnapshotFunc produces a fresh snapshot from the configured source
type SnapshotFunc func(ctx context.Context) (*model.RecordSet, error)

// Reloader refreshes the snapshot an Engine serves
type Reloader struct {
	engine    *query.Engine
	load      SnapshotFunc
	mu        sync.Mutex
	logger    *log.Logger
	errLogger *log.Logger
}

// NewReloader creates a Reloader for engine
func NewReloader(engine *query.Engine, load SnapshotFunc) *Reloader {
	return &Reloader{
		engine:    engine,
		load:      load,
		logger:    log.New(os.Stdout, "", log.LstdFlags),
		errLogger: log.New(os.Stderr, "ERROR: ", log.LstdFlags),
	}
}

// Reload loads a new snapshot and swaps it in. On failure the current
// snapshot keeps being served. Concurrent calls run one at a time.
func (r *Reloader) Reload(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, err := r.load(ctx)
	if err != nil {
		r.errLogger.Printf("Snapshot reload failed, keeping %d notices: %v", r.engine.Snapshot().Len(), err)
		return fmt.Errorf("failed to reload snapshot: %w", err)
	}

	r.engine.Replace(set)
	r.logger.Printf("Loaded %d notices (%d dropped with unknown category)", set.Len(), set.Dropped())
	return nil
}
