package refresher

import (
	"context"
	"log"
	"sync"
	"time"

	"readlytics/internal/analytics"
)

// Refresher reloads the dataset snapshot from its source on a fixed
// interval so a replaced input file shows up without a restart.
type Refresher struct {
	engine       *analytics.Engine
	interval     time.Duration
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	mu           sync.RWMutex
	lastReloaded time.Time
	isRunning    bool
}

func New(engine *analytics.Engine, interval time.Duration) *Refresher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Refresher{
		engine:   engine,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (r *Refresher) Start() {
	if r.interval <= 0 {
		log.Println("Background dataset reloading disabled")
		return
	}

	r.mu.Lock()
	if r.isRunning {
		r.mu.Unlock()
		return
	}
	r.isRunning = true
	r.mu.Unlock()

	log.Printf("Starting dataset refresher with interval: %v", r.interval)

	r.wg.Add(1)
	go r.reloadLoop()
}

func (r *Refresher) Stop() {
	r.mu.Lock()
	if !r.isRunning {
		r.mu.Unlock()
		return
	}
	r.isRunning = false
	r.mu.Unlock()

	log.Println("Stopping dataset refresher...")
	r.cancel()
	r.wg.Wait()
	log.Println("Dataset refresher stopped")
}

func (r *Refresher) reloadLoop() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := r.Reload(); err != nil {
				log.Printf("Error reloading dataset: %v", err)
			}
		case <-r.ctx.Done():
			return
		}
	}
}

// Reload forces a fresh load from the source, replacing the snapshot.
func (r *Refresher) Reload() error {
	if err := r.engine.Refresh(); err != nil {
		return err
	}

	r.mu.Lock()
	r.lastReloaded = time.Now()
	r.mu.Unlock()

	log.Println("Dataset snapshot reloaded")
	return nil
}

func (r *Refresher) LastReloaded() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastReloaded
}

func (r *Refresher) IsRunning() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.isRunning
}
