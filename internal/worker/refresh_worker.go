package worker

import (
	"context"
	"log"
	"sync"
	"time"

	"spaceexplorer/internal/service"
)

// RefreshWorker периодически прогревает четыре домена, чтобы входящие
// запросы реже попадали на холодный путь к апстриму.
// Start и Stop зовутся из разных горутин.
type RefreshWorker struct {
	space    service.SpaceService
	interval time.Duration
	stopChan chan struct{}
	stopOnce sync.Once

	mu      sync.Mutex
	started bool
}

func NewRefreshWorker(space service.SpaceService, interval time.Duration) *RefreshWorker {
	return &RefreshWorker{
		space:    space,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

func (w *RefreshWorker) Start() {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return
	}
	w.started = true
	w.mu.Unlock()

	log.Printf("Refresh Worker started with interval %v", w.interval)

	w.warm()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.warm()
		case <-w.stopChan:
			return
		}
	}
}

func (w *RefreshWorker) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopChan)
		log.Println("Refresh Worker stopped")
	})
}

func (w *RefreshWorker) warm() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if _, err := w.space.GetAPOD(ctx, ""); err != nil {
		log.Printf("Refresh: APOD warm-up failed: %v", err)
	}
	if _, err := w.space.GetAsteroids(ctx); err != nil {
		log.Printf("Refresh: asteroid warm-up failed: %v", err)
	}
	if _, err := w.space.GetMarsWeather(ctx); err != nil {
		log.Printf("Refresh: mars weather warm-up failed: %v", err)
	}
	if _, err := w.space.GetLaunches(ctx); err != nil {
		log.Printf("Refresh: launch warm-up failed: %v", err)
	}
}
