package services

import (
	"log"
	"os"
	"sync"
	"time"

	"revivecare/internal/repository"

	"github.com/go-co-op/gocron"
)

const (
	DefaultSessionStaleAfter = 6 * time.Hour
	defaultJanitorInterval   = 15 * time.Minute
)

// SessionJanitor closes exercise sessions that were started but never
// finished, e.g. when the patient closed the camera page.
type SessionJanitor struct {
	repo       repository.ExerciseSessionRepository
	staleAfter time.Duration
	interval   time.Duration

	scheduler *gocron.Scheduler
	mu        sync.Mutex
	running   bool
}

func NewSessionJanitor(repo repository.ExerciseSessionRepository, staleAfter time.Duration) *SessionJanitor {
	if staleAfter <= 0 {
		staleAfter = DefaultSessionStaleAfter
	}
	return &SessionJanitor{
		repo:       repo,
		staleAfter: staleAfter,
		interval:   defaultJanitorInterval,
	}
}

// SessionStaleAfterFromEnv reads SESSION_STALE_AFTER as a Go duration.
func SessionStaleAfterFromEnv() time.Duration {
	raw := os.Getenv("SESSION_STALE_AFTER")
	if raw == "" {
		return DefaultSessionStaleAfter
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Invalid SESSION_STALE_AFTER %q, using %s", raw, DefaultSessionStaleAfter)
		return DefaultSessionStaleAfter
	}
	return d
}

// RunOnce closes sessions started before now minus the stale window.
func (j *SessionJanitor) RunOnce(now time.Time) (int64, error) {
	closed, err := j.repo.CloseStale(now.Add(-j.staleAfter))
	if err != nil {
		return 0, err
	}
	if closed > 0 {
		log.Printf("Session janitor closed %d stale exercise sessions", closed)
	}
	return closed, nil
}

func (j *SessionJanitor) Start() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.running {
		return nil
	}

	scheduler := gocron.NewScheduler(time.Local)
	scheduler.SingletonModeAll()
	_, err := scheduler.Every(j.interval).Do(func() {
		if _, err := j.RunOnce(time.Now()); err != nil {
			log.Printf("Session janitor failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	scheduler.StartAsync()
	j.scheduler = scheduler
	j.running = true
	log.Printf("Session janitor started (every %s, stale after %s)", j.interval, j.staleAfter)
	return nil
}

func (j *SessionJanitor) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.running {
		return
	}
	j.scheduler.Stop()
	j.running = false
	log.Println("Session janitor stopped")
}

func (j *SessionJanitor) IsRunning() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.running
}
