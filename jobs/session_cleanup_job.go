// File: /jobs/session_cleanup_job.go
package jobs

import (
	"log"
	"time"

	"socialnet-api/services"
)

// SessionCleanupJob periodically deletes expired session rows so the
// sessions table does not grow without bound.
type SessionCleanupJob struct {
	sessions *services.SessionService
	ticker   *time.Ticker
	done     chan bool
}

func NewSessionCleanupJob(sessions *services.SessionService, interval time.Duration) *SessionCleanupJob {
	return &SessionCleanupJob{
		sessions: sessions,
		ticker:   time.NewTicker(interval),
		done:     make(chan bool),
	}
}

// Start begins the cleanup loop.
func (j *SessionCleanupJob) Start() {
	go func() {
		// Run immediately on start
		j.cleanup()

		for {
			select {
			case <-j.ticker.C:
				j.cleanup()
			case <-j.done:
				log.Println("Session cleanup job stopped")
				return
			}
		}
	}()
}

// Stop stops the cleanup loop.
func (j *SessionCleanupJob) Stop() {
	j.ticker.Stop()
	j.done <- true
}

func (j *SessionCleanupJob) cleanup() {
	removed, err := j.sessions.CleanupExpired()
	if err != nil {
		log.Printf("Error during session cleanup: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("Session cleanup removed %d expired sessions", removed)
	}
}
