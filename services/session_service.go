// File: /services/session_service.go
package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"socialnet-api/models"
	"socialnet-api/repositories"
)

// SessionStore is the session lifecycle used by middleware and controllers:
// Create binds a fresh opaque token to a user, Get resolves a token to the
// user snapshot, Destroy invalidates a token.
type SessionStore interface {
	Create(userID string) (string, error)
	Get(token string) (*models.User, error)
	Destroy(token string) error
}

type SessionService struct {
	repo     *repositories.SessionRepository
	lifetime time.Duration
}

func NewSessionService(db *gorm.DB, lifetime time.Duration) *SessionService {
	return &SessionService{
		repo:     repositories.NewSessionRepository(db),
		lifetime: lifetime,
	}
}

func (s *SessionService) Create(userID string) (string, error) {
	session := models.Session{
		Token:     uuid.New().String(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.lifetime),
	}
	if err := s.repo.Create(&session); err != nil {
		return "", err
	}
	return session.Token, nil
}

// Get resolves a token to its user. Unknown and expired tokens both return
// repositories.ErrSessionNotFound.
func (s *SessionService) Get(token string) (*models.User, error) {
	session, err := s.repo.FindLive(token)
	if err != nil {
		return nil, err
	}
	user := session.User.Public()
	return &user, nil
}

func (s *SessionService) Destroy(token string) error {
	return s.repo.Delete(token)
}

// CleanupExpired removes stale session rows. Called by the cleanup job.
func (s *SessionService) CleanupExpired() (int64, error) {
	return s.repo.DeleteExpired()
}
