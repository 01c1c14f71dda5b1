// File: /repositories/session_repository.go
package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"socialnet-api/models"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(session *models.Session) error {
	return r.db.Create(session).Error
}

// FindLive returns the session for the token together with its user.
// Expired and unknown tokens both map to ErrSessionNotFound: the caller
// never learns which of the two it was.
func (r *SessionRepository) FindLive(token string) (*models.Session, error) {
	var session models.Session
	err := r.db.Preload("User").First(&session, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

func (r *SessionRepository) Delete(token string) error {
	return r.db.Delete(&models.Session{}, "token = ?", token).Error
}

func (r *SessionRepository) DeleteExpired() (int64, error) {
	res := r.db.Delete(&models.Session{}, "expires_at < ?", time.Now())
	return res.RowsAffected, res.Error
}
