package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"DoctorPortal/cache"
	"DoctorPortal/models"
	"DoctorPortal/utils"
)

// SessionRepository persists portal session records in Redis. Records expire
// together with the session cookie.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(cache *cache.Cache) *SessionRepository {
	return &SessionRepository{cache: cache}
}

// Save stores the session record under its identifier.
func (r *SessionRepository) Save(ctx context.Context, sess *models.Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return r.cache.Set(ctx, r.sessionKey(sess.SessionID), payload, utils.SessionExpiry)
}

// Get loads a session record. A missing record returns nil without error.
func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	raw, err := r.cache.Get(ctx, r.sessionKey(sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to get session from cache: %w", err)
	}
	if raw == "" {
		return nil, nil
	}

	var sess models.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &sess, nil
}

// Delete removes the session record and every cache entry scoped to it.
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.cache.DeleteBatch(ctx, r.sessionKey(sessionID)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return r.cache.DeleteAll(ctx, SessionScopedKey(sessionID, "*"))
}

func (r *SessionRepository) sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

// SessionScopedKey builds a cache key that is wiped along with its session.
func SessionScopedKey(sessionID, suffix string) string {
	return fmt.Sprintf("sessiondata:%s:%s", sessionID, suffix)
}
