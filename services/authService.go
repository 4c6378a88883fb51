package services

import (
	"context"
	"time"

	"DoctorPortal/backend"
	"DoctorPortal/models"
	"DoctorPortal/repositories"
	"DoctorPortal/utils"

	"github.com/google/uuid"
)

// AuthService owns the session lifecycle: a session is opened by a backend
// login, carried by an encrypted cookie, and torn down on logout or when the
// backend stops honouring its credentials.
type AuthService struct {
	backend  *backend.Client
	sessions *repositories.SessionRepository
	tokener  *utils.SessionTokener
}

func NewAuthService(backendClient *backend.Client, sessions *repositories.SessionRepository, tokener *utils.SessionTokener) *AuthService {
	return &AuthService{backend: backendClient, sessions: sessions, tokener: tokener}
}

// Login authenticates the doctor against the backend, persists the session
// record, and returns the record with the cookie token that references it.
func (s *AuthService) Login(ctx context.Context, creds models.LoginRequest) (*models.Session, string, error) {
	if err := utils.ValidateLoginRequest(creds); err != nil {
		return nil, "", err
	}

	login, cookies, err := s.backend.Login(ctx, creds)
	if err != nil {
		return nil, "", err
	}

	doctorName := login.DoctorName
	if doctorName == "" {
		doctorName = creds.Username
	}

	sess := &models.Session{
		SessionID:      uuid.New().String(),
		DoctorName:     doctorName,
		Username:       creds.Username,
		AccessToken:    login.AccessToken,
		BackendCookies: cookies,
		CreatedAt:      time.Now(),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, "", err
	}

	token, err := s.tokener.Issue(sess.SessionID)
	if err != nil {
		return nil, "", err
	}
	return sess, token, nil
}

// Resolve maps a cookie token to its stored session record. A nil session
// without error means the token was valid but the record is gone.
func (s *AuthService) Resolve(ctx context.Context, token string) (*models.Session, error) {
	claims, err := s.tokener.Verify(token)
	if err != nil {
		return nil, err
	}
	return s.sessions.Get(ctx, claims.SessionID)
}

// Logout deletes the session record and everything scoped to it.
func (s *AuthService) Logout(ctx context.Context, sess *models.Session) error {
	return s.sessions.Delete(ctx, sess.SessionID)
}
