package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/sajhahub/sajha-hub-backend/internal/domain"
	"github.com/sajhahub/sajha-hub-backend/internal/repository/ports"
)

var ErrNoSession = errors.New("no active session")

type SessionService struct {
	sessions    ports.SessionStore
	defaultCity string
}

func NewSessionService(sessions ports.SessionStore, defaultCity string) *SessionService {
	return &SessionService{sessions: sessions, defaultCity: defaultCity}
}

func (s *SessionService) Current(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.sessions.LoadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNoSession
	}
	return user, nil
}

func (s *SessionService) SignOut(ctx context.Context, userID uuid.UUID) error {
	return s.sessions.DeleteUser(ctx, userID)
}

// SelectCity records the member's home city. Unknown cities are accepted;
// pricing for them falls back to US dollars.
func (s *SessionService) SelectCity(ctx context.Context, userID uuid.UUID, city string) (string, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		city = s.defaultCity
	}
	if err := s.sessions.SaveCity(ctx, userID, city); err != nil {
		return "", err
	}
	if user, err := s.sessions.LoadUser(ctx, userID); err == nil && user != nil {
		user.City = city
		if err := s.sessions.SaveUser(ctx, user); err != nil {
			return "", err
		}
	}
	return city, nil
}

// City returns the selected city, falling back to the configured default
// when none was chosen yet.
func (s *SessionService) City(ctx context.Context, userID uuid.UUID) (string, error) {
	city, err := s.sessions.LoadCity(ctx, userID)
	if err != nil {
		return "", err
	}
	if city == "" {
		return s.defaultCity, nil
	}
	return city, nil
}
