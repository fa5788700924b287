package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"google.golang.org/api/idtoken"

	"github.com/sajhahub/sajha-hub-backend/internal/domain"
	"github.com/sajhahub/sajha-hub-backend/internal/repository/ports"
	"github.com/sajhahub/sajha-hub-backend/internal/util"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidGoogleToken = errors.New("invalid google token")
)

type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

type AuthService struct {
	accounts ports.AccountRepository
	sessions ports.SessionStore
	tokens   *util.JWTManager

	googleAud   string
	defaultCity string

	// validateGoogleToken is swappable so tests do not need a live Google
	// endpoint.
	validateGoogleToken func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

func NewAuthService(
	accounts ports.AccountRepository,
	sessions ports.SessionStore,
	tokens *util.JWTManager,
	googleAud, defaultCity string,
) *AuthService {
	return &AuthService{
		accounts:            accounts,
		sessions:            sessions,
		tokens:              tokens,
		googleAud:           googleAud,
		defaultCity:         defaultCity,
		validateGoogleToken: idtoken.Validate,
	}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if email == "" || name == "" {
		return nil, ErrInvalidCredentials
	}
	if err := util.ValidatePassword(password); err != nil {
		return nil, err
	}
	if existing, err := s.accounts.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, salt, err := util.DerivePassword(password)
	if err != nil {
		return nil, err
	}
	account, err := s.accounts.Create(ctx, &domain.Account{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		PasswordSalt: salt,
	})
	if err != nil {
		return nil, err
	}
	return s.openSession(ctx, account, false)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil || account == nil {
		return nil, ErrInvalidCredentials
	}
	if !util.VerifyPassword(password, account.PasswordSalt, account.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.openSession(ctx, account, false)
}

// LoginWithGoogle exchanges a Google ID token for a session. Google accounts
// arrive with a verified email address.
func (s *AuthService) LoginWithGoogle(ctx context.Context, idTok string) (*AuthResult, error) {
	payload, err := s.validateGoogleToken(ctx, idTok, s.googleAud)
	if err != nil {
		return nil, ErrInvalidGoogleToken
	}
	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if email == "" {
		return nil, ErrInvalidGoogleToken
	}
	account, err := s.accounts.UpsertByEmail(ctx, strings.ToLower(email), name)
	if err != nil {
		return nil, err
	}
	return s.openSession(ctx, account, true)
}

// Authenticate resolves a bearer token to the session user behind it. A
// valid token whose session has been signed out is still unauthenticated.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	user, err := s.sessions.LoadUser(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNoSession
	}
	return user, nil
}

// openSession resumes the member's existing session state when one survives
// in the store, otherwise seeds a fresh profile.
func (s *AuthService) openSession(ctx context.Context, account *domain.Account, emailVerified bool) (*AuthResult, error) {
	user, err := s.sessions.LoadUser(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = &domain.User{
			ID:    account.ID,
			Name:  account.Name,
			Email: account.Email,
			City:  s.defaultCity,
			Tier:  domain.TierYatri,
		}
	}
	if emailVerified {
		user.EmailVerified = true
	}
	if err := s.sessions.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokens.Generate(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}
