// Package redis implements the session-state port on a Redis key-value
// store. Values are JSON; a missing or unparseable value always reads as
// absent so a corrupt session degrades to a fresh one instead of an error.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/sajhahub/sajha-hub-backend/internal/domain"
	"github.com/sajhahub/sajha-hub-backend/internal/repository/ports"
)

const (
	userKeyPrefix     = "session:user:"
	cityKeyPrefix     = "session:city:"
	voteKeyPrefix     = "session:vote:"
	insightsKeyPrefix = "cache:insights:"
)

// insightsTTL bounds how stale a cached city briefing may get.
const insightsTTL = time.Hour

type SessionStore struct {
	client *goredis.Client
	ttl    time.Duration
}

var (
	_ ports.SessionStore  = (*SessionStore)(nil)
	_ ports.InsightsCache = (*SessionStore)(nil)
)

func NewSessionStore(client *goredis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func NewClient(addr, password string, db int) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func (s *SessionStore) SaveUser(ctx context.Context, user *domain.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}
	return s.client.Set(ctx, userKeyPrefix+user.ID.String(), payload, s.ttl).Err()
}

func (s *SessionStore) LoadUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	raw, err := s.client.Get(ctx, userKeyPrefix+id.String()).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		// Corrupt value; treat as signed out rather than failing the request.
		return nil, nil
	}
	if user.ID != id {
		return nil, nil
	}
	return &user, nil
}

func (s *SessionStore) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.client.Del(ctx, userKeyPrefix+id.String()).Err()
}

func (s *SessionStore) SaveCity(ctx context.Context, userID uuid.UUID, city string) error {
	return s.client.Set(ctx, cityKeyPrefix+userID.String(), city, s.ttl).Err()
}

func (s *SessionStore) LoadCity(ctx context.Context, userID uuid.UUID) (string, error) {
	city, err := s.client.Get(ctx, cityKeyPrefix+userID.String()).Result()
	if errors.Is(err, goredis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return city, nil
}

func (s *SessionStore) MarkVoted(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	key := voteKeyPrefix + userID.String() + ":" + listingID.String()
	return s.client.SetNX(ctx, key, 1, 0).Result()
}

func (s *SessionStore) SaveInsights(ctx context.Context, insights *domain.CityInsights) error {
	payload, err := json.Marshal(insights)
	if err != nil {
		return fmt.Errorf("encode insights: %w", err)
	}
	return s.client.Set(ctx, insightsKeyPrefix+insights.City, payload, insightsTTL).Err()
}

func (s *SessionStore) LoadInsights(ctx context.Context, city string) (*domain.CityInsights, error) {
	raw, err := s.client.Get(ctx, insightsKeyPrefix+city).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var insights domain.CityInsights
	if err := json.Unmarshal(raw, &insights); err != nil {
		return nil, nil
	}
	return &insights, nil
}
