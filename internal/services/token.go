package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/plateful/recipe-backend/internal/errs"
	"github.com/plateful/recipe-backend/internal/models"
)

const (
	// TokenCacheKeyPrefix is the Redis key prefix for token -> user id entries.
	TokenCacheKeyPrefix = "authtoken:"
	// TokenCacheTTL bounds how long a resolution is served from Redis before
	// falling back to Postgres again.
	TokenCacheTTL = time.Hour
)

// TokenStore is the persistence surface the token service needs.
type TokenStore interface {
	Create(ctx context.Context, t *models.Token) error
	GetByUser(ctx context.Context, userID uuid.UUID) (*models.Token, error)
	GetByValue(ctx context.Context, value string) (*models.Token, error)
}

// TokenService issues and resolves opaque bearer tokens. Postgres holds the
// source of truth (one row per user); Redis, when configured, caches
// token -> user id lookups.
type TokenService struct {
	tokens TokenStore
	users  UserStore
	cache  *redis.Client // nil disables caching
}

func NewTokenService(tokens TokenStore, users UserStore, cache *redis.Client) *TokenService {
	return &TokenService{tokens: tokens, users: users, cache: cache}
}

// IssueOrFetch returns the user's existing token value, creating one on
// first login. Subsequent calls return the identical value.
func (s *TokenService) IssueOrFetch(ctx context.Context, userID uuid.UUID) (string, error) {
	existing, err := s.tokens.GetByUser(ctx, userID)
	if err == nil {
		return existing.Value, nil
	}
	if !errors.Is(err, errs.ErrNotFound) {
		return "", err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := &models.Token{
		ID:        uuid.New(),
		UserID:    userID,
		Value:     base64.URLEncoding.EncodeToString(raw),
		CreatedAt: time.Now(),
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			// Lost a race with a concurrent login; reuse the winner's token
			if existing, err := s.tokens.GetByUser(ctx, userID); err == nil {
				return existing.Value, nil
			}
		}
		return "", err
	}
	return token.Value, nil
}

// Resolve maps a token value to its user, or errs.ErrUnauthenticated when
// the token is unknown.
func (s *TokenService) Resolve(ctx context.Context, value string) (*models.User, error) {
	if value == "" {
		return nil, errs.ErrUnauthenticated
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, TokenCacheKeyPrefix+value).Result(); err == nil {
			if userID, err := uuid.Parse(cached); err == nil {
				return s.lookupUser(ctx, userID)
			}
		}
	}

	token, err := s.tokens.GetByValue(ctx, value)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.ErrUnauthenticated
		}
		return nil, err
	}

	if s.cache != nil {
		// Cache failures never fail the request
		s.cache.Set(ctx, TokenCacheKeyPrefix+value, token.UserID.String(), TokenCacheTTL)
	}
	return s.lookupUser(ctx, token.UserID)
}

func (s *TokenService) lookupUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}
