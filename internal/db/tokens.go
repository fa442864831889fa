package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	usermodels "io.winapps.adminconsole/internal/models/account"
)

// ErrTokenNotFound is returned when a bearer token belongs to no known session
var ErrTokenNotFound = errors.New("token not found")

const sessionTTL = 24 * time.Hour

// TokenRepository resolves session tokens to user uids through Redis, then Postgres
type TokenRepository struct {
	postgres *pgxpool.Pool
	redis    *redis.Client
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(postgres *pgxpool.Pool, redisClient *redis.Client) *TokenRepository {
	return &TokenRepository{
		postgres: postgres,
		redis:    redisClient,
	}
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

// ResolveToken returns the uid of the user holding token
func (r *TokenRepository) ResolveToken(ctx context.Context, token string) (string, error) {
	if cached, err := r.redis.Get(ctx, sessionKey(token)).Result(); err == nil {
		var user usermodels.User
		if err := json.Unmarshal([]byte(cached), &user); err == nil && user.UID != "" {
			return user.UID, nil
		}
	}

	var user usermodels.User
	var displayName *string
	err := r.postgres.QueryRow(ctx, `
		SELECT uid, email, display_name, role, COALESCE(created_at, NOW()), COALESCE(updated_at, NOW())
		FROM users
		WHERE token = $1`,
		token,
	).Scan(&user.UID, &user.Email, &displayName, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up token: %w", err)
	}
	if displayName != nil {
		user.DisplayName = *displayName
	}

	// The token itself is the cache key; it is not repeated in the value
	if userJSON, err := json.Marshal(user); err == nil {
		r.redis.Set(ctx, sessionKey(token), userJSON, sessionTTL)
	}
	return user.UID, nil
}
