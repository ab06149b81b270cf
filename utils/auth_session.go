package utils

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// AuthSessionPrefix is the prefix used for Redis auth session keys.
const AuthSessionPrefix = "authSession:"

// AuthSessionTTL is how long a signed-in session stays valid without renewal.
const AuthSessionTTL = 72 * time.Hour

// SaveAuthSession stores the hash of an issued token for a user, marking
// the session active.
func SaveAuthSession(client *redis.Client, userID, token string) error {
	ctx := context.Background()
	return client.Set(ctx, AuthSessionPrefix+userID, HashToken(token), AuthSessionTTL).Err()
}

// CheckAuthSession reports whether the presented token matches the
// user's active session.
func CheckAuthSession(client *redis.Client, userID, token string) (bool, error) {
	ctx := context.Background()
	stored, err := client.Get(ctx, AuthSessionPrefix+userID).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return stored == HashToken(token), nil
}

// DeleteAuthSession revokes the user's active session.
func DeleteAuthSession(client *redis.Client, userID string) error {
	ctx := context.Background()
	return client.Del(ctx, AuthSessionPrefix+userID).Err()
}
