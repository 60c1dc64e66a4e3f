package overlay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned when a token has no live session.
var ErrSessionNotFound = errors.New("session not found or expired")

// Store keeps overlay sessions in Redis with a sliding TTL, so a
// dropped overlay client can reconnect and keep its calibration.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore creates a session store. ttl bounds how long an idle
// session's calibration survives.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func sessionKey(token string) string {
	return "overlay:" + token + ":state"
}

// Save writes the session state and refreshes its TTL.
func (st *Store) Save(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session %s: %w", s.Token, err)
	}
	return st.rdb.SetEx(ctx, sessionKey(s.Token), data, st.ttl).Err()
}

// Load fetches a session by token.
func (st *Store) Load(ctx context.Context, token string) (*Session, error) {
	data, err := st.rdb.Get(ctx, sessionKey(token)).Bytes()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", token, err)
	}
	return &s, nil
}

// Delete removes a session.
func (st *Store) Delete(ctx context.Context, token string) error {
	return st.rdb.Del(ctx, sessionKey(token)).Err()
}
