// Package session keeps the active login session of each user in a Redis hash.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrNoSession is returned when the user has no active session.
var ErrNoSession = errors.New("no active session")

// Session is the hash stored at user:session:<id>.
type Session struct {
	UserID    string
	Email     string
	Name      string
	SessionID string
	CreatedAt string
}

type Store struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func NewStore(rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{rdb: rdb, ttl: ttl, logger: logger}
}

func Key(userID string) string {
	return "user:session:" + userID
}

// Save replaces the user's session and refreshes its TTL.
func (s *Store) Save(ctx context.Context, sess Session) error {
	if sess.CreatedAt == "" {
		sess.CreatedAt = time.Now().UTC().Format(time.RFC3339Nano)
	}
	key := Key(sess.UserID)
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, map[string]any{
		"user_id":    sess.UserID,
		"email":      sess.Email,
		"name":       sess.Name,
		"sid":        sess.SessionID,
		"logged_in":  true,
		"created_at": sess.CreatedAt,
	})
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		if s.logger != nil {
			s.logger.WithError(err).WithField("key", key).Warn("redis pipeline failed")
		}
		return err
	}
	return nil
}

func (s *Store) Get(ctx context.Context, userID string) (Session, error) {
	data, err := s.rdb.HGetAll(ctx, Key(userID)).Result()
	if err != nil {
		return Session{}, err
	}
	if len(data) == 0 {
		return Session{}, ErrNoSession
	}
	return Session{
		UserID:    data["user_id"],
		Email:     data["email"],
		Name:      data["name"],
		SessionID: data["sid"],
		CreatedAt: data["created_at"],
	}, nil
}

// ActiveSessionID returns the sid of the user's current session.
func (s *Store) ActiveSessionID(ctx context.Context, userID string) (string, error) {
	sid, err := s.rdb.HGet(ctx, Key(userID), "sid").Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoSession
	}
	return sid, err
}

func (s *Store) Delete(ctx context.Context, userID string) error {
	return s.rdb.Del(ctx, Key(userID)).Err()
}
