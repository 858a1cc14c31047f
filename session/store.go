package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable is returned when the cache backend cannot be reached.
// It is always distinct from a semantic miss (redis.Nil).
var ErrRedisUnavailable = errors.New("redis unavailable")

// Store is the Redis-backed session cache. Records are keyed by subject
// identifier, one live record per subject. The store is the single source of
// truth for whether a session is still alive server-side: absence means the
// subject must log in again.
//
// All serialization of concurrent writers is delegated to Redis with
// last-writer-wins semantics; the store itself holds no locks.
type Store struct {
	redis  redis.UniversalClient
	prefix string
}

// NewStore creates a session [Store] backed by the given Redis client.
// prefix sets the Redis key namespace.
func NewStore(redisClient redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = "ca"
	}
	return &Store{
		redis:  redisClient,
		prefix: prefix,
	}
}

func (s *Store) key(subjectID string) string {
	return s.prefix + ":" + subjectID
}

// Save persists a [Record] with the given TTL, replacing any previous record
// for the same subject wholesale.
//
//	Performance: 1 Redis SET.
func (s *Store) Save(ctx context.Context, rec *Record, ttl time.Duration) error {
	if rec == nil || rec.UserID == "" {
		return errors.New("record requires a subject identifier")
	}
	if ttl <= 0 {
		return errors.New("ttl must be positive")
	}

	data, err := Encode(rec)
	if err != nil {
		return err
	}

	if err := s.redis.Set(ctx, s.key(rec.UserID), data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Get retrieves the record for a subject. A missing key returns redis.Nil; a
// corrupt or stale blob is also reported as a miss (joined with [ErrCorrupt])
// rather than an internal failure.
//
//	Performance: 1 Redis GET (plus a best-effort DEL on stale entries).
func (s *Store) Get(ctx context.Context, subjectID string) (*Record, error) {
	data, err := s.redis.Get(ctx, s.key(subjectID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	rec, err := Decode(data)
	if err != nil {
		// A blob we cannot read proves nothing about the session; evict it
		// and report a miss so the client re-authenticates.
		_ = s.redis.Del(ctx, s.key(subjectID)).Err()
		return nil, errors.Join(redis.Nil, ErrCorrupt)
	}

	if rec.ExpiresAt > 0 && rec.ExpiresAt <= time.Now().Unix() {
		if err := s.Delete(ctx, subjectID); err != nil {
			return nil, err
		}
		return nil, redis.Nil
	}

	return rec, nil
}

// Replace overwrites an existing record wholesale and resets its TTL. Unlike
// Save it refuses to create the key: a record that disappeared (logout,
// eviction) stays gone and the call reports redis.Nil, so a racing renewal
// can never resurrect an ended session.
//
//	Performance: 1 Redis SET XX.
func (s *Store) Replace(ctx context.Context, rec *Record, ttl time.Duration) error {
	if rec == nil || rec.UserID == "" {
		return errors.New("record requires a subject identifier")
	}
	if ttl <= 0 {
		return errors.New("ttl must be positive")
	}

	data, err := Encode(rec)
	if err != nil {
		return err
	}

	ok, err := s.redis.SetXX(ctx, s.key(rec.UserID), data, ttl).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if !ok {
		return redis.Nil
	}
	return nil
}

// Delete removes the subject's record. Deleting an absent record is a no-op.
//
//	Performance: 1 Redis DEL.
func (s *Store) Delete(ctx context.Context, subjectID string) error {
	if err := s.redis.Del(ctx, s.key(subjectID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Touch refreshes the record's TTL (sliding session lifetime). Concurrent
// Touch calls are last-writer-wins; a record that disappeared between read
// and touch reports redis.Nil.
//
//	Performance: 1 Redis EXPIRE.
func (s *Store) Touch(ctx context.Context, subjectID string, ttl time.Duration) error {
	if ttl <= 0 {
		return errors.New("ttl must be positive")
	}

	ok, err := s.redis.Expire(ctx, s.key(subjectID), ttl).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if !ok {
		return redis.Nil
	}
	return nil
}

// Ping returns a point-in-time Redis availability check and latency.
func (s *Store) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return time.Since(start), nil
}
