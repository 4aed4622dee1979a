package cache

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// jobLockPrefix is the prefix for all scheduler lock keys
const jobLockPrefix = "jobs:"

// releaseJobLockScript deletes the lock only while it still holds the
// caller's token. A lock that expired and was re-acquired by another
// instance is left alone.
// KEYS[1] = lock key
// ARGV[1] = holder token
// Returns 1 if released, 0 if the lock is held by someone else
var releaseJobLockScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
    return redis.call('DEL', KEYS[1])
end
return 0
`)

// JobLock serializes scheduled jobs across instances with a Redis lock.
type JobLock struct {
	client *redis.Client
}

// NewJobLock creates a new JobLock instance
func NewJobLock(client *redis.Client) *JobLock {
	return &JobLock{client: client}
}

// TryAcquire attempts to take the named lock for ttl. It returns the holder
// token on success and acquired=false when another instance holds the lock.
func (l *JobLock) TryAcquire(ctx context.Context, job string, ttl time.Duration) (string, bool, error) {
	token, err := newLockToken()
	if err != nil {
		return "", false, err
	}

	acquired, err := l.client.SetNX(ctx, jobLockPrefix+job, token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("failed to acquire job lock: %w", err)
	}

	return token, acquired, nil
}

// Release frees the named lock if token still owns it.
func (l *JobLock) Release(ctx context.Context, job string, token string) error {
	err := releaseJobLockScript.Run(ctx, l.client, []string{jobLockPrefix + job}, token).Err()
	if err != nil {
		return fmt.Errorf("failed to release job lock: %w", err)
	}

	return nil
}

func newLockToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate lock token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// BoundJobLock fixes a JobLock to one job name and TTL, letting callers
// outside the scheduler compete for the same run lock.
type BoundJobLock struct {
	lock *JobLock
	job  string
	ttl  time.Duration
}

// NewBoundJobLock binds lock to the named job with the given TTL.
func NewBoundJobLock(lock *JobLock, job string, ttl time.Duration) *BoundJobLock {
	return &BoundJobLock{lock: lock, job: job, ttl: ttl}
}

// TryAcquire attempts to take the bound lock.
func (l *BoundJobLock) TryAcquire(ctx context.Context) (string, bool, error) {
	return l.lock.TryAcquire(ctx, l.job, l.ttl)
}

// Release frees the bound lock if token still owns it.
func (l *BoundJobLock) Release(ctx context.Context, token string) error {
	return l.lock.Release(ctx, l.job, token)
}
