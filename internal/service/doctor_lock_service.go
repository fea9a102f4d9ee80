package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// releaseLockScript deletes the lock key only when it still holds our
// token, so a lock that expired and was re-acquired by another instance
// is never released by us.
var releaseLockScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

const (
	// Redis key prefix for per-doctor booking locks
	RedisDoctorLockKeyPrefix = "booking:doctor-lock:"

	// How long a Redis lock survives if the holder dies mid-booking
	doctorLockTTL = 10 * time.Second

	// Polling interval while waiting for a contended Redis lock
	lockRetryInterval = 50 * time.Millisecond

	// Interval for cleaning up stale mutexes
	mutexCleanupInterval = 10 * time.Minute

	// How long a mutex must be unused before cleanup
	mutexStaleThreshold = 10 * time.Minute
)

// DoctorLocker serializes the validate-then-insert section of booking
// creation per doctor, closing the double-booking window between the
// overlap check and the order insert.
type DoctorLocker interface {
	Lock(ctx context.Context, doctorID int64) (release func(), err error)
}

// DoctorLockService implements DoctorLocker with two layers:
// an in-process per-doctor mutex, and a Redis lock (SET NX with TTL)
// covering multiple service instances. A Redis outage degrades to the
// in-process lock only; it never fails the booking.
type DoctorLockService struct {
	redisClient *redis.Client
	log         *logrus.Logger

	// Per-doctor mutex for in-process serialization
	doctorMu sync.Map // map[int64]*mutexWithTimestamp

	// Graceful shutdown
	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// mutexWithTimestamp tracks mutex usage for cleanup
type mutexWithTimestamp struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix timestamp
}

// NewDoctorLockService creates a new DoctorLockService.
// Starts background goroutine for mutex cleanup.
// Call Stop() during graceful shutdown.
func NewDoctorLockService(redisClient *redis.Client, log *logrus.Logger) *DoctorLockService {
	svc := &DoctorLockService{
		redisClient: redisClient,
		log:         log,
		stopChan:    make(chan struct{}),
	}

	svc.wg.Add(1)
	go svc.cleanupMutexMapLoop()

	return svc
}

// Stop gracefully shuts down the service.
// Safe to call multiple times.
func (s *DoctorLockService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("DoctorLockService stopped")
	}
}

// Lock acquires the in-process mutex for the doctor, then attempts the
// Redis lock. The returned release func must be called exactly once.
func (s *DoctorLockService) Lock(ctx context.Context, doctorID int64) (func(), error) {
	mt := s.getDoctorMutex(doctorID)
	mt.mu.Lock()

	lockKey := fmt.Sprintf("%s%d", RedisDoctorLockKeyPrefix, doctorID)
	token := uuid.NewString()

	acquired, err := s.acquireRedisLock(ctx, lockKey, token)
	if err != nil {
		// Degraded mode: the in-process mutex still serializes bookings
		// within this instance.
		s.log.Warnf("Redis lock unavailable for doctor %d, falling back to in-process lock: %+v", doctorID, err)
		return func() { mt.mu.Unlock() }, nil
	}
	if !acquired {
		mt.mu.Unlock()
		return nil, ctx.Err()
	}

	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseLockScript.Run(releaseCtx, s.redisClient, []string{lockKey}, token).Err(); err != nil {
			// The TTL bounds how long a leaked lock blocks the doctor
			s.log.Warnf("Failed to release Redis lock for doctor %d: %+v", doctorID, err)
		}
		mt.mu.Unlock()
	}
	return release, nil
}

// acquireRedisLock polls SET NX until the lock is ours or ctx expires.
// Returns (false, nil) on context expiry, (false, err) on Redis failure.
func (s *DoctorLockService) acquireRedisLock(ctx context.Context, lockKey, token string) (bool, error) {
	for {
		ok, err := s.redisClient.SetNX(ctx, lockKey, token, doctorLockTTL).Result()
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}

		select {
		case <-ctx.Done():
			return false, nil
		case <-time.After(lockRetryInterval):
		}
	}
}

// getDoctorMutex returns mutex for a specific doctor ID
func (s *DoctorLockService) getDoctorMutex(doctorID int64) *mutexWithTimestamp {
	mt, _ := s.doctorMu.LoadOrStore(doctorID, &mutexWithTimestamp{})
	result := mt.(*mutexWithTimestamp)
	result.lastUsed.Store(time.Now().Unix())
	return result
}

// cleanupMutexMapLoop runs in background to clean stale mutexes
func (s *DoctorLockService) cleanupMutexMapLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(mutexCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			s.log.Debug("Mutex cleanup goroutine stopping")
			return
		case <-ticker.C:
			s.cleanupStaleMutexes()
		}
	}
}

// cleanupStaleMutexes removes unused mutexes using TryLock for safety.
// The lastUsed check happens inside the lock so a concurrent Lock call
// cannot lose its mutex.
func (s *DoctorLockService) cleanupStaleMutexes() {
	cutoffTime := time.Now().Add(-mutexStaleThreshold).Unix()
	var cleaned int

	s.doctorMu.Range(func(key, value any) bool {
		doctorID, ok := key.(int64)
		if !ok {
			return true
		}

		mt, ok := value.(*mutexWithTimestamp)
		if !ok {
			return true
		}

		if mt.mu.TryLock() {
			if mt.lastUsed.Load() < cutoffTime {
				s.doctorMu.Delete(doctorID)
				cleaned++
			}
			mt.mu.Unlock()
		}
		return true
	})

	if cleaned > 0 {
		s.log.Debugf("Cleaned up %d stale doctor mutexes", cleaned)
	}
}
