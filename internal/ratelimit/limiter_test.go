package ratelimit_test

import (
	"auth-web-server/internal/ratelimit"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock : синтетические часы; ленивому пополнению фоновые таймеры не нужны
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_000_000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestAllow_CapacityExhaustedAndRefilled(t *testing.T) {
	clock := newFakeClock()
	limiter := ratelimit.NewLimiterWithClock(clock.Now)

	// емкость 5, окно 60 секунд: пять подряд проходят
	for i := 0; i < 5; i++ {
		assert.True(t, limiter.Allow("login", "user-1", 5, 60, 1), "запрос %d должен пройти", i+1)
	}

	// шестой в тот же момент времени — отказ
	assert.False(t, limiter.Allow("login", "user-1", 5, 60, 1))

	// через пятую часть окна накапливается ровно один токен
	clock.Advance(12 * time.Second)
	assert.True(t, limiter.Allow("login", "user-1", 5, 60, 1))
	assert.False(t, limiter.Allow("login", "user-1", 5, 60, 1))
}

// отказ не списывает токены: накопленное не сгорает от попыток
func TestAllow_DeniedCallDoesNotSpend(t *testing.T) {
	clock := newFakeClock()
	limiter := ratelimit.NewLimiterWithClock(clock.Now)

	for i := 0; i < 5; i++ {
		limiter.Allow("api", "1.2.3.4", 5, 60, 1)
	}

	for i := 0; i < 10; i++ {
		assert.False(t, limiter.Allow("api", "1.2.3.4", 5, 60, 1))
	}

	clock.Advance(12 * time.Second)
	assert.True(t, limiter.Allow("api", "1.2.3.4", 5, 60, 1))
}

func TestAllow_KeysIndependent(t *testing.T) {
	clock := newFakeClock()
	limiter := ratelimit.NewLimiterWithClock(clock.Now)

	for i := 0; i < 5; i++ {
		limiter.Allow("login", "user-1", 5, 60, 1)
	}
	assert.False(t, limiter.Allow("login", "user-1", 5, 60, 1))

	// другой ключ той же области не затронут
	assert.True(t, limiter.Allow("login", "user-2", 5, 60, 1))
	// тот же ключ в другой области — отдельное ведро
	assert.True(t, limiter.Allow("refresh", "user-1", 5, 60, 1))
}

func TestAllow_CostGreaterThanOne(t *testing.T) {
	clock := newFakeClock()
	limiter := ratelimit.NewLimiterWithClock(clock.Now)

	assert.True(t, limiter.Allow("api", "k", 5, 60, 3))
	assert.True(t, limiter.Allow("api", "k", 5, 60, 2))
	assert.False(t, limiter.Allow("api", "k", 5, 60, 1))
}

// смена limit/window пересоздает ведро полным, без плавного перехода
func TestAllow_ReconfigurationRecreatesBucket(t *testing.T) {
	clock := newFakeClock()
	limiter := ratelimit.NewLimiterWithClock(clock.Now)

	for i := 0; i < 5; i++ {
		limiter.Allow("api", "k", 5, 60, 1)
	}
	assert.False(t, limiter.Allow("api", "k", 5, 60, 1))

	for i := 0; i < 10; i++ {
		assert.True(t, limiter.Allow("api", "k", 10, 60, 1), "после пересоздания запрос %d должен пройти", i+1)
	}
	assert.False(t, limiter.Allow("api", "k", 10, 60, 1))
}

// конкурентные вызовы по одному ключу не тратят токены дважды
func TestAllow_ConcurrentSameKey(t *testing.T) {
	clock := newFakeClock()
	limiter := ratelimit.NewLimiterWithClock(clock.Now)

	var allowed int64
	var wg sync.WaitGroup

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.Allow("api", "shared", 100, 60, 1) {
				atomic.AddInt64(&allowed, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(100), allowed)
}
