package ratelimit

import (
	"errors"
	"sync"
	"time"
)

// ErrRateLimited : ведро ключа исчерпано; повтор возможен после пополнения
var ErrRateLimited = errors.New("превышен лимит запросов")

// bucket : состояние одного ключа. Пополнение ленивое — пересчитывается
// в момент проверки, фоновых таймеров нет.
type bucket struct {
	mu         sync.Mutex
	capacity   int
	tokens     float64
	refillRate float64 // токенов в секунду
	lastRefill time.Time
}

func (b *bucket) allow(now time.Time, cost int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	elapsed := now.Sub(b.lastRefill).Seconds()
	refill := elapsed * b.refillRate
	if refill > 0 {
		b.tokens = min(float64(b.capacity), b.tokens+refill)
		b.lastRefill = now
	}

	if b.tokens >= float64(cost) {
		b.tokens -= float64(cost)
		return true
	}
	return false
}

// Limiter хранит ведра по ключу "scope:key". Экземпляр создается один раз
// на сервер и передается явно — глобального реестра нет.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

func NewLimiter() *Limiter {
	return NewLimiterWithClock(time.Now)
}

// NewLimiterWithClock позволяет подменить часы в тестах
func NewLimiterWithClock(now func() time.Time) *Limiter {
	return &Limiter{
		buckets: make(map[string]*bucket),
		now:     now,
	}
}

// Allow пересчитывает ведро ключа и пытается списать cost токенов.
// При отказе токены не списываются. Если ведро запрошено с другими
// limit/window, чем было создано — оно пересоздается полным.
func (l *Limiter) Allow(scope, key string, limit, window, cost int) bool {
	b := l.getBucket(scope+":"+key, limit, window)
	return b.allow(l.now(), cost)
}

func (l *Limiter) getBucket(key string, limit, window int) *bucket {
	rate := float64(limit) / float64(window)

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok || b.capacity != limit || b.refillRate != rate {
		b = &bucket{
			capacity:   limit,
			tokens:     float64(limit),
			refillRate: rate,
			lastRefill: l.now(),
		}
		l.buckets[key] = b
	}
	return b
}
