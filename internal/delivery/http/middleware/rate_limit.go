package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware gives every authenticated user a token bucket. It must
// run after AuthMiddleware.
type RateLimitMiddleware struct {
	mu       sync.Mutex
	limiters map[uuid.UUID]*userLimiter
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	now      func() time.Time
}

type userLimiter struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// NewRateLimitMiddleware allows perMinute requests per user per minute. A
// non-positive value disables limiting.
func NewRateLimitMiddleware(perMinute int) *RateLimitMiddleware {
	m := &RateLimitMiddleware{
		limiters: map[uuid.UUID]*userLimiter{},
		idleTTL:  10 * time.Minute,
		now:      time.Now,
	}
	if perMinute > 0 {
		m.limit = rate.Every(time.Minute / time.Duration(perMinute))
		m.burst = perMinute
	}
	return m
}

func (m *RateLimitMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if m.burst == 0 {
			return c.Next()
		}
		uid, ok := UserID(c)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}
		if !m.allow(uid) {
			c.Set("Retry-After", "60")
			return NewAppError(fiber.StatusTooManyRequests, "Too many requests, please slow down", nil, nil)
		}
		return c.Next()
	}
}

func (m *RateLimitMiddleware) allow(uid uuid.UUID) bool {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.limiters[uid]
	if !ok {
		m.sweep(now)
		l = &userLimiter{lim: rate.NewLimiter(m.limit, m.burst)}
		m.limiters[uid] = l
	}
	l.lastSeen = now
	return l.lim.AllowN(now, 1)
}

// sweep drops limiters idle long enough to have refilled. Caller holds mu.
func (m *RateLimitMiddleware) sweep(now time.Time) {
	for id, l := range m.limiters {
		if now.Sub(l.lastSeen) > m.idleTTL {
			delete(m.limiters, id)
		}
	}
}
