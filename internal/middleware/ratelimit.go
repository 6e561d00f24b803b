package middleware

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// RateLimiterStorage issues a token-bucket limiter per key (by default,
// the caller's IP), so a burst against /api/v1/extract from one client
// doesn't starve the others.
type RateLimiterStorage struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
	burst    int
}

// NewRateLimiterStorage builds a storage issuing rps-per-second, burst-sized
// limiters.
func NewRateLimiterStorage(rps float64, burst int) *RateLimiterStorage {
	return &RateLimiterStorage{limiters: make(map[string]*rate.Limiter), rps: rps, burst: burst}
}

func (s *RateLimiterStorage) get(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.limiters[key]
	if !ok {
		l = rate.NewLimiter(rate.Limit(s.rps), s.burst)
		s.limiters[key] = l
	}
	return l
}

// RateLimit builds fiber middleware bounding requests per IP using storage.
func RateLimit(storage *RateLimiterStorage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limiter := storage.get(c.IP())
		if !limiter.Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":   "rate limit exceeded",
				"message": "too many requests, please slow down",
			})
		}
		return c.Next()
	}
}
