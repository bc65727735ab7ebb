package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/arnavshah/study-planner-go/pkg/database"
)

// APIKeyContextKey is where the API key middleware stores the caller's *database.APIKey
const APIKeyContextKey = "apiKey"

type keyLimiter struct {
	limit   int
	limiter *rate.Limiter
}

// KeyRateLimiter enforces each API key's RateLimit as a daily request budget.
// Tokens refill evenly over the day, and the full budget may be spent at once.
type KeyRateLimiter struct {
	mu       sync.Mutex
	limiters map[uint]*keyLimiter
	fallback int
	period   time.Duration
	logger   *zap.Logger
}

// NewKeyRateLimiter creates a limiter. fallback applies to keys whose RateLimit is not positive.
func NewKeyRateLimiter(fallback int, logger *zap.Logger) *KeyRateLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KeyRateLimiter{
		limiters: make(map[uint]*keyLimiter),
		fallback: fallback,
		period:   24 * time.Hour,
		logger:   logger,
	}
}

// get returns the key's limiter, replacing it when an admin changed the limit
func (l *KeyRateLimiter) get(key *database.APIKey) *rate.Limiter {
	limit := key.RateLimit
	if limit <= 0 {
		limit = l.fallback
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.limiters[key.ID]
	if !ok || entry.limit != limit {
		entry = &keyLimiter{
			limit:   limit,
			limiter: rate.NewLimiter(rate.Every(l.period/time.Duration(limit)), limit),
		}
		l.limiters[key.ID] = entry
	}
	return entry.limiter
}

// Allow reports whether the key may make another request now
func (l *KeyRateLimiter) Allow(key *database.APIKey) bool {
	return l.get(key).Allow()
}

// Forget drops the limiter of a key, e.g. after it was revoked
func (l *KeyRateLimiter) Forget(keyID uint) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.limiters, keyID)
}

// Len reports how many keys currently hold a limiter
func (l *KeyRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// Middleware must run after the API key middleware. Requests without a key pass through.
func (l *KeyRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := c.Get(APIKeyContextKey)
		if !ok {
			c.Next()
			return
		}
		key := raw.(*database.APIKey)
		if !l.Allow(key) {
			l.logger.Warn("rate limit exceeded", zap.String("key", key.Name), zap.Int("limit", key.RateLimit))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Try again later."})
			return
		}
		c.Next()
	}
}
