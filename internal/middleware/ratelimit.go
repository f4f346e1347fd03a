package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/pathly-backend/internal/logger"
	"github.com/yungbote/pathly-backend/internal/utils"
)

// RateLimiter applies per-client-IP sliding windows backed by Redis sorted
// sets, so the caps hold across replicas. When Redis is not configured or a
// window check fails, requests are admitted (the limiter fails open).
type RateLimiter struct {
	log *logger.Logger
	rdb *goredis.Client

	generalWindow time.Duration
	generalMax    int
	aiWindow      time.Duration
	aiMax         int
}

func NewRateLimiter(log *logger.Logger) *RateLimiter {
	limiterLog := log.With("middleware", "RateLimiter")

	generalWindowMin := utils.GetEnvAsInt("RATE_LIMIT_WINDOW_MINUTES", 15, log)
	generalMax := utils.GetEnvAsInt("RATE_LIMIT_MAX", 100, log)
	aiWindowMin := utils.GetEnvAsInt("AI_RATE_LIMIT_WINDOW_MINUTES", 60, log)
	aiMax := utils.GetEnvAsInt("AI_RATE_LIMIT_MAX", 10, log)

	var rdb *goredis.Client
	addr := strings.TrimSpace(utils.GetEnv("REDIS_ADDR", "", log))
	if addr == "" {
		limiterLog.Warn("REDIS_ADDR not set, rate limiting is disabled")
	} else {
		rdb = goredis.NewClient(&goredis.Options{
			Addr:        addr,
			DialTimeout: 5 * time.Second,
		})
	}

	return &RateLimiter{
		log:           limiterLog,
		rdb:           rdb,
		generalWindow: time.Duration(generalWindowMin) * time.Minute,
		generalMax:    generalMax,
		aiWindow:      time.Duration(aiWindowMin) * time.Minute,
		aiMax:         aiMax,
	}
}

// General bounds the whole API surface.
func (rl *RateLimiter) General() gin.HandlerFunc {
	return rl.limit("general", rl.generalWindow, rl.generalMax,
		"Too many requests from this IP, please try again later.")
}

// AIGeneration bounds the expensive generation endpoint specifically.
func (rl *RateLimiter) AIGeneration() gin.HandlerFunc {
	return rl.limit("ai", rl.aiWindow, rl.aiMax,
		"Too many AI generation requests. Please try again in an hour.")
}

func (rl *RateLimiter) limit(name string, window time.Duration, max int, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.rdb == nil {
			c.Next()
			return
		}

		count, err := rl.slide(c, name, window)
		if err != nil {
			rl.log.Warn("Rate limit check failed, admitting request", "limiter", name, "error", err)
			c.Next()
			return
		}

		remaining := int64(max) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("RateLimit-Limit", strconv.Itoa(max))
		c.Header("RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(max) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success":   false,
				"error":     gin.H{"message": message},
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
			return
		}
		c.Next()
	}
}

// slide trims entries older than the window, records this request, and
// returns how many requests the caller has made inside the window.
func (rl *RateLimiter) slide(c *gin.Context, name string, window time.Duration) (int64, error) {
	ctx := c.Request.Context()
	now := time.Now()
	key := fmt.Sprintf("ratelimit:%s:%s", name, c.ClientIP())
	cutoff := strconv.FormatInt(now.Add(-window).UnixNano(), 10)

	pipe := rl.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", cutoff)
	pipe.ZAdd(ctx, key, goredis.Z{
		Score:  float64(now.UnixNano()),
		Member: uuid.NewString(),
	})
	card := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return card.Val(), nil
}
