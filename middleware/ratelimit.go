package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"projectledger/logger"

	"github.com/gin-gonic/gin"
)

// loginLimiter 按客户端 IP 的滑动窗口计数
type loginLimiter struct {
	mu          sync.Mutex
	maxAttempts int
	window      time.Duration
	attempts    map[string][]time.Time
}

func newLoginLimiter(maxAttempts int, window time.Duration) *loginLimiter {
	return &loginLimiter{
		maxAttempts: maxAttempts,
		window:      window,
		attempts:    make(map[string][]time.Time),
	}
}

// allow 记录一次尝试；超出限制时返回需要等待的时间
func (l *loginLimiter) allow(ip string, now time.Time) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ts := prune(l.attempts[ip], now.Add(-l.window))
	if len(ts) >= l.maxAttempts {
		l.attempts[ip] = ts
		return false, ts[0].Add(l.window).Sub(now)
	}
	l.attempts[ip] = append(ts, now)
	return true, 0
}

// sweep 删除窗口外的记录
func (l *loginLimiter) sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := now.Add(-l.window)
	for ip, ts := range l.attempts {
		if ts = prune(ts, cutoff); len(ts) == 0 {
			delete(l.attempts, ip)
		} else {
			l.attempts[ip] = ts
		}
	}
}

func prune(ts []time.Time, cutoff time.Time) []time.Time {
	kept := ts[:0]
	for _, t := range ts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// LoginRateLimit 登录接口限流中间件
// 每 IP 在 window 内最多 maxAttempts 次尝试，超过则返回 429
// 过期记录由后台协程定期清理，ctx 结束时协程退出
func LoginRateLimit(ctx context.Context, maxAttempts int, window time.Duration) gin.HandlerFunc {
	limiter := newLoginLimiter(maxAttempts, window)
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				limiter.sweep(now)
			}
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()
		ok, wait := limiter.allow(ip, time.Now())
		if !ok {
			logger.FromContext(c.Request.Context()).Warn().Str("client_ip", ip).Msg("登录尝试过于频繁")
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			c.String(http.StatusTooManyRequests, "登录尝试过于频繁，请稍后再试")
			c.Abort()
			return
		}
		c.Next()
	}
}
