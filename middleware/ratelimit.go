package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// slidingWindow 每个 key 在 window 内最多 max 次
type slidingWindow struct {
	mu     sync.Mutex
	max    int
	window time.Duration
	store  map[string][]time.Time
}

func newSlidingWindow(max int, window time.Duration) *slidingWindow {
	return &slidingWindow{max: max, window: window, store: make(map[string][]time.Time)}
}

func (s *slidingWindow) allow(key string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := prune(s.store[key], now.Add(-s.window))
	if len(ts) >= s.max {
		s.store[key] = ts
		return false
	}
	s.store[key] = append(ts, now)
	return true
}

// sweep 清理过期数据
func (s *slidingWindow) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := now.Add(-s.window)
	for key, ts := range s.store {
		ts = prune(ts, cutoff)
		if len(ts) == 0 {
			delete(s.store, key)
		} else {
			s.store[key] = ts
		}
	}
}

// run 定期清理，ctx 结束后退出
func (s *slidingWindow) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.sweep(now)
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

// WriteRateLimit 表单提交限流中间件
// 每 IP 在 window 内最多 max 次写请求，超过则返回 429；GET/HEAD 不计数。
// 后台清理协程随 ctx 结束
func WriteRateLimit(ctx context.Context, max int, window time.Duration) gin.HandlerFunc {
	limiter := newSlidingWindow(max, window)
	go limiter.run(ctx, time.Minute)

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			c.Next()
			return
		}
		if !limiter.allow(c.ClientIP(), time.Now()) {
			c.String(http.StatusTooManyRequests, "Too many submissions, please try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}
