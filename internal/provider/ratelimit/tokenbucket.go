package ratelimit

import (
    "context"
    "net/http"
    "sync"
    "time"

    "chinastock/internal/provider"
)

// TokenBucket is a token bucket limiter.
// - rate: tokens per second
// - capacity: maximum tokens the bucket can hold (burst)
type TokenBucket struct {
    rate     float64
    capacity float64

    mu     sync.Mutex
    tokens float64
    last   time.Time
}

func NewTokenBucket(tokensPerSecond float64, burst int) *TokenBucket {
    if tokensPerSecond <= 0 { tokensPerSecond = 0.0000001 }
    if burst <= 0 { burst = 1 }
    return &TokenBucket{
        rate:     tokensPerSecond,
        capacity: float64(burst),
        tokens:   float64(burst), // start full to allow an initial burst
        last:     time.Now(),
    }
}

// Wait blocks until one token is available or ctx is canceled.
func (tb *TokenBucket) Wait(ctx context.Context) error {
    for {
        tb.mu.Lock()
        now := time.Now()
        elapsed := now.Sub(tb.last).Seconds()
        if elapsed > 0 {
            tb.tokens += elapsed * tb.rate
            if tb.tokens > tb.capacity {
                tb.tokens = tb.capacity
            }
            tb.last = now
        }
        if tb.tokens >= 1 {
            tb.tokens -= 1
            tb.mu.Unlock()
            return nil
        }
        deficit := 1 - tb.tokens
        tb.mu.Unlock()
        waitDur := time.Duration(deficit / tb.rate * float64(time.Second))
        if waitDur <= 0 { waitDur = time.Millisecond }
        timer := time.NewTimer(waitDur)
        select {
        case <-ctx.Done():
            timer.Stop()
            return ctx.Err()
        case <-timer.C:
        }
    }
}

// TokenBucketDoer gates requests to an upstream host with a token bucket.
type TokenBucketDoer struct {
    Next provider.Doer
    TB   *TokenBucket
}

func (t *TokenBucketDoer) Do(req *http.Request) (*http.Response, error) {
    if t.TB != nil {
        if err := t.TB.Wait(req.Context()); err != nil { return nil, err }
    }
    return t.Next.Do(req)
}

// Wrap applies a token bucket when rps is positive, then a minimum interval when
// interval is positive. A zero config returns next unchanged.
func Wrap(next provider.Doer, rps float64, burst int, interval time.Duration) provider.Doer {
    d := next
    if rps > 0 {
        d = &TokenBucketDoer{Next: d, TB: NewTokenBucket(rps, burst)}
    }
    if interval > 0 {
        d = &MinInterval{Next: d, Interval: interval}
    }
    return d
}
