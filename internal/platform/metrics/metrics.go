package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps in-process request counters. Upstream failures are the 502s
// from document fetch and upload calls.
type Collector struct {
	totalRequests    uint64
	errorRequests    uint64
	upstreamFailures uint64
	totalDurationMs  uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 502 {
		atomic.AddUint64(&c.upstreamFailures, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	upstream := atomic.LoadUint64(&c.upstreamFailures)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":         total,
		"errorsTotal":           errs,
		"upstreamFailuresTotal": upstream,
		"avgDurationMs":         avg,
	}
}
