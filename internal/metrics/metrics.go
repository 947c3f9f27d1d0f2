package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

// Registry aggregates process-level counters exposed by the health
// endpoint.
type Registry struct {
	startedAt time.Time
	Requests  Counter
	Errors    Counter
}

func NewRegistry() *Registry {
	return &Registry{startedAt: time.Now()}
}

func (r *Registry) Uptime() time.Duration {
	return time.Since(r.startedAt)
}
