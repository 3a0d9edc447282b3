// Package concurrency provides the external-locking primitives that
// spec §5 asks callers to build themselves: the ring core is a
// synchronous, single-owner data structure and does not lock
// internally, so a caller sharing one instance across goroutines wraps
// it with a mutex here.
package concurrency

import (
	"sync"
	"time"

	"github.com/ngothanh/maat-hash/pkg/logger"
)

// MutexConfig names a mutex for diagnostics and optionally turns on
// slow-acquisition logging.
type MutexConfig struct {
	Name          string
	DebugMode     bool
	SlowThreshold time.Duration // defaults to 50ms when zero
}

func (c MutexConfig) threshold() time.Duration {
	if c.SlowThreshold <= 0 {
		return 50 * time.Millisecond
	}
	return c.SlowThreshold
}

// SmartMutex is a named, optionally-instrumented sync.Mutex.
type SmartMutex struct {
	mu  sync.Mutex
	cfg MutexConfig
}

// NewSmartMutex creates a new SmartMutex.
func NewSmartMutex(cfg MutexConfig) *SmartMutex {
	return &SmartMutex{cfg: cfg}
}

func (m *SmartMutex) Lock() {
	start := time.Now()
	m.mu.Lock()
	logSlow(m.cfg, "Lock", time.Since(start))
}

func (m *SmartMutex) Unlock() {
	m.mu.Unlock()
}

// SmartRWMutex is a named, optionally-instrumented sync.RWMutex.
type SmartRWMutex struct {
	mu  sync.RWMutex
	cfg MutexConfig
}

// NewSmartRWMutex creates a new SmartRWMutex.
func NewSmartRWMutex(cfg MutexConfig) *SmartRWMutex {
	return &SmartRWMutex{cfg: cfg}
}

func (m *SmartRWMutex) Lock() {
	start := time.Now()
	m.mu.Lock()
	logSlow(m.cfg, "Lock", time.Since(start))
}

func (m *SmartRWMutex) Unlock() {
	m.mu.Unlock()
}

func (m *SmartRWMutex) RLock() {
	start := time.Now()
	m.mu.RLock()
	logSlow(m.cfg, "RLock", time.Since(start))
}

func (m *SmartRWMutex) RUnlock() {
	m.mu.RUnlock()
}

func logSlow(cfg MutexConfig, op string, waited time.Duration) {
	if !cfg.DebugMode || waited < cfg.threshold() {
		return
	}
	logger.L().Warn("slow mutex acquisition", "mutex", cfg.Name, "op", op, "waited", waited)
}
