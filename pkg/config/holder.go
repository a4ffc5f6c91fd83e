package config

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/sqlshield/sqlshield/pkg/logger"
	"github.com/sqlshield/sqlshield/pkg/types"
)

// OnReload is invoked after a successful hot-reload swap, with the old and
// new configuration. Callers use it to clear caches that are only valid
// against one config snapshot (the parser cache, the dedup filter).
type OnReload func(old, new *types.GlobalConfig)

// Holder is the atomically-swappable GlobalConfig reference every component
// reads from. It mirrors the reference stack's reload coordinator, simplified
// to this engine's single-process, single-file scope: no distributed lock,
// no component health check phase, just load -> validate -> swap -> notify.
type Holder struct {
	path    string
	current atomic.Pointer[types.GlobalConfig]

	mu       sync.Mutex // serializes concurrent Reload calls
	log      logger.Interface
	onReload []OnReload

	lastReload time.Time
}

// NewHolder builds a Holder seeded with initial. path is remembered for
// Reload; it may be empty if this Holder is never reloaded from disk.
func NewHolder(initial *types.GlobalConfig, path string, log logger.Interface) *Holder {
	h := &Holder{path: path, log: log, lastReload: time.Now()}
	h.current.Store(initial)
	return h
}

// Get returns the current configuration snapshot. Callers should take one
// reference at the start of a validate call and use it throughout, rather
// than calling Get repeatedly, so a concurrent reload can't produce a
// half-old-half-new view of a single validation.
func (h *Holder) Get() *types.GlobalConfig {
	return h.current.Load()
}

// OnReload registers a callback invoked after every successful Reload.
func (h *Holder) OnReload(fn OnReload) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onReload = append(h.onReload, fn)
}

// Reload re-reads the config file at h.path, validates it, and atomically
// swaps it in. On any failure the previous configuration stays in effect —
// there is no partial apply.
func (h *Holder) Reload() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.path == "" {
		return errors.New("config: holder has no backing file to reload from")
	}

	next, err := LoadFromFile(h.path)
	if err != nil {
		h.warn("config reload failed, keeping previous configuration", err)
		return err
	}

	old := h.current.Load()
	h.current.Store(next)
	h.lastReload = time.Now()

	h.info("config reloaded")
	for _, fn := range h.onReload {
		fn(old, next)
	}
	return nil
}

// Set installs cfg directly, bypassing the file. Intended for tests and for
// embedders that build a GlobalConfig programmatically instead of from disk.
func (h *Holder) Set(cfg *types.GlobalConfig) {
	h.mu.Lock()
	defer h.mu.Unlock()
	old := h.current.Load()
	h.current.Store(cfg)
	h.lastReload = time.Now()
	for _, fn := range h.onReload {
		fn(old, cfg)
	}
}

func (h *Holder) info(msg string) {
	if h.log != nil {
		h.log.Info(msg, "path", h.path)
	}
}

func (h *Holder) warn(msg string, err error) {
	if h.log != nil {
		h.log.Warn(msg, "path", h.path, "error", err)
	}
}
