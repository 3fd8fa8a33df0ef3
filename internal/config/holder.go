package config

import "sync/atomic"

// Holder exposes the current Config and supports atomic reload, so a
// SIGHUP can pick up edited YAML without restarting the process.
type Holder struct {
	path string
	cfg  atomic.Pointer[Config]
}

// NewHolder wraps an already-loaded Config tied to its YAML path.
func NewHolder(cfg *Config, yamlPath string) *Holder {
	h := &Holder{path: yamlPath}
	h.cfg.Store(cfg)
	return h
}

// Get returns the current Config snapshot.
func (h *Holder) Get() *Config {
	return h.cfg.Load()
}

// Reload re-runs the defaults < YAML < ENV hierarchy against the same
// path. On any error the previous Config stays in place.
func (h *Holder) Reload() error {
	cfg, err := LoadFrom(h.path)
	if err != nil {
		return err
	}
	h.cfg.Store(cfg)
	return nil
}
