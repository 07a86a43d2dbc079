// Package health checks that the configured storage backend is reachable.
package health

import (
	"context"
	"time"

	"github.com/roguepikachu/snippets/pkg/logger"
)

// Pinger is implemented by every storage backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Status values reported per dependency.
const (
	StatusUp   = "up"
	StatusDown = "down"
)

// DefaultPingTimeout bounds each dependency ping when no timeout is configured.
const DefaultPingTimeout = time.Second

// Check is the outcome for one dependency.
type Check struct {
	Name   string `json:"name" yaml:"name"`
	Status string `json:"status" yaml:"status"`
	Err    string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Report aggregates all dependency checks.
type Report struct {
	Ready  bool    `json:"ready" yaml:"ready"`
	Checks []Check `json:"checks" yaml:"checks"`
}

type dependency struct {
	name string
	p    Pinger
}

// Checker pings named dependencies with a shared timeout.
type Checker struct {
	deps        []dependency
	pingTimeout time.Duration
}

// NewChecker constructs a Checker. A non-positive timeout falls back to DefaultPingTimeout.
func NewChecker(pingTimeout time.Duration) *Checker {
	if pingTimeout <= 0 {
		pingTimeout = DefaultPingTimeout
	}
	return &Checker{pingTimeout: pingTimeout}
}

// Add registers a dependency. Nil pingers are ignored.
func (c *Checker) Add(name string, p Pinger) *Checker {
	if p != nil {
		c.deps = append(c.deps, dependency{name: name, p: p})
	}
	return c
}

// Check pings every dependency in registration order.
func (c *Checker) Check(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, c.pingTimeout)
	defer cancel()

	rep := Report{Ready: true, Checks: make([]Check, 0, len(c.deps))}
	for _, d := range c.deps {
		if err := d.p.Ping(ctx); err != nil {
			rep.Ready = false
			rep.Checks = append(rep.Checks, Check{Name: d.name, Status: StatusDown, Err: err.Error()})
			continue
		}
		rep.Checks = append(rep.Checks, Check{Name: d.name, Status: StatusUp})
	}
	if !rep.Ready {
		logger.Warn(ctx, "readiness failed: %+v", rep.Checks)
	}
	return rep
}
