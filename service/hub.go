package service

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// ErrCycle is returned when service dependencies form a cycle
var ErrCycle = errors.New("service: circular dependency")

// Hub starts services in dependency order and stops them in reverse
type Hub struct {
	mu       sync.Mutex
	services map[string]Service
	order    []string // Dependency order, resolved by InitAll
	started  []string
	log      *slog.Logger
}

// NewHub creates an empty hub; nil logger uses slog.Default
func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		services: make(map[string]Service),
		log:      log.With("component", "hub"),
	}
}

// Register adds svc; names must be unique
func (h *Hub) Register(svc Service) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, dup := h.services[svc.Name()]; dup {
		return fmt.Errorf("service %s: already registered", svc.Name())
	}
	h.services[svc.Name()] = svc
	h.order = nil
	return nil
}

// InitAll resolves the dependency order and calls Init(args...) on every service
// Services initialized before a failure are stopped in reverse order
func (h *Hub) InitAll(args ...any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	order, err := h.resolve()
	if err != nil {
		return err
	}
	h.order = order

	for i, name := range order {
		if err := h.services[name].Init(args...); err != nil {
			h.stopEach(order[:i])
			return fmt.Errorf("service %s init: %w", name, err)
		}
	}
	return nil
}

// StartAll starts services in dependency order, rolling back on failure
func (h *Hub) StartAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.order == nil {
		return errors.New("service: StartAll before InitAll")
	}

	h.started = h.started[:0]
	for _, name := range h.order {
		if err := h.services[name].Start(); err != nil {
			h.stopEach(h.started)
			h.started = nil
			return fmt.Errorf("service %s start: %w", name, err)
		}
		h.started = append(h.started, name)
	}
	return nil
}

// StopAll stops started services in reverse order; failures are logged
func (h *Hub) StopAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.stopEach(h.started)
	h.started = nil
}

func (h *Hub) stopEach(names []string) {
	for _, name := range slices.Backward(names) {
		if err := h.services[name].Stop(); err != nil {
			h.log.Warn("service stop failed", "service", name, "error", err)
		}
	}
}

// resolve orders services depth-first so each follows its dependencies
// Names are visited sorted, which keeps the order stable across runs
func (h *Hub) resolve() ([]string, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	mark := make(map[string]int, len(h.services))
	order := make([]string, 0, len(h.services))

	var visit func(name string) error
	visit = func(name string) error {
		switch mark[name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("%w at %s", ErrCycle, name)
		}
		mark[name] = visiting

		deps := slices.Clone(h.services[name].Dependencies())
		slices.Sort(deps)
		for _, dep := range deps {
			if _, ok := h.services[dep]; !ok {
				return fmt.Errorf("service %s: unknown dependency %s", name, dep)
			}
			if err := visit(dep); err != nil {
				return err
			}
		}

		mark[name] = done
		order = append(order, name)
		return nil
	}

	names := make([]string, 0, len(h.services))
	for name := range h.services {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return order, nil
}
