package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// InputOptions configures InputService; pass as an Init arg
type InputOptions struct {
	Source    Source    // nil uses the stdin tty
	Output    io.Writer // Protocol sequences go here; nil uses stdout
	Protocols Protocols
	Listen    []ListenOption
}

// InputService manages raw mode, protocol enablement and the input listener
type InputService struct {
	opts     InputOptions
	log      *slog.Logger
	listener *Listener
	resizes  <-chan ResizeEvent
	cancel   context.CancelFunc
	mu       sync.Mutex
	running  bool
	err      error
}

// NewInputService creates an input service with default protocols
func NewInputService() *InputService {
	return &InputService{
		opts: InputOptions{Protocols: DefaultProtocols},
		log:  slog.Default(),
	}
}

// Name implements Service
func (s *InputService) Name() string {
	return "input"
}

// Dependencies implements Service
func (s *InputService) Dependencies() []string {
	return nil
}

// Init implements Service
// Recognized args: InputOptions, *slog.Logger; others are ignored
func (s *InputService) Init(args ...any) error {
	for _, arg := range args {
		switch v := arg.(type) {
		case InputOptions:
			s.opts = v
		case *slog.Logger:
			if v != nil {
				s.log = v
			}
		}
	}

	if s.opts.Source == nil {
		src, err := stdinSource()
		if err != nil {
			return fmt.Errorf("input init: %w", err)
		}
		s.opts.Source = src
	}
	if s.opts.Output == nil {
		s.opts.Output = os.Stdout
	}
	return nil
}

// Start implements Service - enters raw mode and launches the listener
func (s *InputService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}
	if s.opts.Source == nil {
		return errors.New("input start: service not initialized")
	}

	if err := SetupInput(s.opts.Source, s.opts.Output, s.opts.Protocols); err != nil {
		_ = CleanupInput(s.opts.Source, s.opts.Output, s.opts.Protocols)
		return fmt.Errorf("input start: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	opts := append([]ListenOption{WithLogger(s.log), WithResetWriter(s.opts.Output)}, s.opts.Listen...)
	l, err := Listen(ctx, s.opts.Source, opts...)
	if err != nil {
		cancel()
		_ = CleanupInput(s.opts.Source, s.opts.Output, s.opts.Protocols)
		return fmt.Errorf("input start: %w", err)
	}
	if sz, ok := s.opts.Source.(Sizer); ok {
		s.resizes = WatchResize(ctx, sz)
	}
	s.listener = l
	s.cancel = cancel
	s.running = true
	return nil
}

// Stop implements Service - stops the listener and restores the terminal
func (s *InputService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	s.running = false

	s.cancel()
	s.listener.Stop()
	s.err = s.listener.Wait()
	if s.err != nil {
		s.log.Error("input listener failed", "error", s.err)
	}
	return CleanupInput(s.opts.Source, s.opts.Output, s.opts.Protocols)
}

// Events returns the input event channel, nil before Start
func (s *InputService) Events() <-chan Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Events()
}

// Resizes returns terminal size changes, nil when the source cannot report its size
func (s *InputService) Resizes() <-chan ResizeEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resizes
}

// Err returns the listener error recorded by Stop
func (s *InputService) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
