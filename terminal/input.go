// @focus: #sys { term, input }
package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultPollInterval bounds cancellation latency of the reader
	DefaultPollInterval = 10 * time.Millisecond
	// DefaultQueueSize is a single-slot handoff: the reader waits for each event to be taken
	DefaultQueueSize = 1
)

// Event is one unit of decoded input
type Event struct {
	Type  BlockType  // BlockKey, BlockMouse or a raw block type
	Key   KeyEvent   // Valid when Type == BlockKey
	Mouse MouseEvent // Valid when Type == BlockMouse
	Data  string     // Raw payload for CSI and string blocks
}

// activeSources tracks sources with a running listener
var activeSources sync.Map

type listenConfig struct {
	interval  time.Duration
	queueSize int
	logger    *slog.Logger
	reset     io.Writer
}

// ListenOption configures Listen
type ListenOption func(*listenConfig)

// WithPollInterval sets the readiness wait and idle sleep
func WithPollInterval(d time.Duration) ListenOption {
	return func(c *listenConfig) { c.interval = d }
}

// WithQueueSize sets the handoff channel capacity; values below 1 use 1
func WithQueueSize(n int) ListenOption {
	return func(c *listenConfig) { c.queueSize = n }
}

// WithLogger sets the listener logger
func WithLogger(l *slog.Logger) ListenOption {
	return func(c *listenConfig) { c.logger = l }
}

// WithResetWriter makes a crashed reader write the protocol reset sequences to w
// and restore the source before returning its error
func WithResetWriter(w io.Writer) ListenOption {
	return func(c *listenConfig) { c.reset = w }
}

// Listener owns a background reader that turns Source bytes into Events
type Listener struct {
	src    Source
	events chan Event
	cancel context.CancelFunc
	group  *errgroup.Group
	log    *slog.Logger
	reset  io.Writer
}

// Listen starts a reader on src
// The returned listener's Events channel closes after the reader exits
func Listen(ctx context.Context, src Source, opts ...ListenOption) (*Listener, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	cfg := listenConfig{
		interval:  DefaultPollInterval,
		queueSize: DefaultQueueSize,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.interval <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, cfg.interval)
	}
	if cfg.queueSize < 1 {
		cfg.queueSize = 1
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	if _, loaded := activeSources.LoadOrStore(src, struct{}{}); loaded {
		return nil, ErrAlreadyListening
	}

	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	l := &Listener{
		src:    src,
		events: make(chan Event, cfg.queueSize),
		cancel: cancel,
		group:  g,
		log:    cfg.logger.With("component", "input"),
		reset:  cfg.reset,
	}

	g.Go(func() error {
		// Source is released before the events channel closes
		defer close(l.events)
		defer activeSources.Delete(src)
		return l.readLoop(gctx, cfg.interval)
	})

	l.log.Debug("listener started", "interval", cfg.interval, "queue", cfg.queueSize)
	return l, nil
}

// Events returns the decoded event stream
func (l *Listener) Events() <-chan Event {
	return l.events
}

// Stop requests the reader to exit; safe to call repeatedly
func (l *Listener) Stop() {
	l.cancel()
}

// Wait blocks until the reader exits and returns its error
// Cancellation and end of input are not errors
func (l *Listener) Wait() error {
	err := l.group.Wait()
	l.cancel()
	return err
}

// readLoop polls src until cancellation, end of input, or a source error
func (l *Listener) readLoop(ctx context.Context, interval time.Duration) (retErr error) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error("input reader crashed", "panic", r, "stack", string(debug.Stack()))
			if l.reset != nil {
				writeResetSequences(l.reset)
				if err := l.src.Cleanup(); err != nil {
					l.log.Warn("source cleanup after crash failed", "error", err)
				}
			}
			retErr = fmt.Errorf("input reader panic: %v", r)
		}
	}()

	sink := &eventSink{ctx: ctx, out: l.events}
	parser := NewParser(sink)

	for {
		if ctx.Err() != nil {
			l.log.Debug("listener stopped")
			return nil
		}

		ready, err := l.src.WaitForReady(interval)
		if err != nil {
			return fmt.Errorf("wait for input: %w", err)
		}
		if !ready {
			if !sleepContext(ctx, interval) {
				l.log.Debug("listener stopped")
				return nil
			}
			continue
		}

		data, err := l.src.Read()
		if len(data) > 0 {
			parser.Parse(data)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				l.log.Debug("input closed")
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}
	}
}

// sleepContext waits d, false if ctx ended first
func sleepContext(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// eventSink marshals parser output into owned Events
type eventSink struct {
	ctx context.Context
	out chan<- Event
}

func (s *eventSink) HandleBlock(kind BlockType, data []byte) bool {
	switch kind {
	case BlockNone:
		return true
	case BlockCSI:
		return s.send(csiEvent(string(data)))
	default:
		return s.send(Event{Type: kind, Data: string(data)})
	}
}

func (s *eventSink) HandleCodepoint(r rune) bool {
	return s.send(Event{
		Type: BlockKey,
		Key:  KeyEvent{Type: KeyUnicode, Code: string(EncodeCodepoint(r))},
	})
}

// send blocks until the consumer takes ev or the context ends
func (s *eventSink) send(ev Event) bool {
	select {
	case s.out <- ev:
		return true
	case <-s.ctx.Done():
		return false
	}
}

// csiEvent classifies a CSI body: key, then mouse, then raw
func csiEvent(payload string) Event {
	if key := DecodeKeyFromCSI(payload); key.Valid() {
		return Event{Type: BlockKey, Key: key}
	}
	if mouse, ok := DecodeMouseFromCSI(payload); ok {
		return Event{Type: BlockMouse, Mouse: mouse}
	}
	return Event{Type: BlockCSI, Data: payload}
}
