//go:build unix

package terminal

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WatchResize reports size changes on SIGWINCH until ctx ends, then closes the channel
// The channel keeps only the newest size; an unread event is replaced
func WatchResize(ctx context.Context, s Sizer) <-chan ResizeEvent {
	out := make(chan ResizeEvent, 1)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)

	go func() {
		defer close(out)
		defer signal.Stop(sigCh)

		for {
			select {
			case <-ctx.Done():
				return
			case <-sigCh:
				w, h := s.Size()
				if w <= 0 || h <= 0 {
					continue
				}
				ev := ResizeEvent{Width: w, Height: h}
				select {
				case out <- ev:
				default:
					// Drop the stale size
					select {
					case <-out:
					default:
					}
					out <- ev
				}
			}
		}
	}()
	return out
}
