//go:build !unix

package terminal

import "context"

// WatchResize has no signal source here; the channel closes when ctx ends
func WatchResize(ctx context.Context, _ Sizer) <-chan ResizeEvent {
	out := make(chan ResizeEvent)
	go func() {
		<-ctx.Done()
		close(out)
	}()
	return out
}
