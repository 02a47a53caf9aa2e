package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/lixenwraith/termio/config"
	"github.com/lixenwraith/termio/frame"
	"github.com/lixenwraith/termio/logging"
	"github.com/lixenwraith/termio/shm"
)

type options struct {
	configPath string
	name       string
	image      string
	width      int
	height     int
	colors     int
	dirty      string
	id         int
	unlink     bool
	watch      bool
}

func main() {
	var o options
	flag.StringVar(&o.configPath, "config", "", "config file (toml, yaml or json)")
	flag.StringVar(&o.name, "name", "", "segment name, overrides graphics.segment_name")
	flag.StringVar(&o.image, "image", "", "image file; empty draws a test gradient")
	flag.IntVar(&o.width, "width", 0, "target width in pixels (gradient default 256)")
	flag.IntVar(&o.height, "height", 0, "target height in pixels (gradient default 256)")
	flag.IntVar(&o.colors, "colors", 0, "reduce the palette to n colors")
	flag.StringVar(&o.dirty, "dirty", "", "dirty rect x,y,w,h; empty writes the whole frame")
	flag.IntVar(&o.id, "id", 0, "kitty image id for the transmit command")
	flag.BoolVar(&o.unlink, "unlink", false, "remove the segment and exit")
	flag.BoolVar(&o.watch, "watch", false, "rewrite the frame whenever the config file changes")
	flag.Parse()

	if err := run(o); err != nil {
		fmt.Fprintf(os.Stderr, "shm-write: %v\n", err)
		os.Exit(1)
	}
}

func run(o options) error {
	loader := config.NewLoader(o.configPath)
	cfg, err := loader.Load()
	if err != nil {
		return err
	}

	log, closer, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer closer.Close()
	log = logging.Component(log, "shm-write")

	if o.unlink {
		name := segmentFor(cfg, o)
		if err := shm.Unlink(name); err != nil {
			return err
		}
		log.Info("segment unlinked", "segment", name)
		return nil
	}

	dirty, err := parseRect(o.dirty)
	if err != nil {
		return err
	}
	fr, err := loadFrame(o)
	if err != nil {
		return err
	}

	if err := write(cfg, o, fr, dirty, log); err != nil {
		return err
	}
	if !o.watch {
		return nil
	}
	if o.configPath == "" {
		return errors.New("-watch needs -config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		for err := range loader.Errors() {
			log.Warn("config reload failed", "error", err)
		}
	}()

	err = loader.Watch(ctx, func(next *config.Config) {
		if err := write(next, o, fr, dirty, log); err != nil {
			log.Error("rewrite failed", "error", err)
		}
	})
	if err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}

func write(cfg *config.Config, o options, fr *frame.Frame, dirty *shm.Rect, log *slog.Logger) error {
	opts := []shm.Option{shm.WithLogger(log)}
	if n := cfg.Graphics.AlignmentBytes(); n > 0 {
		opts = append(opts, shm.WithAlignment(n))
	}
	buf, err := shm.NewGraphicBuffer(segmentFor(cfg, o), opts...)
	if err != nil {
		return err
	}

	written, err := buf.Write(fr.Pix, fr.Size, dirty)
	if err != nil {
		return err
	}
	log.Info("frame written",
		"segment", buf.Name(),
		"size", fmt.Sprintf("%dx%d", fr.Size.Width, fr.Size.Height),
		"region", fmt.Sprintf("%d,%d %dx%d", written.X, written.Y, written.Width, written.Height),
		"alignment", buf.Alignment())

	// Printed raw so `shm-write | cat` displays the frame in kitty
	fmt.Print(shm.TransmitCommand(buf.Name(), fr.Size, o.id))
	return nil
}

func segmentFor(cfg *config.Config, o options) string {
	if o.name != "" {
		return o.name
	}
	return cfg.Graphics.SegmentName
}

func loadFrame(o options) (*frame.Frame, error) {
	if o.image != "" {
		return frame.Load(o.image, frame.Options{Width: o.width, Height: o.height, Colors: o.colors})
	}
	size := shm.Size{Width: 256, Height: 256}
	if o.width > 0 {
		size.Width = o.width
	}
	if o.height > 0 {
		size.Height = o.height
	}
	return frame.Gradient(size), nil
}

func parseRect(s string) (*shm.Rect, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("dirty rect %q: want x,y,w,h", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("dirty rect %q: bad value %q", s, p)
		}
		v[i] = n
	}
	return &shm.Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}
