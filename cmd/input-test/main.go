package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lixenwraith/termio/config"
	"github.com/lixenwraith/termio/logging"
	"github.com/lixenwraith/termio/service"
	"github.com/lixenwraith/termio/terminal"
)

func main() {
	configPath := flag.String("config", "", "config file (toml, yaml or json)")
	mouse := flag.Bool("mouse", true, "enable SGR mouse reporting")
	raw := flag.Bool("raw", false, "also print unrecognized escape blocks")
	logPath := flag.String("log", "", "log file, overrides logging.output")
	flag.Parse()

	if err := run(*configPath, *logPath, *mouse, *raw); err != nil {
		fmt.Fprintf(os.Stderr, "input-test: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, logPath string, mouse, raw bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logPath != "" {
		cfg.Logging.Output = logPath
	} else if cfg.Logging.Output == logging.OutputStderr || cfg.Logging.Output == logging.OutputStdout {
		// Log lines on the tty would interleave with the event dump
		cfg.Logging.Output = ""
	}

	var log *slog.Logger
	var closer io.Closer
	if cfg.Logging.Output == "" {
		log = logging.Discard()
	} else {
		log, closer, err = logging.New(cfg.Logging)
		if err != nil {
			return err
		}
		defer closer.Close()
	}

	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "panic: %v\n", r)
			os.Exit(2)
		}
	}()

	input := terminal.NewInputService()
	hub := service.NewHub(log)
	if err := hub.Register(input); err != nil {
		return err
	}

	opts := terminal.InputOptions{
		Output: os.Stdout,
		Protocols: terminal.Protocols{
			Keyboard: terminal.KeyboardFlags(cfg.Input.Keyboard),
			Mouse:    cfg.Input.Mouse && mouse,
		},
		Listen: []terminal.ListenOption{
			terminal.WithPollInterval(cfg.Input.PollInterval.Duration),
			terminal.WithQueueSize(cfg.Input.QueueSize),
		},
	}
	if err := hub.InitAll(opts, log); err != nil {
		return err
	}
	if err := hub.StartAll(); err != nil {
		return err
	}
	defer hub.StopAll()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	fmt.Print("termio input test - press keys, move the mouse, ctrl+c to quit\r\n")

	events := input.Events()
	resizes := input.Resizes()
	for {
		select {
		case <-sigCh:
			return nil
		case rs, ok := <-resizes:
			if !ok {
				resizes = nil
				continue
			}
			fmt.Printf("RESIZE %dx%d\r\n", rs.Width, rs.Height)
		case ev, ok := <-events:
			if !ok {
				return input.Err()
			}
			if quit(ev) {
				return nil
			}
			if line := describe(ev, raw); line != "" {
				fmt.Print(line + "\r\n")
			}
		}
	}
}

func quit(ev terminal.Event) bool {
	if ev.Type != terminal.BlockKey || ev.Key.Type == terminal.KeyUp {
		return false
	}
	// Without the keyboard protocol ctrl+c arrives as a bare ETX
	return ev.Key.Accelerator() == "ctrl+c" || ev.Key.Code == "\x03"
}

func describe(ev terminal.Event, raw bool) string {
	switch ev.Type {
	case terminal.BlockKey:
		k := ev.Key
		return fmt.Sprintf("KEY   %-7s %-24q mods=%v", k.Type, k.Code, k.Modifiers)
	case terminal.BlockMouse:
		m := ev.Mouse
		if !m.HasPosition() {
			return fmt.Sprintf("MOUSE %-5s %-12s %s (no position)", m.Type, m.Buttons, m.Modifiers)
		}
		return fmt.Sprintf("MOUSE %-5s %-12s %s at %d,%d", m.Type, m.Buttons, m.Modifiers, m.X, m.Y)
	default:
		if !raw {
			return ""
		}
		return fmt.Sprintf("%-5s %q", ev.Type, ev.Data)
	}
}
