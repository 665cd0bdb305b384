// ABOUTME: Entry point for the interactive demo
// ABOUTME: Parses flags, builds an output stream and runs the TUI
package main

import (
	"flag"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/openphonic/openphonic-go/pkg/audio"
	"github.com/openphonic/openphonic-go/pkg/backend"
)

var (
	freq    = flag.Float64("freq", 440.0, "Tone frequency in Hz")
	tickMs  = flag.Int("tick-ms", 10, "Render tick period in milliseconds")
	logFile = flag.String("log-file", "openphonic-demo.log", "Log file path")
)

func main() {
	flag.Parse()

	// The TUI owns the terminal; logs go to a file.
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()
	log.SetOutput(f)

	h := backend.NewHost(backend.Config{
		TickPeriod: time.Duration(*tickMs) * time.Millisecond,
	})

	dev, ok := h.DefaultOutputDevice()
	if !ok {
		log.SetOutput(os.Stderr)
		log.Fatal("no default output device")
	}

	cfg, err := dev.DefaultOutputConfig()
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("failed to resolve output config: %v", err)
	}

	tone := newToneGenerator(cfg.SampleRate, cfg.Channels, *freq)

	stream, err := dev.BuildOutputStream(cfg.Config(), audio.F32, tone.Fill, func(err error) {
		log.Printf("stream error: %v", err)
	})
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("failed to build output stream: %v", err)
	}
	defer stream.Close()

	p := tea.NewProgram(NewModel(stream.(*backend.Stream), tone), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("TUI error: %v", err)
	}
}
