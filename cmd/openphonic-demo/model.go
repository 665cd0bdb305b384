// ABOUTME: Bubbletea model for the demo TUI
// ABOUTME: Play/pause and frequency control over one output stream
package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/openphonic/openphonic-go/pkg/backend"
)

// refreshMsg redraws the tick counter.
type refreshMsg time.Time

// Model is the demo's TUI state.
type Model struct {
	stream  *backend.Stream
	tone    *toneGenerator
	playing bool
	err     error
}

// NewModel creates the TUI model around a running stream.
func NewModel(stream *backend.Stream, tone *toneGenerator) Model {
	return Model{
		stream:  stream,
		tone:    tone,
		playing: true,
	}
}

func (m Model) Init() tea.Cmd {
	return refreshTick()
}

func refreshTick() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		return m, refreshTick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case " ", "p":
			if m.playing {
				m.err = m.stream.Pause()
			} else {
				m.err = m.stream.Play()
			}
			if m.err == nil {
				m.playing = !m.playing
			}

		case "up":
			m.tone.SetFrequency(m.tone.Frequency() * 2)

		case "down":
			m.tone.SetFrequency(m.tone.Frequency() / 2)
		}
	}

	return m, nil
}

func (m Model) View() string {
	state := "playing"
	if !m.playing {
		state = "paused"
	}

	s := "openphonic demo\n\n"
	s += fmt.Sprintf("  stream: %s\n", m.stream.ID())
	s += fmt.Sprintf("  state:  %s\n", state)
	s += fmt.Sprintf("  tone:   %.0f Hz\n", m.tone.Frequency())
	s += fmt.Sprintf("  ticks:  %d\n", m.tone.Ticks())
	if m.err != nil {
		s += fmt.Sprintf("\n  error: %v\n", m.err)
	}
	s += "\n  space: play/pause  up/down: octave  q: quit\n"
	return s
}
