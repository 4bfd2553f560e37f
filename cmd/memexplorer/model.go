package main

import (
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/memtrack/track"
)

const tickInterval = 500 * time.Millisecond

// tickMsg drives one workload step
type tickMsg time.Time

type model struct {
	registry *track.Registry
	workload *workload
	keys     KeyMap
	viewport viewport.Model
	printer  *message.Printer

	paused bool
	status string
	width  int
	height int
	ready  bool
}

func newModel() (model, error) {
	reg, err := track.New(&track.Config{Buckets: 4096})
	if err != nil {
		return model{}, err
	}
	wl, err := newWorkload(reg, time.Now().UnixNano())
	if err != nil {
		return model{}, err
	}
	return model{
		registry: reg,
		workload: wl,
		keys:     DefaultKeyMap(),
		printer:  message.NewPrinter(language.English),
	}, nil
}

func (m model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
