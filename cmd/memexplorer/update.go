package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := msg.Height - headerHeight - footerHeight
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = vpHeight
		}
		m.viewport.SetContent(m.allocationLines())
		return m, nil

	case tickMsg:
		if !m.paused {
			m.workload.step()
			if m.ready {
				m.viewport.SetContent(m.allocationLines())
			}
		}
		return m, tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
			if m.paused {
				m.status = "paused"
			} else {
				m.status = ""
			}
			return m, nil

		case key.Matches(msg, m.keys.Copy):
			if err := clipboard.WriteAll(m.registry.LeaksString()); err != nil {
				m.status = fmt.Sprintf("clipboard error: %v", err)
			} else {
				m.status = "leak report copied"
			}
			return m, nil

		case key.Matches(msg, m.keys.Drain):
			m.workload.drain()
			if m.ready {
				m.viewport.SetContent(m.allocationLines())
			}
			m.status = "released all live blocks"
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}
