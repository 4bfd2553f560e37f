package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/joshuapare/memtrack/track"
)

const (
	headerHeight = 4
	footerHeight = 2
)

func (m model) View() string {
	if !m.ready {
		return "starting..."
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(paneStyle.Width(m.width - 4).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.footerView())
	return b.String()
}

func (m model) headerView() string {
	st := m.registry.Stats()
	title := headerStyle.Render(" memexplorer ")

	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		m.stat("current", m.printer.Sprintf("%d B", st.CurrentUsage), statValueStyle),
		m.stat("peak", m.printer.Sprintf("%d B", st.PeakUsage), statValueStyle),
		m.stat("live", m.printer.Sprintf("%d", st.AllocationCalls-st.FreeCalls), leakValueStyle),
		m.stat("mallocs", m.printer.Sprintf("%d", st.AllocationCalls), statValueStyle),
		m.stat("frees", m.printer.Sprintf("%d", st.FreeCalls), statValueStyle),
	)
	return title + "\n" + stats
}

func (m model) stat(label, value string, style lipgloss.Style) string {
	return statLabelStyle.Render(" "+label+" ") + style.Render(value) + " "
}

func (m model) footerView() string {
	help := statusStyle.Render(" space pause · c copy leaks · r release · q quit")
	if m.status == "" {
		return help
	}
	if m.paused {
		return help + "  " + pausedStyle.Render(m.status)
	}
	return help + "  " + statusStyle.Render(m.status)
}

// allocationLines renders the live records sorted by address, one per
// viewport line.
func (m model) allocationLines() string {
	var records []*track.Record
	m.registry.Range(func(rec *track.Record) bool {
		records = append(records, rec)
		return true
	})
	if len(records) == 0 {
		return statusStyle.Render("no live allocations")
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Addr < records[j].Addr
	})

	var b strings.Builder
	for _, rec := range records {
		fmt.Fprintf(&b, "0x%012x  %s  %s\n",
			rec.Addr,
			m.printer.Sprintf("%8d B", rec.Size),
			rec.Origin)
	}
	return b.String()
}
