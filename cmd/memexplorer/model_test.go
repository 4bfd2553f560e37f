package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(t *testing.T) model {
	t.Helper()
	m, err := newModel()
	if err != nil {
		t.Fatalf("newModel: %v", err)
	}
	resized, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return resized.(model)
}

func TestModel_InitialView(t *testing.T) {
	m := newTestModel(t)
	view := m.View()
	if !strings.Contains(view, "memexplorer") {
		t.Errorf("view missing title: %q", view)
	}
	if !strings.Contains(view, "no live allocations") {
		t.Errorf("expected empty allocation pane, got: %q", view)
	}
}

func TestModel_TickAdvancesWorkload(t *testing.T) {
	m := newTestModel(t)
	updated, cmd := m.Update(tickMsg{})
	m = updated.(model)
	if cmd == nil {
		t.Fatal("tick should reschedule itself")
	}
	if m.registry.AllocationCalls() == 0 {
		t.Error("workload did not allocate on tick")
	}
}

func TestModel_PauseStopsWorkload(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	m = updated.(model)
	if !m.paused {
		t.Fatal("p should pause the workload")
	}

	before := m.registry.AllocationCalls()
	updated, _ = m.Update(tickMsg{})
	m = updated.(model)
	if got := m.registry.AllocationCalls(); got != before {
		t.Errorf("paused workload still allocated: %d -> %d", before, got)
	}
}

func TestModel_DrainReleasesEverything(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 5; i++ {
		updated, _ := m.Update(tickMsg{})
		m = updated.(model)
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = updated.(model)
	if usage := m.registry.CurrentUsage(); usage != 0 {
		t.Errorf("drain left %d bytes live", usage)
	}
}

func TestModel_QuitKey(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg, got %T", cmd())
	}
}
