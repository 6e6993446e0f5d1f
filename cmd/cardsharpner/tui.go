package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lukefish591/cardsharpner/internal/handhistory"
	"github.com/lukefish591/cardsharpner/internal/replay"
)

// replayModel is the Bubble Tea model for the interactive hand viewer.
// Left/right step through the action log; the snapshot is recomputed on
// every step so navigation in either direction is cheap.
type replayModel struct {
	hand  *handhistory.HandRecord
	index int

	viewport    viewport.Model
	width       int
	height      int
	initialized bool
	err         error
}

func newReplayModel(hand *handhistory.HandRecord) *replayModel {
	vp := viewport.New(10, 5)
	m := &replayModel{hand: hand, viewport: vp}
	m.refresh()
	return m
}

func (m *replayModel) Init() tea.Cmd {
	return nil
}

func (m *replayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 2
		m.initialized = true

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "right", "l", " ", "enter":
			if m.index < len(m.hand.Actions) {
				m.index++
			}
		case "left", "h":
			if m.index > 0 {
				m.index--
			}
		case "home", "g":
			m.index = 0
		case "end", "G":
			m.index = len(m.hand.Actions)
		}
	}

	m.refresh()

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *replayModel) refresh() {
	state, err := replay.StateAt(m.hand, m.index)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.viewport.SetContent(renderState(state))
}

func (m *replayModel) View() string {
	if !m.initialized {
		return "Loading..."
	}
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n", m.err)
	}
	help := infoStyle.Render(fmt.Sprintf("action %d/%d — ←/→ step, g/G jump, q quit", m.index, len(m.hand.Actions)))
	return m.viewport.View() + "\n" + help
}
