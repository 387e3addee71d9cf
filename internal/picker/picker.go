// Package picker provides the interactive chooser shown when the play
// command is started without a script (or with --music ask) on a
// terminal.
package picker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrAborted is returned when the user cancels the selection.
var ErrAborted = errors.New("selection aborted")

// Item is one selectable entry. Value is what Run returns when the
// entry is chosen.
type Item struct {
	Title       string
	Description string
	Value       string
}

// Run displays the chooser and blocks until the user picks an item or
// aborts.
func Run(title string, items []Item) (string, error) {
	if len(items) == 0 {
		return "", errors.New("nothing to choose from")
	}

	p := tea.NewProgram(newModel(title, items))
	result, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("run picker: %w", err)
	}

	final := result.(pickerModel)
	if final.aborted || final.choice == "" {
		return "", ErrAborted
	}
	return final.choice, nil
}

type pickerModel struct {
	title     string
	items     []Item
	filtered  []Item
	cursor    int
	offset    int
	width     int
	height    int
	filter    textinput.Model
	filtering bool
	choice    string
	aborted   bool
}

func newModel(title string, items []Item) pickerModel {
	ti := textinput.New()
	ti.Placeholder = "filtrar..."
	ti.CharLimit = 60

	m := pickerModel{
		title:  title,
		items:  items,
		filter: ti,
		width:  80,
		height: 24,
	}
	m.applyFilter()
	return m
}

func (m *pickerModel) applyFilter() {
	m.filtered = m.filtered[:0]
	search := strings.ToLower(m.filter.Value())

	for _, item := range m.items {
		if search != "" {
			haystack := strings.ToLower(item.Title + " " + item.Description)
			if !strings.Contains(haystack, search) {
				continue
			}
		}
		m.filtered = append(m.filtered, item)
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
	m.clampOffset()
}

func (m *pickerModel) clampOffset() {
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m pickerModel) visibleRows() int {
	// title + filter + help take up the rest
	rows := m.height - 4
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampOffset()
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFiltering(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m pickerModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.aborted = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.clampOffset()
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
			m.clampOffset()
		}
		return m, nil

	case "enter":
		if len(m.filtered) > 0 {
			m.choice = m.filtered[m.cursor].Value
		}
		return m, tea.Quit

	case "/":
		m.filtering = true
		m.filter.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m pickerModel) updateFiltering(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.aborted = true
		return m, tea.Quit

	case "esc":
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.applyFilter()
		return m, nil

	case "enter":
		m.filtering = false
		m.filter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m pickerModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")

	if m.filtering || m.filter.Value() != "" {
		b.WriteString(inputStyle.Render(m.filter.View()))
		b.WriteString("\n")
	}

	if len(m.filtered) == 0 {
		b.WriteString(dimStyle.Render("(sin resultados)"))
		b.WriteString("\n")
	}

	visible := m.visibleRows()
	end := min(m.offset+visible, len(m.filtered))
	for i := m.offset; i < end; i++ {
		item := m.filtered[i]
		line := item.Title
		if item.Description != "" {
			line += "  " + dimStyle.Render(item.Description)
		}
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString(normalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("↑/↓ mover · enter elegir · / filtrar · q salir"))
	return b.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
