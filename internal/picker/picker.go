// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package picker is the interactive title selector: a filterable
// terminal list over the candidate items.
package picker

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/zotlit/internal/sync"
)

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))

// entry adapts a plain title string to the list item interfaces.
type entry string

func (e entry) Title() string       { return string(e) }
func (e entry) Description() string { return "" }
func (e entry) FilterValue() string { return string(e) }

type model struct {
	list   list.Model
	choice string
}

func newModel(titles []string) model {
	items := make([]list.Item, len(titles))
	for i, t := range titles {
		items[i] = entry(t)
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	l := list.New(items, delegate, 0, 0)
	l.Title = "Select an item to sync"
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(false)

	return model{list: l}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if m.list.FilterState() != list.Filtering {
				if e, ok := m.list.SelectedItem().(entry); ok {
					m.choice = string(e)
				}
				return m, tea.Quit
			}
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			// Esc while filtering clears the filter; Esc otherwise
			// dismisses the picker without a choice.
			if m.list.FilterState() == list.Unfiltered {
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string { return m.list.View() }

// Picker implements sync.Selector with a full-screen terminal list.
type Picker struct{}

// Select runs the picker over titles and returns the chosen one, or
// sync.ErrNoSelection when dismissed.
func (Picker) Select(titles []string) (string, error) {
	final, err := tea.NewProgram(newModel(titles), tea.WithAltScreen()).Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(model)
	if !ok || m.choice == "" {
		return "", sync.ErrNoSelection
	}
	return m.choice, nil
}
