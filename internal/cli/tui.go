package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blockswap/blockswap/pkg/scan"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// BlueprintSelection holds the result of the blueprint picker.
type BlueprintSelection struct {
	Info scan.Info
}

// BlueprintListModel is the bubbletea model for interactive blueprint
// selection from scan results.
type BlueprintListModel struct {
	Infos    []scan.Info
	Cursor   int
	Selected *BlueprintSelection
	Height   int
	Offset   int
}

// NewBlueprintListModel creates a new blueprint list model.
func NewBlueprintListModel(infos []scan.Info) BlueprintListModel {
	return BlueprintListModel{
		Infos:  infos,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m BlueprintListModel) Init() tea.Cmd {
	return nil
}

func (m BlueprintListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Infos)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Infos) == 0 {
				return m, nil
			}
			info := m.Infos[m.Cursor]
			if !info.HasDocument {
				return m, nil
			}
			m.Selected = &BlueprintSelection{Info: info}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m BlueprintListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Blueprint"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Infos) {
		end = len(m.Infos)
	}

	for i := m.Offset; i < end; i++ {
		info := m.Infos[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%-36s %-6s %5d blocks", truncate(info.Name, 36), info.GridSize, info.BlockCount)
		switch {
		case !info.HasDocument:
			line += "  (no document)"
			b.WriteString(cursor + listDimStyle.Render(line))
		case info.ConvertibleCount > 0:
			line += fmt.Sprintf("  %d convertible", info.ConvertibleCount)
			if i == m.Cursor {
				b.WriteString(cursor + listSelectedStyle.Render(line))
			} else {
				b.WriteString(cursor + listNormalStyle.Render(line))
			}
		default:
			if i == m.Cursor {
				b.WriteString(cursor + listSelectedStyle.Render(line))
			} else {
				b.WriteString(cursor + listDimStyle.Render(line))
			}
		}
		b.WriteString("\n")
	}

	if len(m.Infos) > m.Height {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("%d/%d", m.Cursor+1, len(m.Infos))))
	}

	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

// pickBlueprint runs the interactive picker and returns the chosen entry,
// or nil when the user quits without selecting.
func pickBlueprint(infos []scan.Info) (*BlueprintSelection, error) {
	model := NewBlueprintListModel(infos)
	program := tea.NewProgram(model)
	final, err := program.Run()
	if err != nil {
		return nil, err
	}
	if m, ok := final.(BlueprintListModel); ok {
		return m.Selected, nil
	}
	return nil, nil
}
