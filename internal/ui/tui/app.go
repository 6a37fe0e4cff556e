// Package tui is the interactive schema browser.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vektah/gqlparser/v2/ast"
)

type screen int

const (
	screenTypes screen = iota
	screenDetail
)

type typeItem struct {
	name string
	kind string
	desc string
}

func (t typeItem) Title() string {
	return fmt.Sprintf("%s  (%s)", t.name, t.kind)
}
func (t typeItem) Description() string { return clampString(t.desc, 80) }
func (t typeItem) FilterValue() string { return t.name }

type model struct {
	theme Theme
	deps  Deps

	scr     screen
	types   list.Model
	schema  *ast.Schema
	active  *ast.Definition
	loading bool
	toast   string
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	t := DefaultTheme()

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Schema types"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return model{
		theme:   t,
		deps:    deps,
		scr:     screenTypes,
		types:   l,
		loading: true,
	}
}

func (m model) Init() tea.Cmd {
	return cmdLoadSchema(m.deps)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w, h := msg.Width, msg.Height
		m.types.SetSize(w-4, h-10)
		return m, nil

	case schemaLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.schema = msg.schema
		m.toast = ""

		defs := browsableTypes(msg.schema)
		items := make([]list.Item, 0, len(defs))
		for _, def := range defs {
			items = append(items, typeItem{
				name: def.Name,
				kind: kindLabel(def.Kind),
				desc: def.Description,
			})
		}
		m.types.SetItems(items)
		return m, nil

	case tea.KeyMsg:
		// Let the list handle keys while the user is filtering.
		if m.scr == screenTypes && m.types.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.scr == screenTypes {
				return m, tea.Quit
			}
			m.scr = screenTypes
			m.active = nil
			return m, nil

		case "r":
			if m.scr == screenTypes && !m.loading {
				m.loading = true
				m.toast = ""
				return m, cmdLoadSchema(m.deps)
			}

		case "enter":
			if m.scr == screenTypes && m.schema != nil {
				it, ok := m.types.SelectedItem().(typeItem)
				if !ok {
					return m, nil
				}
				if def, found := m.schema.Types[it.name]; found {
					m.scr = screenDetail
					m.active = def
				}
				return m, nil
			}

		case "esc", "b":
			if m.scr != screenTypes {
				m.scr = screenTypes
				m.active = nil
				return m, nil
			}
		}
	}

	if m.scr == screenTypes {
		var cmd tea.Cmd
		m.types, cmd = m.types.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("graphql-client") + "\n" +
		m.theme.Subtitle.Render("Schema browser — "+clampString(m.deps.Source, 60)) + "\n"

	var banner string
	switch {
	case m.loading:
		banner = m.theme.Help.Render("Loading schema…")
	case m.toast != "":
		banner = m.theme.Card.Render("⚠ " + m.toast + "\n\nPress r to retry.")
	}

	switch m.scr {
	case screenTypes:
		help := m.theme.Help.Render("↑/↓ navigate • enter open • / search • r reload • q quit")
		body := m.theme.Card.Render(m.types.View())
		if banner != "" {
			return wrap.Render(header + "\n" + banner + "\n\n" + body + "\n" + help)
		}
		return wrap.Render(header + "\n" + body + "\n" + help)

	case screenDetail:
		if m.active == nil {
			return wrap.Render(header + "\n" + "unknown state")
		}
		card := m.theme.Card.Render(
			m.theme.Title.Render(m.active.Name) + "\n\n" +
				renderTypeDetail(m.active) + "\n" +
				m.theme.Help.Render("esc/b back • q types"),
		)
		return wrap.Render(header + "\n" + card)

	default:
		return wrap.Render(header + "\n" + "unknown state")
	}
}
