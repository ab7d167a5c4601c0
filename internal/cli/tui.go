package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/net/html"

	"github.com/matzehuels/tablescroll/pkg/dom"
	"github.com/matzehuels/tablescroll/pkg/render"
	"github.com/matzehuels/tablescroll/pkg/resize"
)

// chromeLines is the number of lines the viewer draws around the table.
const chromeLines = 3

// Viewer styles
var (
	viewTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	viewDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
	viewErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Key Bindings
// =============================================================================

type viewKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Next     key.Binding
	Prev     key.Binding
	Quit     key.Binding
}

var viewKeys = viewKeyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d", " "), key.WithHelp("pgdn", "page down")),
	Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
	Bottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
	Next:     key.NewBinding(key.WithKeys("tab", "n"), key.WithHelp("tab", "next table")),
	Prev:     key.NewBinding(key.WithKeys("shift+tab", "p"), key.WithHelp("⇧tab", "prev table")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

func (k viewKeyMap) help() string {
	bindings := []key.Binding{k.Down, k.Up, k.PageDown, k.Top, k.Bottom, k.Next, k.Quit}
	parts := make([]string, len(bindings))
	for i, b := range bindings {
		h := b.Help()
		parts[i] = h.Key + " " + h.Desc
	}
	return strings.Join(parts, "  ")
}

// =============================================================================
// ViewModel - Interactive table viewer
// =============================================================================

// relayoutMsg carries a debounced relayout onto the program's goroutine.
type relayoutMsg struct {
	run func()
}

// ViewModel is the bubbletea model for scrolling through laid-out tables.
type ViewModel struct {
	ctx      context.Context
	coord    *resize.Coordinator
	renderer *render.Renderer
	keys     viewKeyMap

	tables    []*html.Node
	offsets   []int
	current   int
	width     int
	height    int
	relayouts int

	// frame is the current table drawn at its offset; View only prints it.
	frame    *render.View
	frameErr error
}

// newViewModel creates a viewer over the coordinator's registered tables.
func newViewModel(ctx context.Context, coord *resize.Coordinator, r *render.Renderer) ViewModel {
	tables := coord.Tables()
	m := ViewModel{
		ctx:      ctx,
		coord:    coord,
		renderer: r,
		keys:     viewKeys,
		tables:   tables,
		offsets:  make([]int, len(tables)),
	}
	m.redraw()
	return m
}

func (m ViewModel) Init() tea.Cmd {
	return nil
}

func (m ViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Down):
			m.scrollBy(1)
		case key.Matches(msg, m.keys.Up):
			m.scrollBy(-1)
		case key.Matches(msg, m.keys.PageDown):
			m.scrollBy(m.page())
		case key.Matches(msg, m.keys.PageUp):
			m.scrollBy(-m.page())
		case key.Matches(msg, m.keys.Top):
			m.scrollTo(0)
		case key.Matches(msg, m.keys.Bottom):
			m.scrollTo(int(^uint(0) >> 1))
		case key.Matches(msg, m.keys.Next):
			if len(m.tables) > 0 {
				m.current = (m.current + 1) % len(m.tables)
				m.redraw()
			}
		case key.Matches(msg, m.keys.Prev):
			if len(m.tables) > 0 {
				m.current = (m.current + len(m.tables) - 1) % len(m.tables)
				m.redraw()
			}
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.coord.Resize(m.ctx, msg.Width, max(0, msg.Height-chromeLines))
	case relayoutMsg:
		msg.run()
		m.relayouts++
		for i := range m.offsets {
			if i != m.current {
				m.clamp(i)
			}
		}
		m.redraw()
	}
	return m, nil
}

func (m *ViewModel) scrollBy(d int) {
	if len(m.tables) == 0 {
		return
	}
	m.scrollTo(m.offsets[m.current] + d)
}

func (m *ViewModel) scrollTo(offset int) {
	if len(m.tables) == 0 {
		return
	}
	m.offsets[m.current] = max(0, offset)
	m.redraw()
}

// redraw renders the current table and pulls its offset back into range.
func (m *ViewModel) redraw() {
	if len(m.tables) == 0 {
		m.frame, m.frameErr = nil, nil
		return
	}
	m.frame, m.frameErr = m.renderer.Render(m.tables[m.current], m.offsets[m.current])
	if m.frameErr == nil {
		m.offsets[m.current] = m.frame.Offset
	}
}

// clamp pulls table i's offset back into the range its layout allows.
func (m *ViewModel) clamp(i int) {
	v, err := m.renderer.Render(m.tables[i], m.offsets[i])
	if err != nil {
		return
	}
	m.offsets[i] = v.Offset
}

func (m ViewModel) page() int {
	if m.frame == nil {
		return 1
	}
	return max(1, m.frame.Viewport)
}

func (m ViewModel) View() string {
	var b strings.Builder

	if len(m.tables) == 0 {
		b.WriteString(viewDimStyle.Render("No data-scroll tables found."))
		b.WriteString("\n")
		b.WriteString(viewDimStyle.Render(m.keys.Quit.Help().Key + " " + m.keys.Quit.Help().Desc))
		return b.String()
	}

	table := m.tables[m.current]
	title := fmt.Sprintf("Table %d/%d", m.current+1, len(m.tables))
	b.WriteString(viewTitleStyle.Render(title))
	if id, ok := dom.Attr(table, "id"); ok {
		b.WriteString(" " + viewDimStyle.Render("#"+id))
	}
	b.WriteString("\n")

	v, err := m.frame, m.frameErr
	if err != nil {
		b.WriteString(viewErrorStyle.Render(iconError + " " + err.Error()))
	} else if v != nil {
		b.WriteString(v.String())
	}
	b.WriteString("\n")

	status := ""
	if err == nil && v != nil && v.MaxOffset > 0 {
		status = fmt.Sprintf("[%d/%d]  ", v.Offset, v.MaxOffset)
	}
	b.WriteString(viewDimStyle.Render(status + m.keys.help()))

	return b.String()
}
