package tui

import (
	"fmt"
	"strings"
	"time"

	"teachersday/internal/gallery"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	listWidth     = 28
	celebrateFor  = 3 * time.Second
	confettiTrail = "🎉 🎈 🎊 🎈 🎉 🎈 🎊 🎈 🎉"
)

type teacherItem struct {
	name string
	file string
}

func (i teacherItem) FilterValue() string { return i.name }
func (i teacherItem) Title() string       { return i.name }
func (i teacherItem) Description() string { return i.file }

type celebrateDoneMsg struct{ gen int }

type model struct {
	g    *gallery.Gallery
	list list.Model

	// result is the lookup for shown; it is recomputed whenever the
	// selection changes or on "r".
	result gallery.Result
	shown  string

	width  int
	height int

	celebrating bool
	celebrateN  int
}

func newModel(g *gallery.Gallery) model {
	ts := g.Roster().Teachers()
	items := make([]list.Item, 0, len(ts))
	for _, t := range ts {
		items = append(items, teacherItem{name: t.Name, file: t.File})
	}

	l := list.New(items, list.NewDefaultDelegate(), listWidth, 20)
	l.Title = "Select a teacher"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	m := model{g: g, list: l}
	m.refresh()
	return m
}

func (m model) selectedName() string {
	it, ok := m.list.SelectedItem().(teacherItem)
	if !ok {
		return ""
	}
	return it.name
}

func (m *model) refresh() {
	name := m.selectedName()
	if name == "" {
		m.shown = ""
		m.result = gallery.Result{}
		return
	}
	m.shown = name
	m.result = m.g.Show(name)
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h := msg.Height - lipgloss.Height(m.headerView())
		if h < 5 {
			h = 5
		}
		m.list.SetSize(listWidth, h)
		return m, nil

	case celebrateDoneMsg:
		if msg.gen == m.celebrateN {
			m.celebrating = false
		}
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "c":
				m.celebrateN++
				m.celebrating = true
				gen := m.celebrateN
				return m, tea.Tick(celebrateFor, func(time.Time) tea.Msg { return celebrateDoneMsg{gen: gen} })
			case "r":
				m.refresh()
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	if m.selectedName() != m.shown {
		m.refresh()
	}
	return m, cmd
}

func (m model) headerView() string {
	ros := m.g.Roster()
	width := m.width
	if width <= 0 {
		width = 80
	}
	var b strings.Builder
	b.WriteString(styleTitle.Render(ros.Title()))
	b.WriteString("\n")
	b.WriteString(styleSub.Render(ros.Subtitle()))
	b.WriteString("\n")
	if greeting := renderMarkdown(ros.Greeting(), width-4); greeting != "" {
		b.WriteString(greeting)
		b.WriteString("\n")
	}
	if m.celebrating {
		b.WriteString(styleParty.Render(confettiTrail))
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) detailView() string {
	r := m.result
	if r.Teacher == "" {
		return styleLabel.Render("No teacher selected.")
	}

	var lines []string
	lines = append(lines, styleName.Render(r.Teacher), "")
	switch r.Status {
	case gallery.StatusOK:
		lines = append(lines,
			styleLabel.Render("Photo:   ")+r.File,
			styleLabel.Render("Path:    ")+r.Path,
			styleLabel.Render("Matched: ")+r.Tier,
		)
		if r.Image != nil {
			lines = append(lines, styleLabel.Render("Image:   ")+fmt.Sprintf("%s %d×%d", r.Image.Format, r.Image.Width, r.Image.Height))
		}
		if len(r.Ambiguous) > 0 {
			lines = append(lines, "", styleLabel.Render("Also matching: "+strings.Join(r.Ambiguous, ", ")))
		}
	case gallery.StatusNotFound:
		lines = append(lines, styleError.Render("❌ "+r.Message), "", styleInfo.Render(r.Note))
		for _, f := range r.Files {
			lines = append(lines, styleInfo.Render("  - "+f))
		}
	default:
		lines = append(lines, styleError.Render("⚠️ "+r.Message))
	}

	width := m.width - listWidth - 4
	if width < 20 {
		width = 20
	}
	return stylePane.Width(width).Render(strings.Join(lines, "\n"))
}

func (m model) View() string {
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), " ", m.detailView())
	help := styleHelp.Render("↑/↓ choose • / filter • c celebrate • r refresh • q quit")
	return m.headerView() + "\n" + body + "\n" + help
}
