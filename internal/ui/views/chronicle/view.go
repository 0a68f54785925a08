package chronicle

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	progressdto "flowrpg/internal/modules/progress/dto"
	"flowrpg/internal/ui/theme"
)

// Port is the minimal interface this view needs from the progress use-case.
type Port interface {
	Chronicle(ctx context.Context) progressdto.ChronicleOutput
	Stats(ctx context.Context) progressdto.StatsOutput
}

// Model shows the level-up story, achievements and statistics.
type Model struct {
	port     Port
	viewport viewport.Model
	renderer *glamour.TermRenderer
	style    string
	doc      progressdto.ChronicleOutput
	stats    progressdto.StatsOutput
	width    int
	height   int
}

func New(port Port) Model {
	return Model{port: port, viewport: viewport.New(0, 0)}
}

// Refresh reloads the chronicle. It runs inside the update loop because the
// progress service is not safe for concurrent use.
func (m *Model) Refresh(t theme.Theme) {
	if m.port == nil {
		return
	}
	ctx := context.Background()
	m.doc = m.port.Chronicle(ctx)
	m.stats = m.port.Stats(ctx)
	m.ensureRenderer(t)
	m.viewport.SetContent(m.render())
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(1, height-3)
	m.renderer = nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View(t theme.Theme) string {
	header := t.Title().Render("Chronicle") + t.Muted().Render("  ↑/↓: scroll  e: export")
	stats := t.Muted().Render(fmt.Sprintf(
		"today %d  avg %d min  last 7 days %d min  sessions %d/%d  best streak %d",
		m.stats.CompletedToday,
		m.stats.AverageFocusSec/60,
		m.stats.WeekFocusSec/60,
		m.stats.CompletedSessions,
		m.stats.TotalSessions,
		m.stats.BestStreak,
	))
	footer := t.Muted().Render(fmt.Sprintf("%.0f%%", m.viewport.ScrollPercent()*100))
	return lipgloss.JoinVertical(lipgloss.Left, header, stats, m.viewport.View(), footer)
}

// ensureRenderer rebuilds glamour when the width or the theme changed.
func (m *Model) ensureRenderer(t theme.Theme) {
	if m.renderer != nil && m.style == t.GlamourStyle() {
		return
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(t.GlamourStyle()),
		glamour.WithWordWrap(max(20, m.width-2)),
	)
	if err != nil {
		m.renderer = nil
		return
	}
	m.renderer = r
	m.style = t.GlamourStyle()
}

func (m Model) render() string {
	if m.renderer == nil {
		return m.doc.Markdown
	}
	out, err := m.renderer.Render(m.doc.Markdown)
	if err != nil {
		return m.doc.Markdown
	}
	return out
}
