package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	progressdto "flowrpg/internal/modules/progress/dto"
	"flowrpg/internal/ui/theme"
)

var tips = []string{
	"enter switches focus/break, space pauses the clock.",
	"10 minutes of focus register a mini block; 25 minutes upgrade it to deep.",
	"Breaks are earned: every 3 minutes of focus buy 1 minute of break on Normal.",
	"Press : for the command palette, ? for help. Press h to hide these tips.",
}

// Model renders the main timer screen from a progress snapshot.
type Model struct {
	expBar progress.Model
	hpBar  progress.Model
	width  int
	height int
}

func New() Model {
	return Model{
		expBar: progress.New(progress.WithoutPercentage()),
		hpBar:  progress.New(progress.WithoutPercentage()),
	}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	barW := max(10, min(width/2-8, 48))
	m.expBar.Width = barW
	m.hpBar.Width = barW
}

// View renders snap. now is only used for the alarm countdown.
func (m Model) View(snap progressdto.Snapshot, t theme.Theme, now time.Time) string {
	if snap.ZenMode {
		return m.zenView(snap, t)
	}
	left := lipgloss.JoinVertical(lipgloss.Left,
		m.clockPane(snap, t, now),
		m.balancePane(snap, t),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.heroPane(snap, t),
		m.achievementsPane(snap, t),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
	if !snap.HasSeenTips {
		body = lipgloss.JoinVertical(lipgloss.Left, body, m.tipsPane(t))
	}
	return body
}

func (m Model) paneWidth() int {
	return max(30, m.width/2-2)
}

func (m Model) zenView(snap progressdto.Snapshot, t theme.Theme) string {
	clock := t.Hot().Render(snap.Clock)
	mode := t.Muted().Render(modeLabel(snap))
	return lipgloss.Place(m.width, max(3, m.height), lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, clock, mode, t.Muted().Render("z: leave zen")))
}

func (m Model) clockPane(snap progressdto.Snapshot, t theme.Theme, now time.Time) string {
	lines := []string{
		t.Title().Render(modeLabel(snap)),
		t.Hot().Render(snap.Clock),
		t.Muted().Render(fmt.Sprintf("auto: %s  blocks: %d", snap.AutoState, snap.Blocks)),
	}
	if snap.AlarmEnabled && !snap.AlarmDeadline.IsZero() {
		left := snap.AlarmDeadline.Sub(now).Round(time.Second)
		if left < 0 {
			left = 0
		}
		lines = append(lines, t.Muted().Render(fmt.Sprintf("alarm in %s (%d min)", left, snap.AlarmMinutes)))
	}
	return t.PaneActive().Width(m.paneWidth()).Render(strings.Join(lines, "\n"))
}

func (m Model) balancePane(snap progressdto.Snapshot, t theme.Theme) string {
	lines := []string{
		t.Title().Render("Break balance"),
		t.Tone(snap.FeedbackTone).Render(snap.BalanceClock + "  " + snap.Feedback),
		t.Muted().Render(fmt.Sprintf("%s  tokens: %d", snap.DifficultyLabel, snap.Tokens)),
	}
	if len(snap.Buffs) > 0 {
		lines = append(lines, t.Good().Render("Buffs: "+strings.Join(snap.Buffs, ", ")))
	}
	return t.Pane().Width(m.paneWidth()).Render(strings.Join(lines, "\n"))
}

func (m Model) heroPane(snap progressdto.Snapshot, t theme.Theme) string {
	expPct, hpPct := 0.0, 0.0
	if snap.LevelSize > 0 {
		expPct = float64(snap.ExpInLevel) / float64(snap.LevelSize)
	}
	if snap.HPTotal > 0 {
		hpPct = float64(snap.HPRemaining) / float64(snap.HPTotal)
	}
	exp := m.expBar
	exp.FullColor = string(t.Lavender)
	hp := m.hpBar
	hp.FullColor = string(t.Red)

	boss := fmt.Sprintf("%s  %d/%d HP", snap.BossName, snap.HPRemaining, snap.HPTotal)
	if snap.Defeated {
		boss = t.Good().Render(snap.BossName+" defeated") + t.Muted().Render("  (n: new boss)")
	}
	lines := []string{
		t.Title().Render(fmt.Sprintf("Level %d", snap.Level)),
		exp.ViewAs(expPct) + t.Muted().Render(fmt.Sprintf(" %d/%d", snap.ExpInLevel, snap.LevelSize)),
		boss,
		hp.ViewAs(hpPct),
		t.Muted().Render(fmt.Sprintf("streak %d (best %d)  today %d  bosses %d", snap.CurrentStreak, snap.BestStreak, snap.DailySessions, snap.BossesDefeated)),
	}
	return t.Pane().Width(m.paneWidth()).Render(strings.Join(lines, "\n"))
}

func (m Model) achievementsPane(snap progressdto.Snapshot, t theme.Theme) string {
	lines := []string{t.Title().Render("Achievements")}
	for _, a := range snap.Achievements {
		if a.Unlocked {
			lines = append(lines, a.Icon+" "+a.Name)
			continue
		}
		lines = append(lines, t.Muted().Render("· "+a.Name))
	}
	return t.Pane().Width(m.paneWidth()).Render(strings.Join(lines, "\n"))
}

func (m Model) tipsPane(t theme.Theme) string {
	lines := []string{t.Title().Render("Tips")}
	for _, tip := range tips {
		lines = append(lines, t.Muted().Render("• "+tip))
	}
	return t.Pane().Width(max(30, m.width-2)).Render(strings.Join(lines, "\n"))
}

func modeLabel(snap progressdto.Snapshot) string {
	label := "Focus"
	if snap.Mode == "break" {
		label = "Break"
	}
	if !snap.Running {
		label += " (paused)"
	}
	return label
}
