package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	notifydto "flowrpg/internal/modules/notify/dto"
	progressdto "flowrpg/internal/modules/progress/dto"
	"flowrpg/internal/ui/components"
	"flowrpg/internal/ui/theme"
	chronicleview "flowrpg/internal/ui/views/chronicle"
	dashboardview "flowrpg/internal/ui/views/dashboard"
	notifiersview "flowrpg/internal/ui/views/notifiers"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type progressPort interface {
	Status(ctx context.Context) progressdto.Snapshot
	Start(ctx context.Context) progressdto.ActionOutput
	Stop(ctx context.Context) progressdto.ActionOutput
	Toggle(ctx context.Context) progressdto.ActionOutput
	Activate(ctx context.Context, mode string) (progressdto.ActionOutput, error)
	Tick(ctx context.Context, generation uint64) (progressdto.ActionOutput, bool)
	Forget(ctx context.Context) progressdto.ActionOutput
	Reset(ctx context.Context) progressdto.ActionOutput
	Difficulty(ctx context.Context, difficulty string) (progressdto.ActionOutput, error)
	NewBoss(ctx context.Context) progressdto.ActionOutput
	SpendTokens(ctx context.Context, amount string) (progressdto.ActionOutput, error)
	ToggleZen(ctx context.Context) progressdto.ActionOutput
	SetAlarm(ctx context.Context, minutes int) (progressdto.ActionOutput, error)
	CancelAlarm(ctx context.Context) (progressdto.ActionOutput, error)
	FireAlarm(ctx context.Context) progressdto.ActionOutput
	DismissTips(ctx context.Context) progressdto.ActionOutput
	UpdateSettings(ctx context.Context, input progressdto.SettingsInput) progressdto.ActionOutput
	Stats(ctx context.Context) progressdto.StatsOutput
	Reindex(ctx context.Context) (int, error)
	Chronicle(ctx context.Context) progressdto.ChronicleOutput
	ExportChronicle(ctx context.Context) (string, error)
}

type notifyPort interface {
	List(ctx context.Context) ([]notifydto.NotifierInfo, error)
	Doctor(ctx context.Context) ([]notifydto.DoctorResult, error)
	Test(ctx context.Context, name string) (notifydto.DeliverOutput, error)
}

// ─── tabs ────────────────────────────────────────────────────────────────────

type tabID int

const (
	tabDashboard tabID = iota
	tabChronicle
	tabNotifiers
	tabCount
)

var tabLabels = [tabCount]string{"Dashboard", "Chronicle", "Notifiers"}

// ─── messages ────────────────────────────────────────────────────────────────

// tickMsg is one clock tick stamped with the run that scheduled it.
type tickMsg struct{ gen uint64 }

type alarmMsg struct{}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Toggle     key.Binding
	StartStop  key.Binding
	Focus      key.Binding
	Break      key.Binding
	Zen        key.Binding
	Difficulty key.Binding
	NewBoss    key.Binding
	SpendSmall key.Binding
	SpendBig   key.Binding
	Forget     key.Binding
	Reset      key.Binding
	Tips       key.Binding
	Export     key.Binding
	Tab        key.Binding
	Help       key.Binding
	Palette    key.Binding
	Quit       key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Toggle:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "focus/break")),
		StartStop:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause")),
		Focus:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "focus now")),
		Break:      key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "break now")),
		Zen:        key.NewBinding(key.WithKeys("z", "Z"), key.WithHelp("z", "zen")),
		Difficulty: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "difficulty")),
		NewBoss:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new boss")),
		SpendSmall: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "spend 1 token")),
		SpendBig:   key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "spend 3 tokens")),
		Forget:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "forget session")),
		Reset:      key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset all")),
		Tips:       key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hide tips")),
		Export:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export chronicle")),
		Tab:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:    key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.StartStop, k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.StartStop, k.Focus, k.Break, k.Zen},
		{k.Difficulty, k.NewBoss, k.SpendSmall, k.SpendBig},
		{k.Forget, k.Reset, k.Tips, k.Export},
		{k.Tab, k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. Every progress call happens inside
// Update, so clock ticks, alarm firing and key presses are applied one at a
// time in arrival order.
type Model struct {
	progress progressPort
	interval time.Duration
	now      func() time.Time

	snap      progressdto.Snapshot
	tickedGen uint64

	dashboard dashboardview.Model
	chronicle chronicleview.Model
	notifiers notifiersview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	confirm   string
	status    string
	width     int
	height    int
}

func NewModel(progress progressPort, notify notifyPort, interval time.Duration) Model {
	if interval <= 0 {
		interval = time.Second
	}
	var notifyView notifiersview.Port
	if notify != nil {
		notifyView = notify
	}
	return Model{
		progress:  progress,
		interval:  interval,
		now:       time.Now,
		snap:      progress.Status(context.Background()),
		dashboard: dashboardview.New(),
		chronicle: chronicleview.New(progress),
		notifiers: notifiersview.New(notifyView),
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(),
		status:    "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.notifiers.Init(), m.alarmCmd(), m.ensureTicking())
}

func (m Model) theme() theme.Theme {
	return theme.For(m.snap.Dark)
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	switch msg := msg.(type) {
	case tickMsg:
		out, ok := m.progress.Tick(ctx, msg.gen)
		if !ok {
			if msg.gen == m.tickedGen {
				m.tickedGen = 0
			}
			return m, nil
		}
		m.apply(out)
		return m, m.tickCmd(msg.gen)

	case alarmMsg:
		m.apply(m.progress.FireAlarm(ctx))
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.dashboard.SetSize(m.width, m.height-3)
		m.chronicle.SetSize(m.width, m.height-3)
		m.notifiers.SetSize(m.width, m.height-3)
		return m, nil
	}

	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.confirm != "" {
			return m.resolveConfirm(msg.String() == "y" || msg.String() == "Y"), nil
		}
		if m.activeTab == tabNotifiers && m.notifiers.Filtering() {
			break
		}
		if handled, next, cmd := m.handleKey(ctx, msg); handled {
			return next, cmd
		}
	}

	var cmd tea.Cmd
	switch m.activeTab {
	case tabChronicle:
		m.chronicle, cmd = m.chronicle.Update(msg)
	case tabNotifiers:
		m.notifiers, cmd = m.notifiers.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(ctx context.Context, msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		m.apply(m.progress.Stop(ctx))
		return true, m, tea.Quit
	case key.Matches(msg, k.Tab):
		m.activeTab = (m.activeTab + 1) % tabCount
		if m.activeTab == tabChronicle {
			m.chronicle.Refresh(m.theme())
		}
		return true, m, nil
	case msg.String() == "shift+tab":
		m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		if m.activeTab == tabChronicle {
			m.chronicle.Refresh(m.theme())
		}
		return true, m, nil
	case key.Matches(msg, k.Help):
		m.showHelp = !m.showHelp
		return true, m, nil
	case key.Matches(msg, k.Palette):
		return true, m, m.palette.Open()
	case key.Matches(msg, k.Toggle):
		m.apply(m.progress.Toggle(ctx))
		return true, m, m.ensureTicking()
	case key.Matches(msg, k.StartStop):
		if m.snap.Running {
			m.apply(m.progress.Stop(ctx))
		} else {
			m.apply(m.progress.Start(ctx))
		}
		return true, m, m.ensureTicking()
	case key.Matches(msg, k.Focus), key.Matches(msg, k.Break):
		mode := "focus"
		if key.Matches(msg, k.Break) {
			mode = "break"
		}
		out, err := m.progress.Activate(ctx, mode)
		if m.report(err) {
			m.apply(out)
		}
		return true, m, m.ensureTicking()
	case key.Matches(msg, k.Zen):
		m.apply(m.progress.ToggleZen(ctx))
		return true, m, nil
	}

	// Remaining keys only act on the dashboard or chronicle tab.
	switch {
	case m.activeTab == tabChronicle && key.Matches(msg, k.Export):
		m.exportChronicle(ctx)
		return true, m, nil
	case m.activeTab != tabDashboard:
		return false, m, nil
	case key.Matches(msg, k.Difficulty):
		out, err := m.progress.Difficulty(ctx, "next")
		if m.report(err) {
			m.apply(out)
			m.status = "difficulty: " + out.Snapshot.DifficultyLabel
		}
	case key.Matches(msg, k.NewBoss):
		m.apply(m.progress.NewBoss(ctx))
		m.status = "a new boss appears: " + m.snap.BossName
	case key.Matches(msg, k.SpendSmall), key.Matches(msg, k.SpendBig):
		amount := "small"
		if key.Matches(msg, k.SpendBig) {
			amount = "big"
		}
		out, err := m.progress.SpendTokens(ctx, amount)
		if m.report(err) {
			m.apply(out)
			m.status = fmt.Sprintf("tokens spent (%s), %d left", amount, out.Snapshot.Tokens)
		}
	case key.Matches(msg, k.Forget):
		m.confirm = "forget"
		m.status = "forget this session? (y/n)"
	case key.Matches(msg, k.Reset):
		m.confirm = "reset"
		m.status = "reset ALL progress? (y/n)"
	case key.Matches(msg, k.Tips):
		m.apply(m.progress.DismissTips(ctx))
	default:
		return false, m, nil
	}
	return true, m, nil
}

func (m Model) resolveConfirm(yes bool) Model {
	action := m.confirm
	m.confirm = ""
	if !yes {
		m.status = action + " cancelled"
		return m
	}
	ctx := context.Background()
	switch action {
	case "forget":
		m.apply(m.progress.Forget(ctx))
	case "reset":
		m.apply(m.progress.Reset(ctx))
		m.status = "progress reset, new boss: " + m.snap.BossName
	}
	return m
}

// apply stores the new snapshot and surfaces the last raised event.
func (m *Model) apply(out progressdto.ActionOutput) {
	if out.Snapshot.BossName != "" {
		m.snap = out.Snapshot
	}
	if n := len(out.Events); n > 0 {
		ev := out.Events[n-1]
		m.status = ev.Title
		if ev.Body != "" {
			m.status += ": " + ev.Body
		}
	}
}

// report surfaces err in the status bar and reports whether it was nil.
func (m *Model) report(err error) bool {
	if err != nil {
		m.status = err.Error()
		return false
	}
	return true
}

func (m *Model) exportChronicle(ctx context.Context) {
	path, err := m.progress.ExportChronicle(ctx)
	if m.report(err) {
		m.status = "chronicle exported to " + path
	}
}

// ─── scheduling ──────────────────────────────────────────────────────────────

// ensureTicking starts a tick chain for the live run unless one is already
// scheduled. Chains of older runs die on their first rejected tick.
func (m *Model) ensureTicking() tea.Cmd {
	if !m.snap.Running || m.snap.Generation == m.tickedGen {
		return nil
	}
	m.tickedGen = m.snap.Generation
	return m.tickCmd(m.snap.Generation)
}

func (m Model) tickCmd(gen uint64) tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

func (m Model) alarmCmd() tea.Cmd {
	if !m.snap.AlarmEnabled || m.snap.AlarmDeadline.IsZero() {
		return nil
	}
	wait := max(m.snap.AlarmDeadline.Sub(m.now()), 0)
	return tea.Tick(wait, func(time.Time) tea.Msg { return alarmMsg{} })
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	t := m.theme()
	tabBar := m.renderTabBar(t)
	statusBar := m.renderStatusBar(t)
	contentH := max(1, m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar))

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View(t))
	default:
		switch m.activeTab {
		case tabDashboard:
			content = m.dashboard.View(m.snap, t, m.now())
		case tabChronicle:
			content = m.chronicle.View(t)
		case tabNotifiers:
			content = m.notifiers.View(t)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderTabBar(t theme.Theme) string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		if i == m.activeTab {
			parts[i] = t.Hot().Render(" " + tabLabels[i] + " ")
		} else {
			parts[i] = t.Muted().Render(" " + tabLabels[i] + " ")
		}
	}
	bar := "flowrpg  " + strings.Join(parts, t.Muted().Render(" │ "))
	return lipgloss.NewStyle().Background(t.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar(t theme.Theme) string {
	left := m.status
	right := t.Muted().Render("?:help  tab:switch  :::palette  q:quit")
	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(t.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	ctx := context.Background()
	arg := ""
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch parts[0] {
	case "alarm":
		minutes, err := strconv.Atoi(arg)
		if err != nil {
			m.status = "usage: alarm <minutes>"
			return m, nil
		}
		out, err := m.progress.SetAlarm(ctx, minutes)
		if !m.report(err) {
			return m, nil
		}
		m.apply(out)
		m.status = fmt.Sprintf("alarm set for %d minutes", minutes)
		return m, m.alarmCmd()

	case "alarm:cancel":
		out, err := m.progress.CancelAlarm(ctx)
		if m.report(err) {
			m.apply(out)
			m.status = "alarm cancelled"
		}

	case "boss:new":
		m.apply(m.progress.NewBoss(ctx))
		m.status = "a new boss appears: " + m.snap.BossName

	case "chronicle:export":
		m.exportChronicle(ctx)

	case "difficulty":
		out, err := m.progress.Difficulty(ctx, arg)
		if m.report(err) {
			m.apply(out)
			m.status = "difficulty: " + out.Snapshot.DifficultyLabel
		}

	case "forget":
		m.confirm = "forget"
		m.status = "forget this session? (y/n)"

	case "reset":
		m.confirm = "reset"
		m.status = "reset ALL progress? (y/n)"

	case "notifier:test":
		m.activeTab = tabNotifiers
		return m, m.notifiers.Test(arg)

	case "reindex":
		n, err := m.progress.Reindex(ctx)
		if m.report(err) {
			m.status = fmt.Sprintf("reindexed %d sessions", n)
		}

	case "settings:sound", "settings:notification-sound", "settings:button-sound", "settings:auto-dark":
		m.apply(m.progress.UpdateSettings(ctx, m.toggleSetting(parts[0])))
		m.status = parts[0] + " updated"

	case "tokens":
		out, err := m.progress.SpendTokens(ctx, arg)
		if m.report(err) {
			m.apply(out)
			m.status = fmt.Sprintf("tokens spent, %d left", out.Snapshot.Tokens)
		}

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

func (m Model) toggleSetting(name string) progressdto.SettingsInput {
	flip := func(v bool) *bool {
		v = !v
		return &v
	}
	switch name {
	case "settings:sound":
		return progressdto.SettingsInput{Sound: flip(m.snap.SoundEnabled)}
	case "settings:notification-sound":
		return progressdto.SettingsInput{NotificationSound: flip(m.snap.NotificationSound)}
	case "settings:button-sound":
		return progressdto.SettingsInput{ButtonSound: flip(m.snap.ButtonSound)}
	default:
		return progressdto.SettingsInput{AutoDarkMode: flip(m.snap.AutoDarkMode)}
	}
}
