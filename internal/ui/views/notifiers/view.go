package notifiers

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	notifydto "flowrpg/internal/modules/notify/dto"
	"flowrpg/internal/ui/theme"
)

// Port is the minimal interface this view needs from the notify use-case.
type Port interface {
	List(ctx context.Context) ([]notifydto.NotifierInfo, error)
	Doctor(ctx context.Context) ([]notifydto.DoctorResult, error)
	Test(ctx context.Context, name string) (notifydto.DeliverOutput, error)
}

// LoadedMsg carries the manifest list joined with doctor results.
type LoadedMsg struct {
	Items []notifydto.NotifierInfo
	Check map[string]notifydto.DoctorResult
	Err   error
}

// TestDoneMsg reports a test notification.
type TestDoneMsg struct {
	Name string
	Out  notifydto.DeliverOutput
	Err  error
}

type notifierItem struct {
	info  notifydto.NotifierInfo
	check notifydto.DoctorResult
}

func (i notifierItem) Title() string { return i.info.Name + " " + i.info.Version }

func (i notifierItem) Description() string {
	state := "disabled"
	if i.info.Enabled {
		state = "enabled"
	}
	switch {
	case i.check.Error != "":
		state += " · " + i.check.Error
	case i.check.LifecycleOK:
		state += " · healthy"
	}
	kinds := "all kinds"
	if len(i.info.Kinds) > 0 {
		kinds = strings.Join(i.info.Kinds, ",")
	}
	return state + " · " + kinds
}

func (i notifierItem) FilterValue() string { return i.info.Name }

// Model lists plugin notifiers and sends test notifications.
type Model struct {
	port    Port
	list    list.Model
	spinner spinner.Model
	status  string
	loading bool
	width   int
	height  int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, 0, 0)
	l.Title = "Notifiers"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{port: port, list: l, spinner: sp, status: "t: send test  r: reload"}
}

func (m Model) Init() tea.Cmd { return m.Reload() }

// Reload lists notifiers and runs doctor checks off the update loop.
func (m Model) Reload() tea.Cmd {
	if m.port == nil {
		return nil
	}
	port := m.port
	return func() tea.Msg {
		ctx := context.Background()
		items, err := port.List(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		check := map[string]notifydto.DoctorResult{}
		results, err := port.Doctor(ctx)
		for _, r := range results {
			check[r.Name] = r
		}
		return LoadedMsg{Items: items, Check: check, Err: err}
	}
}

// Test sends a sample notification; an empty name goes through every target.
func (m *Model) Test(name string) tea.Cmd {
	if m.port == nil {
		return nil
	}
	m.loading = true
	port := m.port
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		out, err := port.Test(context.Background(), name)
		return TestDoneMsg{Name: name, Out: out, Err: err}
	})
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, max(1, height-2))
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.status = "load notifiers: " + msg.Err.Error()
		}
		items := make([]list.Item, 0, len(msg.Items))
		for _, info := range msg.Items {
			items = append(items, notifierItem{info: info, check: msg.Check[info.Name]})
		}
		cmds = append(cmds, m.list.SetItems(items))

	case TestDoneMsg:
		m.loading = false
		target := msg.Name
		if target == "" {
			target = "all targets"
		}
		if msg.Err != nil {
			m.status = fmt.Sprintf("test %s: %v", target, msg.Err)
		} else {
			m.status = fmt.Sprintf("test %s delivered to %s", target, strings.Join(msg.Out.Delivered, ", "))
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if !m.Filtering() {
			switch msg.String() {
			case "t", "enter":
				name := ""
				if item, ok := m.list.SelectedItem().(notifierItem); ok {
					name = item.info.Name
				}
				return m, m.Test(name)
			case "r":
				m.loading = true
				return m, m.Reload()
			}
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View(t theme.Theme) string {
	status := t.Muted().Render(m.status)
	if m.loading {
		status = m.spinner.View() + " working…"
	}
	body := m.list.View()
	if len(m.list.Items()) == 0 {
		body = t.Muted().Render("No notifier plugins configured. Add them to plugins/plugins.json in the data directory.\nt sends a test through the built-in sinks.")
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, status)
}
