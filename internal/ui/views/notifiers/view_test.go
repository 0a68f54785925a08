package notifiers_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	notifydto "flowrpg/internal/modules/notify/dto"
	"flowrpg/internal/ui/theme"
	"flowrpg/internal/ui/views/notifiers"
)

type stubPort struct {
	tested []string
}

func (*stubPort) List(context.Context) ([]notifydto.NotifierInfo, error) {
	return []notifydto.NotifierInfo{
		{Name: "desktop", Version: "1.0.0", Enabled: true, Kinds: []string{"alarm"}},
		{Name: "webhook", Version: "0.2.0"},
	}, nil
}

func (*stubPort) Doctor(context.Context) ([]notifydto.DoctorResult, error) {
	return []notifydto.DoctorResult{
		{Name: "desktop", BinaryReachable: true, ChecksumValid: true, LifecycleOK: true},
		{Name: "webhook", Error: "checksum mismatch"},
	}, nil
}

func (p *stubPort) Test(_ context.Context, name string) (notifydto.DeliverOutput, error) {
	p.tested = append(p.tested, name)
	if name == "webhook" {
		return notifydto.DeliverOutput{}, errors.New("notifier is disabled")
	}
	return notifydto.DeliverOutput{Delivered: []string{"desktop"}}, nil
}

// collect runs cmd and any batched children, returning the messages produced.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestReloadListsNotifiersWithHealth(t *testing.T) {
	t.Parallel()
	m := notifiers.New(&stubPort{})
	m.SetSize(90, 20)
	for _, msg := range collect(m.Reload()) {
		m, _ = m.Update(msg)
	}
	out := m.View(theme.For(true))
	for _, want := range []string{"desktop 1.0.0", "healthy", "checksum mismatch"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view:\n%s", want, out)
		}
	}
}

func TestTestReportsDeliveryAndErrors(t *testing.T) {
	t.Parallel()
	port := &stubPort{}
	m := notifiers.New(port)
	m.SetSize(90, 20)

	for _, msg := range collect(m.Test("desktop")) {
		m, _ = m.Update(msg)
	}
	if out := m.View(theme.For(false)); !strings.Contains(out, "test desktop delivered to desktop") {
		t.Fatalf("expected delivery status:\n%s", out)
	}

	for _, msg := range collect(m.Test("webhook")) {
		m, _ = m.Update(msg)
	}
	if out := m.View(theme.For(false)); !strings.Contains(out, "test webhook: notifier is disabled") {
		t.Fatalf("expected error status:\n%s", out)
	}
	if strings.Join(port.tested, ",") != "desktop,webhook" {
		t.Fatalf("unexpected tests sent: %v", port.tested)
	}
}

func TestEmptyListShowsHint(t *testing.T) {
	t.Parallel()
	m := notifiers.New(nil)
	m.SetSize(90, 20)
	if out := m.View(theme.For(true)); !strings.Contains(out, "No notifier plugins configured") {
		t.Fatalf("expected hint:\n%s", out)
	}
}
