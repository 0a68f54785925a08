package chronicle_test

import (
	"context"
	"strings"
	"testing"

	progressdto "flowrpg/internal/modules/progress/dto"
	"flowrpg/internal/ui/theme"
	"flowrpg/internal/ui/views/chronicle"
)

type stubPort struct{}

func (stubPort) Chronicle(context.Context) progressdto.ChronicleOutput {
	return progressdto.ChronicleOutput{Level: 3, BossName: "Gorwyn", Markdown: "# Chronicle\n\n## Story\n\n- Level 2: The runes answer.\n"}
}

func (stubPort) Stats(context.Context) progressdto.StatsOutput {
	return progressdto.StatsOutput{CompletedToday: 2, AverageFocusSec: 1500, WeekFocusSec: 3000, CompletedSessions: 2, TotalSessions: 3, BestStreak: 4}
}

func TestChronicleRendersStoryAndStats(t *testing.T) {
	t.Parallel()
	m := chronicle.New(stubPort{})
	m.SetSize(100, 30)
	th := theme.For(true)
	m.Refresh(th)
	out := m.View(th)
	if !strings.Contains(out, "runes answer") {
		t.Fatalf("story missing:\n%s", out)
	}
	if !strings.Contains(out, "avg 25 min") || !strings.Contains(out, "best streak 4") {
		t.Fatalf("stats missing:\n%s", out)
	}
}
