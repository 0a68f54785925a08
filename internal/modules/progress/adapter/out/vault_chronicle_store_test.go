package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	progressadapter "flowrpg/internal/modules/progress/adapter/out"
	"flowrpg/internal/modules/progress/domain"
	progressout "flowrpg/internal/modules/progress/port/out"
	"flowrpg/internal/platform/markdown"
)

func TestVaultChronicleStorePreservesUserText(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "chronicle.md")
	store := progressadapter.NewVaultChronicleStore(path)
	ctx := context.Background()
	first, _ := domain.LookupAchievement("first_session")

	chronicle := progressout.Chronicle{
		Level:        2,
		Exp:          140,
		BossName:     "Gorwyn",
		HPRemaining:  12,
		HPTotal:      30,
		Story:        []string{"Level 2: The runes answer."},
		Achievements: []domain.Achievement{first},
		ExportedAt:   time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}
	if _, err := store.Save(ctx, chronicle); err != nil {
		t.Fatalf("first export: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read chronicle: %v", err)
	}
	edited := string(raw) + "\nMy own notes about this week.\n"
	if err := os.WriteFile(path, []byte(edited), 0o644); err != nil {
		t.Fatalf("edit chronicle: %v", err)
	}

	chronicle.Level = 3
	chronicle.Story = append(chronicle.Story, "Level 3: A door opens.")
	if _, err := store.Save(ctx, chronicle); err != nil {
		t.Fatalf("second export: %v", err)
	}
	raw, err = os.ReadFile(path)
	if err != nil {
		t.Fatalf("read chronicle: %v", err)
	}
	note, err := markdown.Parse(string(raw))
	if err != nil {
		t.Fatalf("parse chronicle: %v", err)
	}
	if note.Meta["level"] != 3 || note.Meta["boss"] != "Gorwyn" || note.Meta["boss_hp"] != "12/30" {
		t.Fatalf("unexpected frontmatter: %v", note.Meta)
	}
	if !strings.Contains(note.Body, "My own notes about this week.") {
		t.Fatalf("user text lost: %s", note.Body)
	}
	if !strings.Contains(note.Body, "Level 3: A door opens.") {
		t.Fatalf("story not refreshed: %s", note.Body)
	}
	if strings.Count(note.Body, domain.ChronicleBlockStart) != 1 {
		t.Fatalf("managed block duplicated: %s", note.Body)
	}
}
