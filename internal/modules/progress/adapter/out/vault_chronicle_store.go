package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"flowrpg/internal/modules/progress/domain"
	progressout "flowrpg/internal/modules/progress/port/out"
	"flowrpg/internal/platform/markdown"
)

// VaultChronicleStore keeps the chronicle as a markdown note. Frontmatter
// and the managed block are regenerated on every export; anything the user
// writes outside the block survives.
type VaultChronicleStore struct {
	path string
}

func NewVaultChronicleStore(path string) progressout.ChronicleStore {
	return &VaultChronicleStore{path: path}
}

func (s *VaultChronicleStore) Save(_ context.Context, c progressout.Chronicle) (string, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return "", fmt.Errorf("create chronicle dir: %w", err)
	}
	note := markdown.Note{Meta: map[string]any{}, Body: "# Chronicle\n"}
	existing, err := os.ReadFile(s.path)
	switch {
	case err == nil:
		parsed, parseErr := markdown.Parse(string(existing))
		if parseErr != nil {
			return "", fmt.Errorf("parse chronicle: %w", parseErr)
		}
		note = parsed
	case !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("read chronicle: %w", err)
	}
	if strings.TrimSpace(note.Body) == "" {
		note.Body = "# Chronicle\n"
	}

	note.Meta["schema_version"] = domain.SchemaVersion
	note.Meta["level"] = c.Level
	note.Meta["exp_total"] = c.Exp
	note.Meta["boss"] = c.BossName
	note.Meta["boss_hp"] = fmt.Sprintf("%d/%d", c.HPRemaining, c.HPTotal)
	note.Meta["bosses_defeated"] = c.BossesDefeated
	note.Meta["tokens"] = c.Tokens
	note.Meta["current_streak"] = c.CurrentStreak
	note.Meta["best_streak"] = c.BestStreak
	note.Meta["exported_at"] = c.ExportedAt.Format(time.RFC3339)

	generated := strings.TrimRight(domain.ChronicleMarkdown(c.Story, c.Achievements), "\n")
	note.Body = markdown.ReplaceBlock(note.Body, domain.ChronicleBlockStart, domain.ChronicleBlockEnd, generated)

	rendered, err := note.Render()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(s.path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write chronicle: %w", err)
	}
	return s.path, nil
}
