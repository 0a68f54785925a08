package domain

import (
	"fmt"
	"strings"
)

// ChronicleMarkdown renders the level-up story and unlocked achievements.
func ChronicleMarkdown(story []string, unlocked []Achievement) string {
	var b strings.Builder
	b.WriteString("## Story\n\n")
	if len(story) == 0 {
		b.WriteString("_Your legend is yet to be written. Reach level 2 to begin it._\n")
	}
	for _, line := range story {
		fmt.Fprintf(&b, "- %s\n", line)
	}
	b.WriteString("\n## Achievements\n\n")
	for _, a := range achievements {
		mark := "[ ]"
		for _, u := range unlocked {
			if u.ID == a.ID {
				mark = "[x]"
				break
			}
		}
		fmt.Fprintf(&b, "- %s %s **%s**: %s\n", mark, a.Icon, a.Name, a.Description)
	}
	return b.String()
}

// UnlockedAchievements resolves the IDs stored in s against the table.
func UnlockedAchievements(s ProgressState) []Achievement {
	out := make([]Achievement, 0, len(s.Achievements))
	for _, id := range s.Achievements {
		if a, ok := LookupAchievement(id); ok {
			out = append(out, a)
		}
	}
	return out
}

const (
	ChronicleBlockStart = "<!-- flowrpg:chronicle:start -->"
	ChronicleBlockEnd   = "<!-- flowrpg:chronicle:end -->"
)
