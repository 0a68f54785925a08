package domain

import (
	"fmt"

	"flowrpg/internal/platform/random"
)

var defaultSnippets = []string{
	"Mana flows stronger through your staff.",
	"The runes of the air answer your call.",
	"Your focus cuts through the veil of doubt.",
	"The workshop light reveals new patterns in the Weave.",
	"You feel matter keep time with a secret rhythm.",
	"The dragon of flow watches you from afar, pleased.",
	"The streets of Aurora whisper your name among scholars.",
	"Your shadow learns to move a second before you do.",
	"In your fingers the Qualia sings with a clearer voice.",
	"The wood of the staff keeps the warmth of your last feat.",
	"The constellations redraw their map, barely perceptible.",
	"A breath of warm bread reminds you that small things hold up great ones.",
	"The river murmurs answers you could not hear yesterday.",
	"Small blue sparks braid your thoughts together.",
	"A pocket of calm appears: a hard idea fits inside it.",
	"Your breathing sets the tempo of the spell.",
	"The study towers light their vigil for you.",
	"An ancient seal glows as your eyes cross the page.",
	"On the edge of a mistake you find an honest shortcut.",
	"Your doubts sit with you; today they watch instead of getting in the way.",
	"For an instant the world arranges itself in hexagons.",
	"The night lends you the silence of a library.",
	"A kind memory becomes a shield.",
	"A pang of curiosity opens the right door.",
	"Time hollows out and your whole attention fits inside.",
	"The city breathes, and so do you.",
}

// DefaultSnippets returns the chronicle lines drawn on level up.
func DefaultSnippets() []string {
	return append([]string(nil), defaultSnippets...)
}

// LevelUp appends one chronicle line per level gained since last_level and
// returns the new level, or 0 when nothing changed.
func LevelUp(s *ProgressState, r random.Source, snippets []string) int {
	now := Level(*s)
	if now <= s.LastLevel {
		return 0
	}
	if len(snippets) == 0 {
		snippets = defaultSnippets
	}
	for lvl := s.LastLevel + 1; lvl <= now; lvl++ {
		s.Story = append(s.Story, fmt.Sprintf("Level %d: %s", lvl, snippets[r.Intn(len(snippets))]))
	}
	s.LastLevel = now
	return now
}
