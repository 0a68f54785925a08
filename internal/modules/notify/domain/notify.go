package domain

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"time"
)

var (
	ErrNotifierDisabled = errors.New("notifier is disabled")
	ErrNotifierNotFound = errors.New("notifier not found")
	ErrChecksumMismatch = errors.New("notifier checksum mismatch")
	ErrNotifierTimeout  = errors.New("notifier timeout")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// KindCue is the short button sound. It carries no text and only reaches
// local sinks.
const (
	KindCue  = "cue"
	KindTest = "test"
)

// knownKinds are the kinds a notifier plugin may subscribe to.
var knownKinds = []string{
	"achievement",
	"alarm",
	"boss_defeated",
	"break_complete",
	"focus_milestone",
	"level_up",
	"session_summary",
	KindTest,
}

func KnownKinds() []string { return slices.Clone(knownKinds) }

func IsKnownKind(kind string) bool { return slices.Contains(knownKinds, kind) }

// Notification is one message for the user. Sound asks sinks that can make
// noise to do so.
type Notification struct {
	Kind  string
	Title string
	Body  string
	Sound bool
	At    time.Time
}

func (n Notification) Validate() error {
	if n.Kind == KindCue {
		return nil
	}
	if n.Title == "" {
		return fmt.Errorf("notification title is required")
	}
	return nil
}

// Manifest describes an external notifier plugin. An empty Kinds list
// subscribes to every kind.
type Manifest struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	Binary  string   `json:"binary"`
	SHA256  string   `json:"sha256"`
	Enabled bool     `json:"enabled"`
	Kinds   []string `json:"kinds,omitempty"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("notifier name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("notifier version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("notifier binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("notifier sha256 must be lowercase 64-char hex")
	}
	seen := map[string]struct{}{}
	for _, kind := range m.Kinds {
		if kind == "" {
			return fmt.Errorf("notifier %s: empty kind", m.Name)
		}
		if _, ok := seen[kind]; ok {
			return fmt.Errorf("duplicate kind: %s", kind)
		}
		seen[kind] = struct{}{}
	}
	return nil
}

func (m Manifest) Wants(kind string) bool {
	return len(m.Kinds) == 0 || slices.Contains(m.Kinds, kind)
}

type Metadata struct {
	Name    string
	Version string
	Kinds   []string
}
