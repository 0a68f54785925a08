package domain_test

import (
	"strings"
	"testing"

	"flowrpg/internal/modules/notify/domain"
)

func TestManifestValidate(t *testing.T) {
	t.Parallel()
	base := domain.Manifest{
		Name:    "desktop",
		Version: "1.0.0",
		Binary:  "/usr/local/bin/flowrpg-desktop",
		SHA256:  strings.Repeat("a", 64),
		Enabled: true,
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("manifest should be valid: %v", err)
	}
	badSum := base
	badSum.SHA256 = "ABC"
	if err := badSum.Validate(); err == nil {
		t.Fatalf("uppercase short checksum should fail")
	}
	dup := base
	dup.Kinds = []string{"alarm", "alarm"}
	if err := dup.Validate(); err == nil {
		t.Fatalf("duplicate kinds should fail")
	}
	missing := base
	missing.Binary = ""
	if err := missing.Validate(); err == nil {
		t.Fatalf("missing binary should fail")
	}
}

func TestManifestWants(t *testing.T) {
	t.Parallel()
	all := domain.Manifest{}
	if !all.Wants("boss_defeated") {
		t.Fatalf("empty kinds subscribes to everything")
	}
	some := domain.Manifest{Kinds: []string{"alarm"}}
	if some.Wants("boss_defeated") || !some.Wants("alarm") {
		t.Fatalf("kinds filter not applied")
	}
}

func TestNotificationRequiresTitle(t *testing.T) {
	t.Parallel()
	if err := (domain.Notification{Body: "x"}).Validate(); err == nil {
		t.Fatalf("missing title should fail")
	}
}

func TestKnownKinds(t *testing.T) {
	t.Parallel()
	for _, kind := range []string{"alarm", "level_up", domain.KindTest} {
		if !domain.IsKnownKind(kind) {
			t.Fatalf("%q should be known", kind)
		}
	}
	if domain.IsKnownKind(domain.KindCue) || domain.IsKnownKind("alrm") {
		t.Fatalf("cue and typos are not subscribable")
	}
	kinds := domain.KnownKinds()
	kinds[0] = "mutated"
	if !domain.IsKnownKind("achievement") {
		t.Fatalf("KnownKinds must return a copy")
	}
}
