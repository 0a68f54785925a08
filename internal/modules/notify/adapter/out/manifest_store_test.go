package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	notifyout "flowrpg/internal/modules/notify/adapter/out"
)

func writeManifests(t *testing.T, base, raw string) {
	t.Helper()
	dir := filepath.Join(base, "plugins")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir plugins: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "plugins.json"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write plugins.json: %v", err)
	}
}

func TestFileManifestStoreLoadMissingReturnsEmpty(t *testing.T) {
	t.Parallel()
	manifests, err := notifyout.NewFileManifestStore(t.TempDir()).Load(context.Background())
	if err != nil {
		t.Fatalf("load manifests: %v", err)
	}
	if len(manifests) != 0 {
		t.Fatalf("expected no manifests, got %d", len(manifests))
	}
}

func TestFileManifestStoreResolvesRelativeBinary(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	writeManifests(t, base, `[
  {
    "name": "desktop",
    "version": "1.0.0",
    "binary": "plugins/desktop/flowrpg-desktop",
    "sha256": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
    "enabled": true,
    "kinds": ["alarm", "boss_defeated"]
  }
]`)
	manifests, err := notifyout.NewFileManifestStore(base).Load(context.Background())
	if err != nil {
		t.Fatalf("load manifests: %v", err)
	}
	if len(manifests) != 1 || !filepath.IsAbs(manifests[0].Binary) {
		t.Fatalf("expected one manifest with absolute binary, got %+v", manifests)
	}
	if len(manifests[0].Kinds) != 2 {
		t.Fatalf("expected kinds filter, got %v", manifests[0].Kinds)
	}
}

func TestFileManifestStoreRejectsUnknownField(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	writeManifests(t, base, `[{"name": "desktop", "capabilities": ["command"]}]`)
	if _, err := notifyout.NewFileManifestStore(base).Load(context.Background()); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestFileManifestStoreRejectsUnknownKind(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	writeManifests(t, base, `[{"name": "desktop", "version": "1.0.0", "binary": "bin/desktop", "sha256": "", "enabled": true, "kinds": ["alarm", "alrm"]}]`)
	_, err := notifyout.NewFileManifestStore(base).Load(context.Background())
	if err == nil || !strings.Contains(err.Error(), `unknown kind "alrm"`) {
		t.Fatalf("expected unknown kind error, got %v", err)
	}
}
