package out

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"flowrpg/internal/modules/notify/domain"
	notifyout "flowrpg/internal/modules/notify/port/out"
)

// FileManifestStore reads <base>/plugins/plugins.json. Relative binaries
// resolve against base; kind filters must name notification kinds the app
// emits, so a typo cannot silently mute a notifier.
type FileManifestStore struct {
	basePath string
	path     string
}

func NewFileManifestStore(basePath string) notifyout.ManifestStore {
	return &FileManifestStore{basePath: basePath, path: filepath.Join(basePath, "plugins", "plugins.json")}
}

func (s *FileManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.Manifest{}, nil
		}
		return nil, fmt.Errorf("read notifier manifests: %w", err)
	}
	var manifests []domain.Manifest
	decoder := json.NewDecoder(bytes.NewReader(b))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&manifests); err != nil {
		return nil, fmt.Errorf("decode notifier manifests: %w", err)
	}
	for i := range manifests {
		m := &manifests[i]
		if m.Binary != "" && !filepath.IsAbs(m.Binary) {
			m.Binary = filepath.Clean(filepath.Join(s.basePath, m.Binary))
		}
		for _, kind := range m.Kinds {
			if !domain.IsKnownKind(kind) {
				return nil, fmt.Errorf("notifier %s: unknown kind %q (known: %s)", m.Name, kind, strings.Join(domain.KnownKinds(), ", "))
			}
		}
	}
	return manifests, nil
}
