package out

import (
	"context"

	"flowrpg/internal/modules/notify/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

// Host runs external notifier plugins.
type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	Notify(ctx context.Context, manifest domain.Manifest, notification domain.Notification) error
}

// Sink is a built-in delivery target.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, notification domain.Notification) error
}
