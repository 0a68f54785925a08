package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	hclog "github.com/hashicorp/go-hclog"

	"flowrpg/internal/modules/notify/domain"
	"flowrpg/internal/modules/notify/dto"
	notifyout "flowrpg/internal/modules/notify/port/out"
	"flowrpg/internal/platform/clock"
)

// NotifyService fans notifications out to built-in sinks and to enabled
// plugin notifiers. Every target is attempted; failures are joined.
type NotifyService struct {
	store  notifyout.ManifestStore
	host   notifyout.Host
	sinks  []notifyout.Sink
	clock  clock.Clock
	logger hclog.Logger
}

func NewNotifyService(store notifyout.ManifestStore, host notifyout.Host, sinks []notifyout.Sink, clk clock.Clock, logger hclog.Logger) *NotifyService {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &NotifyService{store: store, host: host, sinks: sinks, clock: clk, logger: logger.Named("notify")}
}

func (s *NotifyService) Deliver(ctx context.Context, input dto.DeliverInput) (dto.DeliverOutput, error) {
	n := domain.Notification{Kind: input.Kind, Title: input.Title, Body: input.Body, Sound: input.Sound, At: s.clock.Now()}
	if err := n.Validate(); err != nil {
		return dto.DeliverOutput{}, err
	}
	out := dto.DeliverOutput{}
	var errs []error
	for _, sink := range s.sinks {
		if err := sink.Deliver(ctx, n); err != nil {
			errs = append(errs, fmt.Errorf("sink %s: %w", sink.Name(), err))
			continue
		}
		out.Delivered = append(out.Delivered, sink.Name())
	}
	if s.host == nil || s.store == nil || n.Kind == domain.KindCue {
		return out, errors.Join(errs...)
	}
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return out, errors.Join(append(errs, err)...)
	}
	for _, m := range manifests {
		if !m.Enabled || !m.Wants(n.Kind) {
			continue
		}
		if err := s.notifyPlugin(ctx, m, n); err != nil {
			errs = append(errs, fmt.Errorf("notifier %s: %w", m.Name, err))
			continue
		}
		out.Delivered = append(out.Delivered, m.Name)
	}
	return out, errors.Join(errs...)
}

func (s *NotifyService) notifyPlugin(ctx context.Context, m domain.Manifest, n domain.Notification) error {
	if err := checksumMatches(m.Binary, m.SHA256); err != nil {
		return err
	}
	err := s.host.Notify(ctx, m, n)
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", domain.ErrNotifierTimeout, m.Name)
	}
	return err
}

func (s *NotifyService) List(ctx context.Context) ([]dto.NotifierInfo, error) {
	if s.store == nil {
		return nil, nil
	}
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotifierInfo, 0, len(manifests))
	for _, m := range manifests {
		out = append(out, dto.NotifierInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary, Kinds: append([]string(nil), m.Kinds...)})
	}
	return out, nil
}

func (s *NotifyService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	if s.store == nil {
		return nil, nil
	}
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		result.BinaryReachable = fileExists(m.Binary)
		if !result.BinaryReachable {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
			results = append(results, result)
			continue
		}
		result.ChecksumValid = checksumMatches(m.Binary, m.SHA256) == nil
		if !result.ChecksumValid {
			result.Error = "checksum mismatch"
			results = append(results, result)
			continue
		}
		if m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		results = append(results, result)
	}
	return results, nil
}

// Test sends a sample notification to one named plugin, or through every
// target when name is empty.
func (s *NotifyService) Test(ctx context.Context, input dto.TestInput) (dto.DeliverOutput, error) {
	sample := dto.DeliverInput{Kind: domain.KindTest, Title: "flowrpg test", Body: "If you can read this, notifications work.", Sound: true}
	if input.Name == "" {
		return s.Deliver(ctx, sample)
	}
	if s.host == nil || s.store == nil {
		return dto.DeliverOutput{}, fmt.Errorf("%w: %s", domain.ErrNotifierNotFound, input.Name)
	}
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return dto.DeliverOutput{}, err
	}
	for _, m := range manifests {
		if m.Name != input.Name {
			continue
		}
		if !m.Enabled {
			return dto.DeliverOutput{}, fmt.Errorf("%w: %s", domain.ErrNotifierDisabled, m.Name)
		}
		n := domain.Notification{Kind: sample.Kind, Title: sample.Title, Body: sample.Body, Sound: sample.Sound, At: s.clock.Now()}
		if err := s.notifyPlugin(ctx, m, n); err != nil {
			return dto.DeliverOutput{}, err
		}
		return dto.DeliverOutput{Delivered: []string{m.Name}}, nil
	}
	return dto.DeliverOutput{}, fmt.Errorf("%w: %s", domain.ErrNotifierNotFound, input.Name)
}

func (s *NotifyService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	for _, m := range manifests {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[m.Name]; ok {
			return nil, fmt.Errorf("duplicate notifier name: %s", m.Name)
		}
		seen[m.Name] = struct{}{}
	}
	return manifests, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func checksumMatches(path, expected string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open notifier binary: %w", err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return fmt.Errorf("hash notifier binary: %w", err)
	}
	if hex.EncodeToString(h.Sum(nil)) != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, path)
	}
	return nil
}
