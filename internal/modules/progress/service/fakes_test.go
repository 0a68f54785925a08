package service_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flowrpg/internal/modules/progress/domain"
	progressout "flowrpg/internal/modules/progress/port/out"
	"flowrpg/internal/modules/progress/service"
	apperrors "flowrpg/internal/platform/errors"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

type fixedRandom struct{ v int }

func (r fixedRandom) Intn(n int) int {
	if r.v >= n {
		return n - 1
	}
	return r.v
}

type seqIDs struct{ n int }

func (g *seqIDs) New() string {
	g.n++
	return fmt.Sprintf("s%d", g.n)
}

type memStore struct {
	state   *domain.ProgressState
	loadErr error
	saveErr error
	saves   int
}

func (m *memStore) Load(context.Context) (domain.ProgressState, error) {
	if m.loadErr != nil {
		return domain.ProgressState{}, m.loadErr
	}
	if m.state == nil {
		return domain.ProgressState{}, apperrors.ErrNotFound
	}
	return m.state.Clone(), nil
}

func (m *memStore) Save(_ context.Context, s domain.ProgressState) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	c := s.Clone()
	m.state = &c
	return nil
}

type recordingNotifier struct {
	events []domain.Event
	sounds []bool
	cues   int
}

func (n *recordingNotifier) Cue(context.Context) error {
	n.cues++
	return nil
}

func (n *recordingNotifier) Notify(_ context.Context, ev domain.Event, sound bool) error {
	n.events = append(n.events, ev)
	n.sounds = append(n.sounds, sound)
	return nil
}

func (n *recordingNotifier) kinds() []domain.EventKind {
	out := make([]domain.EventKind, 0, len(n.events))
	for _, ev := range n.events {
		out = append(out, ev.Kind)
	}
	return out
}

func (n *recordingNotifier) count(kind domain.EventKind) int {
	c := 0
	for _, ev := range n.events {
		if ev.Kind == kind {
			c++
		}
	}
	return c
}

type memIndex struct {
	records []domain.SessionRecord
	resets  int
	failSum bool
}

func (m *memIndex) Reset(context.Context) error {
	m.resets++
	m.records = nil
	return nil
}

func (m *memIndex) Record(_ context.Context, rec domain.SessionRecord, _ time.Time) error {
	m.records = append(m.records, rec)
	return nil
}

func (m *memIndex) Summary(context.Context, string, string) (domain.SessionStats, error) {
	if m.failSum {
		return domain.SessionStats{}, errors.New("index offline")
	}
	return domain.SessionStats{TotalSessions: len(m.records)}, nil
}

type memChronicle struct{ saved []progressout.Chronicle }

func (m *memChronicle) Save(_ context.Context, c progressout.Chronicle) (string, error) {
	m.saved = append(m.saved, c)
	return "/vault/chronicle.md", nil
}

type harness struct {
	svc       *service.ProgressService
	clock     *fakeClock
	store     *memStore
	notifier  *recordingNotifier
	index     *memIndex
	chronicle *memChronicle
}

func newHarness(initial *domain.ProgressState) *harness {
	h := &harness{
		clock:     &fakeClock{now: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)},
		store:     &memStore{state: initial},
		notifier:  &recordingNotifier{},
		index:     &memIndex{},
		chronicle: &memChronicle{},
	}
	h.svc = service.NewProgressService(service.Deps{
		Clock:     h.clock,
		Random:    fixedRandom{v: 0},
		IDs:       &seqIDs{},
		Store:     h.store,
		Notifier:  h.notifier,
		Index:     h.index,
		Chronicle: h.chronicle,
		Names:     domain.NameTables{Prefixes: []string{"Gor"}, Suffixes: []string{"wyn"}},
		Snippets:  []string{"The runes answer."},
	})
	h.svc.Load(context.Background())
	return h
}

// run ticks the live clock n times.
func (h *harness) run(n int) []domain.Event {
	var events []domain.Event
	gen := h.svc.Generation()
	for i := 0; i < n; i++ {
		evs, ok := h.svc.Tick(context.Background(), gen)
		if !ok {
			panic("tick rejected on a live clock")
		}
		events = append(events, evs...)
	}
	return events
}
