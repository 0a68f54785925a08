package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"flowrpg/internal/modules/progress/domain"
	progressout "flowrpg/internal/modules/progress/port/out"
	apperrors "flowrpg/internal/platform/errors"
)

type FileStateStore struct {
	path string
}

func NewFileStateStore(path string) progressout.StateStore {
	return &FileStateStore{path: path}
}

// stateRecord decodes the fields whose on-disk shape may be looser than the
// domain type. Its fields shadow the embedded state's keys.
type stateRecord struct {
	domain.ProgressState
	HPTotal        json.RawMessage `json:"hp_total"`
	LastLevel      *int            `json:"last_level"`
	AlarmStartTime json.RawMessage `json:"alarm_start_time"`
}

func (s *FileStateStore) Load(_ context.Context) (domain.ProgressState, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.ProgressState{}, apperrors.ErrNotFound
		}
		return domain.ProgressState{}, fmt.Errorf("read state: %w", err)
	}
	return decodeState(payload)
}

// decodeState starts from the defaults so keys missing from older records
// are backfilled while present keys keep their stored values.
func decodeState(payload []byte) (domain.ProgressState, error) {
	rec := stateRecord{ProgressState: domain.Default()}
	if err := json.Unmarshal(payload, &rec); err != nil {
		return domain.ProgressState{}, fmt.Errorf("%w: %v", apperrors.ErrCorruptState, err)
	}
	state := rec.ProgressState
	state.HPTotal = decodeHP(rec.HPTotal)
	if rec.LastLevel != nil {
		state.LastLevel = *rec.LastLevel
	} else {
		state.LastLevel = domain.Level(state)
	}
	state.AlarmStartTime = decodeInstant(rec.AlarmStartTime)
	if state.AlarmEnabled && state.AlarmStartTime == nil {
		state.AlarmEnabled = false
	}
	state.Normalize()
	return state, nil
}

// decodeHP accepts any positive integral number and falls back to the
// default ceiling otherwise.
func decodeHP(raw json.RawMessage) int {
	var v float64
	if len(raw) == 0 || json.Unmarshal(raw, &v) != nil {
		return domain.BaseHPMax
	}
	if v <= 0 || v != math.Trunc(v) || v > math.MaxInt32 {
		return domain.BaseHPMax
	}
	return int(v)
}

// decodeInstant reads an RFC 3339 string or epoch milliseconds.
func decodeInstant(raw json.RawMessage) *time.Time {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var at time.Time
	if err := json.Unmarshal(raw, &at); err == nil {
		return &at
	}
	var ms int64
	if err := json.Unmarshal(raw, &ms); err == nil && ms > 0 {
		at = time.UnixMilli(ms)
		return &at
	}
	return nil
}

func (s *FileStateStore) Save(_ context.Context, state domain.ProgressState) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}
