// Package monitor runs the poll cycle: fetch raw items, normalize, detect
// new ones against the persisted watermark, persist, notify. The commit
// order is fixed: the watermark is persisted strictly after the delta is
// computed and strictly before notification is attempted. A crash after
// persisting loses that batch's notification; a crash before persisting
// replays detection next cycle with no data loss.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lysyi3m/tweetwatch/app/notify"
	"github.com/lysyi3m/tweetwatch/app/source"
	"github.com/lysyi3m/tweetwatch/app/state"
	"github.com/lysyi3m/tweetwatch/app/timeline"
)

type Outcome string

const (
	OutcomeNoNewItems        Outcome = "no_new_items"
	OutcomeFirstRun          Outcome = "first_run"
	OutcomeNotified          Outcome = "notified"
	OutcomeAllMuted          Outcome = "all_muted"
	OutcomeSourceUnavailable Outcome = "source_unavailable"
	OutcomeMalformedID       Outcome = "malformed_id"
	OutcomeNotifyFailed      Outcome = "notify_failed"
	OutcomeFatal             Outcome = "fatal"
)

// sourceFailureThreshold is how many consecutive fetch failures are
// tolerated before the source connection is considered wedged and
// recreated. Long-lived browser sessions in particular go stale.
const sourceFailureThreshold = 3

type CycleResult struct {
	Outcome   Outcome
	Fetched   int
	New       int
	Muted     int
	Watermark string
}

type Stats struct {
	CyclesRun     int        `json:"cycles_run"`
	ItemsNotified int        `json:"items_notified"`
	LastOutcome   string     `json:"last_outcome"`
	LastError     string     `json:"last_error,omitempty"`
	Watermark     string     `json:"watermark"`
	LastCycleAt   *time.Time `json:"last_cycle_at,omitempty"`
}

type Monitor struct {
	watch      *timeline.Watch
	src        source.Source
	newSource  func() (source.Source, error)
	notifier   notify.Notifier
	store      state.Store
	normalizer *timeline.Normalizer
	filterer   *timeline.Filterer
	tracker    *timeline.Tracker
	digest     *DigestBuilder

	fetchFailures int

	mu    sync.RWMutex
	stats Stats
}

// New creates a Monitor. newSource is called to recreate the source
// collaborator after a fatal cycle or repeated fetch failures; it may be
// nil when recreation is not wanted (single-shot mode).
func New(watch *timeline.Watch, src source.Source, newSource func() (source.Source, error),
	notifier notify.Notifier, store state.Store) *Monitor {
	return &Monitor{
		watch:      watch,
		src:        src,
		newSource:  newSource,
		notifier:   notifier,
		store:      store,
		normalizer: timeline.NewNormalizer(watch.Settings.MaxItems),
		filterer:   timeline.NewFilterer(),
		tracker:    timeline.NewTracker(),
		digest:     NewDigestBuilder(watch.Account),
	}
}

// RunCycle executes one full poll cycle. The returned error is fatal
// (persisted storage failed); source and notification failures are
// recovered locally and reflected in the result's Outcome.
func (m *Monitor) RunCycle(ctx context.Context) (CycleResult, error) {
	started := time.Now()

	watermark, err := m.store.Load()
	if err != nil {
		return m.finishCycle(CycleResult{Outcome: OutcomeFatal}, started, err),
			fmt.Errorf("failed to load watermark: %w", err)
	}

	result := CycleResult{Watermark: watermark}

	fetchCtx, cancel := context.WithTimeout(ctx, time.Duration(m.watch.Settings.Timeout)*time.Second)
	raw, err := m.src.Fetch(fetchCtx, m.watch.Account)
	cancel()
	if err != nil {
		// Transient by contract: treat as an empty batch, retry next cycle.
		slog.Warn("Source unavailable, treating as empty batch", "account", m.watch.Account, "error", err)
		m.fetchFailures++
		if m.fetchFailures >= sourceFailureThreshold {
			m.recycleSource()
		}
		result.Outcome = OutcomeSourceUnavailable
		return m.finishCycle(result, started, nil), nil
	}
	m.fetchFailures = 0
	result.Fetched = len(raw)

	items := m.normalizer.Run(raw, m.watch.Account)
	items = m.filterer.Run(items, m.watch.Filters)

	newItems, updated, err := m.tracker.Run(items, watermark)
	if err != nil {
		var malformed *timeline.MalformedIDError
		if errors.As(err, &malformed) {
			slog.Error("Newest item has a malformed ID, skipping cycle", "account", m.watch.Account, "id", malformed.ID)
			result.Outcome = OutcomeMalformedID
			return m.finishCycle(result, started, nil), nil
		}
		return m.finishCycle(CycleResult{Outcome: OutcomeFatal}, started, err), err
	}

	if updated != watermark {
		if err := m.store.Save(updated); err != nil {
			return m.finishCycle(CycleResult{Outcome: OutcomeFatal}, started, err),
				fmt.Errorf("failed to save watermark: %w", err)
		}
	}
	result.Watermark = updated

	if len(newItems) == 0 {
		if watermark == "" && updated != "" {
			result.Outcome = OutcomeFirstRun
		} else {
			result.Outcome = OutcomeNoNewItems
		}
		return m.finishCycle(result, started, nil), nil
	}

	var toNotify []timeline.Item
	for _, item := range newItems {
		if item.IsMuted {
			slog.Debug("Item muted", "id", item.ID, "reason", item.MuteReason)
			result.Muted++
			continue
		}
		toNotify = append(toNotify, item)
	}
	result.New = len(toNotify)

	if len(toNotify) == 0 {
		result.Outcome = OutcomeAllMuted
		return m.finishCycle(result, started, nil), nil
	}

	message := m.digest.Run(toNotify)
	if err := m.notifier.Send(ctx, message); err != nil {
		// The watermark has already advanced; this batch is lost by design
		// rather than re-notified as a duplicate on the next cycle.
		slog.Error("Notification failed, batch dropped", "account", m.watch.Account, "items", len(toNotify), "error", err)
		result.Outcome = OutcomeNotifyFailed
		return m.finishCycle(result, started, nil), nil
	}

	result.Outcome = OutcomeNotified
	return m.finishCycle(result, started, nil), nil
}

// Run loops cycles with a fixed delay until the context is cancelled.
// Fatal cycle errors do not stop the loop: the source collaborator is
// torn down and recreated before the next cycle.
func (m *Monitor) Run(ctx context.Context) {
	interval := time.Duration(m.watch.Settings.PollInterval) * time.Second

	for {
		if _, err := m.RunCycle(ctx); err != nil {
			slog.Error("Cycle failed", "account", m.watch.Account, "error", err)
			m.recycleSource()
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}
	}
}

// Close releases the source collaborator.
func (m *Monitor) Close() error {
	return m.src.Close()
}

// GetStats returns a snapshot for the status server.
func (m *Monitor) GetStats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats
}

func (m *Monitor) recycleSource() {
	if m.newSource == nil {
		return
	}

	if err := m.src.Close(); err != nil {
		slog.Warn("Failed to close source", "error", err)
	}

	replacement, err := m.newSource()
	if err != nil {
		slog.Error("Failed to recreate source, keeping the old one", "error", err)
		return
	}

	slog.Info("Source recreated", "account", m.watch.Account)
	m.src = replacement
	m.fetchFailures = 0
}

func (m *Monitor) finishCycle(result CycleResult, started time.Time, err error) CycleResult {
	now := time.Now().UTC()

	m.mu.Lock()
	m.stats.CyclesRun++
	if result.Outcome == OutcomeNotified {
		m.stats.ItemsNotified += result.New
	}
	m.stats.LastOutcome = string(result.Outcome)
	m.stats.Watermark = result.Watermark
	m.stats.LastCycleAt = &now
	if err != nil {
		m.stats.LastError = err.Error()
	} else {
		m.stats.LastError = ""
	}
	m.mu.Unlock()

	slog.Info("Cycle completed",
		"account", m.watch.Account,
		"outcome", string(result.Outcome),
		"fetched", result.Fetched,
		"new", result.New,
		"muted", result.Muted,
		"watermark", result.Watermark,
		"duration", time.Since(started))

	return result
}
