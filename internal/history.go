package internal

import (
	"context"
	"time"

	"github.com/markusressel/ecfan/internal/controller"
	"github.com/markusressel/ecfan/internal/persistence"
	"github.com/markusressel/ecfan/internal/ui"
)

type DecisionSource interface {
	Decisions() []controller.ControlDecision
}

// HistoryRecorder periodically stores the latest control decisions
type HistoryRecorder struct {
	source      DecisionSource
	persistence persistence.Persistence
	interval    time.Duration
	maxEntries  int

	lastRecorded map[string]time.Time
}

func NewHistoryRecorder(source DecisionSource, pers persistence.Persistence, interval time.Duration, maxEntries int) *HistoryRecorder {
	return &HistoryRecorder{
		source:       source,
		persistence:  pers,
		interval:     interval,
		maxEntries:   maxEntries,
		lastRecorded: map[string]time.Time{},
	}
}

// Record stores every decision that has not been stored yet
func (r *HistoryRecorder) Record() error {
	var pending []controller.ControlDecision
	for _, decision := range r.source.Decisions() {
		if last, ok := r.lastRecorded[decision.Fan]; ok && !decision.Time.After(last) {
			continue
		}
		pending = append(pending, decision)
	}
	if len(pending) <= 0 {
		return nil
	}

	if err := r.persistence.SaveDecisions(pending, r.maxEntries); err != nil {
		return err
	}
	for _, decision := range pending {
		r.lastRecorded[decision.Fan] = decision.Time
	}
	return nil
}

func (r *HistoryRecorder) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := r.Record(); err != nil {
				ui.Warning("Unable to store decision history: %v", err)
			}
		}
	}
}
