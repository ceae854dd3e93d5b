package internal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/markusressel/ecfan/internal/controller"
	"github.com/markusressel/ecfan/internal/persistence"
	"github.com/stretchr/testify/assert"
)

type mockDecisionSource struct {
	decisions []controller.ControlDecision
}

func (source *mockDecisionSource) Decisions() []controller.ControlDecision {
	return source.decisions
}

func TestHistoryRecorder_Record(t *testing.T) {
	// GIVEN
	pers := persistence.NewPersistence(filepath.Join(t.TempDir(), "ecfan.db"))
	assert.NoError(t, pers.Init())

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	source := &mockDecisionSource{
		decisions: []controller.ControlDecision{
			{Fan: "fan0", Time: now, FinalRpm: 3484},
			{Fan: "fan1", Time: now, FinalRpm: 3489},
		},
	}
	recorder := NewHistoryRecorder(source, pers, time.Second, 2)

	// WHEN
	assert.NoError(t, recorder.Record())
	// unchanged decisions are not stored twice
	assert.NoError(t, recorder.Record())
	source.decisions[0] = controller.ControlDecision{Fan: "fan0", Time: now.Add(time.Second), FinalRpm: 2030}
	assert.NoError(t, recorder.Record())

	// THEN
	history, err := pers.LoadDecisions("fan0")
	assert.NoError(t, err)
	assert.Len(t, history, 2)
	assert.Equal(t, 3484, history[0].FinalRpm)
	assert.Equal(t, 2030, history[1].FinalRpm)

	history, err = pers.LoadDecisions("fan1")
	assert.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestHistoryRecorder_NothingToRecord(t *testing.T) {
	// GIVEN
	pers := persistence.NewPersistence(filepath.Join(t.TempDir(), "ecfan.db"))
	recorder := NewHistoryRecorder(&mockDecisionSource{}, pers, time.Second, 2)

	// WHEN
	err := recorder.Record()

	// THEN
	assert.NoError(t, err)
	ids, err := pers.FanIds()
	assert.NoError(t, err)
	assert.Empty(t, ids)
}
