package persistence

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/markusressel/ecfan/internal/controller"
	"github.com/stretchr/testify/assert"
)

var start = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func createDecision(fan string, offset time.Duration, rpm int) controller.ControlDecision {
	return controller.ControlDecision{
		Fan:             fan,
		Time:            start.Add(offset),
		Zone:            "apu",
		SelectedPercent: 42,
		FinalRpm:        rpm,
	}
}

func createPersistence(t *testing.T) Persistence {
	p := NewPersistence(filepath.Join(t.TempDir(), "db", "ecfan.db"))
	err := p.Init()
	assert.NoError(t, err)
	return p
}

func TestPersistence_Init(t *testing.T) {
	// GIVEN
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "ecfan.db")
	p := NewPersistence(dbPath)

	// WHEN
	err := p.Init()

	// THEN
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Dir(dbPath))
	assert.NoError(t, err)
}

func TestPersistence_SaveAndLoadDecisions(t *testing.T) {
	// GIVEN
	p := createPersistence(t)
	decisions := []controller.ControlDecision{
		createDecision("fan0", 0, 2030),
		createDecision("fan1", 0, 2100),
	}

	// WHEN
	err := p.SaveDecisions(decisions, 10)
	assert.NoError(t, err)
	err = p.SaveDecisions([]controller.ControlDecision{createDecision("fan0", 5*time.Second, 3484)}, 10)
	assert.NoError(t, err)

	// THEN
	fan0, err := p.LoadDecisions("fan0")
	assert.NoError(t, err)
	assert.Len(t, fan0, 2)
	assert.Equal(t, 2030, fan0[0].FinalRpm)
	assert.Equal(t, 3484, fan0[1].FinalRpm)
	assert.True(t, start.Add(5*time.Second).Equal(fan0[1].Time))

	fan1, err := p.LoadDecisions("fan1")
	assert.NoError(t, err)
	assert.Len(t, fan1, 1)
	assert.Equal(t, 2100, fan1[0].FinalRpm)
}

func TestPersistence_SaveDecisions_Trimmed(t *testing.T) {
	// GIVEN
	p := createPersistence(t)

	// WHEN
	for i := 0; i < 8; i++ {
		err := p.SaveDecisions([]controller.ControlDecision{
			createDecision("fan0", time.Duration(i)*time.Second, 2000+i),
		}, 3)
		assert.NoError(t, err)
	}

	// THEN
	decisions, err := p.LoadDecisions("fan0")
	assert.NoError(t, err)
	assert.Len(t, decisions, 3)
	assert.Equal(t, 2005, decisions[0].FinalRpm)
	assert.Equal(t, 2007, decisions[2].FinalRpm)
}

func TestPersistence_LoadDecisions_Missing(t *testing.T) {
	// GIVEN
	p := createPersistence(t)

	// WHEN
	decisions, err := p.LoadDecisions("fan0")

	// THEN
	assert.Nil(t, decisions)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPersistence_DeleteDecisions(t *testing.T) {
	// GIVEN
	p := createPersistence(t)
	_ = p.SaveDecisions([]controller.ControlDecision{createDecision("fan0", 0, 2030)}, 10)

	// WHEN
	err := p.DeleteDecisions("fan0")
	assert.NoError(t, err)

	// THEN
	data, err := p.LoadDecisions("fan0")
	assert.Nil(t, data)
	assert.Error(t, err)
	assert.NoError(t, p.DeleteDecisions("fan0"))
}

func TestPersistence_FanIds(t *testing.T) {
	// GIVEN
	p := createPersistence(t)
	_ = p.SaveDecisions([]controller.ControlDecision{
		createDecision("fan1", 0, 2030),
		createDecision("fan0", 0, 2030),
	}, 10)

	// WHEN
	ids, err := p.FanIds()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, []string{"fan0", "fan1"}, ids)
}
