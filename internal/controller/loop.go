package controller

import (
	"context"
	"time"

	"github.com/markusressel/ecfan/internal/ui"
)

// Run ticks all fan channels in order at the given rate until ctx is done
func (c *Controller) Run(ctx context.Context, tickRate time.Duration) error {
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			c.TickAll()
		}
	}
}

// TickAll runs a control cycle for every fan channel. A failing channel is
// driven at its maximum speed.
func (c *Controller) TickAll() {
	for idx := range c.channels {
		_, err := c.OnTick(idx)
		if err != nil {
			ui.Error("Error in control cycle of fan %s: %v", c.channels[idx].fan.GetId(), err)
			c.failSafe(idx)
		}
	}
}

func (c *Controller) failSafe(fanIndex int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	channel := c.channels[fanIndex]
	maxRpm := c.limits.EffectiveMax(fanIndex)
	err := channel.fan.SetRpm(maxRpm)
	if err != nil {
		ui.Warning("Unable to drive fan %s at max speed, make sure it is running!", channel.fan.GetId())
		return
	}
	ui.Warning("Fan %s has been set to its max speed (%d rpm)", channel.fan.GetId(), maxRpm)
}

// FailSafe stops thermal control and drives every fan at its maximum speed
func (c *Controller) FailSafe() {
	c.OnShutdown()
	for idx := range c.channels {
		c.failSafe(idx)
	}
}
