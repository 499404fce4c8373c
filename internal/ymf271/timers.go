package ymf271

import "github.com/Rennsou1/ymf271/internal/debug"

// TickTimerA fires Timer A's expiry: sets its status bit and, if Timer A's
// IRQ enable bit (enable&4) is set, asserts the combined IRQ line.
func (c *Chip) TickTimerA() {
	c.status |= 1
	c.logf(debug.ComponentTimer, "timer A expired, period=%d clocks", c.timerAPeriod)
	if c.enable&4 != 0 {
		wasAsserted := c.irqstate != 0
		c.irqstate |= 1
		if !wasAsserted && c.irqHandler != nil {
			c.irqHandler(true)
		}
	}
}

// TickTimerB fires Timer B's expiry: sets its status bit and, if Timer B's
// IRQ enable bit (enable&8) is set, asserts the combined IRQ line.
func (c *Chip) TickTimerB() {
	c.status |= 2
	c.logf(debug.ComponentTimer, "timer B expired, period=%d clocks", c.timerBPeriod)
	if c.enable&8 != 0 {
		wasAsserted := c.irqstate != 0
		c.irqstate |= 2
		if !wasAsserted && c.irqHandler != nil {
			c.irqHandler(true)
		}
	}
}

// TimerAPeriod returns Timer A's current period in master clock cycles
// (384*(1024-timerA)), for driving a clock.Scheduler.
func (c *Chip) TimerAPeriod() uint32 {
	return c.timerAPeriod
}

// TimerBPeriod returns Timer B's current period in master clock cycles
// (384*16*(256-timerB)), for driving a clock.Scheduler.
func (c *Chip) TimerBPeriod() uint32 {
	return c.timerBPeriod
}

// ClockHz returns the chip's configured master clock frequency.
func (c *Chip) ClockHz() uint32 {
	return c.clockHz
}
