package ymf271

import "testing"

func TestTickTimerASetsStatusAndAssertsIRQOnce(t *testing.T) {
	c := NewChip(16934400, nil)
	c.enable = 4 // timer A IRQ enabled (bit 2)

	asserts := 0
	c.SetIRQHandler(func(state bool) {
		if state {
			asserts++
		}
	})

	c.TickTimerA()
	if c.status&1 == 0 {
		t.Fatalf("status bit 0 not set after TickTimerA")
	}
	if asserts != 1 {
		t.Fatalf("IRQ handler asserted %d times on first tick, want 1", asserts)
	}

	c.TickTimerA()
	if asserts != 1 {
		t.Fatalf("IRQ handler asserted again on second tick before reset, want edge-triggered once only (got %d)", asserts)
	}
}

func TestTickTimerBIndependentOfTimerA(t *testing.T) {
	c := NewChip(16934400, nil)
	c.enable = 8 // timer B IRQ enabled (bit 3)

	c.TickTimerB()
	if c.status&2 == 0 {
		t.Fatalf("status bit 1 not set after TickTimerB")
	}
	if c.status&1 != 0 {
		t.Fatalf("TickTimerB must not touch timer A's status bit")
	}
}

func TestTimerResetClearsStatusAndIRQState(t *testing.T) {
	c := NewChip(16934400, nil)
	c.enable = 4
	deasserted := false
	c.SetIRQHandler(func(state bool) {
		if !state {
			deasserted = true
		}
	})

	c.TickTimerA()
	writePort(c, 0xc, 0x13, 0xd, 0x10) // reset bit for timer A (bit 4)

	if c.status&1 != 0 {
		t.Fatalf("status bit 0 still set after timer A reset")
	}
	if !deasserted {
		t.Fatalf("IRQ handler never called with state=false after timer A reset")
	}
}

func TestTimerBPeriodFormula(t *testing.T) {
	c := NewChip(16934400, nil)
	writePort(c, 0xc, 0x12, 0xd, 0x00) // timerB = 0
	writePort(c, 0xc, 0x13, 0xd, 0x02) // arm timer B (bit 1)

	want := uint32(384 * 16 * 256)
	if got := c.TimerBPeriod(); got != want {
		t.Fatalf("TimerBPeriod() = %d, want %d", got, want)
	}
}

func TestClockHzReturnsConstructorValue(t *testing.T) {
	c := NewChip(33868800, nil)
	if got := c.ClockHz(); got != 33868800 {
		t.Fatalf("ClockHz() = %d, want 33868800", got)
	}
}
