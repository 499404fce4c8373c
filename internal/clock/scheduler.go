// Package clock provides an optional host-side cycle scheduler for driving
// the YMF271 timers. The synthesis core itself never advances wall-clock
// time (timer dispatch is a host responsibility); this package is ambient
// tooling a host may use to turn the period formulas into actual callbacks.
package clock

import (
	"fmt"
)

// TimerExpiry is invoked when a timer's period elapses.
type TimerExpiry func()

// Scheduler coordinates Timer A and Timer B against a master clock cycle
// count, the way the teacher's original MasterClock coordinated CPU/PPU/APU
// stepping against a shared cycle counter.
type Scheduler struct {
	// Current master clock cycle (64-bit to avoid overflow)
	Cycle uint64

	// Timer periods in clock cycles; 0 means the timer is disabled.
	TimerAPeriod uint64
	TimerBPeriod uint64

	timerANextCycle uint64
	timerBNextCycle uint64

	// Expiry callbacks
	TimerAExpired TimerExpiry
	TimerBExpired TimerExpiry
}

// NewScheduler creates a scheduler with both timers disabled.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// SetTimerA arms or disarms Timer A with the given period in clock cycles
// (per "384 * (1024 - timerA)").
func (s *Scheduler) SetTimerA(periodCycles uint64, enabled bool) {
	s.TimerAPeriod = periodCycles
	if enabled && periodCycles > 0 {
		s.timerANextCycle = s.Cycle + periodCycles
	} else {
		s.timerANextCycle = 0
	}
}

// SetTimerB arms or disarms Timer B with the given period in clock cycles
// (per "384 * 16 * (256 - timerB)").
func (s *Scheduler) SetTimerB(periodCycles uint64, enabled bool) {
	s.TimerBPeriod = periodCycles
	if enabled && periodCycles > 0 {
		s.timerBNextCycle = s.Cycle + periodCycles
	} else {
		s.timerBNextCycle = 0
	}
}

// Advance steps the scheduler by the given number of clock cycles, firing
// TimerAExpired/TimerBExpired once per period boundary crossed (possibly
// more than once if cycles spans several periods).
func (s *Scheduler) Advance(cycles uint64) error {
	if cycles == 0 {
		return nil
	}
	target := s.Cycle + cycles
	if target < s.Cycle {
		return fmt.Errorf("clock: cycle counter overflow advancing by %d", cycles)
	}

	for s.timerANextCycle != 0 && s.timerANextCycle <= target {
		if s.TimerAExpired != nil {
			s.TimerAExpired()
		}
		s.timerANextCycle += s.TimerAPeriod
	}
	for s.timerBNextCycle != 0 && s.timerBNextCycle <= target {
		if s.TimerBExpired != nil {
			s.TimerBExpired()
		}
		s.timerBNextCycle += s.TimerBPeriod
	}

	s.Cycle = target
	return nil
}

// GetCycle returns the current master clock cycle.
func (s *Scheduler) GetCycle() uint64 {
	return s.Cycle
}

// Reset zeroes the cycle counter and disarms both timers.
func (s *Scheduler) Reset() {
	s.Cycle = 0
	s.timerANextCycle = 0
	s.timerBNextCycle = 0
}
