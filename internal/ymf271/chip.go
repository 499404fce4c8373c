// Package ymf271 emulates the Yamaha YMF271 "OPX" four-operator FM plus
// PCM tone generator, the audio synthesis core used on several Seibu SPI
// and Raiden-series arcade boards.
package ymf271

import (
	"fmt"

	"github.com/Rennsou1/ymf271/internal/debug"
)

// IRQHandler is invoked whenever the chip's combined IRQ line changes
// state (true = asserted).
type IRQHandler func(asserted bool)

// Chip is one YMF271 instance: 48 slots across 12 groups and 4 banks, its
// register latch, timers, and PCM sample ROM.
type Chip struct {
	tables *tables

	slots  [48]slot
	groups [12]group

	regsMain [0x10]uint8

	timerA, timerB       uint32
	timerAPeriod         uint32
	timerBPeriod         uint32
	enable               uint8
	irqstate             uint8
	status               uint8
	endStatus            uint16
	busyFlag             uint8

	extAddress   uint32
	extRW        bool
	extReadLatch uint8

	rom      []byte
	clockHz  uint32
	sampleRate uint32

	mixbufSamples uint32
	mixBuffer     []int32
	accBuffer     []int32

	irqHandler IRQHandler
	log        *debug.Logger
}

// NewChip constructs a chip clocked at clockHz (the YMF271's reference
// clock is 16.9344MHz; the effective sample rate is clockHz/384).
func NewChip(clockHz uint32, log *debug.Logger) *Chip {
	c := &Chip{
		clockHz: clockHz,
		log:     log,
	}
	c.tables = newTables(clockHz)
	c.sampleRate = clockHz / 384
	c.mixbufSamples = c.sampleRate / 10
	c.mixBuffer = make([]int32, c.mixbufSamples*4)
	c.accBuffer = make([]int32, c.mixbufSamples*4)
	return c
}

// SampleRate returns the chip's output sample rate in Hz (clockHz/384).
func (c *Chip) SampleRate() uint32 {
	return c.sampleRate
}

// SetIRQHandler installs the callback invoked on IRQ line transitions.
func (c *Chip) SetIRQHandler(h IRQHandler) {
	c.irqHandler = h
}

// SetMuteMask mutes/unmutes each of the 12 groups via a 12-bit mask (bit i
// set mutes group i).
func (c *Chip) SetMuteMask(mask uint16) {
	for i := range c.groups {
		c.groups[i].muted = mask&(1<<uint(i)) != 0
	}
}

// Reset deactivates every slot and clears timer/status/IRQ state, as on
// power-up or an explicit host reset.
func (c *Chip) Reset() {
	for i := range c.slots {
		c.slots[i].active = false
		c.slots[i].volume = 0
	}
	c.irqstate = 0
	c.status = 0
	c.endStatus = 0
	c.enable = 0
}

// GetSlotState implements debug.SlotStateReader for a SampleLogger/debugger
// front end.
func (c *Chip) GetSlotState(idx int) (active bool, envState uint8, volume int32, algorithm uint8, waveform uint8) {
	if idx < 0 || idx >= len(c.slots) {
		return false, 0, 0, 0, 0
	}
	s := &c.slots[idx]
	return s.active, uint8(s.envState), s.volume >> envVolumeShift, s.algorithm, s.waveform
}

// SlotDetail is a snapshot of one slot's full register and runtime state,
// for a debugger's slot inspector view.
type SlotDetail struct {
	Active     bool
	EnvState   uint8
	Volume     int32
	Algorithm  uint8
	Waveform   uint8
	Block      uint8
	Fns        uint32
	Multiple   uint8
	TotalLevel uint8
	Feedback   uint8
	Accon      bool
	Ch0, Ch1, Ch2, Ch3 uint8
}

// GetSlotDetail returns a fuller snapshot of one slot than GetSlotState,
// for interactive inspection.
func (c *Chip) GetSlotDetail(idx int) SlotDetail {
	if idx < 0 || idx >= len(c.slots) {
		return SlotDetail{}
	}
	s := &c.slots[idx]
	return SlotDetail{
		Active:     s.active,
		EnvState:   uint8(s.envState),
		Volume:     s.volume >> envVolumeShift,
		Algorithm:  s.algorithm,
		Waveform:   s.waveform,
		Block:      s.block,
		Fns:        s.fns,
		Multiple:   s.multiple,
		TotalLevel: s.tl,
		Feedback:   s.feedback,
		Accon:      s.accon,
		Ch0:        s.ch0Level,
		Ch1:        s.ch1Level,
		Ch2:        s.ch2Level,
		Ch3:        s.ch3Level,
	}
}

// GroupDetail is a snapshot of one group's sync/pfm/mute state.
type GroupDetail struct {
	Sync  uint8
	PFM   bool
	Muted bool
}

// GetGroupDetail returns the given group's sync mode, PFM flag and mute
// state.
func (c *Chip) GetGroupDetail(idx int) GroupDetail {
	if idx < 0 || idx >= len(c.groups) {
		return GroupDetail{}
	}
	g := &c.groups[idx]
	return GroupDetail{Sync: g.sync, PFM: g.pfm, Muted: g.muted}
}

// TimerStatus reports the raw timer expiry and IRQ-enable state, for a
// debugger's status view.
func (c *Chip) TimerStatus() (timerAFlag, timerBFlag bool, enable uint8) {
	return c.status&1 != 0, c.status&2 != 0, c.enable
}

// Status1 returns the register-0 status byte: busy flag, low 4 end-status
// bits, and the two timer expiry flags.
func (c *Chip) Status1() uint8 {
	return (c.busyFlag << 7) | c.status | uint8((c.endStatus&0xf)<<3)
}

// Status2 returns the register-1 status byte: the upper 8 end-status bits.
func (c *Chip) Status2() uint8 {
	return uint8(c.endStatus >> 4)
}

// EndStatus returns the raw 12-bit end-status bitmap. Only slots whose
// index is a multiple of 4 have a bit: bit bank+4*(group/4) is set when
// that slot's PCM voice has passed its end point since last cleared.
func (c *Chip) EndStatus() uint16 {
	return c.endStatus
}

func (c *Chip) logf(component debug.Component, format string, args ...interface{}) {
	if c.log == nil {
		return
	}
	switch component {
	case debug.ComponentRegister:
		c.log.LogRegisterf(debug.LogLevelDebug, format, args...)
	case debug.ComponentEnvelope:
		c.log.LogEnvelopef(debug.LogLevelDebug, format, args...)
	case debug.ComponentPCM:
		c.log.LogPCMf(debug.LogLevelDebug, format, args...)
	case debug.ComponentDispatch:
		c.log.LogDispatchf(debug.LogLevelDebug, format, args...)
	case debug.ComponentTimer:
		c.log.LogTimerf(debug.LogLevelDebug, format, args...)
	case debug.ComponentROM:
		c.log.LogROMf(debug.LogLevelDebug, format, args...)
	}
}

func (c *Chip) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("ymf271: "+format, args...)
}
