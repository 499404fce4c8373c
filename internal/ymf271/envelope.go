package ymf271

import "github.com/Rennsou1/ymf271/internal/debug"

// updateEnvelope advances one slot's envelope generator by one sample.
func updateEnvelope(s *slot) {
	switch s.envState {
	case envAttack:
		s.volume += s.envAttackStep
		if s.volume >= 255<<envVolumeShift {
			s.volume = 255 << envVolumeShift
			s.envState = envDecay1
		}

	case envDecay1:
		decayLevel := 255 - int32(s.decay1Lvl)<<4
		s.volume -= s.envDecay1Step
		if !checkEnvelopeEnd(s) && (s.volume>>envVolumeShift) <= decayLevel {
			s.envState = envDecay2
		}

	case envDecay2:
		s.volume -= s.envDecay2Step
		checkEnvelopeEnd(s)

	case envRelease:
		s.volume -= s.envReleaseStep
		checkEnvelopeEnd(s)
	}
}

// checkEnvelopeEnd deactivates a slot once its volume has decayed to zero,
// reporting whether that happened this call.
func checkEnvelopeEnd(s *slot) bool {
	if s.volume <= 0 {
		s.active = false
		s.volume = 0
		return true
	}
	return false
}

// calculateStatusEnd updates the chip's packed end-status bitfield. Only
// group-leader slots (slot index a multiple of 4) carry an end-status bit;
// Desert War's shot-lifetime logic depends on this exact scheme.
//
// status1 bits 3-6:     End36 End24 End12 End0
// status2 bits 0-7:     End44 End32 End20 End8 End40 End28 End16 End4
func calculateStatusEnd(c *Chip, slotnum int, state bool) {
	if slotnum&3 != 0 {
		return
	}
	subbit := slotnum / 12
	bankbit := (slotnum % 12) >> 2
	bit := uint(subbit + bankbit*4)
	if state {
		c.endStatus |= 1 << bit
		c.logf(debug.ComponentEnvelope, "slot %d: end-status bit %d set (loop pass complete)", slotnum, bit)
	} else {
		c.endStatus &^= 1 << bit
	}
}

// getKeyscaledRate applies rate-key-scaling to a base envelope rate,
// clamped to the valid 0-63 range.
func getKeyscaledRate(rate, keycode, keyscale int) int {
	newRate := rate + rksTable[keycode][keyscale]
	if newRate > 63 {
		newRate = 63
	}
	if newRate < 0 {
		newRate = 0
	}
	return newRate
}

// getInternalKeycode derives the 5-bit keycode used for rate-key-scaling
// and detuning an internal-waveform (FM) slot from its block/F-number.
func getInternalKeycode(block uint8, fns uint32) int {
	var n43 int
	switch {
	case fns < 0x780:
		n43 = 0
	case fns < 0x900:
		n43 = 1
	case fns < 0xa80:
		n43 = 2
	default:
		n43 = 3
	}
	return (int(block&7) * 4) + n43
}

// getExternalKeycode derives the keycode for a PCM (external waveform)
// slot, folding in the PCM attribute register's source block/note.
func getExternalKeycode(block uint8, fns uint32, srcb, srcnote uint8) int {
	var n43 int
	switch {
	case fns < 0x100:
		n43 = 0
	case fns < 0x300:
		n43 = 1
	case fns < 0x500:
		n43 = 2
	default:
		n43 = 3
	}
	srcKeycode := int(srcb)*4 + int(srcnote)
	blockKeycode := (int(block&7) * 4) + n43
	keycode := srcKeycode + blockKeycode
	if keycode > 31 {
		keycode = 31
	}
	return keycode
}

// initEnvelope computes this key-on's envelope rate steps and resets
// volume to the -60dB initial attack level.
func initEnvelope(t *tables, s *slot) {
	decayLevel := 255 - int(s.decay1Lvl)<<4

	var keycode int
	if s.waveform != 7 {
		keycode = getInternalKeycode(s.block, s.fns)
	} else {
		keycode = getExternalKeycode(s.block, s.fns&0x7ff, s.srcB, s.srcNote)
	}

	rate := getKeyscaledRate(int(s.ar)*2, keycode, int(s.keyscale))
	s.envAttackStep = rateStep(t.ar[rate], 255-0, rate)

	rate = getKeyscaledRate(int(s.decay1Rate)*2, keycode, int(s.keyscale))
	s.envDecay1Step = rateStep(t.dc[rate], 255-decayLevel, rate)

	rate = getKeyscaledRate(int(s.decay2Rate)*2, keycode, int(s.keyscale))
	s.envDecay2Step = rateStep(t.dc[rate], 255-0, rate)

	rate = getKeyscaledRate(int(s.relRate)*4, keycode, int(s.keyscale))
	s.envReleaseStep = rateStep(t.dc[rate], 255-0, rate)

	s.volume = (255 - 160) << envVolumeShift
	s.envState = envAttack
}

func rateStep(samples float64, span, rate int) int32 {
	if rate < 4 {
		return 0
	}
	return int32((float64(span) / samples) * 65536.0)
}
