package ymf271

// calculateStep recomputes a slot's phase accumulator step from its
// pitch registers (block/fns/multiple/detune), the LFO phase-modulation
// multiplier, and, for PCM voices, the fs prescaler.
func calculateStep(t *tables, s *slot) {
	var st float64

	if s.waveform == 7 {
		st = float64(2*(s.fns|2048)) * powTable[s.block] * fsFrequency[s.fs]
		st *= multipleTable[s.multiple]
		st *= s.lfoPhasemod
		st /= 524288.0 / 65536.0
		s.step = uint32(st)
		return
	}

	keycode := getInternalKeycode(s.block, s.fns)
	detuneOffset := t.detune[s.detune][keycode]

	fnsDetuned := int32(s.fns) + detuneOffset
	if fnsDetuned < 0 {
		fnsDetuned = 0
	}

	st = float64(2*fnsDetuned) * powTable[s.block]
	st = st * multipleTable[s.multiple] * float64(sinLen)
	st *= s.lfoPhasemod
	st /= 536870912.0 / 65536.0
	s.step = uint32(st)
}

// calculateSlotVolume folds the envelope curve, LFO amplitude modulation
// and total-level register into one 16.16 fixed-point volume multiplier.
func calculateSlotVolume(t *tables, s *slot) int32 {
	var lfoVolume int64 = 65536
	switch s.ams {
	case 0:
		lfoVolume = 65536
	case 1:
		lfoVolume = 65536 - ((int64(s.lfoAmplitude) * amsDepth[1]) >> 16)
	case 2:
		lfoVolume = 65536 - ((int64(s.lfoAmplitude) * amsDepth[2]) >> 16)
	case 3:
		lfoVolume = 65536 - ((int64(s.lfoAmplitude) * amsDepth[3]) >> 16)
	}

	envVolume := (int64(t.envVolume[255-(s.volume>>envVolumeShift)]) * lfoVolume) >> 16
	return int32((envVolume * int64(t.totalLevel[s.tl])) >> 16)
}

// calculateOp computes one FM operator's sample output, advancing its
// envelope, LFO and phase in the process. inp is either the modulation
// input from an upstream operator, opInputFeedback (self-modulation) or
// opInputNone (unmodulated carrier).
func calculateOp(t *tables, s *slot, inp int64) int64 {
	updateEnvelope(s)
	updateLFO(t, s)
	env := int64(calculateSlotVolume(t, s))

	var slotInput int64
	switch inp {
	case opInputFeedback:
		slotInput = (s.feedbackModulation0 + s.feedbackModulation1) / 2
		s.feedbackModulation0 = s.feedbackModulation1
	case opInputNone:
		slotInput = 0
	default:
		slotInput = (inp << (sinBits - 2)) * modulationLevel[s.feedback]
	}

	idx := ((int64(s.stepPtr) + slotInput) >> 16) & sinMask
	out := int64(t.waves[s.waveform][idx])
	out = (out * env) >> 16
	s.stepPtr += uint64(s.step)

	return out
}

// setFeedback stashes this sample's feedback modulation value for next
// sample's self-modulation average. The /4 divisor is an empirically
// tuned match to recorded hardware output, not a datasheet value.
func setFeedback(s *slot, inp int64) {
	s.feedbackModulation1 = ((inp << (sinBits - 2)) * feedbackLevel[s.feedback]) / 4
}

// calculateOpPFM computes one operator's output in PFM (PCM-as-carrier)
// mode: the modulation input perturbs a read position into PCM sample
// data instead of a sine table index.
func calculateOpPFM(c *Chip, t *tables, s *slot, inp int64) int64 {
	updateEnvelope(s)
	updateLFO(t, s)
	env := int64(calculateSlotVolume(t, s))

	var slotInput int64
	switch inp {
	case opInputFeedback:
		slotInput = (s.feedbackModulation0 + s.feedbackModulation1) / 2
		s.feedbackModulation0 = s.feedbackModulation1
	case opInputNone:
		slotInput = 0
	default:
		slotInput = (inp << (sinBits - 2)) * modulationLevel[s.feedback]
	}

	modulatedStepPtr := int64(s.stepPtr) + slotInput
	if modulatedStepPtr < 0 {
		modulatedStepPtr = 0
	}

	sampleOffset := uint32(modulatedStepPtr >> 16)
	sampleLength := s.endAddr - s.startAddr

	if sampleOffset > sampleLength {
		if s.loopAddr <= s.endAddr {
			loopLength := s.endAddr - s.loopAddr
			if loopLength > 0 {
				sampleOffset = s.loopAddr - s.startAddr + (sampleOffset-sampleLength)%loopLength
			} else {
				sampleOffset = sampleLength
			}
		} else {
			sampleOffset = sampleLength
		}
	}

	sample := readPCMSample(c, s, sampleOffset)

	out := (int64(sample) * env) >> 16
	s.stepPtr += uint64(s.step)
	return out
}
