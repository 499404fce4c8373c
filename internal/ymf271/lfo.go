package ymf271

// initLFO seeds a slot's LFO phase/amplitude/phasemod from index 0 of the
// waveform tables on key-on, rather than leaving lfoPhasemod at zero; a
// zero phasemod would silence calculateStep's pitch multiply until the
// first updateLFO call.
func initLFO(t *tables, s *slot) {
	s.lfoPhase = 0
	s.lfoAmplitude = t.alfo[s.lfoWave][0]
	s.lfoPhasemod = t.plfo[s.lfoWave][s.pms][0]
	s.lfoStep = int32((float64(lfoLength) * t.lfoFreq[s.lfoFreq] / 44100.0) * 256.0)
}

// updateLFO advances a slot's LFO phase by one sample and recomputes the
// phase step (pitch depends on lfoPhasemod via calculateStep).
func updateLFO(t *tables, s *slot) {
	s.lfoPhase += s.lfoStep

	idx := (s.lfoPhase >> lfoShift) & (lfoLength - 1)
	s.lfoAmplitude = t.alfo[s.lfoWave][idx]
	s.lfoPhasemod = t.plfo[s.lfoWave][s.pms][idx]

	calculateStep(t, s)
}
