package ymf271

import "testing"

func TestAttenuationTableIsLoudestAtZero(t *testing.T) {
	tb := newTables(16934400)
	if tb.attenuation[0] <= tb.attenuation[1] {
		t.Fatalf("attenuation[0]=%d, attenuation[1]=%d; index 0 (0dB) must be the loudest entry", tb.attenuation[0], tb.attenuation[1])
	}
	for i := 1; i < 16; i++ {
		if tb.attenuation[i] > tb.attenuation[i-1] {
			t.Fatalf("attenuation table not monotonically non-increasing at index %d", i)
		}
	}
}

func TestDetuneTableIsAntisymmetric(t *testing.T) {
	tb := newTables(16934400)
	for d := 1; d < 4; d++ {
		for k := 0; k < 32; k++ {
			pos := tb.detune[d][k]
			neg := tb.detune[d+4][k]
			if pos != -neg {
				t.Fatalf("detune[%d][%d]=%d, detune[%d][%d]=%d; negative bank must mirror the positive bank", d, k, pos, d+4, k, neg)
			}
		}
	}
	for k := 0; k < 32; k++ {
		if tb.detune[0][k] != 0 {
			t.Fatalf("detune[0][%d] = %d, want 0 (no-detune bank)", k, tb.detune[0][k])
		}
	}
}

func TestClockCorrectionScalesLFOFrequency(t *testing.T) {
	base := newTables(stdClock)
	doubled := newTables(stdClock * 2)

	// clockCorrection = stdClock/clockHz, so doubling the clock halves the
	// table's effective Hz value at a fixed index.
	idx := 200
	if doubled.lfoFreq[idx] >= base.lfoFreq[idx] {
		t.Fatalf("lfoFreq[%d] at 2x clock = %f, want less than base %f", idx, doubled.lfoFreq[idx], base.lfoFreq[idx])
	}
}

func TestWaveform0IsPureSine(t *testing.T) {
	tb := newTables(16934400)
	// Quarter-wavelength sample should sit near the waveform's peak.
	quarter := sinLen / 4
	if tb.waves[0][quarter] < maxOut/2 {
		t.Fatalf("waves[0][%d] = %d, want close to maxOut (%d) at the quarter-wave peak", quarter, tb.waves[0][quarter], maxOut)
	}
}
