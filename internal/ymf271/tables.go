package ymf271

import "math"

// tables holds every clock-derived or precomputed lookup table the chip
// needs at synthesis time. A fresh set is built per Chip instance since
// several tables (lfo, ar, dc) are scaled by the chip's actual clock.
type tables struct {
	waves [8][sinLen]int16

	// plfo[waveform][pms][phase] is the phase-modulation multiplier.
	plfo [4][8][lfoLength]float64
	// alfo[waveform][phase] is the amplitude-modulation level.
	alfo [4][lfoLength]int32

	envVolume   [256]int32
	attenuation [16]int32
	totalLevel  [128]int32

	lfoFreq [256]float64
	ar      [64]float64
	dc      [64]float64

	detune [8][32]int32
}

func newTables(clockHz uint32) *tables {
	t := &tables{}

	for i := 0; i < sinLen; i++ {
		m := math.Sin(float64(2*i+1) * math.Pi / sinLen)
		m2 := math.Sin(float64(4*i+1) * math.Pi / sinLen)

		t.waves[0][i] = int16(m * maxOut)

		if i < sinLen/2 {
			t.waves[1][i] = int16((m * m) * maxOut)
		} else {
			t.waves[1][i] = int16((m * m) * minOut)
		}

		if i < sinLen/2 {
			t.waves[2][i] = int16(m * maxOut)
		} else {
			t.waves[2][i] = int16(-m * maxOut)
		}

		if i < sinLen/2 {
			t.waves[3][i] = int16(m * maxOut)
		} else {
			t.waves[3][i] = 0
		}

		if i < sinLen/2 {
			t.waves[4][i] = int16(m2 * maxOut)
		} else {
			t.waves[4][i] = 0
		}

		if i < sinLen/2 {
			t.waves[5][i] = int16(math.Abs(m2) * maxOut)
		} else {
			t.waves[5][i] = 0
		}

		t.waves[6][i] = int16(maxOut)
		t.waves[7][i] = 0
	}

	for i := 0; i < lfoLength; i++ {
		var plfo [4]float64
		plfo[0] = 0

		fsaw := (float64(i%(lfoLength/2)) * plfoMax) / (float64(lfoLength)/2.0 - 1.0)
		if i < lfoLength/2 {
			plfo[1] = fsaw
		} else {
			plfo[1] = fsaw - plfoMax
		}

		if i < lfoLength/2 {
			plfo[2] = plfoMax
		} else {
			plfo[2] = plfoMin
		}

		ftri := (float64(i%(lfoLength/4)) * plfoMax) / (lfoLength / 4.0)
		switch i / (lfoLength / 4) {
		case 0:
			plfo[3] = ftri
		case 1:
			plfo[3] = plfoMax - ftri
		case 2:
			plfo[3] = 0 - ftri
		case 3:
			plfo[3] = 0 - (plfoMax - ftri)
		}

		for j := 0; j < 4; j++ {
			t.plfo[j][0][i] = math.Pow(2.0, 0.0)
			for k, cents := range plfoFreqCents[1:] {
				t.plfo[j][k+1][i] = math.Pow(2.0, (cents*plfo[j])/1200.0)
			}
		}

		t.alfo[0][i] = 0
		t.alfo[1][i] = int32(alfoMax - (i*alfoMax)/lfoLength)
		if i < lfoLength/2 {
			t.alfo[2][i] = alfoMax
		} else {
			t.alfo[2][i] = alfoMin
		}
		triWave := (i % (lfoLength / 2)) * alfoMax / (lfoLength / 2)
		if i < lfoLength/2 {
			t.alfo[3][i] = int32(alfoMax - triWave)
		} else {
			t.alfo[3][i] = int32(triWave)
		}
	}

	for i := 0; i < 256; i++ {
		t.envVolume[i] = int32(65536.0 / math.Pow(10.0, (float64(i)/(256.0/96.0))/20.0))
	}

	for i := 0; i < 16; i++ {
		t.attenuation[i] = int32(65536.0 / math.Pow(10.0, channelAttenuationTable[i]/20.0))
	}

	for i := 0; i < 128; i++ {
		db := 0.75 * float64(i)
		t.totalLevel[i] = int32(65536.0 / math.Pow(10.0, db/20.0))
	}

	clockCorrection := float64(stdClock) / float64(clockHz)
	for i := 0; i < 256; i++ {
		t.lfoFreq[i] = lfoFrequencyTable[i] * clockCorrection
	}
	for i := 0; i < 64; i++ {
		t.ar[i] = (arTime[i] * clockCorrection * 44100.0) / 1000.0
	}
	for i := 0; i < 64; i++ {
		t.dc[i] = (dcTime[i] * clockCorrection * 44100.0) / 1000.0
	}

	t.buildDetuneTable()
	return t
}

// buildDetuneTable converts the datasheet's cent-based detune table into
// integer F-number offsets, one representative F-number per n43 sub-range.
func (t *tables) buildDetuneTable() {
	for d := 0; d < 8; d++ {
		dt := d
		sign := 1.0
		if d >= 4 {
			dt = d - 4
			sign = -1.0
		}
		for k := 0; k < 32; k++ {
			cents := dtCents[dt][k]
			n43 := k & 3
			fns := representativeFNS[n43]
			ratio := math.Pow(2.0, cents/1200.0) - 1.0
			offset := int32(float64(fns)*ratio + 0.5)
			t.detune[d][k] = int32(sign) * offset
		}
	}
}
