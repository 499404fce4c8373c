package ymf271

// slot is one of the chip's 48 operator slots: 12 groups times 4 banks.
// Depending on its group's sync mode a slot acts as an FM operator, a PCM
// voice, or both (PFM mode uses external sample data as an FM carrier).
type slot struct {
	extEn  bool
	extOut uint8

	lfoFreq uint8
	lfoWave uint8
	pms     uint8
	ams     uint8

	detune   uint8
	multiple uint8
	tl       uint8
	keyscale uint8

	ar         uint8
	decay1Rate uint8
	decay2Rate uint8
	decay1Lvl  uint8
	relRate    uint8

	block  uint8
	fnsHi  uint8
	fns    uint32
	feedback uint8
	waveform uint8
	accon    bool
	algorithm uint8

	ch0Level, ch1Level, ch2Level, ch3Level uint8

	startAddr uint32
	loopAddr  uint32
	endAddr   uint32
	altLoop   bool
	fs        uint8
	srcNote   uint8
	srcB      uint8
	bits      uint8

	step    uint32
	stepPtr uint64

	active bool

	volume         int32
	envState       envState
	envAttackStep  int32
	envDecay1Step  int32
	envDecay2Step  int32
	envReleaseStep int32

	feedbackModulation0 int64
	feedbackModulation1 int64

	lfoPhase     int32
	lfoStep      int32
	lfoAmplitude int32
	lfoPhasemod  float64

	loopDirection int8 // +1 forward, -1 reverse (alternate-loop mode)
}
