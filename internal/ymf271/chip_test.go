package ymf271

import "testing"

func TestSilenceAfterReset(t *testing.T) {
	c := NewChip(16934400, nil)
	c.Reset()

	left := make([]int32, 1024)
	right := make([]int32, 1024)
	c.Update(1024, left, right)

	for i, v := range left {
		if v != 0 {
			t.Fatalf("left[%d] = %d, want 0 after reset with no slots active", i, v)
		}
	}
	for i, v := range right {
		if v != 0 {
			t.Fatalf("right[%d] = %d, want 0 after reset with no slots active", i, v)
		}
	}
}

func TestSampleRateIsClockOver384(t *testing.T) {
	c := NewChip(16934400, nil)
	want := uint32(16934400 / 384)
	if got := c.SampleRate(); got != want {
		t.Fatalf("SampleRate() = %d, want %d", got, want)
	}
}

func TestKeyOnProducesNonSilentOutput(t *testing.T) {
	c := NewChip(16934400, nil)
	c.SetGroupControl(0, 0, false)

	// Simple single-operator sine carrier: algorithm 15 makes every slot an
	// independent carrier, so slot 0 alone produces audible output.
	c.WriteSlotRegister(0, 0x3, 0x01) // multiple=1
	c.WriteSlotRegister(0, 0x4, 0x00) // tl=0 (max volume)
	c.WriteSlotRegister(0, 0x5, 0x1f) // ar=31
	c.WriteSlotRegister(0, 0xb, 0x00) // waveform=0 (sine), feedback=0
	c.WriteSlotRegister(0, 0xc, 0x0f) // algorithm 15 (all independent carriers)
	c.WriteSlotRegister(0, 0xd, 0x00) // ch0/ch1 level 0 = 0dB (loudest)
	c.WriteSlotRegister(0, 0xa, 0x48) // block=4, fns hi nibble=8
	c.WriteSlotRegister(0, 0x9, 0x00) // fns lo byte
	c.WriteSlotRegister(0, 0x0, 0x01) // key on

	left := make([]int32, 512)
	right := make([]int32, 512)
	c.Update(512, left, right)

	nonZero := false
	for i := range left {
		if left[i] != 0 || right[i] != 0 {
			nonZero = true
			break
		}
	}
	if !nonZero {
		t.Fatalf("expected non-silent output after key-on, got all-zero buffer")
	}
}

func TestKeyOffTransitionsToRelease(t *testing.T) {
	c := NewChip(16934400, nil)
	c.WriteSlotRegister(0, 0x5, 0x1f)
	c.WriteSlotRegister(0, 0x0, 0x01) // key on

	if !c.slots[0].active {
		t.Fatalf("slot 0 not active after key-on")
	}

	c.WriteSlotRegister(0, 0x0, 0x00) // key off
	if c.slots[0].envState != envRelease {
		t.Fatalf("envState = %d after key-off, want envRelease (%d)", c.slots[0].envState, envRelease)
	}
}

func TestMuteMaskSilencesGroup(t *testing.T) {
	c := NewChip(16934400, nil)
	c.WriteSlotRegister(0, 0x5, 0x1f)
	c.WriteSlotRegister(0, 0xc, 0x0f)
	c.WriteSlotRegister(0, 0xd, 0x00)
	c.WriteSlotRegister(0, 0x0, 0x01)

	c.SetMuteMask(1 << 0) // mute group 0

	left := make([]int32, 256)
	right := make([]int32, 256)
	c.Update(256, left, right)

	for i := range left {
		if left[i] != 0 || right[i] != 0 {
			t.Fatalf("sample %d nonzero with group 0 muted: left=%d right=%d", i, left[i], right[i])
		}
	}
}
