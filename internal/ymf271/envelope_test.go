package ymf271

import "testing"

func TestRateStepBelowFourIsZero(t *testing.T) {
	for rate := 0; rate < 4; rate++ {
		if got := rateStep(1000.0, 255, rate); got != 0 {
			t.Fatalf("rateStep(rate=%d) = %d, want 0 (rates 0-3 never complete)", rate, got)
		}
	}
	if got := rateStep(1000.0, 255, 4); got == 0 {
		t.Fatalf("rateStep(rate=4) = 0, want nonzero")
	}
}

func TestInitEnvelopeSeedsMinusSixtyDB(t *testing.T) {
	c := NewChip(16934400, nil)
	s := &c.slots[0]
	s.ar = 31
	initEnvelope(c.tables, s)

	want := int32(255-160) << envVolumeShift
	if s.volume != want {
		t.Fatalf("initEnvelope volume = %d, want %d (-60dB initial attack level)", s.volume, want)
	}
	if s.envState != envAttack {
		t.Fatalf("initEnvelope envState = %d, want envAttack", s.envState)
	}
}

func TestEnvelopeEndDeactivatesSlot(t *testing.T) {
	s := &slot{active: true, volume: 0, envState: envRelease}
	ended := checkEnvelopeEnd(s)
	if !ended {
		t.Fatalf("checkEnvelopeEnd() = false, want true at volume 0")
	}
	if s.active {
		t.Fatalf("slot still active after envelope reached zero volume")
	}
}

func TestEnvelopeEndLeavesPositiveVolumeActive(t *testing.T) {
	s := &slot{active: true, volume: 100, envState: envDecay2}
	if checkEnvelopeEnd(s) {
		t.Fatalf("checkEnvelopeEnd() = true at positive volume, want false")
	}
	if !s.active {
		t.Fatalf("slot deactivated despite positive volume")
	}
}

func TestKeyscaledRateClampsToValidRange(t *testing.T) {
	if got := getKeyscaledRate(60, 31, 3); got != 63 {
		t.Fatalf("getKeyscaledRate high clamp = %d, want 63", got)
	}
	if got := getKeyscaledRate(0, 0, 0); got != 0 {
		t.Fatalf("getKeyscaledRate low clamp = %d, want 0", got)
	}
}

func TestCalculateStatusEndOnlyAppliesToGroupLeaders(t *testing.T) {
	c := NewChip(16934400, nil)

	calculateStatusEnd(c, 1, true) // slotnum&3 != 0, must be ignored
	if c.EndStatus() != 0 {
		t.Fatalf("EndStatus() = %#x after non-leader slot update, want 0", c.EndStatus())
	}

	calculateStatusEnd(c, 0, true) // bank 0, group 0 -> bit 0
	if c.EndStatus()&1 == 0 {
		t.Fatalf("EndStatus() bit 0 not set after slot 0 end")
	}

	calculateStatusEnd(c, 0, false)
	if c.EndStatus()&1 != 0 {
		t.Fatalf("EndStatus() bit 0 still set after clearing")
	}
}

func TestCalculateStatusEndBankBitLayout(t *testing.T) {
	c := NewChip(16934400, nil)

	// slot 16 = bank 1, group 4: subbit=1, bankbit=(4>>2)=1 -> bit 1+1*4=5
	calculateStatusEnd(c, 16, true)
	if c.EndStatus()&(1<<5) == 0 {
		t.Fatalf("EndStatus() = %#x, want bit 5 set for slot 16", c.EndStatus())
	}
}
