package ymf271

import "testing"

// programCarrierSlot key-ons a slot as an independent sine carrier at a
// fixed, audible pitch with full volume and no attenuation.
func programCarrierSlot(c *Chip, slotnum int) {
	c.WriteSlotRegister(slotnum, 0x3, 0x01) // multiple=1
	c.WriteSlotRegister(slotnum, 0x4, 0x00) // tl=0
	c.WriteSlotRegister(slotnum, 0x5, 0x1f) // ar=31
	c.WriteSlotRegister(slotnum, 0xb, 0x00) // waveform=0, feedback=0
	c.WriteSlotRegister(slotnum, 0xc, 0x0f) // algorithm 15 (all independent carriers)
	c.WriteSlotRegister(slotnum, 0xd, 0x00) // ch0/ch1 level 0 = 0dB
	c.WriteSlotRegister(slotnum, 0xe, 0x00) // ch2/ch3 level 0 = 0dB
	c.WriteSlotRegister(slotnum, 0xa, 0x48) // block=4, fns hi nibble=8
	c.WriteSlotRegister(slotnum, 0x9, 0x00) // fns lo byte
	c.WriteSlotRegister(slotnum, 0x0, 0x01) // key on
}

func anyNonZero(buf []int32) bool {
	for _, v := range buf {
		if v != 0 {
			return true
		}
	}
	return false
}

func TestPFMGatingRestrictedToLeaderGroups(t *testing.T) {
	// Group 0 is PFM-eligible; with an empty ROM, PFM carriers read silence
	// back, so enabling PFM here must mute the group entirely.
	eligible := NewChip(16934400, nil)
	eligible.SetGroupControl(0, 0, true)
	for bank := 0; bank < 4; bank++ {
		programCarrierSlot(eligible, bank*12+0)
	}
	left := make([]int32, 512)
	right := make([]int32, 512)
	eligible.Update(512, left, right)
	if anyNonZero(left) || anyNonZero(right) {
		t.Fatalf("group 0 with pfm=true and an empty ROM produced audio, want silence")
	}

	// Group 1 is never PFM-eligible (only 0, 4, 8 are); the pfm flag must
	// be ignored there and the group must still render its sine carriers.
	ineligible := NewChip(16934400, nil)
	ineligible.SetGroupControl(1, 0, true)
	for bank := 0; bank < 4; bank++ {
		programCarrierSlot(ineligible, bank*12+1)
	}
	ineligible.Update(512, left, right)
	if !anyNonZero(left) && !anyNonZero(right) {
		t.Fatalf("group 1 with pfm=true rendered silence; the pfm flag must be ignored outside groups {0,4,8}")
	}
}

func TestSyncThreeRendersFourIndependentPCMVoices(t *testing.T) {
	c := NewChip(16934400, nil)
	c.AllocROM(4)
	c.WriteROM(0, []byte{0x40, 0x50, 0x60, 0x70})
	c.SetGroupControl(2, 3, false)

	for bank := 0; bank < 4; bank++ {
		slot := bank*12 + 2
		c.WriteSlotRegister(slot, 0x4, 0x00) // tl=0
		c.WriteSlotRegister(slot, 0x5, 0x1f) // ar=31
		c.WriteSlotRegister(slot, 0xb, 0x07) // waveform=7 (external), accon=0
		c.WriteSlotRegister(slot, 0xd, 0x00)
		c.WriteSlotRegister(slot, 0xe, 0x00)
		c.WriteSlotRegister(slot, 0x0, 0x01) // key on

		s := &c.slots[slot]
		s.bits = 8
		s.startAddr = 0
		s.endAddr = 3
		s.loopAddr = 0
		s.step = 1 << 16
	}

	left := make([]int32, 256)
	right := make([]int32, 256)
	c.Update(256, left, right)
	if !anyNonZero(left) && !anyNonZero(right) {
		t.Fatalf("sync=3 group produced no audio across 4 independent PCM voices")
	}
}

func TestUpdateQuadExposesAllFourChannelsSeparately(t *testing.T) {
	c := NewChip(16934400, nil)
	// Route everything through ch0 only: ch1/2/3 at level 15 (~96dB), whose
	// attenuation multiplier is 1, so each carrier's (out*1)>>16 is 0 or -1.
	for bank := 0; bank < 4; bank++ {
		slot := bank*12 + 3
		programCarrierSlot(c, slot)
		c.WriteSlotRegister(slot, 0xd, 0x0f) // ch0=0 (loud), ch1=15 (mute)
		c.WriteSlotRegister(slot, 0xe, 0xff) // ch2=15, ch3=15 (mute)
	}

	ch0 := make([]int32, 256)
	ch1 := make([]int32, 256)
	ch2 := make([]int32, 256)
	ch3 := make([]int32, 256)
	c.UpdateQuad(256, ch0, ch1, ch2, ch3)

	if !anyNonZero(ch0) {
		t.Fatalf("ch0 silent despite being routed at 0dB")
	}
	for i := range ch1 {
		for _, v := range []int32{ch1[i], ch2[i], ch3[i]} {
			if v < -4 || v > 0 {
				t.Fatalf("sample %d: ch1/ch2/ch3 = %d/%d/%d, want each in [-4, 0] (4 carriers at ~96dB attenuation)", i, ch1[i], ch2[i], ch3[i])
			}
		}
	}
}
