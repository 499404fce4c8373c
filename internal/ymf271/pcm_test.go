package ymf271

import "testing"

func TestReadPCMSample8Bit(t *testing.T) {
	c := NewChip(16934400, nil)
	c.AllocROM(4)
	c.WriteROM(0, []byte{0x00, 0x7f, 0x80, 0xff})

	s := &slot{bits: 8, startAddr: 0}
	if got := readPCMSample(c, s, 1); got != int16(0x7f)<<8 {
		t.Fatalf("readPCMSample(offset=1) = %d, want %d", got, int16(0x7f)<<8)
	}
}

func TestReadPCMSample12BitPacked(t *testing.T) {
	c := NewChip(16934400, nil)
	c.AllocROM(3)
	// 3 bytes pack 2 12-bit samples: byte0 = high byte of sample 0, byte1
	// high nibble = low bits of sample 0 and low nibble = low bits of
	// sample 1, byte2 = high byte of sample 1.
	c.WriteROM(0, []byte{0xAB, 0xC1, 0xD2})

	s := &slot{bits: 12, startAddr: 0}

	even := readPCMSample(c, s, 0)
	wantEven := uint16(0xAB)<<8 | uint16(0xC1&0xf0)
	if uint16(even) != wantEven {
		t.Fatalf("readPCMSample(offset=0) = %#x, want %#x", even, wantEven)
	}

	odd := readPCMSample(c, s, 1)
	wantOdd := uint16(0xD2)<<8 | uint16(0xC1&0x0f)<<4
	if uint16(odd) != wantOdd {
		t.Fatalf("readPCMSample(offset=1) = %#x, want %#x", odd, wantOdd)
	}
}

func TestUpdatePCMForwardLoopWrapsAndFlagsEnd(t *testing.T) {
	c := NewChip(16934400, nil)
	c.AllocROM(4)
	c.WriteROM(0, []byte{0x10, 0x20, 0x30, 0x40})

	s := &c.slots[0]
	s.active = true
	s.bits = 8
	s.accon = true
	s.tl = 1
	s.startAddr = 0
	s.endAddr = 2
	s.loopAddr = 0
	// updatePCM recomputes step from the pitch registers every sample:
	// waveform 7, block 0, fns 0, multiple 1 gives exactly 1<<16.
	s.waveform = 7
	s.multiple = 1
	s.step = 1 << 16
	s.stepPtr = 0
	s.loopDirection = 1

	mixBuf := make([]int32, 8*4)
	updatePCM(c, 0, mixBuf, 8)

	if s.stepPtr>>16 > uint64(s.endAddr) {
		t.Fatalf("stepPtr offset %d exceeds endAddr %d after looping", s.stepPtr>>16, s.endAddr)
	}
	if c.EndStatus()&1 == 0 {
		t.Fatalf("EndStatus() bit 0 not set after the sample crossed endAddr")
	}
}

func TestUpdatePCMAltLoopReversesDirection(t *testing.T) {
	c := NewChip(16934400, nil)
	c.AllocROM(4)
	c.WriteROM(0, []byte{0x10, 0x20, 0x30, 0x40})

	s := &c.slots[0]
	s.active = true
	s.bits = 8
	s.accon = true
	s.tl = 1
	s.startAddr = 0
	s.endAddr = 2
	s.loopAddr = 0
	s.altLoop = true
	s.waveform = 7 // with multiple 1, the recomputed step stays 1<<16
	s.multiple = 1
	s.step = 1 << 16
	s.stepPtr = 0
	s.loopDirection = 1

	mixBuf := make([]int32, 4*4)
	updatePCM(c, 0, mixBuf, 4)

	if s.loopDirection != -1 {
		t.Fatalf("loopDirection = %d after crossing endAddr in altLoop mode, want -1", s.loopDirection)
	}
}

func TestClampUnitVolumeCapsAt65536(t *testing.T) {
	if got := clampUnitVolume(100000); got != 65536 {
		t.Fatalf("clampUnitVolume(100000) = %d, want 65536", got)
	}
	if got := clampUnitVolume(1000); got != 1000 {
		t.Fatalf("clampUnitVolume(1000) = %d, want 1000 (unchanged below cap)", got)
	}
}
