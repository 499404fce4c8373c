package ymf271

import "testing"

func TestAllocROMFillsGrowthWithFF(t *testing.T) {
	c := NewChip(16934400, nil)
	c.AllocROM(4)
	c.WriteROM(0, []byte{0x01, 0x02})
	c.AllocROM(8)

	want := []byte{0x01, 0x02, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	for i, b := range want {
		if c.rom[i] != b {
			t.Fatalf("rom[%d] = %#x, want %#x", i, c.rom[i], b)
		}
	}
}

func TestAllocROMShrinkIsNoop(t *testing.T) {
	c := NewChip(16934400, nil)
	c.AllocROM(8)
	c.AllocROM(4)
	if len(c.rom) != 8 {
		t.Fatalf("len(rom) = %d after shrink request, want 8 (AllocROM never shrinks)", len(c.rom))
	}
}

func TestWriteROMGrowsToFit(t *testing.T) {
	c := NewChip(16934400, nil)
	c.WriteROM(2, []byte{0xAA, 0xBB})
	if len(c.rom) != 4 {
		t.Fatalf("len(rom) = %d after out-of-range write, want 4", len(c.rom))
	}
	if c.rom[2] != 0xAA || c.rom[3] != 0xBB {
		t.Fatalf("rom[2:4] = %#v, want [0xAA 0xBB]", c.rom[2:4])
	}
}

func TestReadMemoryOutOfRangeReturnsZero(t *testing.T) {
	c := NewChip(16934400, nil)
	c.AllocROM(2)
	if got := c.readMemory(100); got != 0 {
		t.Fatalf("readMemory(100) = %#x, want 0 for an unpopulated address", got)
	}
}

func TestReadMemoryMasksTo23Bits(t *testing.T) {
	c := NewChip(16934400, nil)
	c.AllocROM(2)
	c.WriteROM(0, []byte{0x7a, 0x7b})
	if got := c.readMemory(0x800000); got != 0x7a {
		t.Fatalf("readMemory(0x800000) = %#x, want 0x7a (address must wrap at 23 bits)", got)
	}
}
