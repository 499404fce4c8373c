package ymf271

import "testing"

// writePort drives the chip's 16-port address/data latch protocol exactly
// as a host bus would: an even "address" port followed by the
// corresponding odd "data" port.
func writePort(c *Chip, addrPort, addr, dataPort, data uint8) {
	c.Write(addrPort, addr)
	c.Write(dataPort, data)
}

func TestWriteFMSyncZeroBroadcastsToAllBanks(t *testing.T) {
	c := NewChip(16934400, nil)
	// group 0 defaults to sync=0. fmTab[0] must map to group 0, register 0
	// (key-on, a sync register) written through bank 0 (ports 0/1).
	writePort(c, 0x0, 0x00, 0x1, 0x01)

	for bank := 0; bank < 4; bank++ {
		slot := bank*12 + 0
		if !c.slots[slot].active {
			t.Fatalf("bank %d (slot %d) not active after sync=0 key-on broadcast", bank, slot)
		}
	}
}

func TestWriteFMNonSyncRegisterDoesNotBroadcast(t *testing.T) {
	c := NewChip(16934400, nil)
	// Register 0x4 (total level) is not in the sync-register set
	// {0,9,10,12,13,14}, so it should only affect the written bank.
	writePort(c, 0x0, 0x40, 0x1, 0x20) // reg 4 (addr>>4), bank 0

	if c.slots[0].tl != 0x20 {
		t.Fatalf("slot 0 tl = 0x%02X, want 0x20", c.slots[0].tl)
	}
	if c.slots[12].tl != 0 {
		t.Fatalf("slot 12 (bank 1) tl = 0x%02X, want 0 (non-sync register must not broadcast)", c.slots[12].tl)
	}
}

func TestWriteFMSyncOneBroadcastsPairedBanks(t *testing.T) {
	c := NewChip(16934400, nil)
	c.SetGroupControl(0, 1, false) // sync=1: 2x2-op FM, banks (0,2) and (1,3) pair

	writePort(c, 0x0, 0x00, 0x1, 0x01) // bank 0, reg 0 key-on

	if !c.slots[0].active || !c.slots[24].active {
		t.Fatalf("sync=1 bank-0 key-on should broadcast to bank 2 (slot 24)")
	}
	if c.slots[12].active || c.slots[36].active {
		t.Fatalf("sync=1 bank-0 key-on must not affect the other pair (banks 1/3)")
	}
}

func TestWritePCMAddressDecode(t *testing.T) {
	c := NewChip(16934400, nil)
	// pcmTab maps address&0xf to a slot; addr&0xf == 1 names slot 4.
	writePort(c, 0x8, 0x01, 0x9, 0x12) // startaddr low byte for whichever slot pcmTab[1] names

	slotnum := pcmTab[1]
	if slotnum == -1 {
		t.Fatalf("pcmTab[1] = -1, expected a valid slot")
	}
	if c.slots[slotnum].startAddr&0xff != 0x12 {
		t.Fatalf("slot %d startAddr low byte = 0x%02X, want 0x12", slotnum, c.slots[slotnum].startAddr&0xff)
	}
}

func TestWriteTimerControlArmsTimerAPeriod(t *testing.T) {
	c := NewChip(16934400, nil)

	writePort(c, 0xc, 0x11, 0xd, 0x00) // timer A low 2 bits = 0
	writePort(c, 0xc, 0x10, 0xd, 0x00) // timer A high 8 bits = 0 -> timerA=0
	writePort(c, 0xc, 0x13, 0xd, 0x01) // enable bit 0: arm timer A

	want := uint32(384 * 1024)
	if got := c.TimerAPeriod(); got != want {
		t.Fatalf("TimerAPeriod() = %d, want %d", got, want)
	}
}

func TestExternalMemoryReadLatchIncrements(t *testing.T) {
	c := NewChip(16934400, nil)
	c.AllocROM(4)
	c.WriteROM(0, []byte{0xAA, 0xBB, 0xCC, 0xDD})

	writePort(c, 0xc, 0x14, 0xd, 0x00) // ext address low = 0
	writePort(c, 0xc, 0x15, 0xd, 0x00) // ext address mid = 0
	writePort(c, 0xc, 0x16, 0xd, 0x80) // ext address high = 0, rw=1 (read mode)

	// Port 2 returns the current latch, then advances the address and
	// refills the latch from the new position. The address write itself
	// never primes the latch, so the first read only returns the reset
	// value; since the address advances before each refill, the second
	// read returns rom[1] and the third rom[2].
	first := c.Read(0x2)
	if first != 0 {
		t.Fatalf("first external memory read = 0x%02X, want 0 (unprimed latch)", first)
	}
	second := c.Read(0x2)
	if second != 0xBB {
		t.Fatalf("second external memory read = 0x%02X, want 0xBB", second)
	}
	third := c.Read(0x2)
	if third != 0xCC {
		t.Fatalf("third external memory read = 0x%02X, want 0xCC", third)
	}
}
