package ymf271

import "github.com/Rennsou1/ymf271/internal/debug"

// AllocROM (re)sizes the chip's PCM sample ROM. Growing the ROM fills new
// space with 0xFF, matching the original's realloc-based bank loader.
func (c *Chip) AllocROM(size uint32) {
	if uint32(len(c.rom)) >= size {
		return
	}
	grown := make([]byte, size)
	copy(grown, c.rom)
	for i := len(c.rom); i < len(grown); i++ {
		grown[i] = 0xff
	}
	c.rom = grown
	c.logf(debug.ComponentROM, "allocated %d bytes of sample ROM", size)
}

// WriteROM writes length bytes of sample data at a byte offset, growing
// the ROM first if the write would run past its current end.
func (c *Chip) WriteROM(offset uint32, data []byte) {
	end := offset + uint32(len(data))
	if end > uint32(len(c.rom)) {
		c.AllocROM(end)
	}
	copy(c.rom[offset:end], data)
}

// readMemory reads one byte from sample ROM, returning 0 for an
// out-of-range offset rather than panicking (matches bounds-checked reads
// on real hardware against unpopulated address space).
func (c *Chip) readMemory(offset uint32) uint8 {
	offset &= 0x7fffff
	if offset < uint32(len(c.rom)) {
		return c.rom[offset]
	}
	return 0
}
