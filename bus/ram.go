package bus

import (
	"github.com/cespare/xxhash"
)

// Ram is a flat 64KiB memory covering the whole address space.
type Ram struct {
	Data [RAM_SIZE]byte
}

var _ Bus = (*Ram)(nil)

// Read returns the byte at addr.
func (ram *Ram) Read(addr uint16) byte {
	return ram.Data[addr]
}

// Write stores value at addr.
func (ram *Ram) Write(addr uint16, value byte) {
	ram.Data[addr] = value
}

// Reset zeros the memory.
func (ram *Ram) Reset() {
	clear(ram.Data[:])
}

// Load copies data into memory starting at addr.
// Writes past 0xffff wrap to 0x0000.
func (ram *Ram) Load(addr uint16, data []byte) (err error) {
	if len(data) > RAM_SIZE {
		err = ErrImageSize
		return
	}

	for n, value := range data {
		ram.Data[addr+uint16(n)] = value
	}

	return
}

// Checksum returns the xxhash fingerprint of the memory contents.
func (ram *Ram) Checksum() uint64 {
	return xxhash.Sum64(ram.Data[:])
}
