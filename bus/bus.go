// Package bus provides the memory bus contract for the LR35902 core, and the
// reference implementations used by the emulator and its tests.
//
// The core only ever sees the Bus interface: byte reads and writes over a
// 16-bit address space. Address decoding, banking and memory mapped
// peripherals are the concern of the Bus implementation.
package bus

import (
	"fmt"
	"iter"
	"maps"
)

// Bus defines byte addressed load/store over the 16-bit address space.
// Every address in 0x0000..0xffff is readable and writable.
type Bus interface {
	// Read returns the byte at addr.
	Read(addr uint16) byte
	// Write stores value at addr.
	Write(addr uint16, value byte)
}

const (
	RAM_SIZE = 0x10000 // Size of the full address space, in bytes.
)

var _bus_defines = map[string]string{
	"RAM_SIZE": fmt.Sprintf("%#x", RAM_SIZE),
}

// Defines returns the assembler equates describing the address space.
func Defines() iter.Seq2[string, string] {
	return maps.All(_bus_defines)
}
