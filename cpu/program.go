package cpu

import (
	"iter"

	"github.com/ezrec/lr35902/bus"
)

// Opcode represents a line of assembled code with its source location and
// generated machine code.
type Opcode struct {
	LineNo int
	Addr   uint16
	Words  []string
	Bytes  []byte
}

// Program is an assembled listing.
type Program struct {
	Opcodes []Opcode
}

// Debug locates an address within a program listing.
type Debug struct {
	*Opcode
	Index int // Offset of the address within the opcode's bytes.
}

// Debug returns the opcode containing the address, if any.
func (prog *Program) Debug(addr uint16) (dbg Debug) {
	for n, op := range prog.Opcodes {
		offset := addr - op.Addr
		if int(offset) < len(op.Bytes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  int(offset),
			}
			break
		}
	}

	return
}

// Entry returns the address of the first opcode, or 0 for an empty program.
func (prog *Program) Entry() (addr uint16) {
	if len(prog.Opcodes) > 0 {
		addr = prog.Opcodes[0].Addr
	}
	return
}

// Bytes iterates over every assembled byte and its address.
func (prog *Program) Bytes() iter.Seq2[uint16, byte] {
	return func(yield func(addr uint16, value byte) bool) {
		for _, op := range prog.Opcodes {
			for n, value := range op.Bytes {
				if !yield(op.Addr+uint16(n), value) {
					return
				}
			}
		}
	}
}

// Load writes the program into memory.
func (prog *Program) Load(b bus.Bus) {
	for addr, value := range prog.Bytes() {
		b.Write(addr, value)
	}
}
