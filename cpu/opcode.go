package cpu

import (
	"fmt"
	"slices"

	"github.com/ezrec/lr35902/bus"
)

// Operation is the operation of a decoded instruction.
type Operation int

// The 8-bit ALU operations are numbered by bits 5..3 of their opcode.
//
//go:generate go tool stringer -linecomment -type=Operation
const (
	OP_ADD  = Operation(0)  // add
	OP_ADC  = Operation(1)  // adc
	OP_SUB  = Operation(2)  // sub
	OP_SBC  = Operation(3)  // sbc
	OP_AND  = Operation(4)  // and
	OP_XOR  = Operation(5)  // xor
	OP_OR   = Operation(6)  // or
	OP_CP   = Operation(7)  // cp
	OP_INC  = Operation(8)  // inc
	OP_DEC  = Operation(9)  // dec
	OP_DAA  = Operation(10) // daa
	OP_CPL  = Operation(11) // cpl
	OP_SCF  = Operation(12) // scf
	OP_CCF  = Operation(13) // ccf
	OP_NOP  = Operation(14) // nop
	OP_HALT = Operation(15) // halt
	OP_STOP = Operation(16) // stop
)

// Alu returns true for the accumulator operations of the 0x80..0xbf block.
func (op Operation) Alu() bool {
	return op >= OP_ADD && op <= OP_CP
}

// Target is the operand source of an instruction.
type Target int

// Register targets are numbered by their 3-bit opcode encoding.
//
//go:generate go tool stringer -linecomment -type=Target
const (
	TARGET_B    = Target(0) // b
	TARGET_C    = Target(1) // c
	TARGET_D    = Target(2) // d
	TARGET_E    = Target(3) // e
	TARGET_H    = Target(4) // h
	TARGET_L    = Target(5) // l
	TARGET_HL   = Target(6) // (hl)
	TARGET_A    = Target(7) // a
	TARGET_D8   = Target(8) // d8
	TARGET_NONE = Target(9) // -
)

// Register returns true if the target names an 8-bit register.
func (t Target) Register() bool {
	return t >= TARGET_B && t <= TARGET_A && t != TARGET_HL
}

// Length returns the encoded instruction length in bytes for the target.
func (t Target) Length() uint16 {
	if t == TARGET_D8 {
		return 2
	}
	return 1
}

// Instruction is a decoded opcode.
type Instruction struct {
	Op     Operation
	Target Target
}

// Length returns the encoded instruction length in bytes.
func (inst Instruction) Length() uint16 {
	if inst.Op == OP_STOP {
		return 2
	}
	return inst.Target.Length()
}

// String returns the assembly language form of the instruction.
func (inst Instruction) String() string {
	return inst.format(inst.Target.String())
}

func (inst Instruction) format(operand string) (text string) {
	switch inst.Op {
	case OP_ADD, OP_ADC, OP_SBC:
		text = fmt.Sprintf("%v a,%v", inst.Op, operand)
	case OP_SUB, OP_AND, OP_XOR, OP_OR, OP_CP, OP_INC, OP_DEC:
		text = fmt.Sprintf("%v %v", inst.Op, operand)
	default:
		text = inst.Op.String()
	}
	return
}

// The eleven opcodes with no function on silicon.
var illegalOpcodes = []byte{0xd3, 0xdb, 0xdd, 0xe3, 0xe4, 0xeb, 0xec, 0xed, 0xf4, 0xfc, 0xfd}

type decodeEntry struct {
	Instruction
	ok bool
}

var decodeTable [256]decodeEntry

func init() {
	set := func(opcode byte, op Operation, target Target) {
		if decodeTable[opcode].ok {
			panic(fmt.Sprintf("opcode 0x%02x decoded twice", opcode))
		}
		decodeTable[opcode] = decodeEntry{Instruction{Op: op, Target: target}, true}
	}

	for op := OP_ADD; op <= OP_CP; op++ {
		for target := TARGET_B; target <= TARGET_A; target++ {
			set(0x80|byte(op)<<3|byte(target), op, target)
		}
		set(0xc6|byte(op)<<3, op, TARGET_D8)
	}

	for target := TARGET_B; target <= TARGET_A; target++ {
		set(0x04|byte(target)<<3, OP_INC, target)
		set(0x05|byte(target)<<3, OP_DEC, target)
	}

	set(0x27, OP_DAA, TARGET_A)
	set(0x2f, OP_CPL, TARGET_A)
	set(0x37, OP_SCF, TARGET_A)
	set(0x3f, OP_CCF, TARGET_A)

	set(0x00, OP_NOP, TARGET_NONE)
	set(0x10, OP_STOP, TARGET_NONE)
	set(0x76, OP_HALT, TARGET_NONE)
}

// Decode maps an opcode byte to its instruction.
// Opcodes with no entry return ErrOpcode.
func Decode(opcode byte) (inst Instruction, err error) {
	entry := decodeTable[opcode]
	if !entry.ok {
		err = ErrOpcode(opcode)
		return
	}

	inst = entry.Instruction
	return
}

// Disassemble decodes the instruction at pc, reading any immediate
// operand from the bus.
func Disassemble(b bus.Bus, pc uint16) (text string, length uint16, err error) {
	opcode := b.Read(pc)
	inst, err := Decode(opcode)
	if err != nil {
		text = fmt.Sprintf("db 0x%02x", opcode)
		length = 1
		return
	}

	length = inst.Length()
	operand := inst.Target.String()
	if inst.Target == TARGET_D8 {
		operand = fmt.Sprintf("0x%02x", b.Read(pc+1))
	}
	text = inst.format(operand)

	return
}

// Illegal returns true if the opcode has no function on silicon, as opposed
// to an opcode the decoder does not cover.
func (eo ErrOpcode) Illegal() bool {
	return slices.Contains(illegalOpcodes, byte(eo))
}

// Encode returns the machine code for an instruction. imm is the immediate
// operand, used only by TARGET_D8 instructions.
func Encode(inst Instruction, imm byte) (code []byte, err error) {
	known := false
	for opcode, entry := range decodeTable {
		if !entry.ok || entry.Op != inst.Op {
			continue
		}
		known = true
		if entry.Target != inst.Target {
			continue
		}

		code = []byte{byte(opcode)}
		switch {
		case inst.Target == TARGET_D8:
			code = append(code, imm)
		case inst.Length() == 2:
			code = append(code, 0x00)
		}
		return
	}

	if known {
		err = ErrTargetInvalid
	} else {
		err = ErrOpcodeInvalid
	}
	return
}
