package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/lr35902/bus"
)

var _cpu_defines = map[string]string{
	"FLAG_Z":    fmt.Sprintf("%#x", FLAG_Z),
	"FLAG_N":    fmt.Sprintf("%#x", FLAG_N),
	"FLAG_H":    fmt.Sprintf("%#x", FLAG_H),
	"FLAG_C":    fmt.Sprintf("%#x", FLAG_C),
	"FLAG_MASK": fmt.Sprintf("%#x", FLAG_MASK),
}

// Cpu is the execution context of the LR35902 core: the register file, the
// program counter and stack pointer, and the bus the core executes from.
//
// A Cpu is owned by a single goroutine; hosts inspect or modify it only
// between calls to Step.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Registers        // Register file.
	PC        uint16 // Program counter.
	SP        uint16 // Stack pointer.
	Halted    bool   // Set by HALT; cleared by Reset.

	Ticks int // Instructions executed since reset.

	Bus bus.Bus // Bus for instruction fetch and memory operands.
}

// NewCpu creates a new CPU attached to a bus.
func NewCpu(b bus.Bus) (cpu *Cpu) {
	cpu = &Cpu{
		Bus: b,
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset clears the registers and counters, and sets the program counter.
func (cpu *Cpu) Reset(pc uint16) {
	if cpu.Verbose {
		log.Printf("cpu: reset, pc %04x", pc)
	}

	cpu.Registers = Registers{}
	cpu.PC = pc
	cpu.SP = 0
	cpu.Halted = false
	cpu.Ticks = 0
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc", "sp",
		"af", "bc", "de", "hl",
		"halt",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%04X", cpu.PC)
		case "sp":
			strval = fmt.Sprintf("%04X", cpu.SP)
		case "af":
			strval = fmt.Sprintf("%04X [%v]", cpu.AF(), cpu.Flags)
		case "bc":
			strval = fmt.Sprintf("%04X", cpu.BC())
		case "de":
			strval = fmt.Sprintf("%04X", cpu.DE())
		case "hl":
			strval = fmt.Sprintf("%04X", cpu.HL())
		case "halt":
			strval = fmt.Sprintf("%v", cpu.Halted)
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// Fetch decodes the opcode at the program counter.
func (cpu *Cpu) Fetch() (inst Instruction, err error) {
	return Decode(cpu.Bus.Read(cpu.PC))
}

// Step runs one fetch, decode, execute cycle and commits the new program
// counter. On error nothing is committed and the program counter stays on
// the failing opcode.
func (cpu *Cpu) Step() (err error) {
	if cpu.Halted {
		err = ErrHalted
		return
	}

	inst, err := cpu.Fetch()
	if err != nil {
		return
	}

	if cpu.Verbose {
		text, _, _ := Disassemble(cpu.Bus, cpu.PC)
		log.Printf("%04x: %v", cpu.PC, text)
	}

	next_pc, err := cpu.Execute(inst)
	if err != nil {
		return
	}

	cpu.PC = next_pc
	cpu.Ticks += 1

	return
}

// Execute executes a single decoded instruction, and returns the address of
// the next instruction. The program counter itself is left to the caller.
//
// On error no register or memory has been changed, and next_pc is the
// current program counter.
func (cpu *Cpu) Execute(inst Instruction) (next_pc uint16, err error) {
	defer func() {
		if err != nil {
			next_pc = cpu.PC
			err = errors.Join(ErrInstruction(inst), err)
		}
	}()

	next_pc = cpu.PC + inst.Length()

	switch inst.Op {
	case OP_NOP:
		return
	case OP_HALT:
		cpu.Halted = true
		return
	}

	fn := alu(inst.Op)
	if fn == nil {
		err = ErrUnimplemented(inst)
		return
	}

	switch inst.Op {
	case OP_ADD, OP_ADC, OP_SUB, OP_SBC, OP_AND, OP_XOR, OP_OR, OP_CP:
		var value byte
		value, err = cpu.getValue(inst.Target)
		if err != nil {
			return
		}
		cpu.A, cpu.Flags = fn(cpu.A, value, cpu.Flags)
	case OP_INC, OP_DEC:
		if inst.Target == TARGET_D8 {
			err = ErrTargetInvalid
			return
		}
		var value byte
		value, err = cpu.getValue(inst.Target)
		if err != nil {
			return
		}
		var flags Flags
		value, flags = fn(value, 0, cpu.Flags)
		cpu.setValue(inst.Target, value)
		cpu.Flags = flags
	default:
		if inst.Target != TARGET_A {
			err = ErrTargetInvalid
			return
		}
		cpu.A, cpu.Flags = fn(cpu.A, 0, cpu.Flags)
	}

	return
}

// getValue fetches the operand named by the target: a register, the byte
// at HL, or the immediate byte following the opcode.
func (cpu *Cpu) getValue(target Target) (value byte, err error) {
	switch target {
	case TARGET_A, TARGET_B, TARGET_C, TARGET_D, TARGET_E, TARGET_H, TARGET_L:
		value, _ = cpu.Reg(target)
	case TARGET_HL:
		value = cpu.Bus.Read(cpu.HL())
	case TARGET_D8:
		value = cpu.Bus.Read(cpu.PC + 1)
	default:
		err = ErrTargetInvalid
	}

	return
}

// setValue writes a register or the byte at HL.
func (cpu *Cpu) setValue(target Target, value byte) {
	switch target {
	case TARGET_HL:
		cpu.Bus.Write(cpu.HL(), value)
	default:
		if !cpu.SetReg(target, value) {
			panic("unwritable target")
		}
	}
}
