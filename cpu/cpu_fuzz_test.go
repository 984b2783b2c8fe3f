package cpu

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/lr35902/bus"
)

func FuzzExecute(f *testing.F) {
	for opcode := range 0x100 {
		f.Add(byte(opcode), byte(0x5a), uint16(0x1234), uint16(0xc000), byte(0x00))
	}
	f.Add(byte(0xc6), byte(0xff), uint16(0xffff), uint16(0xffff), byte(0xf0))

	f.Fuzz(func(t *testing.T, opcode byte, imm byte, pc uint16, hl uint16, flags byte) {
		assert := assert.New(t)

		ram := &bus.Ram{}
		trace := &bus.Trace{Bus: ram}
		cpu := NewCpu(trace)
		cpu.Reset(pc)
		cpu.A = 0x3c
		cpu.B, cpu.C, cpu.D, cpu.E = 0x10, 0x21, 0x32, 0x43
		cpu.Flags = FlagsFromByte(flags)
		cpu.SetHL(hl)
		ram.Write(pc, opcode)
		ram.Write(pc+1, imm)
		if hl != pc && hl != pc+1 {
			ram.Write(hl, 0x99)
		}
		pre := *cpu
		pre_hl := ram.Read(hl)

		err := cpu.Step()

		code_str := fmt.Sprintf("0x%02x imm:0x%02x\npre:\n%v\ncpu:\n%v", opcode, imm, pre.String(), cpu.String())

		assert.Equal(byte(0), cpu.F()&^FLAG_MASK, code_str)

		inst, decode_err := Decode(opcode)
		if err != nil {
			assert.Equal(pre, *cpu, code_str)
			assert.Empty(trace.Writes(), code_str)
			switch {
			case decode_err != nil:
				assert.ErrorIs(err, ErrOpcodeUnknown, code_str)
			case inst.Op == OP_STOP:
				assert.ErrorIs(err, ErrInstructionUnimplemented, code_str)
			default:
				assert.NoError(err, code_str)
			}
			return
		}

		assert.NoError(decode_err, code_str)
		assert.Equal(pc+inst.Length(), cpu.PC, code_str)
		assert.Equal(1, cpu.Ticks, code_str)

		var b byte
		switch inst.Target {
		case TARGET_HL:
			b = pre_hl
		case TARGET_D8:
			b = imm
		case TARGET_NONE:
		default:
			b, _ = pre.Reg(inst.Target)
		}

		switch {
		case inst.Op.Alu():
			result, out := alu(inst.Op)(pre.A, b, pre.Flags)
			assert.Equal(result, cpu.A, code_str)
			assert.Equal(out, cpu.Flags, code_str)
			assert.Empty(trace.Writes(), code_str)
		case inst.Op == OP_INC || inst.Op == OP_DEC:
			result, out := alu(inst.Op)(b, 0, pre.Flags)
			assert.Equal(out, cpu.Flags, code_str)
			if inst.Target == TARGET_HL {
				assert.Equal(result, ram.Read(hl), code_str)
			} else {
				value, _ := cpu.Reg(inst.Target)
				assert.Equal(result, value, code_str)
			}
		case inst.Op == OP_HALT:
			assert.True(cpu.Halted, code_str)
			assert.True(errors.Is(cpu.Step(), ErrHalted), code_str)
		case inst.Op == OP_NOP:
			assert.Equal(pre.Registers, cpu.Registers, code_str)
		default:
			result, out := alu(inst.Op)(pre.A, 0, pre.Flags)
			assert.Equal(result, cpu.A, code_str)
			assert.Equal(out, cpu.Flags, code_str)
		}
	})
}
