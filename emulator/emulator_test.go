package emulator

import (
	"context"
	"errors"
	"maps"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/lr35902/cpu"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.Equal(uint16(ENTRY), emu.Origin)

	defines := maps.Collect(emu.Defines())
	assert.Equal("0x100", defines["ENTRY"])
	assert.Equal("0x10000", defines["RAM_SIZE"])
	assert.Equal("0x80", defines["FLAG_Z"])
}

func assemble(t *testing.T, emu *Emulator, program []string) *cpu.Program {
	asm := &cpu.Assembler{}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}

	return prog
}

func TestEmulator_Tick(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []string{
		".org ENTRY",
		"add a,0x12",
		"; comment",
		"adc a,FLAG_Z",
		"xor a",
		"halt",
	}
	emu.Program = assemble(t, emu, program)

	err := emu.Reset()
	assert.NoError(err)
	assert.Equal(uint16(0x100), emu.Cpu.PC)

	for _, op := range emu.Program.Opcodes {
		assert.Equal(op.LineNo, emu.LineNo())
		assert.Equal(op.Addr, emu.Cpu.PC)
		done, err := emu.Tick()
		assert.NoError(err, program[op.LineNo-1])
		assert.Equal(op.Words[0] == "halt", done, program[op.LineNo-1])
	}

	assert.Equal(byte(0), emu.Cpu.A)
	assert.True(emu.Cpu.Zero)

	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
	assert.Equal(4, emu.Cpu.Ticks)
	assert.Equal(0, emu.LineNo())
}

func TestEmulator_Run(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = assemble(t, emu, []string{
		"inc b",
		"inc b",
		"inc b",
		"halt",
	})

	assert.NoError(emu.Reset())
	ticks, err := emu.Run(context.Background(), 2)
	assert.NoError(err)
	assert.Equal(2, ticks)
	assert.Equal(byte(2), emu.Cpu.B)
	assert.False(emu.Cpu.Halted)

	ticks, err = emu.Run(context.Background(), 0)
	assert.NoError(err)
	assert.Equal(2, ticks)
	assert.Equal(byte(3), emu.Cpu.B)
	assert.True(emu.Cpu.Halted)

	ticks, err = emu.Run(context.Background(), 0)
	assert.NoError(err)
	assert.Equal(0, ticks)

	// Reset restores the program.
	assert.NoError(emu.Reset())
	assert.Equal(byte(0), emu.Cpu.B)
	assert.False(emu.Cpu.Halted)
}

func TestEmulator_RunCancel(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = assemble(t, emu, []string{
		"inc a",
		"halt",
	})
	assert.NoError(emu.Reset())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ticks, err := emu.Run(ctx, 0)
	assert.ErrorIs(err, context.Canceled)
	assert.Equal(0, ticks)
	assert.Equal(uint16(0), emu.Cpu.PC)
	assert.Equal(byte(0), emu.Cpu.A)
}

func TestEmulator_RuntimeError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = assemble(t, emu, []string{
		".org 0x200",
		"inc a",
		"db 0xdd",
		"halt",
	})
	assert.NoError(emu.Reset())

	ticks, err := emu.Run(context.Background(), 0)
	assert.Equal(1, ticks)
	assert.ErrorIs(err, cpu.ErrOpcodeUnknown)

	var re *ErrRuntime
	if assert.True(errors.As(err, &re)) {
		assert.Equal(uint16(0x201), re.Addr)
		assert.Equal(3, re.LineNo)
		assert.Equal("0201: line 3 illegal opcode 0xdd", re.Error())
	}
	assert.Equal(uint16(0x201), emu.Cpu.PC)

	// stop decodes, but does not execute
	emu.Program = assemble(t, emu, []string{"stop"})
	assert.NoError(emu.Reset())
	_, err = emu.Tick()
	assert.ErrorIs(err, cpu.ErrInstructionUnimplemented)
	assert.Equal(uint16(0), emu.Cpu.PC)
}

func TestEmulator_Image(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Image = []byte{0x3c, 0x3c, 0x87, 0x76} // inc a; inc a; add a,a; halt

	assert.NoError(emu.Reset())
	assert.Equal(uint16(ENTRY), emu.Cpu.PC)
	sum := emu.Ram.Checksum()

	ticks, err := emu.Run(context.Background(), 0)
	assert.NoError(err)
	assert.Equal(4, ticks)
	assert.Equal(byte(4), emu.Cpu.A)
	assert.Equal(uint16(ENTRY+4), emu.Cpu.PC)
	assert.Equal(sum, emu.Ram.Checksum())

	emu.Image = make([]byte, 0x10001)
	assert.Error(emu.Reset())

	emu.Origin = 0x8000
	emu.Image = []byte{0x34, 0x76} // inc (hl); halt
	assert.NoError(emu.Reset())
	emu.Cpu.SetHL(0xc000)
	_, err = emu.Run(context.Background(), 0)
	assert.NoError(err)
	assert.Equal(byte(1), emu.Ram.Data[0xc000])
	assert.NotEqual(sum, emu.Ram.Checksum())
}
