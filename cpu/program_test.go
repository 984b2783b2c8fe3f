package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/lr35902/bus"
)

func testProgram() *Program {
	return &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Addr: 0x100, Words: []string{"add", "a", "b"}, Bytes: []byte{0x80}},
			{LineNo: 2, Addr: 0x101, Words: []string{"sub", "0x12"}, Bytes: []byte{0xd6, 0x12}},
			{LineNo: 4, Addr: 0x103, Words: []string{"halt"}, Bytes: []byte{0x76}},
		},
	}
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	dbg := prog.Debug(0x100)
	if assert.NotNil(dbg.Opcode) {
		assert.Equal(1, dbg.LineNo)
		assert.Equal(0, dbg.Index)
	}

	dbg = prog.Debug(0x102)
	if assert.NotNil(dbg.Opcode) {
		assert.Equal(2, dbg.LineNo)
		assert.Equal(1, dbg.Index)
	}

	dbg = prog.Debug(0x103)
	if assert.NotNil(dbg.Opcode) {
		assert.Equal(4, dbg.LineNo)
		assert.Equal(0, dbg.Index)
	}
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	for _, addr := range []uint16{0x0000, 0x00ff, 0x0104, 0xffff} {
		dbg := prog.Debug(addr)
		assert.Nil(dbg.Opcode, "%04x", addr)
		assert.Equal(0, dbg.Index)
	}

	empty := &Program{}
	assert.Nil(empty.Debug(0).Opcode)
}

func TestProgram_Debug_Wrap(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Addr: 0xffff, Words: []string{"cp", "0x01"}, Bytes: []byte{0xfe, 0x01}},
		},
	}

	dbg := prog.Debug(0x0000)
	if assert.NotNil(dbg.Opcode) {
		assert.Equal(1, dbg.Index)
	}
}

func TestProgram_Load(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()
	assert.Equal(uint16(0x100), prog.Entry())

	ram := &bus.Ram{}
	trace := &bus.Trace{Bus: ram}
	prog.Load(trace)

	assert.Equal([]bus.Access{
		{Addr: 0x100, Value: 0x80, Write: true},
		{Addr: 0x101, Value: 0xd6, Write: true},
		{Addr: 0x102, Value: 0x12, Write: true},
		{Addr: 0x103, Value: 0x76, Write: true},
	}, trace.Log)

	count := 0
	for range prog.Bytes() {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(2, count)
}
