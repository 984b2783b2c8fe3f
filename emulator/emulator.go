// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/lr35902/bus"
	"github.com/ezrec/lr35902/cpu"
	"github.com/ezrec/lr35902/internal"
)

const (
	ENTRY = 0x0100 // Default origin of a binary image, and its entry point.
)

var _emulator_defines = map[string]string{
	"ENTRY": fmt.Sprintf("%#x", ENTRY),
}

// Emulator state. CPU + RAM + program listing.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Ram    bus.Ram // Flat memory the CPU executes from.
	Image  []byte  // Binary image, loaded at Origin on reset.
	Origin uint16  // Load address of Image.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Program: &cpu.Program{},
		Origin:  ENTRY,
	}

	emu.Cpu = cpu.NewCpu(&emu.Ram)

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		bus.Defines(),
	)
}

// Reset clears memory, loads the image and the program, and resets the CPU.
//
// Execution starts at the first assembled opcode, or at Origin when there
// is no program.
func (emu *Emulator) Reset() (err error) {
	emu.Ram.Reset()

	if len(emu.Image) > 0 {
		err = emu.Ram.Load(emu.Origin, emu.Image)
		if err != nil {
			return
		}
	}

	pc := emu.Origin
	if emu.Program != nil && len(emu.Program.Opcodes) > 0 {
		emu.Program.Load(&emu.Ram)
		pc = emu.Program.Entry()
	}

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset(pc)

	if emu.Verbose {
		log.Printf("emulator: reset, %d bytes image, ram %016x", len(emu.Image), emu.Ram.Checksum())
	}

	return
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	dbg := emu.Program.Debug(emu.Cpu.PC)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single instruction of the emulator. done is set once the
// CPU has halted.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	addr := emu.Cpu.PC
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Addr: addr, LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Step()
	if errors.Is(err, cpu.ErrHalted) {
		err = nil
		done = true
		return
	}
	if err != nil {
		return
	}

	done = emu.Cpu.Halted

	return
}

// Run ticks the emulator until the CPU halts, an error occurs, or limit
// instructions have executed. A limit of 0 runs without limit.
//
// The context is checked between instructions; on cancellation the
// emulator state is left intact and ctx.Err() is returned.
func (emu *Emulator) Run(ctx context.Context, limit int) (ticks int, err error) {
	start := emu.Cpu.Ticks
	defer func() {
		ticks = emu.Cpu.Ticks - start
	}()

	for limit == 0 || emu.Cpu.Ticks-start < limit {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		default:
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}

	return
}
