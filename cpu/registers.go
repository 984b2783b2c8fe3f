package cpu

import (
	"fmt"
)

// Flag bit positions in the F register. Bits 3..0 always read as zero.
const (
	FLAG_Z = byte(1 << 7) // Zero
	FLAG_N = byte(1 << 6) // Subtract
	FLAG_H = byte(1 << 5) // Half carry
	FLAG_C = byte(1 << 4) // Carry

	FLAG_MASK = FLAG_Z | FLAG_N | FLAG_H | FLAG_C
)

// Flags are the four condition flags of the F register.
type Flags struct {
	Zero      bool
	Subtract  bool
	HalfCarry bool
	Carry     bool
}

// FlagsFromByte unpacks an F register value. The low nibble is ignored.
func FlagsFromByte(value byte) Flags {
	return Flags{
		Zero:      (value & FLAG_Z) != 0,
		Subtract:  (value & FLAG_N) != 0,
		HalfCarry: (value & FLAG_H) != 0,
		Carry:     (value & FLAG_C) != 0,
	}
}

// Byte packs the flags into an F register value.
func (fl Flags) Byte() (value byte) {
	if fl.Zero {
		value |= FLAG_Z
	}
	if fl.Subtract {
		value |= FLAG_N
	}
	if fl.HalfCarry {
		value |= FLAG_H
	}
	if fl.Carry {
		value |= FLAG_C
	}
	return
}

// String returns the flags as "znhc", with '-' for each clear flag.
func (fl Flags) String() string {
	out := []byte("----")
	for n, set := range []bool{fl.Zero, fl.Subtract, fl.HalfCarry, fl.Carry} {
		if set {
			out[n] = "znhc"[n]
		}
	}
	return string(out)
}

// RegisterPair names a 16-bit view over two 8-bit registers.
type RegisterPair int

//go:generate go tool stringer -linecomment -type=RegisterPair
const (
	PAIR_AF = RegisterPair(0) // af
	PAIR_BC = RegisterPair(1) // bc
	PAIR_DE = RegisterPair(2) // de
	PAIR_HL = RegisterPair(3) // hl
)

// Registers is the 8-bit register file.
//
// F is not stored: the flags are kept once, as booleans, and F is packed
// from them on every read.
type Registers struct {
	A, B, C, D, E, H, L byte
	Flags
}

// F returns the packed flags register.
func (r *Registers) F() byte {
	return r.Flags.Byte()
}

// SetF unpacks value into the flags, dropping the low nibble.
func (r *Registers) SetF(value byte) {
	r.Flags = FlagsFromByte(value)
}

func (r *Registers) AF() uint16 { return uint16(r.A)<<8 | uint16(r.F()) }
func (r *Registers) BC() uint16 { return uint16(r.B)<<8 | uint16(r.C) }
func (r *Registers) DE() uint16 { return uint16(r.D)<<8 | uint16(r.E) }
func (r *Registers) HL() uint16 { return uint16(r.H)<<8 | uint16(r.L) }

func (r *Registers) SetAF(value uint16) { r.A = byte(value >> 8); r.SetF(byte(value)) }
func (r *Registers) SetBC(value uint16) { r.B = byte(value >> 8); r.C = byte(value) }
func (r *Registers) SetDE(value uint16) { r.D = byte(value >> 8); r.E = byte(value) }
func (r *Registers) SetHL(value uint16) { r.H = byte(value >> 8); r.L = byte(value) }

// Pair reads a register pair.
func (r *Registers) Pair(pair RegisterPair) (value uint16) {
	switch pair {
	case PAIR_AF:
		value = r.AF()
	case PAIR_BC:
		value = r.BC()
	case PAIR_DE:
		value = r.DE()
	case PAIR_HL:
		value = r.HL()
	default:
		panic("unknown register pair")
	}
	return
}

// SetPair writes a register pair.
func (r *Registers) SetPair(pair RegisterPair, value uint16) {
	switch pair {
	case PAIR_AF:
		r.SetAF(value)
	case PAIR_BC:
		r.SetBC(value)
	case PAIR_DE:
		r.SetDE(value)
	case PAIR_HL:
		r.SetHL(value)
	default:
		panic("unknown register pair")
	}
}

// reg returns a pointer to the 8-bit register named by target, or nil if
// the target is not a register.
func (r *Registers) reg(target Target) *byte {
	switch target {
	case TARGET_A:
		return &r.A
	case TARGET_B:
		return &r.B
	case TARGET_C:
		return &r.C
	case TARGET_D:
		return &r.D
	case TARGET_E:
		return &r.E
	case TARGET_H:
		return &r.H
	case TARGET_L:
		return &r.L
	}
	return nil
}

// Reg reads the 8-bit register named by target.
func (r *Registers) Reg(target Target) (value byte, ok bool) {
	ptr := r.reg(target)
	if ptr == nil {
		return
	}
	return *ptr, true
}

// SetReg writes the 8-bit register named by target.
func (r *Registers) SetReg(target Target, value byte) (ok bool) {
	ptr := r.reg(target)
	if ptr == nil {
		return
	}
	*ptr = value
	return true
}

func (r *Registers) String() string {
	return fmt.Sprintf("a:%02x f:%02x [%v] b:%02x c:%02x d:%02x e:%02x h:%02x l:%02x",
		r.A, r.F(), r.Flags, r.B, r.C, r.D, r.E, r.H, r.L)
}
