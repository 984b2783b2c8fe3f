package cpu

// AluFunc is an 8-bit arithmetic or logic operation.
//
// a is the accumulator (or the single operand of a unary operation), b is
// the right hand operand, and in the incoming flags. The result and the
// complete outgoing flags are returned; nothing else is touched.
type AluFunc func(a, b byte, in Flags) (result byte, out Flags)

// alu selects the AluFunc for an operation, or nil if the operation is not
// an arithmetic/logic operation.
func alu(op Operation) (fn AluFunc) {
	switch op {
	case OP_ADD:
		fn = Add
	case OP_ADC:
		fn = Adc
	case OP_SUB:
		fn = Sub
	case OP_SBC:
		fn = Sbc
	case OP_AND:
		fn = And
	case OP_XOR:
		fn = Xor
	case OP_OR:
		fn = Or
	case OP_CP:
		fn = Cp
	case OP_INC:
		fn = Inc
	case OP_DEC:
		fn = Dec
	case OP_DAA:
		fn = Daa
	case OP_CPL:
		fn = Cpl
	case OP_SCF:
		fn = Scf
	case OP_CCF:
		fn = Ccf
	}
	return
}

// Add adds b to a.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func Add(a, b byte, in Flags) (result byte, out Flags) {
	result = a + b
	out = Flags{
		Zero:      result == 0,
		HalfCarry: (a&0xf)+(b&0xf) > 0xf,
		Carry:     result < a,
	}
	return
}

// Adc adds b plus the incoming carry to a.
//
// The carry is folded into b first, and the half carry is computed against
// that folded value: with b = 0xff and carry set, the folded operand wraps
// to 0x00, Carry is set by the wrap, and no half carry is reported.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3 of a + (b + carry).
//	C - Set if either addition carried from bit 7.
func Adc(a, b byte, in Flags) (result byte, out Flags) {
	var carry byte
	if in.Carry {
		carry = 1
	}

	folded := b + carry
	first := folded < b
	result = a + folded
	second := result < a

	out = Flags{
		Zero:      result == 0,
		HalfCarry: (a&0xf)+(folded&0xf) > 0xf,
		Carry:     first || second,
	}
	return
}

// Sub subtracts b from a.
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow (b > a).
func Sub(a, b byte, in Flags) (result byte, out Flags) {
	result = a - b
	out = Flags{
		Zero:      result == 0,
		Subtract:  true,
		HalfCarry: (a & 0xf) < (b & 0xf),
		Carry:     a < b,
	}
	return
}

// Sbc subtracts b plus the incoming carry from a, folding the carry into b
// first in the same way as Adc.
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4 of a - (b + carry).
//	C - Set if the fold wrapped, or on borrow.
func Sbc(a, b byte, in Flags) (result byte, out Flags) {
	var carry byte
	if in.Carry {
		carry = 1
	}

	folded := b + carry
	first := folded < b
	result = a - folded
	second := a < folded

	out = Flags{
		Zero:      result == 0,
		Subtract:  true,
		HalfCarry: (a & 0xf) < (folded & 0xf),
		Carry:     first || second,
	}
	return
}

// And sets H, and Z on a zero result.
func And(a, b byte, in Flags) (result byte, out Flags) {
	result = a & b
	out = Flags{Zero: result == 0, HalfCarry: true}
	return
}

func Xor(a, b byte, in Flags) (result byte, out Flags) {
	result = a ^ b
	out = Flags{Zero: result == 0}
	return
}

func Or(a, b byte, in Flags) (result byte, out Flags) {
	result = a | b
	out = Flags{Zero: result == 0}
	return
}

// Cp compares b against a. The flags are those of Sub; the result is a,
// unchanged.
func Cp(a, b byte, in Flags) (result byte, out Flags) {
	_, out = Sub(a, b, in)
	result = a
	return
}

// Inc increments a. b is ignored.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func Inc(a, b byte, in Flags) (result byte, out Flags) {
	result = a + 1
	out = Flags{
		Zero:      result == 0,
		HalfCarry: (a & 0xf) == 0xf,
		Carry:     in.Carry,
	}
	return
}

// Dec decrements a. b is ignored.
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func Dec(a, b byte, in Flags) (result byte, out Flags) {
	result = a - 1
	out = Flags{
		Zero:      result == 0,
		Subtract:  true,
		HalfCarry: (a & 0xf) == 0,
		Carry:     in.Carry,
	}
	return
}

// Daa adjusts a to packed BCD after an addition or subtraction, using N,
// H and C left by that operation.
//
//	Z - Set if result is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set if the adjustment carried, otherwise not affected.
func Daa(a, b byte, in Flags) (result byte, out Flags) {
	result = a
	out = Flags{Subtract: in.Subtract, Carry: in.Carry}

	if !in.Subtract {
		if in.Carry || a > 0x99 {
			result += 0x60
			out.Carry = true
		}
		if in.HalfCarry || (a&0xf) > 0x9 {
			result += 0x06
		}
	} else {
		if in.Carry {
			result -= 0x60
		}
		if in.HalfCarry {
			result -= 0x06
		}
	}

	out.Zero = result == 0
	return
}

// Cpl complements a, setting N and H.
func Cpl(a, b byte, in Flags) (result byte, out Flags) {
	result = ^a
	out = Flags{Zero: in.Zero, Subtract: true, HalfCarry: true, Carry: in.Carry}
	return
}

// Scf sets the carry flag.
func Scf(a, b byte, in Flags) (result byte, out Flags) {
	result = a
	out = Flags{Zero: in.Zero, Carry: true}
	return
}

// Ccf complements the carry flag.
func Ccf(a, b byte, in Flags) (result byte, out Flags) {
	result = a
	out = Flags{Zero: in.Zero, Carry: !in.Carry}
	return
}
