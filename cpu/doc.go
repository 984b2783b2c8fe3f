// Package cpu implements the instruction execution core and assembler for
// the LR35902, the 8-bit processor of classic handheld game hardware.
//
// The CPU consists of seven 8-bit registers (a, b, c, d, e, h, l), the flags
// register f packed from four condition flags, a 16-bit program counter and
// stack pointer, and a bus addressing 64KiB. Each Step fetches one opcode,
// decodes it into an Instruction (an Operation and the Target its operand
// comes from), executes it, and commits the next program counter.
//
// The decoder covers the 8-bit arithmetic and logic family, increment and
// decrement, the accumulator adjust instructions, nop, halt and stop.
//
// The assembler provides a small assembly language for that instruction set,
// supporting macros, labels, equates, and compile-time expression evaluation.
package cpu
