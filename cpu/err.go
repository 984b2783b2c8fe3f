package cpu

import (
	"errors"

	"github.com/ezrec/lr35902/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted = errors.New(f("halted"))

	// Instruction errors
	ErrOpcodeUnknown            = errors.New(f("opcode unknown"))
	ErrInstructionUnimplemented = errors.New(f("instruction unimplemented"))
	ErrTargetInvalid            = errors.New(f("target invalid"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrOrgSyntax          = errors.New(f(".org syntax"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeMissing      = errors.New(f("opcode missing"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
	ErrValueRange         = errors.New(f("value out of range"))
)

// ErrOpcode is an opcode byte with no decode table entry.
type ErrOpcode byte

func (eo ErrOpcode) Error() string {
	if eo.Illegal() {
		return f("illegal opcode 0x%02x", byte(eo))
	}
	return f("unknown opcode 0x%02x", byte(eo))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	if err == ErrOpcodeUnknown {
		return true
	}
	_, ok = err.(ErrOpcode)
	return
}

// ErrUnimplemented is a decoded instruction the engine cannot execute.
type ErrUnimplemented Instruction

func (eu ErrUnimplemented) Error() string {
	return f("%v unimplemented", Instruction(eu).String())
}

func (eu ErrUnimplemented) Is(err error) (ok bool) {
	if err == ErrInstructionUnimplemented {
		return true
	}
	_, ok = err.(ErrUnimplemented)
	return
}

// ErrInstruction attaches the failing instruction to an execution error.
type ErrInstruction Instruction

func (ei ErrInstruction) Error() string {
	return f("instruction %v", Instruction(ei).String())
}

func (ei ErrInstruction) Is(err error) (ok bool) {
	_, ok = err.(ErrInstruction)
	return
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseCharacter string

func (err ErrParseCharacter) Error() string {
	return f("'%v' is not a character", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
