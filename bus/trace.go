package bus

import (
	"fmt"
)

// Access is a single recorded bus transaction.
type Access struct {
	Addr  uint16
	Value byte
	Write bool
}

func (acc Access) String() string {
	dir := "rd"
	if acc.Write {
		dir = "wr"
	}
	return fmt.Sprintf("%v %04x %02x", dir, acc.Addr, acc.Value)
}

// Trace records every access made through it to the wrapped Bus.
type Trace struct {
	Bus Bus      // Bus receiving the accesses.
	Log []Access // Accesses, in order.
}

var _ Bus = (*Trace)(nil)

// Read reads from the wrapped bus and records the access.
func (tr *Trace) Read(addr uint16) (value byte) {
	value = tr.Bus.Read(addr)
	tr.Log = append(tr.Log, Access{Addr: addr, Value: value})
	return
}

// Write writes to the wrapped bus and records the access.
func (tr *Trace) Write(addr uint16, value byte) {
	tr.Bus.Write(addr, value)
	tr.Log = append(tr.Log, Access{Addr: addr, Value: value, Write: true})
}

// Writes returns only the recorded writes.
func (tr *Trace) Writes() (writes []Access) {
	for _, acc := range tr.Log {
		if acc.Write {
			writes = append(writes, acc)
		}
	}
	return
}

// Reset forgets the recorded accesses.
func (tr *Trace) Reset() {
	if len(tr.Log) > 0 {
		tr.Log = tr.Log[:0]
	}
}
