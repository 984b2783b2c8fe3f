package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrace(t *testing.T) {
	assert := assert.New(t)

	ram := &Ram{}
	ram.Write(0x0001, 0x23)

	tr := &Trace{Bus: ram}
	assert.Equal(byte(0x23), tr.Read(0x0001))
	tr.Write(0xc000, 0x42)

	assert.Equal([]Access{
		{Addr: 0x0001, Value: 0x23},
		{Addr: 0xc000, Value: 0x42, Write: true},
	}, tr.Log)
	assert.Equal([]Access{{Addr: 0xc000, Value: 0x42, Write: true}}, tr.Writes())
	assert.Equal(byte(0x42), ram.Read(0xc000))

	assert.Equal("rd 0001 23", tr.Log[0].String())
	assert.Equal("wr c000 42", tr.Log[1].String())

	tr.Reset()
	assert.Empty(tr.Log)
	assert.Empty(tr.Writes())
}
