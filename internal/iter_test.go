package internal

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := map[string]string{"RAM_SIZE": "0x10000"}
	b := map[string]string{"FLAG_Z": "0x80", "FLAG_C": "0x10"}

	all := maps.Collect(IterSeq2Concat(maps.All(a), maps.All(b)))
	assert.Equal(map[string]string{
		"RAM_SIZE": "0x10000",
		"FLAG_Z":   "0x80",
		"FLAG_C":   "0x10",
	}, all)

	var keys []string
	for key := range IterSeq2Concat(maps.All(a), maps.All(b)) {
		keys = append(keys, key)
		break
	}
	assert.Equal([]string{"RAM_SIZE"}, keys)

	assert.Empty(slices.Collect(maps.Keys(maps.Collect(IterSeq2Concat[string, string]()))))
}
