package internal

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := map[string]int{"ram": 1}
	b := map[string]int{"rom": 2}

	got := maps.Collect(IterSeq2Concat(maps.All(a), maps.All(b)))
	assert.Equal(map[string]int{"ram": 1, "rom": 2}, got)

	count := 0
	for range IterSeq2Concat(maps.All(a), maps.All(b)) {
		count++
		break
	}
	assert.Equal(1, count)
}

func TestIterSeq2Prefix(t *testing.T) {
	assert := assert.New(t)

	got := maps.Collect(IterSeq2Prefix("MI_", maps.All(map[string]int{"MODE": 0, "INTR": 8})))
	assert.Equal(map[string]int{"MI_MODE": 0, "MI_INTR": 8}, got)
}

func TestOption(t *testing.T) {
	assert := assert.New(t)

	var opt Option[uint32]
	assert.False(opt.Pending())

	_, ok := opt.Take()
	assert.False(ok)

	opt.Set(0x1234)
	opt.Set(0x5678)
	assert.True(opt.Pending())

	val, ok := opt.Take()
	assert.True(ok)
	assert.Equal(uint32(0x5678), val)

	_, ok = opt.Take()
	assert.False(ok)
}
