package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_PushPop(t *testing.T) {
	assert := assert.New(t)

	s := &Stack[BranchUnit]{}
	assert.True(s.Empty())
	assert.False(s.Full())

	assert.True(s.Push(BranchUnit{Nullify: true}))
	assert.True(s.Push(BranchUnit{Take: true, Target: 0x8000_0180}))
	assert.False(s.Empty())

	val, ok := s.Peek()
	assert.True(ok)
	assert.Equal(uint64(0x8000_0180), val.Target)
	assert.Equal(2, len(s.Data))

	val, ok = s.Pop()
	assert.True(ok)
	assert.True(val.Take)

	val, ok = s.Pop()
	assert.True(ok)
	assert.True(val.Nullify)

	val, ok = s.Pop()
	assert.False(ok)
	assert.Equal(BranchUnit{}, val)
}

func TestStack_Full(t *testing.T) {
	assert := assert.New(t)

	s := &Stack[int]{}
	for i := range STACK_LIMIT {
		assert.False(s.Full())
		assert.True(s.Push(i))
	}
	assert.True(s.Full())

	// The oldest entry is discarded.
	assert.False(s.Push(STACK_LIMIT))
	assert.Equal(STACK_LIMIT, len(s.Data))
	assert.Equal(1, s.Data[0])

	val, ok := s.Peek()
	assert.True(ok)
	assert.Equal(STACK_LIMIT, val)
}

func TestStack_Reset(t *testing.T) {
	assert := assert.New(t)

	s := &Stack[int]{}
	s.Reset()
	assert.True(s.Empty())

	s.Push(1)
	s.Push(2)
	s.Reset()
	assert.True(s.Empty())
	assert.Equal(0, len(s.Data))
}
