package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlice(t *testing.T) {
	s := NewSlice[int](4)
	require.Equal(t, 0, s.Len())

	for i := 0; i < 10; i++ {
		s.Append(i)
	}
	require.Equal(t, 10, s.Len())
	assert.Equal(t, 7, s.Get(7))

	s.Set(7, 70)
	assert.Equal(t, 70, s.Get(7))

	*s.Ref(7) = 700
	assert.Equal(t, 700, s.Get(7))
	assert.Equal(t, 700, s.Items()[7])
}

func TestSliceClone(t *testing.T) {
	s := NewSlice[int](0)
	s.Append(1)
	s.Append(2)

	c := s.Clone()
	c.Set(0, 10)
	s.Set(1, 20)

	assert.Equal(t, 1, s.Get(0))
	assert.Equal(t, 10, c.Get(0))
	assert.Equal(t, 20, s.Get(1))
	assert.Equal(t, 2, c.Get(1))
}
