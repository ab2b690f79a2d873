package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexRing_WrapsAround(t *testing.T) {
	r := newIndexRing(3)

	r.push(2)
	r.push(0)
	require.Equal(t, 2, r.front())
	require.Equal(t, 2, r.pop())

	r.push(1)
	r.push(2)
	assert.Equal(t, 3, r.len())

	var got []int
	for r.len() > 0 {
		got = append(got, r.pop())
	}
	assert.Equal(t, []int{0, 1, 2}, got)
}

func TestIndexRing_Overflow_Panics(t *testing.T) {
	r := newIndexRing(1)
	r.push(0)
	assert.Panics(t, func() { r.push(0) })
}
