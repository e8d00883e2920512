package cfb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeSectorListWalksChain(t *testing.T) {
	const ssz = 512
	table := []int32{1, 2, endOfChain, freeSect}
	source := make([]byte, ssz*4)
	for i := 0; i < 3; i++ {
		source[i*ssz] = byte('A' + i)
	}

	chain, payload, err := makeSectorList(table, 0, source, ssz, 0)
	require.NoError(t, err)
	assert.Equal(t, []int32{0, 1, 2}, chain)
	assert.Equal(t, byte('A'), payload[0])
	assert.Equal(t, byte('B'), payload[ssz])
	assert.Equal(t, byte('C'), payload[2*ssz])
}

func TestMakeSectorListDetectsCycle(t *testing.T) {
	table := []int32{1, 0}
	source := make([]byte, 512*2)

	_, _, err := makeSectorList(table, 0, source, 512, 0)
	require.Error(t, err)
}

func TestMakeSectorListEnforcesMaxLen(t *testing.T) {
	table := []int32{1, 2, endOfChain}
	source := make([]byte, 512*3)

	_, _, err := makeSectorList(table, 0, source, 512, 2)
	require.Error(t, err)
}
