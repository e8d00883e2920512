package cfb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMiniStream(t *testing.T) {
	miniFAT := []int32{1, endOfChain}
	payload := make([]byte, miniSectorLen*2)
	copy(payload[0:], []byte("hello world this is"))
	copy(payload[miniSectorLen:], []byte(" mini sector data!!!"))

	got, err := extractMiniStream(payload, miniFAT, 0, 40)
	require.NoError(t, err)
	assert.Len(t, got, 40)
}

func TestExtractMiniStreamOutOfRange(t *testing.T) {
	miniFAT := []int32{endOfChain}
	payload := make([]byte, miniSectorLen)

	_, err := extractMiniStream(payload, miniFAT, 5, 10)
	require.Error(t, err)
}

func TestParseMiniFATBytesRoundTrip(t *testing.T) {
	table := []int32{1, endOfChain, freeSect}
	raw := parseMiniFATBytes(table)
	got := parseMiniFATTable(raw)
	assert.Equal(t, table, got)
}
