package cfb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	buf := make([]byte, headerLen)
	writeHeader(buf, writeHeaderParams{
		difatCnt:   0,
		fatCnt:     1,
		mfatCnt:    1,
		dirStart:   2,
		mfatFirst:  1,
		difatFirst: endOfChain,
	})

	h, err := parseHeader(buf)
	require.NoError(t, err)

	assert.Equal(t, V3, h.Version)
	assert.Equal(t, uint32(1), h.NumFatSectors)
	assert.Equal(t, int32(2), h.FirstDirSector)
	assert.Equal(t, int32(1), h.FirstMinifatSector)
	assert.Equal(t, uint32(1), h.NumMinifatSectors)
	assert.Equal(t, endOfChain, h.FirstDifatSector)
	require.Len(t, h.InitialDifatEntries, 1)
	assert.Equal(t, int32(0), h.InitialDifatEntries[0])
}

func TestParseHeaderRejectsBadSignature(t *testing.T) {
	buf := make([]byte, headerLen)
	_, err := parseHeader(buf)
	require.Error(t, err)
	var cfbErr *Error
	require.ErrorAs(t, err, &cfbErr)
	assert.Equal(t, HeaderMismatch, cfbErr.Kind)
}

func TestParseHeaderRejectsZip(t *testing.T) {
	buf := make([]byte, headerLen)
	buf[0], buf[1] = 0x50, 0x4b
	_, err := parseHeader(buf)
	require.Error(t, err)
	var cfbErr *Error
	require.ErrorAs(t, err, &cfbErr)
	assert.Equal(t, UnsupportedFormat, cfbErr.Kind)
}
