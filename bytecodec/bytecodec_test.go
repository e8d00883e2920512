package bytecodec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadShift(t *testing.T) {
	assert.Equal(t, int64(-31), ReadShift([]byte{0xE4, 0xFF, 0xFF, 0xFF}, 4, true))
	assert.Equal(t, int64(0xFFE4), ReadShift([]byte{0xE4, 0xFF}, 2, false))
	assert.Equal(t, int64(0x1234), ReadShift([]byte{0x34, 0x12}, 2, false))
}

func TestWriteShiftInt(t *testing.T) {
	assert.Equal(t, []byte{0x34, 0x12}, WriteShiftInt(2, 0x1234))
	assert.Equal(t, []byte{0xe1, 0xff, 0xff, 0xff}, WriteShiftInt(-4, -31))
}

func TestWriteShiftStringHex(t *testing.T) {
	got, err := WriteShiftString(4, "4080c1ff0120", FormHex)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x40, 0x80, 0xc1, 0xff}, got)
}

func TestStringRoundTripUTF16LE(t *testing.T) {
	for _, s := range []string{"abc", "Root Entry", "Sh33tJ5", ""} {
		encoded, err := WriteShiftString(64, s, FormUTF16LE)
		require.NoError(t, err)

		decoded, err := ReadShiftString(encoded, FormUTF16LE)
		require.NoError(t, err)
		assert.Equal(t, s, decoded)
	}
}

func TestGetTimeZero(t *testing.T) {
	buf := make([]byte, 8)
	_, ok := GetTime(buf)
	assert.False(t, ok)
}

func TestGetTimeRoundTrip(t *testing.T) {
	want := time.Date(2024, time.March, 2, 10, 30, 0, 0, time.UTC)
	ticks := uint64(want.Unix()+filetimeEpochOffsetSeconds) * 1e7
	buf := make([]byte, 8)
	WriteU32LE(buf, 0, uint32(ticks))
	WriteU32LE(buf, 4, uint32(ticks>>32))

	got, ok := GetTime(buf)
	require.True(t, ok)
	assert.True(t, want.Equal(got))
}

func TestPutZeroTime(t *testing.T) {
	buf := make([]byte, 8)
	for i := range buf {
		buf[i] = 0xFF
	}
	PutZeroTime(buf)
	_, ok := GetTime(buf)
	assert.False(t, ok)
}
