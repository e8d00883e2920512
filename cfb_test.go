package cfb

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddWriteParseRoundTrip(t *testing.T) {
	pairs := []struct {
		name    string
		content string
	}{
		{"hello.txt", "1234"},
		{"nested/world.txt", "abcdef"},
	}

	cf := New()
	for _, p := range pairs {
		require.NoError(t, cf.Add("/"+p.name, []byte(p.content)))
	}

	blob := cf.Write()

	parsed, err := Parse(bytes.NewReader(blob))
	require.NoError(t, err)

	paths := parsed.FullPaths()
	byPath := make(map[string]*Entry, len(paths))
	for i, p := range paths {
		byPath[p] = parsed.FileIndex()[i]
	}

	for _, p := range pairs {
		e, ok := byPath["/"+p.name]
		require.True(t, ok, "missing path %q", p.name)
		assert.Equal(t, p.content, string(e.Content))
	}
}

func TestSeedEntryAtIndexOne(t *testing.T) {
	cf := New()
	require.NoError(t, cf.Add("/hello.txt", []byte("1234")))

	entries := cf.FileIndex()
	require.Greater(t, len(entries), 1)
	assert.Equal(t, seedStreamName, entries[1].Name)

	blob := cf.Write()
	parsed, err := Parse(bytes.NewReader(blob))
	require.NoError(t, err)
	assert.Equal(t, seedStreamName, parsed.FileIndex()[1].Name)
}

func TestWriteTotalLength(t *testing.T) {
	cf := New()
	require.NoError(t, cf.Add("/hello.txt", []byte("1234")))
	require.NoError(t, cf.Add("/goodbye.txt", []byte(strings.Repeat("!", 7491))))

	blob := cf.Write()

	l := planLayout(cf.entries, nil)
	want := headerLen + l.totalSectors()*sectorLenV3
	assert.Equal(t, want, len(blob))
}

func TestLargeStreamRoundTrip(t *testing.T) {
	cf := New()
	content := strings.Repeat("!", 7491)
	require.NoError(t, cf.Add("/goodbye.txt", []byte(content)))

	blob := cf.Write()
	parsed, err := Parse(bytes.NewReader(blob))
	require.NoError(t, err)

	paths := parsed.FullPaths()
	for i, p := range paths {
		if p == "/goodbye.txt" {
			assert.Equal(t, content, string(parsed.FileIndex()[i].Content))
			return
		}
	}
	t.Fatal("goodbye.txt not found after round trip")
}

func TestParseTooSmall(t *testing.T) {
	_, err := Parse(bytes.NewReader(nil))
	require.Error(t, err)
	var cfbErr *Error
	require.ErrorAs(t, err, &cfbErr)
	assert.Equal(t, TooSmall, cfbErr.Kind)
}

func TestParseZipMagicIsUnsupported(t *testing.T) {
	zipHeader := append([]byte{0x50, 0x4b, 0x03, 0x04}, make([]byte, 508)...)
	_, err := Parse(bytes.NewReader(zipHeader))
	require.Error(t, err)
	var cfbErr *Error
	require.ErrorAs(t, err, &cfbErr)
	assert.Equal(t, UnsupportedFormat, cfbErr.Kind)
}
