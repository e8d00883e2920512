package cfb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirname(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"/", "/"},
		{"/foo", "/"},
		{"/foo/", "/"},
		{"/foo/bar", "/foo/"},
		{"/foo/bar/baz///", "/foo/bar/"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, dirname(c.in), "dirname(%q)", c.in)
	}
}

func TestFilename(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"/", ""},
		{"/foo", "foo"},
		{"/foo/", "foo"},
		{"/foo/bar/baz///", "baz"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, filename(c.in), "filename(%q)", c.in)
	}
}

func TestNamecmp(t *testing.T) {
	require.Less(t, namecmp("/a", "/bb"), 0, "shorter segment sorts first")
	require.Greater(t, namecmp("/bb", "/a"), 0)
	require.Equal(t, 0, namecmp("/a/b", "/a/b"))
	require.Less(t, namecmp("/a", "/a/b"), 0, "parent sorts before child with equal leading segment")
}

func TestValidateName(t *testing.T) {
	require.NoError(t, ValidateName("sheet1.xml"))
	require.Error(t, ValidateName("a/b"))
	require.Error(t, ValidateName("a:b"))
	require.Error(t, ValidateName("a\\b"))
	require.Error(t, ValidateName("!bang"))

	long := make([]byte, 40)
	for i := range long {
		long[i] = 'x'
	}
	require.Error(t, ValidateName(string(long)))
}

func TestBuildFullPaths(t *testing.T) {
	root := newEntry(rootEntryName, Root, [16]byte{}, time.Time{})
	root.Child = 1

	child := newEntry("child.xml", Stream, [16]byte{}, time.Time{})
	child.Right = 2

	sibling := newEntry("sibling.xml", Stream, [16]byte{}, time.Time{})

	entries := []*Entry{root, child, sibling}
	paths := buildFullPaths(entries)

	assert.Equal(t, rootEntryName+"/", paths[0])
	assert.Equal(t, "/child.xml", paths[1])
	assert.Equal(t, "/sibling.xml", paths[2])
}
