package cfb

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPlanLayoutSmallFile(t *testing.T) {
	entries, paths := newTestModel()
	entries, _ = rebuild(entries, paths, true, nil)

	l := planLayout(entries, nil)
	want := l.difatCnt + l.fatCnt + l.mfatCnt + l.dirCnt + l.fatSize + divCeil(l.miniSize, 8)
	assert.Equal(t, want, l.totalSectors())
}

func TestDifatOverflowCount(t *testing.T) {
	assert.Equal(t, 0, difatOverflowCount(109))
	assert.Equal(t, 1, difatOverflowCount(110))
	assert.Equal(t, 1, difatOverflowCount(236))
	assert.Equal(t, 2, difatOverflowCount(237))
}

func TestAssignStartsOrdersStreamsByKind(t *testing.T) {
	root := newEntry(rootEntryName, Root, uuid.Nil, time.Now().UTC())
	small := newEntry("small.bin", Stream, uuid.Nil, time.Now().UTC())
	small.Content = make([]byte, 100)
	small.Size = 100
	big := newEntry("big.bin", Stream, uuid.Nil, time.Now().UTC())
	big.Content = make([]byte, 8192)
	big.Size = 8192

	entries := []*Entry{root, small, big}
	l := planLayout(entries, nil)
	l.assignStarts(entries)

	assert.GreaterOrEqual(t, big.Start, int32(0))
	assert.GreaterOrEqual(t, small.Start, int32(0))
	assert.Equal(t, l.rootStart(), root.Start)
}
