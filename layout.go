package cfb

import "go.uber.org/zap"

// layout is the computed sector-count plan produced by LayoutPlanner
// (spec §4.3), from which the Writer derives every offset it emits.
type layout struct {
	miniSize int // mini-sectors needed for all mini-resident streams
	fatSize  int // sectors occupied by all FAT-resident streams
	dirCnt   int // directory sectors
	miniCnt  int // FAT sectors occupied by the mini-stream itself
	mfatCnt  int // MiniFAT allocation sectors
	fatBase  int // sectors outside the DIFAT and FAT regions
	fatCnt   int // FAT sectors
	difatCnt int // DIFAT overflow sectors
}

// planLayout computes sector counts and the FAT self-reference growth loop
// of spec §4.3, given the number of directory entries and their sizes.
func planLayout(entries []*Entry, logger *zap.Logger) *layout {
	l := &layout{}

	for _, e := range entries {
		if e.Type != Stream {
			continue
		}
		size := int(e.Size)
		switch {
		case size > 0 && uint32(size) < miniStreamCutoff:
			l.miniSize += divCeil(size, miniSectorLen)
		case uint32(size) >= miniStreamCutoff:
			l.fatSize += divCeil(size, sectorLenV3)
		}
	}

	l.dirCnt = divCeil(len(entries), 4)
	l.miniCnt = divCeil(l.miniSize, 8)
	l.mfatCnt = divCeil(l.miniSize, 128)
	l.fatBase = l.miniCnt + l.fatSize + l.dirCnt + l.mfatCnt

	l.fatCnt = divCeil(l.fatBase, 128)
	l.difatCnt = difatOverflowCount(l.fatCnt)

	for divCeil(l.fatBase+l.fatCnt+l.difatCnt, 128) > l.fatCnt {
		l.fatCnt++
		l.difatCnt = difatOverflowCount(l.fatCnt)
	}

	if logger != nil {
		logger.Debug("layout converged",
			zap.Int("fat_cnt", l.fatCnt),
			zap.Int("difat_cnt", l.difatCnt),
			zap.Int("mini_size", l.miniSize),
			zap.Int("fat_size", l.fatSize),
		)
	}

	return l
}

func difatOverflowCount(fatCnt int) int {
	if fatCnt <= difatEntriesInHeader {
		return 0
	}
	return divCeil(fatCnt-difatEntriesInHeader, 127)
}

// totalSectors is the sector count of the whole file body (everything
// after the 512-byte header), per spec §8 scenario 3.
func (l *layout) totalSectors() int {
	return l.difatCnt + l.fatCnt + l.mfatCnt + l.dirCnt + l.fatSize + l.miniCnt
}

// rootStart is the absolute sector index at which the mini-stream (the
// root entry's content) begins.
func (l *layout) rootStart() int32 {
	return int32(l.difatCnt + l.fatCnt + l.mfatCnt + l.dirCnt + l.fatSize + 1)
}

// assignStarts assigns each stream's Start sector and the root's Size,
// per spec §4.3's closing paragraph. FAT-resident streams are placed after
// the directory region; mini-resident streams are placed within the mini-
// stream itself, addressed by MiniFAT-relative index.
func (l *layout) assignStarts(entries []*Entry) {
	entries[0].Size = uint32(l.miniSize) << 6
	entries[0].Start = l.rootStart()

	fatCursor := int32(l.difatCnt + l.fatCnt + l.mfatCnt + l.dirCnt)
	miniCursor := int32(0)

	for _, e := range entries {
		if e.Type != Stream || e.Size == 0 {
			continue
		}
		if e.Size >= miniStreamCutoff {
			e.Start = fatCursor
			fatCursor += int32(divCeil(int(e.Size), sectorLenV3))
		} else {
			e.Start = miniCursor
			miniCursor += int32(divCeil(int(e.Size), miniSectorLen))
		}
	}
}
