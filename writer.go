package cfb

import (
	"unicode/utf16"

	"go.uber.org/zap"

	"github.com/RIPAGlobal/simple-cfb/bytecodec"
)

// write serializes entries into a complete CFB blob, per spec §4.4. It
// mutates each stream's Start (and the root's Start/Size) via layout, so
// callers that inspect entries after Write see the finalized sector plan.
func write(entries []*Entry, logger *zap.Logger) []byte {
	l := planLayout(entries, logger)
	l.assignStarts(entries)

	// assignStarts stores rootStart(), which carries the spec's +1 layout
	// quirk (§4.3); the root's actual physical sector, and the value
	// written into its directory entry, is one less.
	entries[0].Start = int32(l.difatCnt + l.fatCnt + l.mfatCnt + l.dirCnt + l.fatSize)

	difatFirstRegion := 0
	fatFirstRegion := l.difatCnt
	mfatFirstRegion := l.difatCnt + l.fatCnt
	dirFirstRegion := l.difatCnt + l.fatCnt + l.mfatCnt
	fatStreamFirstRegion := dirFirstRegion + l.dirCnt
	miniStreamFirstRegion := fatStreamFirstRegion + l.fatSize // == l.rootStart() - 1

	total := l.totalSectors()
	buf := make([]byte, headerLen+total*sectorLenV3)
	body := buf[headerLen:]

	fat := make([]int32, l.fatCnt*128)
	for i := range fat {
		fat[i] = freeSect
	}
	for i := 0; i < l.difatCnt; i++ {
		fat[difatFirstRegion+i] = difSect
	}
	for i := 0; i < l.fatCnt; i++ {
		fat[fatFirstRegion+i] = fatSect
	}
	chainInto(fat, mfatFirstRegion, l.mfatCnt)
	chainInto(fat, dirFirstRegion, l.dirCnt)

	for _, e := range entries {
		if e.Type != Stream || e.Size == 0 || e.Size < miniStreamCutoff {
			continue
		}
		n := divCeil(int(e.Size), sectorLenV3)
		chainInto(fat, int(e.Start), n)
	}
	chainInto(fat, miniStreamFirstRegion, l.miniCnt)

	miniFAT := make([]int32, l.mfatCnt*128)
	for i := range miniFAT {
		miniFAT[i] = freeSect
	}
	for _, e := range entries {
		if e.Type != Stream || e.Size == 0 || e.Size >= miniStreamCutoff {
			continue
		}
		n := divCeil(int(e.Size), miniSectorLen)
		chainInto(miniFAT, int(e.Start), n)
	}

	var difatFirst int32 = endOfChain
	if l.difatCnt > 0 {
		difatFirst = 0
	}
	var mfatFirst int32 = endOfChain
	if l.mfatCnt > 0 {
		mfatFirst = int32(mfatFirstRegion)
	}

	writeHeader(buf[:headerLen], writeHeaderParams{
		difatCnt:   l.difatCnt,
		fatCnt:     l.fatCnt,
		mfatCnt:    l.mfatCnt,
		dirStart:   int32(dirFirstRegion),
		mfatFirst:  mfatFirst,
		difatFirst: difatFirst,
	})

	writeDifatSectors(body, l, difatFirstRegion, fatFirstRegion)
	writeTable(body, fat, difatFirstRegion+l.difatCnt)
	writeTable(body, miniFAT, mfatFirstRegion)
	writeDirectorySectors(body, entries, dirFirstRegion, l.dirCnt)

	for _, e := range entries {
		if e.Type != Stream || e.Size == 0 || e.Size < miniStreamCutoff {
			continue
		}
		off := int(e.Start) * sectorLenV3
		copy(body[off:], e.Content)
	}

	miniStreamBytes := buildMiniStream(entries, l.miniSize)
	copy(body[miniStreamFirstRegion*sectorLenV3:], miniStreamBytes)

	return buf
}

// chainInto writes a sequential FAT (or MiniFAT) chain of n units starting
// at physical index start into table: start+1, start+2, ..., endOfChain.
func chainInto(table []int32, start int, n int) {
	for i := 0; i < n; i++ {
		idx := start + i
		if i == n-1 {
			table[idx] = endOfChain
		} else {
			table[idx] = int32(idx + 1)
		}
	}
}

// writeTable serializes a FAT or MiniFAT entry table into consecutive
// 512-byte sectors starting at sector index startSector.
func writeTable(body []byte, table []int32, startSector int) {
	off := startSector * sectorLenV3
	for i, v := range table {
		bytecodec.WriteI32LE(body, off+i*4, v)
	}
}

// writeDifatSectors emits the DIFAT overflow sectors (spec §4.4 step 2):
// each holds the next 127 FAT sector references after the 109 embedded in
// the header, plus a trailing link to the next overflow sector, or
// endOfChain for the last one.
func writeDifatSectors(body []byte, l *layout, difatStart, fatStart int) {
	for s := 0; s < l.difatCnt; s++ {
		off := (difatStart + s) * sectorLenV3
		for j := 0; j < 127; j++ {
			ref := difatEntriesInHeader + s*127 + j
			if ref < l.fatCnt {
				bytecodec.WriteI32LE(body, off+j*4, int32(fatStart+ref))
			} else {
				bytecodec.WriteI32LE(body, off+j*4, freeSect)
			}
		}
		next := endOfChain
		if s+1 < l.difatCnt {
			next = int32(difatStart + s + 1)
		}
		bytecodec.WriteI32LE(body, off+127*4, next)
	}
}

// writeDirectorySectors emits the directory entries, padded with empty
// (all-zero) slots up to a whole number of sectors.
func writeDirectorySectors(body []byte, entries []*Entry, dirStart, dirCnt int) {
	off := dirStart * sectorLenV3
	slots := dirCnt * dirEntriesPerSectorV3
	for i := 0; i < slots; i++ {
		entryOff := off + i*dirEntryLen
		if i < len(entries) {
			writeOneDirEntry(body[entryOff:entryOff+dirEntryLen], entries[i])
		} else {
			// Unallocated padding slot: name/type/clsid/times/size stay
			// zero, but L/R/C must read back as NOSTREAM (spec 4.4 §6).
			bytecodec.WriteI32LE(body, entryOff+68, noStream)
			bytecodec.WriteI32LE(body, entryOff+72, noStream)
			bytecodec.WriteI32LE(body, entryOff+76, noStream)
		}
	}
}

func writeOneDirEntry(buf []byte, e *Entry) {
	if e.Name != "" {
		nameBytes := (len(utf16.Encode([]rune(e.Name))) + 1) * 2
		if nameBytes > 64 {
			nameBytes = 64
		}
		encoded, _ := bytecodec.WriteShiftString(nameBytes, e.Name, bytecodec.FormUTF16LE)
		copy(buf[0:64], encoded)
		bytecodec.WriteU16LE(buf, 64, uint16(nameBytes))
	}

	buf[66] = e.Type.AsByte()
	buf[67] = e.Color.AsByte()
	bytecodec.WriteI32LE(buf, 68, e.Left)
	bytecodec.WriteI32LE(buf, 72, e.Right)
	bytecodec.WriteI32LE(buf, 76, e.Child)
	copy(buf[80:96], bytecodec.WriteRaw(16, e.CLSID[:]))
	bytecodec.WriteU32LE(buf, 96, e.State)
	bytecodec.PutZeroTime(buf[100:108])
	bytecodec.PutZeroTime(buf[108:116])
	bytecodec.WriteI32LE(buf, 116, e.Start)
	bytecodec.WriteU32LE(buf, 120, e.Size)
}

// buildMiniStream concatenates every mini-resident stream's content, each
// padded to a 64-byte boundary, in entries' iteration order — the same
// order layout.assignStarts used to assign their mini-relative Start
// indices. miniSize is the number of mini-sectors the layout reserved;
// the result is further padded to a whole number of 512-byte sectors by
// the caller's zero-initialized buffer.
func buildMiniStream(entries []*Entry, miniSize int) []byte {
	out := make([]byte, 0, miniSize*miniSectorLen)
	for _, e := range entries {
		if e.Type != Stream || e.Size == 0 || e.Size >= miniStreamCutoff {
			continue
		}
		out = append(out, e.Content...)
		if pad := len(e.Content) % miniSectorLen; pad != 0 {
			out = append(out, make([]byte, miniSectorLen-pad)...)
		}
	}
	return out
}

const dirEntriesPerSectorV3 = sectorLenV3 / dirEntryLen
