package cfb

import (
	"bytes"

	"github.com/RIPAGlobal/simple-cfb/bytecodec"
)

// header is the decoded form of the 512-byte CFB header, used by both the
// Parser (major 3 or 4) and the Writer (always major 3).
type header struct {
	Version Version

	NumDirSectors      uint32
	NumFatSectors      uint32
	FirstDirSector     int32
	FirstMinifatSector int32
	NumMinifatSectors  uint32
	FirstDifatSector   int32
	NumDifatSectors    uint32

	// InitialDifatEntries holds the up-to-109 FAT sector indices embedded
	// in the header, truncated at the first negative value (spec 4.5 §6).
	InitialDifatEntries []int32
}

// parseHeader validates and decodes the fixed header fields, per spec
// §4.5 steps 1-6. buf must be at least headerLen bytes.
func parseHeader(buf []byte) (*header, error) {
	if len(buf) < headerLen {
		return nil, newError(TooSmall, "input shorter than one CFB header")
	}

	if buf[0] == 0x50 && buf[1] == 0x4b {
		return nil, newError(UnsupportedFormat, "Zip contents are not supported")
	}

	if !bytes.Equal(buf[0:8], magicNumber) {
		return nil, newMismatch("signature", magicNumber, buf[0:8])
	}

	// buf[8:24] is the 16-byte CLSID; skipped.
	minorVersion := bytecodec.ReadU16LE(buf, 24)
	majorVersion := bytecodec.ReadU16LE(buf, 26)
	version, err := versionFromMajor(majorVersion)
	if err != nil {
		return nil, err
	}
	_ = minorVersion

	bom := bytecodec.ReadU16LE(buf, 28)
	if bom != byteOrderMark {
		return nil, newMismatch("byte order mark", byteOrderMark, bom)
	}

	sectorShift := bytecodec.ReadU16LE(buf, 30)
	if sectorShift != version.SectorShift() {
		return nil, newMismatch("sector shift", version.SectorShift(), sectorShift)
	}

	miniShift := bytecodec.ReadU16LE(buf, 32)
	if miniShift != miniSectorShift {
		return nil, newMismatch("mini sector shift", miniSectorShift, miniShift)
	}

	for _, b := range buf[34:40] {
		if b != 0 {
			return nil, newMismatch("reserved header bytes", 0, b)
		}
	}

	numDirSectors := bytecodec.ReadU32LE(buf, 40)
	if version == V3 && numDirSectors != 0 {
		return nil, newMismatch("directory sector count (v3)", 0, numDirSectors)
	}

	numFatSectors := bytecodec.ReadU32LE(buf, 44)
	firstDirSector := bytecodec.ReadI32LE(buf, 48)
	// buf[52:56] transaction signature; not validated.

	cutoff := bytecodec.ReadU32LE(buf, 56)
	if cutoff != miniStreamCutoff {
		return nil, newMismatch("mini stream cutoff", miniStreamCutoff, cutoff)
	}

	firstMinifatSector := bytecodec.ReadI32LE(buf, 60)
	numMinifatSectors := bytecodec.ReadU32LE(buf, 64)
	firstDifatSector := bytecodec.ReadI32LE(buf, 68)
	numDifatSectors := bytecodec.ReadU32LE(buf, 72)

	if firstDifatSector == freeSect {
		firstDifatSector = endOfChain
	}

	initialDifat := make([]int32, 0, difatEntriesInHeader)
	for i := 0; i < difatEntriesInHeader; i++ {
		v := bytecodec.ReadI32LE(buf, 76+i*4)
		if v < 0 {
			break
		}
		initialDifat = append(initialDifat, v)
	}

	return &header{
		Version:             version,
		NumDirSectors:       numDirSectors,
		NumFatSectors:       numFatSectors,
		FirstDirSector:      firstDirSector,
		FirstMinifatSector:  firstMinifatSector,
		NumMinifatSectors:   numMinifatSectors,
		FirstDifatSector:    firstDifatSector,
		NumDifatSectors:     numDifatSectors,
		InitialDifatEntries: initialDifat,
	}, nil
}

// writeHeaderParams carries everything writeHeader needs to emit a
// complete major-3 header plus its embedded DIFAT (spec §4.4 steps 1-2).
type writeHeaderParams struct {
	difatCnt   int
	fatCnt     int
	mfatCnt    int
	dirStart   int32
	mfatFirst  int32 // endOfChain if no MiniFAT sectors
	difatFirst int32 // endOfChain if no DIFAT overflow sectors
}

func writeHeader(buf []byte, p writeHeaderParams) {
	copy(buf[0:8], magicNumber)
	// buf[8:24] CLSID: zero.
	bytecodec.WriteU16LE(buf, 24, minorVersionV3)
	bytecodec.WriteU16LE(buf, 26, majorVersionV3)
	bytecodec.WriteU16LE(buf, 28, byteOrderMark)
	bytecodec.WriteU16LE(buf, 30, sectorShiftV3)
	bytecodec.WriteU16LE(buf, 32, miniSectorShift)
	// buf[34:40] reserved: zero.
	bytecodec.WriteU32LE(buf, 40, 0) // directory sector count is 0 for major 3
	bytecodec.WriteU32LE(buf, 44, uint32(p.fatCnt))
	bytecodec.WriteI32LE(buf, 48, p.dirStart)
	bytecodec.WriteU32LE(buf, 52, 0) // transaction signature
	bytecodec.WriteU32LE(buf, 56, miniStreamCutoff)
	bytecodec.WriteI32LE(buf, 60, p.mfatFirst)
	bytecodec.WriteU32LE(buf, 64, uint32(p.mfatCnt))
	bytecodec.WriteI32LE(buf, 68, p.difatFirst)
	bytecodec.WriteU32LE(buf, 72, uint32(p.difatCnt))

	for i := 0; i < difatEntriesInHeader; i++ {
		off := 76 + i*4
		if i < p.fatCnt {
			bytecodec.WriteI32LE(buf, off, int32(p.difatCnt+i))
		} else {
			bytecodec.WriteI32LE(buf, off, freeSect)
		}
	}
}
