package cfb

import (
	"github.com/RIPAGlobal/simple-cfb/bytecodec"
	"github.com/google/uuid"
)

// readDirEntries parses a directory chain's payload into one Entry per
// 128-byte slice, per spec §4.5 step 10. It does not resolve stream
// content; that happens once the FAT and MiniFAT tables are available.
func readDirEntries(payload []byte) []*Entry {
	n := len(payload) / dirEntryLen
	entries := make([]*Entry, n)
	for i := 0; i < n; i++ {
		entries[i] = readOneDirEntry(payload[i*dirEntryLen : (i+1)*dirEntryLen])
	}
	return entries
}

func readOneDirEntry(buf []byte) *Entry {
	nameLen := int(bytecodec.ReadU16LE(buf, 64))
	var name string
	if nameLen >= 2 {
		raw := buf[0:min(nameLen, 64)]
		// Strip exactly one trailing UTF-16 null terminator, independent
		// of the reported length's own (occasionally off) accounting.
		if len(raw) >= 2 && raw[len(raw)-1] == 0 && raw[len(raw)-2] == 0 {
			raw = raw[:len(raw)-2]
		}
		name, _ = bytecodec.ReadShiftString(raw, bytecodec.FormUTF16LE)
	}

	objType := ObjectFromByte(buf[66])
	color := ColorFromByte(buf[67])
	left := bytecodec.ReadI32LE(buf, 68)
	right := bytecodec.ReadI32LE(buf, 72)
	child := bytecodec.ReadI32LE(buf, 76)

	var clsid uuid.UUID
	copy(clsid[:], buf[80:96])

	state := bytecodec.ReadU32LE(buf, 96)

	ctime, _ := bytecodec.GetTime(buf[100:108])
	mtime, _ := bytecodec.GetTime(buf[108:116])

	start := bytecodec.ReadI32LE(buf, 116)
	size := bytecodec.ReadU32LE(buf, 120)

	if int32(size) < 0 && start < 0 {
		size = 0
	}

	return &Entry{
		Name:  name,
		Type:  objType,
		Color: color,
		Left:  left,
		Right: right,
		Child: child,
		CLSID: clsid,
		State: state,
		CTime: ctime,
		MTime: mtime,
		Start: start,
		Size:  size,
	}
}
