package cfb

import (
	"time"

	"github.com/google/uuid"
)

// Entry is a directory entry: root, storage, or stream. Entry is both the
// internal directory-model record and the public, read-only view handed
// back by FileIndex — there is no separate wire-level type, since every
// field Entry carries is either already in its natural Go form (CLSID as
// uuid.UUID, timestamps as time.Time) or a direct mirror of the wire field
// (Left/Right/Child directory-entry links, Start, Size).
type Entry struct {
	Name    string
	Type    ObjectType
	Color   Color
	Left    int32 // noStream (-1) if absent
	Right   int32
	Child   int32
	CLSID   uuid.UUID
	State   uint32
	CTime   time.Time // zero value means "no timestamp"
	MTime   time.Time
	Start   int32
	Size    uint32
	Content []byte

	// Storage reports which allocation table backs this stream's content
	// after a Parse: "fat" or "minifat". Empty for storages and the root.
	Storage string
}

// newEntry builds an Entry with the defaults the Rebuilder and Add rely on:
// black color, no tree links, and a starting sector appropriate to the
// object type.
func newEntry(name string, objType ObjectType, clsid uuid.UUID, now time.Time) *Entry {
	e := &Entry{
		Name:  name,
		Type:  objType,
		Color: Black,
		Left:  noStream,
		Right: noStream,
		Child: noStream,
		CLSID: clsid,
		CTime: now,
		MTime: now,
	}
	if objType == Storage {
		e.Start = 0
	} else {
		e.Start = endOfChain
	}
	return e
}

func (e *Entry) byteLen() uint32 {
	return uint32(len(e.Content))
}
