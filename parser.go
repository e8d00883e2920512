package cfb

import (
	"io"

	"go.uber.org/zap"
)

// Parse decodes an existing CFB blob, populating FileIndex and FullPaths.
// It consumes r to EOF; on error, if r implements io.Closer, it is closed.
func Parse(r io.Reader, opts ...Option) (*CompoundFile, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		closeIfCloser(r)
		return nil, wrapError(ChainMalformed, "reading input", err)
	}

	cf, perr := parseBytes(data, o)
	if perr != nil {
		o.logger.Error("parse failed", zap.Error(perr))
		closeIfCloser(r)
		return nil, perr
	}
	return cf, nil
}

func closeIfCloser(r io.Reader) {
	if c, ok := r.(io.Closer); ok {
		_ = c.Close()
	}
}

func parseBytes(data []byte, o *options) (*CompoundFile, error) {
	if len(data) < headerLen {
		return nil, newError(TooSmall, "input shorter than one CFB header")
	}

	h, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	ssz := h.Version.SectorLen()
	body := data[headerLen:]

	if o.maxSectors > 0 {
		bodySectors := uint32(len(body) / ssz)
		if bodySectors > o.maxSectors {
			return nil, newErrorf(ChainMalformed, "input has %d sectors, exceeding configured maximum of %d", bodySectors, o.maxSectors)
		}
	}

	strict := o.validation.IsStrict()

	fatSectorIDs, err := sleuthFAT(h, body, ssz, strict)
	if err != nil {
		return nil, err
	}
	if strict && h.NumFatSectors != uint32(len(fatSectorIDs)) {
		return nil, newErrorf(ChainMalformed, "FAT sector count mismatch (header says %d, DIFAT says %d)", h.NumFatSectors, len(fatSectorIDs))
	}

	fat, err := materializeFAT(fatSectorIDs, body, ssz)
	if err != nil {
		return nil, err
	}
	for len(fat) > 0 && fat[len(fat)-1] == freeSect {
		fat = fat[:len(fat)-1]
	}

	_, dirPayload, err := makeSectorList(fat, h.FirstDirSector, body, ssz, int(o.maxSectors))
	if err != nil {
		return nil, err
	}

	entries := readDirEntries(dirPayload)
	if len(entries) == 0 || entries[0].Type != Root {
		return nil, newError(InconsistentModel, "directory has no root entry")
	}

	var miniFAT []int32
	if h.FirstMinifatSector != endOfChain {
		miniChain, minifatPayload, err := makeSectorList(fat, h.FirstMinifatSector, body, ssz, int(o.maxSectors))
		if err != nil {
			return nil, err
		}
		if strict && h.NumMinifatSectors != uint32(len(miniChain)) {
			return nil, newErrorf(ChainMalformed, "MiniFAT sector count mismatch (header says %d, FAT says %d)", h.NumMinifatSectors, len(miniChain))
		}
		miniFAT = parseMiniFATTable(minifatPayload)
	}

	root := entries[0]
	var miniStreamPayload []byte
	if root.Start >= 0 {
		_, payload, err := makeSectorList(fat, root.Start, body, ssz, int(o.maxSectors))
		if err != nil {
			return nil, err
		}
		miniStreamPayload = payload
	}

	for i, e := range entries {
		if i == 0 || e.Type != Stream || e.Size == 0 {
			continue
		}
		if e.Size >= miniStreamCutoff {
			e.Storage = "fat"
			_, payload, err := makeSectorList(fat, e.Start, body, ssz, int(o.maxSectors))
			if err != nil {
				return nil, err
			}
			if uint32(len(payload)) < e.Size {
				return nil, newErrorf(ChainMalformed, "stream %q chain shorter than declared size", e.Name)
			}
			e.Content = payload[:e.Size]
		} else {
			e.Storage = "minifat"
			content, err := extractMiniStream(miniStreamPayload, miniFAT, e.Start, e.Size)
			if err != nil {
				return nil, err
			}
			e.Content = content
		}
	}

	paths := buildFullPaths(entries)

	if miniFAT != nil {
		entries = append(entries, &Entry{Name: "!MiniFAT", Type: Stream, Content: parseMiniFATBytes(miniFAT)})
		paths = append(paths, "!MiniFAT")
	}
	if miniStreamPayload != nil {
		entries = append(entries, &Entry{Name: "!StreamData", Type: Stream, Content: miniStreamPayload})
		paths = append(paths, "!StreamData")
	}

	if len(entries) != len(paths) {
		return nil, newError(InconsistentModel, "full_paths and file_index length mismatch")
	}

	o.logger.Debug("parse complete", zap.Int("entries", len(entries)), zap.Int("version", int(h.Version)))

	return &CompoundFile{entries: entries, paths: paths, opts: o}, nil
}

// parseMiniFATBytes re-encodes the parsed MiniFAT table back to its raw
// little-endian byte form, for exposure as the synthetic "!MiniFAT" entry.
func parseMiniFATBytes(table []int32) []byte {
	out := make([]byte, len(table)*4)
	for i, v := range table {
		out[i*4] = byte(v)
		out[i*4+1] = byte(v >> 8)
		out[i*4+2] = byte(v >> 16)
		out[i*4+3] = byte(v >> 24)
	}
	return out
}
