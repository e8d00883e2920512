package cfb

import "github.com/RIPAGlobal/simple-cfb/bytecodec"

// sectorBytes returns the ssz-byte slice of body corresponding to the
// given 0-based sector index. body is everything after the 512-byte
// header. An out-of-range index yields a ChainMalformed error.
func sectorBytes(body []byte, ssz int, idx int32) ([]byte, error) {
	if idx < 0 {
		return nil, newErrorf(ChainMalformed, "sector index %d is not addressable", idx)
	}
	off := int(idx) * ssz
	if off+ssz > len(body) {
		return nil, newErrorf(ChainMalformed, "sector index %d out of range (body has %d sectors)", idx, len(body)/ssz)
	}
	return body[off : off+ssz], nil
}

// sleuthFAT walks the DIFAT chain (header DIFAT plus overflow sectors) and
// returns the full list of FAT sector indices, per spec §4.5 step 8.
func sleuthFAT(h *header, body []byte, ssz int, strict bool) ([]int32, error) {
	difat := make([]int32, len(h.InitialDifatEntries))
	copy(difat, h.InitialDifatEntries)

	perSector := ssz/4 - 1
	seen := make(map[int32]bool)
	cur := h.FirstDifatSector
	count := 0
	for cur != endOfChain {
		if cur < 0 {
			return nil, newErrorf(ChainMalformed, "invalid DIFAT chain sector %d", cur)
		}
		if seen[cur] {
			return nil, newErrorf(ChainMalformed, "DIFAT chain contains a cycle at sector %d", cur)
		}
		seen[cur] = true
		count++

		sec, err := sectorBytes(body, ssz, cur)
		if err != nil {
			return nil, err
		}
		for i := 0; i < perSector; i++ {
			difat = append(difat, bytecodec.ReadI32LE(sec, i*4))
		}
		cur = bytecodec.ReadI32LE(sec, perSector*4)
	}

	if strict && h.NumDifatSectors != uint32(count) {
		return nil, newErrorf(ChainMalformed, "DIFAT chain length mismatch (header says %d, walked %d)", h.NumDifatSectors, count)
	}

	// Trim trailing FREESECT padding.
	for len(difat) > 0 && difat[len(difat)-1] == freeSect {
		difat = difat[:len(difat)-1]
	}

	return difat, nil
}

// materializeFAT reads every FAT sector named by fatSectorIDs and
// concatenates their entries into a single table.
func materializeFAT(fatSectorIDs []int32, body []byte, ssz int) ([]int32, error) {
	perSector := ssz / 4
	fat := make([]int32, 0, len(fatSectorIDs)*perSector)
	for _, id := range fatSectorIDs {
		sec, err := sectorBytes(body, ssz, id)
		if err != nil {
			return nil, err
		}
		for i := 0; i < perSector; i++ {
			fat = append(fat, bytecodec.ReadI32LE(sec, i*4))
		}
	}
	return fat, nil
}

// makeSectorList walks a FAT (or MiniFAT) chain starting at start, against
// the given sector table, unit size unitLen, and the byte source the table
// addresses into. It returns the ordered sector indices visited and their
// concatenated payload, per spec §4.5 step 9.
func makeSectorList(table []int32, start int32, source []byte, unitLen int, maxLen int) ([]int32, []byte, error) {
	var chain []int32
	var payload []byte
	seen := make(map[int32]bool)

	cur := start
	for cur >= 0 {
		if seen[cur] {
			return nil, nil, newErrorf(ChainMalformed, "chain contains a cycle at unit %d", cur)
		}
		seen[cur] = true
		if maxLen > 0 && len(chain) >= maxLen {
			return nil, nil, newErrorf(ChainMalformed, "chain exceeds configured maximum of %d units", maxLen)
		}

		off := int(cur) * unitLen
		if off+unitLen > len(source) {
			return nil, nil, newErrorf(ChainMalformed, "unit index %d out of range", cur)
		}
		chain = append(chain, cur)
		payload = append(payload, source[off:off+unitLen]...)

		if int(cur) >= len(table) {
			return nil, nil, newErrorf(ChainMalformed, "unit index %d has no table entry", cur)
		}
		cur = table[cur]
	}

	return chain, payload, nil
}
