package cfb

import "github.com/RIPAGlobal/simple-cfb/bytecodec"

// extractMiniStream walks a MiniFAT-resident stream's mini-sector chain and
// returns its content, per spec §4.6. miniStreamPayload is the root
// entry's content (the concatenation of all mini-sectors); miniFAT is the
// parsed MiniFAT table.
func extractMiniStream(miniStreamPayload []byte, miniFAT []int32, start int32, size uint32) ([]byte, error) {
	out := make([]byte, 0, size)
	idx := start
	remaining := int64(size)

	seen := make(map[int32]bool)
	for remaining > 0 && idx >= 0 {
		if seen[idx] {
			return nil, newErrorf(ChainMalformed, "MiniFAT chain contains a cycle at mini-sector %d", idx)
		}
		seen[idx] = true

		off := int(idx) * miniSectorLen
		if off+miniSectorLen > len(miniStreamPayload) {
			return nil, newErrorf(ChainMalformed, "mini-sector index %d out of range", idx)
		}
		out = append(out, miniStreamPayload[off:off+miniSectorLen]...)
		remaining -= miniSectorLen

		if int(idx) >= len(miniFAT) {
			return nil, newErrorf(ChainMalformed, "mini-sector index %d has no MiniFAT entry", idx)
		}
		idx = miniFAT[idx]
	}

	if uint32(len(out)) > size {
		out = out[:size]
	}
	return out, nil
}

// parseMiniFATTable decodes a MiniFAT chain's raw payload into an i32
// table.
func parseMiniFATTable(payload []byte) []int32 {
	n := len(payload) / 4
	table := make([]int32, n)
	for i := 0; i < n; i++ {
		table[i] = bytecodec.ReadI32LE(payload, i*4)
	}
	return table
}
