package cfb

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// rebuildTriggered scans entries tail-to-head deciding whether a
// garbage-collect pass is required, per spec §4.2 step 1: an unknown-typed
// entry appearing before any typed entry, or an entry with invalid/equal
// L/R links or an unexpected type, forces a GC.
func rebuildTriggered(entries []*Entry) bool {
	sawTyped := false
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.Type == Unallocated {
			if sawTyped {
				return true
			}
			continue
		}
		if e.Type != Storage && e.Type != Stream && e.Type != Root {
			return true
		}
		sawTyped = true

		n := int32(len(entries))
		if e.Left != noStream && (e.Left < 0 || e.Left >= n) {
			return true
		}
		if e.Right != noStream && (e.Right < 0 || e.Right >= n) {
			return true
		}
		if e.Left != noStream && e.Left == e.Right {
			return true
		}
	}
	return false
}

// rebuild normalizes the directory model after mutations: it deduplicates,
// injects missing parent storages, sorts by namecmp, and reassigns the
// degenerate right-spine tree links described in spec §4.2.
//
// entries[0] must be the root entry (type Root). paths holds the full path
// of every entry, parallel to entries. force makes a GC pass unconditional.
// rebuild returns the new (entries, paths) pair; when no GC is needed, it
// returns its inputs unchanged.
func rebuild(entries []*Entry, paths []string, force bool, logger *zap.Logger) ([]*Entry, []string) {
	gc := force || rebuildTriggered(entries)
	if !gc {
		return entries, paths
	}

	type pair struct {
		path  string
		entry *Entry
	}

	pairs := make([]pair, 0, len(entries))
	seen := make(map[string]bool)
	for i, e := range entries {
		if e.Type == Unallocated {
			continue
		}
		if i == 0 {
			continue // root is reconstructed separately below
		}
		if seen[paths[i]] {
			continue // duplicate path: the first entry is kept
		}
		pairs = append(pairs, pair{paths[i], e})
		seen[paths[i]] = true
	}

	// Inject synthetic storages for every missing ancestor directory.
	defaultTime := time.Date(1987, time.January, 19, 0, 0, 0, 0, time.UTC)
	injected := 0
	for i := 0; i < len(pairs); i++ {
		dad := dirname(pairs[i].path)
		for dad != "/" && dad != "" && !seen[dad] {
			storage := newEntry(filename(dad), Storage, uuid.Nil, defaultTime)
			seen[dad] = true
			pairs = append(pairs, pair{dad, storage})
			injected++
			dad = dirname(dad)
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return namecmp(pairs[i].path, pairs[j].path) < 0
	})

	n := len(pairs) + 1
	newEntries := make([]*Entry, n)
	newPaths := make([]string, n)

	root := entries[0]
	root.Left, root.Right = noStream, noStream
	root.Color = Black
	root.Size = 0
	root.Type = Root
	if len(pairs) >= 1 {
		root.Child = 1
	} else {
		root.Child = noStream
	}
	newEntries[0] = root
	newPaths[0] = root.Name + "/"

	for i, pr := range pairs {
		idx := i + 1
		e := pr.entry
		e.Left, e.Right, e.Child = noStream, noStream, noStream
		e.Color = Black
		e.Start = 0
		e.Size = e.byteLen()
		newEntries[idx] = e
		newPaths[idx] = pr.path
	}

	for i := 1; i < n; i++ {
		p := newPaths[i]
		e := newEntries[i]

		if e.Type == Storage {
			for j := i + 1; j < n; j++ {
				if dirname(newPaths[j]) == p {
					e.Child = int32(j)
					break
				}
			}
			dad := dirname(p)
			for j := i + 1; j < n; j++ {
				if dirname(newPaths[j]) == dad {
					e.Right = int32(j)
					break
				}
			}
		} else {
			e.Type = Stream
			if i+1 < n && dirname(newPaths[i+1]) == dirname(p) {
				e.Right = int32(i + 1)
			}
		}
	}

	if logger != nil && injected > 0 {
		logger.Debug("rebuild injected synthetic parent storages", zap.Int("count", injected))
	}

	return newEntries, newPaths
}
