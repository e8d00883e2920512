package cfb

import "time"

// CompoundFile is an in-memory MS-CFB directory model: a red-black tree of
// storages and streams, represented flat as parallel entries/paths slices
// (spec §3). New starts an empty one; Parse decodes an existing blob.
type CompoundFile struct {
	entries []*Entry
	paths   []string
	opts    *options
}

// New starts an empty compound file containing only the root storage.
func New(opts ...Option) *CompoundFile {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	root := newEntry(rootEntryName, Root, o.clsid, time.Now().UTC())
	return &CompoundFile{
		entries: []*Entry{root},
		paths:   []string{rootEntryName + "/"},
		opts:    o,
	}
}

// Add inserts or replaces the stream at path (an absolute, slash-joined
// path such as "/xl/worksheets/sheet1.xml") with content, then rebuilds
// the directory tree (spec §4.2). On an empty compound file, the first
// Add also injects the oracle-compatibility seed stream (spec §4.1).
func (cf *CompoundFile) Add(path string, content []byte) error {
	if err := ValidateName(filename(path)); err != nil {
		return err
	}

	now := time.Now().UTC()

	if !hasSeedStream(cf.entries) {
		seed := newEntry(seedStreamName, Stream, cf.opts.clsid, now)
		seed.Content = seedStreamContent
		cf.entries = append(cf.entries, seed)
		cf.paths = append(cf.paths, "/"+seedStreamName)
	}

	for i, p := range cf.paths {
		if p == path {
			cf.entries[i].Content = content
			cf.entries[i].MTime = now
			cf.entries, cf.paths = rebuild(cf.entries, cf.paths, true, cf.opts.logger)
			return nil
		}
	}

	e := newEntry(filename(path), Stream, cf.opts.clsid, now)
	e.Content = content
	cf.entries = append(cf.entries, e)
	cf.paths = append(cf.paths, path)

	cf.entries, cf.paths = rebuild(cf.entries, cf.paths, true, cf.opts.logger)
	return nil
}

// Write serializes the current directory model to a complete CFB blob
// (spec §4.3-4.4), rebuilding first if any mutation left the tree in a
// state rebuildTriggered would flag.
func (cf *CompoundFile) Write() []byte {
	cf.entries, cf.paths = rebuild(cf.entries, cf.paths, false, cf.opts.logger)
	return write(cf.entries, cf.opts.logger)
}

// FileIndex returns the flat directory-entry array, root first, in the
// same order as FullPaths (spec §8.1). The returned slice aliases the
// CompoundFile's internal state and must not be mutated by callers.
func (cf *CompoundFile) FileIndex() []*Entry {
	return cf.entries
}

// FullPaths returns the full, slash-joined path of every entry returned
// by FileIndex, index for index.
func (cf *CompoundFile) FullPaths() []string {
	return cf.paths
}
