package cfb

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

// ValidateName rejects directory-entry names containing characters MS-CFB
// reserves as path separators or metacharacters, and names too long to fit
// the wire's 31-code-unit limit.
func ValidateName(name string) error {
	if strings.ContainsAny(name, "/\\:!") {
		return fmt.Errorf("cfb: name contains one of /\\:! characters: %q", name)
	}
	if len(utf16.Encode([]rune(name))) > maxNameCodeUnits {
		return fmt.Errorf("cfb: name exceeds %d UTF-16 code units: %q", maxNameCodeUnits, name)
	}
	return nil
}

// dirname returns the directory portion of a slash-joined path, matching
// the CFB reference oracle exactly:
//
//	dirname("")                      == ""
//	dirname("/")                     == "/"
//	dirname("/foo")                  == "/"
//	dirname("/foo/")                 == "/"
//	dirname("/foo/bar")              == "/foo/"
//	dirname("/foo/bar/baz///")       == "/foo/bar/"
func dirname(p string) string {
	if strings.HasSuffix(p, "/") {
		remainder := p[:len(p)-1]
		if strings.Contains(remainder, "/") {
			return dirname(remainder)
		}
		return p
	}
	idx := strings.LastIndex(p, "/")
	if idx < 0 {
		return p
	}
	return p[:idx+1]
}

// filename returns the last path segment, matching the CFB reference
// oracle exactly:
//
//	filename("")                == ""
//	filename("/")                == ""
//	filename("/foo")             == "foo"
//	filename("/foo/")            == "foo"
//	filename("/foo/bar/baz///")  == "baz"
func filename(p string) string {
	for strings.HasSuffix(p, "/") {
		p = p[:len(p)-1]
	}
	idx := strings.LastIndex(p, "/")
	if idx < 0 {
		return p
	}
	return p[idx+1:]
}

// namecmp is the CFB-specified red-black-tree sort key: paths are compared
// segment by segment, primary key segment length (in UTF-16 code units,
// shorter first), secondary key lexicographic; if every compared segment
// ties, the shorter path sorts first.
func namecmp(a, b string) int {
	as := strings.Split(a, "/")
	bs := strings.Split(b, "/")
	n := len(as)
	if len(bs) < n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		if c := compareSegment(as[i], bs[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	default:
		return 0
	}
}

func compareSegment(a, b string) int {
	la := len(utf16.Encode([]rune(a)))
	lb := len(utf16.Encode([]rune(b)))
	if la != lb {
		if la < lb {
			return -1
		}
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// buildFullPaths reconstructs the full-path array from the directory
// entries' tree links, per spec §4.5's red-black-tree flattening: starting
// at the root's child, each entry's Right link chains it to the next
// sibling at the same level and its Child link descends one level. Left is
// walked too so genuinely balanced (non-degenerate) trees produced by other
// writers are still traversed correctly.
func buildFullPaths(entries []*Entry) []string {
	n := len(entries)
	paths := make([]string, n)
	if n == 0 {
		return paths
	}
	paths[0] = entries[0].Name + "/"

	type qitem struct {
		idx    int
		parent string
	}
	visited := make([]bool, n)
	visited[0] = true
	queue := make([]qitem, 0, n)

	enqueue := func(idx int32, parent string) {
		if idx == noStream {
			return
		}
		i := int(idx)
		if i < 0 || i >= n || visited[i] {
			return
		}
		queue = append(queue, qitem{i, parent})
	}

	enqueue(entries[0].Child, "/")

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]
		if visited[item.idx] {
			continue
		}
		visited[item.idx] = true

		e := entries[item.idx]
		p := item.parent + e.Name
		if e.Type == Storage || e.Type == Root {
			p += "/"
		}
		paths[item.idx] = p

		enqueue(e.Left, item.parent)
		enqueue(e.Right, item.parent)
		enqueue(e.Child, p)
	}

	return paths
}
