package zlob

import (
	"errors"
	"io/fs"
	"strings"
)

// ErrorFunc is the caller's directory-read error callback (spec.md §4.5).
// Returning true aborts the whole call with StatusAborted; returning false
// lets the walker treat the offending directory as empty and continue.
type ErrorFunc func(path string, err error) (abort bool)

// walkOptions bundles everything a single Walk call needs besides the
// compiled segments themselves.
type walkOptions struct {
	flags   Flags
	ignore  IgnorePredicate
	errFunc ErrorFunc
}

// walkFS drives segs against fsys, appending matches into res. A non-nil
// returned error is always a *WrappedError with Status StatusAborted,
// produced by reportErr. seen is shared across every brace sub-pattern of
// one top-level call, so duplicate paths reached via different sub-patterns
// (or different "**" derivations) are only emitted once.
func walkFS(fsys FS, segs []segment, opts walkOptions, res *Result, seen map[string]struct{}) error {
	segs = stripLeadingMarkerSegments(segs)
	return walkStep(fsys, ".", segs, opts, res, seen)
}

// stripLeadingMarkerSegments drops segments that don't name a real path
// component: the empty-literal marker an absolute pattern's leading "/"
// compiles to, and any leading "." components from a "./" prefix
// (spec.md §8 scenario 6).
func stripLeadingMarkerSegments(segs []segment) []segment {
	for len(segs) > 0 && segs[0].kind == segLiteral && (segs[0].text == "" || segs[0].text == ".") {
		segs = segs[1:]
	}
	return segs
}

func walkStep(fsys FS, dirPath string, segs []segment, opts walkOptions, res *Result, seen map[string]struct{}) error {
	if len(segs) == 0 {
		info, err := fsys.Stat(dirPath)
		if err != nil {
			return nil
		}
		if opts.flags&OnlyDir != 0 && !info.IsDir() {
			return nil
		}
		emit(dirPath, info.IsDir(), entryTypeOf(info), opts, res, seen)
		return nil
	}

	head, tail := segs[0], segs[1:]
	switch head.kind {
	case segLiteral:
		return walkLiteral(fsys, dirPath, head, tail, opts, res, seen)
	case segRecursive:
		return walkRecursive(fsys, dirPath, segs, tail, opts, res, seen)
	default:
		return walkGlob(fsys, dirPath, head, tail, opts, res, seen)
	}
}

func walkLiteral(fsys FS, dirPath string, head segment, tail []segment, opts walkOptions, res *Result, seen map[string]struct{}) error {
	childPath := joinPath(dirPath, head.text)
	info, err := fsys.Stat(childPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return reportErr(opts, childPath, err)
	}
	if len(tail) == 0 {
		if opts.flags&OnlyDir != 0 && !info.IsDir() {
			return nil
		}
		emit(childPath, info.IsDir(), entryTypeOf(info), opts, res, seen)
		return nil
	}
	if !info.IsDir() {
		return nil
	}
	return walkStep(fsys, childPath, tail, opts, res, seen)
}

func walkGlob(fsys FS, dirPath string, head segment, tail []segment, opts walkOptions, res *Result, seen map[string]struct{}) error {
	entries, err := fsys.ReadDir(dirPath)
	if err != nil {
		return reportErr(opts, dirPath, err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if !matchSegment(head.text, name, opts.flags) {
			continue
		}
		childPath := joinPath(dirPath, name)
		isDir := entry.IsDir()
		if len(tail) == 0 {
			if opts.flags&OnlyDir != 0 && !isDir {
				continue
			}
			emit(childPath, isDir, entryTypeOfEntry(entry), opts, res, seen)
			continue
		}
		if !isDir {
			continue
		}
		if err := walkStep(fsys, childPath, tail, opts, res, seen); err != nil {
			return err
		}
	}
	return nil
}

// walkRecursive implements "**": try zero components first, then recurse
// into every (non-hidden, unless PERIOD) subdirectory still headed by the
// same "**" segment (spec.md §4.5, §9).
func walkRecursive(fsys FS, dirPath string, segsWithHead, tail []segment, opts walkOptions, res *Result, seen map[string]struct{}) error {
	if err := walkStep(fsys, dirPath, tail, opts, res, seen); err != nil {
		return err
	}
	entries, err := fsys.ReadDir(dirPath)
	if err != nil {
		return reportErr(opts, dirPath, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if opts.flags&Period == 0 && strings.HasPrefix(name, ".") {
			continue
		}
		childPath := joinPath(dirPath, name)
		if err := walkStep(fsys, childPath, segsWithHead, opts, res, seen); err != nil {
			return err
		}
	}
	return nil
}

func reportErr(opts walkOptions, path string, err error) error {
	if opts.flags&Err != 0 {
		return WrapStatusErrorf(StatusAborted, err, "directory read failed, aborting on %q (ERR flag set)", path)
	}
	if opts.errFunc != nil && opts.errFunc(path, err) {
		return WrapStatusErrorf(StatusAborted, err, "directory read failed, aborted by ErrorFunc on %q", path)
	}
	return nil
}

func emit(path string, isDir bool, et EntryType, opts walkOptions, res *Result, seen map[string]struct{}) {
	if opts.ignore != nil && opts.ignore.Ignore(path, isDir) {
		return
	}
	out := path
	if opts.flags&Mark != 0 && isDir {
		out += "/"
	}
	if _, ok := seen[out]; ok {
		return
	}
	seen[out] = struct{}{}
	res.Append(Match{Name: out, Type: et})
}

func entryTypeOf(info fs.FileInfo) EntryType {
	switch {
	case info.IsDir():
		return TypeDir
	case info.Mode()&fs.ModeSymlink != 0:
		return TypeSymlink
	default:
		return TypeFile
	}
}

func entryTypeOfEntry(entry fs.DirEntry) EntryType {
	switch {
	case entry.IsDir():
		return TypeDir
	case entry.Type()&fs.ModeSymlink != 0:
		return TypeSymlink
	default:
		return TypeFile
	}
}

func joinPath(dir, name string) string {
	if dir == "." || dir == "" {
		return name
	}
	return dir + "/" + name
}

// --- In-memory path-set filtering (spec.md §4.5 "In-memory path-list mode") ---

// walkMemory matches segs against each of paths, returning a borrowing
// Result over the original slice — no string is copied (spec.md §1, §6).
func walkMemory(paths []string, base string, segs []segment, opts walkOptions) *Result {
	base = strings.TrimSuffix(base, "/")
	var matches []Match
	for _, p := range paths {
		rel, ok := stripBase(p, base)
		if !ok {
			continue
		}
		rel = strings.TrimPrefix(rel, "./")
		parts := splitComponents(rel)
		if !matchComponents(segs, parts, opts.flags) {
			continue
		}
		if opts.ignore != nil && opts.ignore.Ignore(rel, false) {
			continue
		}
		matches = append(matches, Match{Name: p, Type: TypeUnknown})
	}
	return newBorrowingResult(matches)
}

func stripBase(path, base string) (string, bool) {
	if base == "" {
		return path, true
	}
	if path == base {
		return "", true
	}
	prefix := base + "/"
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}
	return path[len(prefix):], true
}

func splitComponents(path string) []string {
	path = strings.TrimPrefix(path, "/")
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func matchComponents(segs []segment, parts []string, flags Flags) bool {
	segs = stripLeadingMarkerSegments(segs)
	return matchSegComponents(segs, parts, flags)
}

func matchSegComponents(segs []segment, parts []string, flags Flags) bool {
	if len(segs) == 0 {
		return len(parts) == 0
	}
	head := segs[0]
	if head.kind == segRecursive {
		for i := 0; i <= len(parts); i++ {
			if matchSegComponents(segs[1:], parts[i:], flags) {
				return true
			}
		}
		return false
	}
	if len(parts) == 0 {
		return false
	}
	switch head.kind {
	case segLiteral:
		if head.text != parts[0] {
			return false
		}
	default:
		if !matchSegment(head.text, parts[0], flags) {
			return false
		}
	}
	return matchSegComponents(segs[1:], parts[1:], flags)
}
