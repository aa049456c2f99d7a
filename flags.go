package zlob

// Flags is a bit-addressed configuration set. The zero value matches plain
// POSIX glob(3) behavior: sorted output, no brace/tilde/extglob expansion,
// hidden files excluded from wildcard matches.
type Flags uint32

const (
	// Err aborts the whole call on the first directory-read error instead
	// of skipping the offending directory.
	Err Flags = 1 << iota
	// Mark appends a trailing separator to directory matches.
	Mark
	// NoSort is accepted but not consulted: matches always follow the order
	// FS.ReadDir returns (RealFS and MemoryFS both return entries sorted by
	// name), and the accumulated result is never re-sorted.
	NoSort
	// DoOffs reserves Offs leading empty (zero-value) entries in the result.
	DoOffs
	// NoCheck returns the pattern itself as the sole match when nothing matched.
	NoCheck
	// Append concatenates onto an existing Result of the same ownership mode.
	Append
	// NoEscape treats backslash as an ordinary literal byte.
	NoEscape
	// Period allows wildcards to match a leading dot in a path component.
	Period
	// MagChar reserves the magic-character bit. Setting it on input has no
	// effect, and nothing sets it on output: Result carries no flag
	// snapshot.
	MagChar
	// AltDirFunc is accepted but not consulted: Glob walks Options.FS
	// whenever it is non-nil, and a RealFS otherwise.
	AltDirFunc
	// Brace enables "{a,b,c}" expansion.
	Brace
	// NoMagic returns the pattern itself when it has no metacharacters and
	// the walk produced no matches.
	NoMagic
	// Tilde enables "~" and "~user" expansion.
	Tilde
	// OnlyDir restricts matches to directories.
	OnlyDir
	// TildeCheck behaves like Tilde but fails with NoMatch when a tilde
	// prefix cannot be resolved, instead of leaving it literal.
	TildeCheck
	// ExtGlob enables "?(…)", "*(…)", "+(…)", "@(…)", "!(…)" groups.
	ExtGlob
	// GitignoreFilter drops matches excluded by the configured IgnorePredicate.
	GitignoreFilter
	// RecursiveDoubleStar enables "**" as a standalone recursive segment.
	// Most callers want this on; it is a flag because spec.md's base
	// POSIX mode does not define "**" at all.
	RecursiveDoubleStar
)

// Status is the outcome of a top-level Glob/Filter call.
type Status int

const (
	StatusSuccess Status = iota
	StatusNoSpace
	StatusAborted
	StatusNoMatch
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusNoSpace:
		return "no-space"
	case StatusAborted:
		return "aborted"
	case StatusNoMatch:
		return "no-match"
	default:
		return "unknown"
	}
}

// EntryType classifies a directory entry without a full stat(2) call.
// It mirrors DT_DIR/DT_REG/DT_LNK/DT_UNKNOWN from the original C ABI.
type EntryType int

const (
	TypeUnknown EntryType = iota
	TypeDir
	TypeFile
	TypeSymlink
)
