package zlob

import "strings"

// Options configures a Glob or FilterPaths call.
type Options struct {
	Flags Flags

	// Offs is the number of leading reserved entries DoOffs asks for.
	Offs int

	// Base is the directory Glob resolves relative to (when FS is nil, a
	// RealFS rooted at Base is used), or the prefix FilterPaths strips
	// from every candidate path before matching.
	Base string

	// FS overrides the directory iterator Glob walks. Nil means a RealFS
	// rooted at Base (or the working directory, if Base is empty).
	FS FS

	// Home and User resolve "~" and "~user"; nil selects the local OS.
	Home HomeProvider
	User UserProvider

	// Ignore, when set, suppresses matches it reports as ignored. Only
	// consulted when Flags has GitignoreFilter set.
	Ignore IgnorePredicate

	// ErrFunc is consulted on a directory-read error, per spec.md §4.5.
	ErrFunc ErrorFunc

	// Existing, when Flags has Append set, is the Result new matches are
	// concatenated onto. It must be in owning mode for Glob or borrowing
	// mode for FilterPaths — mixing modes returns StatusAborted, per
	// spec.md §4.6.
	Existing *Result
}

func (o Options) homeProvider() HomeProvider {
	if o.Home != nil {
		return o.Home
	}
	return DefaultHomeProvider()
}

func (o Options) userProvider() UserProvider {
	if o.User != nil {
		return o.User
	}
	return DefaultUserProvider()
}

func (o Options) ignorePredicate() IgnorePredicate {
	if o.Flags&GitignoreFilter == 0 {
		return nil
	}
	return o.Ignore
}

// subPatterns runs the Preprocessor (tilde, then brace) over pattern,
// reporting StatusNoMatch directly when strict-tilde resolution fails
// (spec.md §7).
func subPatterns(pattern string, flags Flags, opts Options) ([]string, Status, bool) {
	if flags&(Tilde|TildeCheck) != 0 {
		expanded, resolved, hadTilde := expandTilde(pattern, opts.homeProvider(), opts.userProvider())
		if flags&TildeCheck != 0 && hadTilde && !resolved {
			return nil, StatusNoMatch, false
		}
		pattern = expanded
	}
	if flags&Brace != 0 {
		return expandBraces(pattern), StatusSuccess, true
	}
	return []string{pattern}, StatusSuccess, true
}

// Glob resolves pattern against a directory tree (spec.md §1 "Filesystem
// globbing").
func Glob(pattern string, opts Options) (*Result, Status, error) {
	flags := opts.Flags
	fsys := opts.FS
	if fsys == nil {
		base := opts.Base
		if base == "" {
			base = "."
		}
		fsys = NewRealFS(base)
	}

	res, status, ok := startResult(opts, false)
	if !ok {
		return res, status, nil
	}

	origHasMagic := classify(pattern, flags).hasMagic
	patterns, status, ok := subPatterns(pattern, flags, opts)
	if !ok {
		if flags&NoCheck != 0 {
			res.Append(Match{Name: pattern, Type: TypeUnknown})
			return res, StatusSuccess, nil
		}
		return res, status, nil
	}

	before := len(res.Matches)
	seen := make(map[string]struct{})
	wopts := walkOptions{flags: flags, ignore: opts.ignorePredicate(), errFunc: opts.ErrFunc}
	for _, sub := range patterns {
		segs := compile(sub, flags)
		if err := walkFS(fsys, segs, wopts, res, seen); err != nil {
			res.Release()
			return res, StatusAborted, err
		}
	}

	matched := len(res.Matches) - before
	if matched == 0 {
		if flags&NoCheck != 0 || (flags&NoMagic != 0 && !origHasMagic) {
			res.Append(Match{Name: pattern, Type: TypeUnknown})
			return res, StatusSuccess, nil
		}
		return res, StatusNoMatch, nil
	}
	return res, StatusSuccess, nil
}

// FilterPaths returns the subset of paths matching pattern without
// touching the filesystem or copying any string (spec.md §1 "Path-set
// filtering").
func FilterPaths(pattern string, paths []string, opts Options) (*Result, Status, error) {
	flags := opts.Flags

	res, status, ok := startResult(opts, true)
	if !ok {
		return res, status, nil
	}

	origHasMagic := classify(pattern, flags).hasMagic
	patterns, status, ok := subPatterns(pattern, flags, opts)
	if !ok {
		if flags&NoCheck != 0 {
			res.Matches = append(res.Matches, Match{Name: pattern, Type: TypeUnknown})
			return res, StatusSuccess, nil
		}
		return res, status, nil
	}

	wopts := walkOptions{flags: flags, ignore: opts.ignorePredicate()}
	seen := make(map[string]struct{})
	for _, sub := range patterns {
		segs := compile(sub, flags)
		partial := walkMemory(paths, opts.Base, segs, wopts)
		for _, m := range partial.Matches {
			if _, dup := seen[m.Name]; dup {
				continue
			}
			seen[m.Name] = struct{}{}
			res.Matches = append(res.Matches, m)
		}
	}

	if len(res.Matches) == 0 {
		if flags&NoCheck != 0 || (flags&NoMagic != 0 && !origHasMagic) {
			res.Matches = append(res.Matches, Match{Name: pattern, Type: TypeUnknown})
			return res, StatusSuccess, nil
		}
		return res, StatusNoMatch, nil
	}
	return res, StatusSuccess, nil
}

// startResult resolves the Append/DoOffs setup shared by Glob and
// FilterPaths. ok is false when Append was requested with an incompatible
// Existing result.
func startResult(opts Options, borrowing bool) (*Result, Status, bool) {
	var res *Result
	if opts.Flags&Append != 0 && opts.Existing != nil {
		if opts.Existing.borrowed != borrowing {
			return opts.Existing, StatusAborted, false
		}
		res = opts.Existing
	} else if borrowing {
		res = newBorrowingResult(nil)
	} else {
		res = newOwningResult()
	}
	if opts.Flags&DoOffs != 0 {
		for i := 0; i < opts.Offs; i++ {
			if borrowing {
				res.Matches = append(res.Matches, Match{})
			} else {
				res.Append(Match{})
			}
		}
	}
	return res, StatusSuccess, true
}

// StripBasePrefix exposes the base-relative path rule from spec.md §4.5
// ("In-memory path-list mode") for callers who want to pre-filter their
// own path list before calling FilterPaths.
func StripBasePrefix(path, base string) (string, bool) {
	base = strings.TrimSuffix(base, "/")
	return stripBase(path, base)
}
