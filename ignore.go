package zlob

import (
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// IgnorePredicate decides whether a path the Walker is about to emit should
// be suppressed (spec.md §1, the GITIGNORE_FILTER flag). path is always
// walker-relative and uses "/" separators regardless of host OS.
type IgnorePredicate interface {
	Ignore(path string, isDir bool) bool
}

// IgnorePredicateFunc adapts a function to IgnorePredicate.
type IgnorePredicateFunc func(path string, isDir bool) bool

func (f IgnorePredicateFunc) Ignore(path string, isDir bool) bool { return f(path, isDir) }

// globIgnorePattern is one parsed line of a gitignore-style file, grounded
// on cling-sync/lib/glob.go's ExtendedGlobPattern: a segGlob-compiled
// pattern plus whether it was "!"-negated and the directory it is rooted
// at.
type globIgnorePattern struct {
	segments []segment
	negate   bool
	baseDir  string
	dirOnly  bool
}

// GitStyleIgnore is an IgnorePredicate built from a set of gitignore-style
// pattern lines, matched with this package's own Compiler/Matcher rather
// than a regex translation.
type GitStyleIgnore struct {
	patterns []globIgnorePattern
}

// ParseIgnoreLines builds a GitStyleIgnore from the lines of a single
// ignore file rooted at baseDir (spec.md's gitignore-filter support),
// skipping blank lines and "#" comments per cling-sync's
// ParseGlobIgnoreFile.
func ParseIgnoreLines(baseDir string, lines []string) *GitStyleIgnore {
	if baseDir == "." {
		baseDir = ""
	}
	if baseDir != "" && !strings.HasSuffix(baseDir, "/") {
		baseDir += "/"
	}
	g := &GitStyleIgnore{}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed[0] == '#' {
			continue
		}
		g.patterns = append(g.patterns, compileIgnoreLine(trimmed, baseDir))
	}
	return g
}

func compileIgnoreLine(pattern, baseDir string) globIgnorePattern {
	negate := strings.HasPrefix(pattern, "!")
	if negate {
		pattern = pattern[1:]
	}
	dirOnly := strings.HasSuffix(pattern, "/")
	pattern = strings.TrimSuffix(pattern, "/")
	flags := Brace | RecursiveDoubleStar
	return globIgnorePattern{
		segments: compile(pattern, flags),
		negate:   negate,
		baseDir:  baseDir,
		dirOnly:  dirOnly,
	}
}

// Ignore reports whether path matches the last applicable pattern, letting
// later "!"-negated patterns override earlier ones, exactly like
// ExtendedGlobPatterns.Match.
func (g *GitStyleIgnore) Ignore(path string, isDir bool) bool {
	matched := false
	for _, p := range g.patterns {
		if p.dirOnly && !isDir {
			continue
		}
		if !strings.HasPrefix(path, p.baseDir) {
			continue
		}
		relPath, err := filepath.Rel(p.baseDir, path)
		if err != nil || relPath == "." {
			continue
		}
		if matchSegmentsAnywhere(p.segments, relPath) {
			matched = !p.negate
		}
	}
	return matched
}

// matchSegmentsAnywhere matches like a gitignore pattern does: a pattern
// with no "/" in it may match at any depth, not just at the root.
func matchSegmentsAnywhere(segments []segment, relPath string) bool {
	if len(segments) == 1 {
		parts := strings.Split(relPath, "/")
		for i := range parts {
			if matchSegmentChain(segments, parts[i:]) {
				return true
			}
		}
		return false
	}
	return matchSegmentChain(segments, strings.Split(relPath, "/"))
}

func matchSegmentChain(segments []segment, parts []string) bool {
	if len(segments) == 0 {
		return len(parts) == 0
	}
	seg := segments[0]
	if seg.kind == segRecursive {
		for i := 0; i <= len(parts); i++ {
			if matchSegmentChain(segments[1:], parts[i:]) {
				return true
			}
		}
		return false
	}
	if len(parts) == 0 {
		return false
	}
	switch seg.kind {
	case segLiteral:
		if seg.text != parts[0] {
			return false
		}
	default:
		if !matchSegment(seg.text, parts[0], Brace) {
			return false
		}
	}
	return matchSegmentChain(segments[1:], parts[1:])
}

// SabhiramIgnore adapts github.com/sabhiram/go-gitignore as an
// IgnorePredicate, an alternative to GitStyleIgnore for callers who want
// full gitignore-spec fidelity (double-star, escaped brackets, and the
// other corner cases than this package's own Compiler does not replicate)
// instead of this package's own matcher.
type SabhiramIgnore struct {
	m *gitignore.GitIgnore
}

// NewSabhiramIgnore compiles lines with the sabhiram/go-gitignore library.
func NewSabhiramIgnore(lines []string) *SabhiramIgnore {
	return &SabhiramIgnore{m: gitignore.CompileIgnoreLines(lines...)}
}

func (s *SabhiramIgnore) Ignore(path string, _ bool) bool {
	if s.m == nil {
		return false
	}
	return s.m.MatchesPath(path)
}
