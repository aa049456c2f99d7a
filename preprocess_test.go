package zlob

import "testing"

type fakeHome struct {
	dir string
	err error
}

func (f fakeHome) Home() (string, error) { return f.dir, f.err }

type fakeUsers map[string]string

func (f fakeUsers) HomeOf(name string) (string, error) {
	if dir, ok := f[name]; ok {
		return dir, nil
	}
	return "", Errorf("no such user %q", name)
}

func TestExpandTilde(t *testing.T) {
	a := NewAssert(t)
	home := fakeHome{dir: "/home/alice"}
	users := fakeUsers{"bob": "/home/bob"}

	expanded, resolved, had := expandTilde("~", home, users)
	a.Equal("/home/alice", expanded)
	a.True(resolved)
	a.True(had)

	expanded, resolved, had = expandTilde("~/src/main.c", home, users)
	a.Equal("/home/alice/src/main.c", expanded)
	a.True(resolved)
	a.True(had)

	expanded, resolved, had = expandTilde("~bob/docs", home, users)
	a.Equal("/home/bob/docs", expanded)
	a.True(resolved)
	a.True(had)

	expanded, resolved, had = expandTilde("~nobody/x", home, users)
	a.Equal("~nobody/x", expanded)
	a.False(resolved)
	a.True(had)

	expanded, resolved, had = expandTilde("src/main.c", home, users)
	a.Equal("src/main.c", expanded)
	a.False(resolved)
	a.False(had)
}

func TestExpandBraces(t *testing.T) {
	a := NewAssert(t)

	a.Equal([]string{"short.c", "long.c"}, expandBraces("{short,long}.c"))
	a.Equal([]string{"abf", "acdf", "acef"}, expandBraces("a{b,c{d,e}}f"))
	a.Equal([]string{"a{b}c"}, expandBraces("a{b}c")) // no top-level comma: literal braces kept
	a.Equal([]string{"a{bc"}, expandBraces("a{bc")) // unbalanced: literal
	a.Equal([]string{"plain"}, expandBraces("plain"))

	// Whitespace inside alternatives is kept verbatim (DESIGN.md Open
	// Question decision: bash-like, no trimming).
	a.Equal([]string{"short.c", " long.c"}, expandBraces("{short, long}.c"))

	// Duplicates across alternatives collapse, preserving first occurrence.
	a.Equal([]string{"a", "b"}, expandBraces("{a,a,b}"))
}

func TestExpandBracesDepthLimit(t *testing.T) {
	a := NewAssert(t)
	pattern := ""
	for i := 0; i < maxBraceDepth+10; i++ {
		pattern = "{" + pattern + "x}"
	}
	// Must not stack-overflow or hang; result is whatever falls out once the
	// depth cap kicks in.
	out := expandBraces(pattern)
	a.True(len(out) > 0)
}

func TestFindMatchingBrace(t *testing.T) {
	a := NewAssert(t)
	a.Equal(4, findMatchingBrace("{a,b}c", 0))
	a.Equal(-1, findMatchingBrace("{a,b", 0))
	a.Equal(6, findMatchingBrace("{a,{b}}c", 0))
}

func TestSplitTopLevelCommas(t *testing.T) {
	a := NewAssert(t)
	a.Equal([]string{"a", "b{c,d}", "e"}, splitTopLevelCommas("a,b{c,d},e"))
	a.Equal([]string{`a\,b`, "c"}, splitTopLevelCommas(`a\,b,c`))
}
