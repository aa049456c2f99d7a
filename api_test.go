package zlob

import (
	"errors"
	"io/fs"
	"testing"
)

var errBoom = errors.New("boom")

// TestScenarioBasicGlob covers spec.md §8 scenario 1: {main.c, test.h,
// readme.md}, pattern "*.c" -> sorted {main.c}.
func TestScenarioBasicGlob(t *testing.T) {
	a := NewAssert(t)
	fsys := NewMemoryFS().AddFile("main.c").AddFile("test.h").AddFile("readme.md")
	res, status, err := Glob("*.c", Options{FS: fsys}) //nolint:exhaustruct
	a.NoError(err)
	a.Equal(StatusSuccess, status)
	a.Equal([]string{"main.c"}, matchNames(res))
	res.Release()
}

// TestScenarioAppendExisting covers the Append flag concatenating onto a
// caller-owned Result (spec.md §4.6).
func TestScenarioAppendExisting(t *testing.T) {
	a := NewAssert(t)
	fsys := NewMemoryFS().AddFile("a.c").AddFile("b.h")
	first, status, err := Glob("*.c", Options{FS: fsys}) //nolint:exhaustruct
	a.NoError(err)
	a.Equal(StatusSuccess, status)
	a.Equal(1, len(first.Matches))

	second, status, err := Glob("*.h", Options{FS: fsys, Flags: Append, Existing: first}) //nolint:exhaustruct
	a.NoError(err)
	a.Equal(StatusSuccess, status)
	a.Equal(2, len(second.Matches))
	second.Release()
}

// TestScenarioAppendModeMismatchAborts covers the panic-avoidance guard:
// mixing an owning Existing buffer into FilterPaths (borrowing mode) aborts
// instead of corrupting the buffer (spec.md §4.6).
func TestScenarioAppendModeMismatchAborts(t *testing.T) {
	a := NewAssert(t)
	owning := newOwningResult()
	owning.Append(Match{Name: "x"})

	_, status, err := FilterPaths("*.c", []string{"a.c"}, Options{Flags: Append, Existing: owning}) //nolint:exhaustruct
	a.NoError(err)
	a.Equal(StatusAborted, status)
}

// TestScenarioDoOffs covers leading-reservation padding (spec.md §6
// "offsets").
func TestScenarioDoOffs(t *testing.T) {
	a := NewAssert(t)
	fsys := NewMemoryFS().AddFile("a.c")
	res, status, err := Glob("*.c", Options{FS: fsys, Flags: DoOffs, Offs: 2}) //nolint:exhaustruct
	a.NoError(err)
	a.Equal(StatusSuccess, status)
	a.Equal(3, len(res.Matches))
	a.Equal("", res.Matches[0].Name)
	a.Equal("", res.Matches[1].Name)
	a.Equal("a.c", res.Matches[2].Name)
	res.Release()
}

// failingReadDirFS wraps an FS and fails every ReadDir call, to exercise
// the Err-flag / ErrFunc abort path without depending on a real filesystem.
type failingReadDirFS struct {
	FS
	err error
}

func (f failingReadDirFS) ReadDir(string) ([]fs.DirEntry, error) { return nil, f.err }

// TestScenarioAbortedTeardownIsIdempotent covers Release() safety on a
// buffer that was already torn down on the StatusAborted path, and that a
// directory-read error aborts the whole call when the Err flag is set.
func TestScenarioAbortedTeardownIsIdempotent(t *testing.T) {
	a := NewAssert(t)
	inner := NewMemoryFS().AddFile("a.c").AddFile("b.c")
	fsys := failingReadDirFS{FS: inner, err: errBoom}

	res, status, err := Glob("*.c", Options{FS: fsys, Flags: Err}) //nolint:exhaustruct
	a.Error(err, "aborting")
	var wrapped *WrappedError
	a.True(errors.As(err, &wrapped))
	a.Equal(StatusAborted, wrapped.Status)
	a.Equal(StatusAborted, status)
	a.Equal(0, len(res.Matches))
	res.Release()
	res.Release() // idempotent double-release
}

// TestIdentityPropertyFilterOwnResults asserts that filtering Glob's own
// output against the same pattern returns every match unchanged.
func TestIdentityPropertyFilterOwnResults(t *testing.T) {
	a := NewAssert(t)
	fsys := NewMemoryFS().AddFile("src/a.c").AddFile("src/b.c").AddFile("src/c.h")
	globbed, status, err := Glob("src/*.c", Options{FS: fsys}) //nolint:exhaustruct
	a.NoError(err)
	a.Equal(StatusSuccess, status)

	paths := matchNames(globbed)
	globbed.Release()

	filtered, status, err := FilterPaths("src/*.c", paths, Options{}) //nolint:exhaustruct
	a.NoError(err)
	a.Equal(StatusSuccess, status)
	a.Equal(len(paths), len(filtered.Matches))
	for i, m := range filtered.Matches {
		a.Equal(paths[i], m.Name)
	}
	filtered.Release()
}

// TestLengthFieldCorrectness guards the count spec.md §6 requires: the
// Result always reports exactly the number of matches actually appended.
func TestLengthFieldCorrectness(t *testing.T) {
	a := NewAssert(t)
	fsys := NewMemoryFS().AddFile("a.c").AddFile("b.c").AddFile("c.c").AddFile("d.h")
	res, _, err := Glob("*.c", Options{FS: fsys}) //nolint:exhaustruct
	a.NoError(err)
	a.Equal(3, len(res.Matches))
	res.Release()
}

// TestTeardownIdempotentOnZeroedBuffer guards Release() against being
// called on a Result that never received any Append.
func TestTeardownIdempotentOnZeroedBuffer(t *testing.T) {
	a := NewAssert(t)
	res := newOwningResult()
	res.Release()
	res.Release()
	a.Equal(0, len(res.Matches))
}

func TestNoMagicFallback(t *testing.T) {
	a := NewAssert(t)
	fsys := NewMemoryFS().AddFile("plain.txt")
	res, status, err := Glob("missing.txt", Options{FS: fsys, Flags: NoMagic}) //nolint:exhaustruct
	a.NoError(err)
	a.Equal(StatusSuccess, status)
	a.Equal([]string{"missing.txt"}, matchNames(res))
	res.Release()
}

func TestStripBasePrefix(t *testing.T) {
	a := NewAssert(t)
	rel, ok := StripBasePrefix("/home/u/p/src/main.c", "/home/u/p")
	a.True(ok)
	a.Equal("src/main.c", rel)

	rel, ok = StripBasePrefix("/home/u/p/src/main.c", "/home/u/p/")
	a.True(ok)
	a.Equal("src/main.c", rel)

	_, ok = StripBasePrefix("/other/file.c", "/home/u/p")
	a.False(ok)
}
