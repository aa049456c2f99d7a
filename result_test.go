package zlob

import "testing"

func TestResultOwningAppendRelease(t *testing.T) {
	a := NewAssert(t)
	res := newOwningResult()
	res.Append(Match{Name: "a.c"})
	res.Append(Match{Name: "b.c"})
	a.Equal(2, len(res.Matches))
	res.Release()
	a.Equal(0, len(res.Matches))
	// Double-release is a safe no-op.
	res.Release()
}

func TestResultBorrowingAppendPanics(t *testing.T) {
	a := NewAssert(t)
	res := newBorrowingResult([]Match{{Name: "x"}})
	defer func() {
		r := recover()
		a.NotEqual(nil, r, "Append on a borrowed Result must panic")
	}()
	res.Append(Match{Name: "y"})
}

func TestResultBorrowingReleaseIsNoop(t *testing.T) {
	a := NewAssert(t)
	paths := []string{"a", "b"}
	res := newBorrowingResult([]Match{{Name: paths[0]}, {Name: paths[1]}})
	res.Release()
	a.Equal(0, len(res.Matches))
	// Releasing twice must not panic.
	res.Release()
}

func TestResultPoolStartsEmpty(t *testing.T) {
	a := NewAssert(t)
	res1 := newOwningResult()
	res1.Append(Match{Name: "a"})
	res1.Release()

	res2 := newOwningResult()
	a.Equal(0, len(res2.Matches))
	res2.Release()
}
