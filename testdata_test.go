package zlob

import (
	"os"
	"path/filepath"
	"testing"
)

// testData mirrors cling-sync's lib.TestData singleton: a namespace for
// fixture builders shared across this package's test files.
type testData struct{}

var td = testData{} //nolint:gochecknoglobals

// NewRealFS materializes files under a fresh tb.TempDir() and returns a
// RealFS rooted there, cleaned up automatically when the test ends.
func (testData) NewRealFS(tb testing.TB, files ...string) *RealFS {
	tb.Helper()
	dir := tb.TempDir()
	for _, f := range files {
		full := filepath.Join(dir, f)
		if err := os.MkdirAll(filepath.Dir(full), 0o700); err != nil {
			tb.Fatal(err)
		}
		if err := os.WriteFile(full, nil, 0o600); err != nil {
			tb.Fatal(err)
		}
	}
	return NewRealFS(dir)
}
