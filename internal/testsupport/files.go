package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteResultFile places a file of size bytes under dir so a FakeServer can
// serve it from /results/<name>. Byte i holds ResultByte(i), which lets
// download tests compare content as well as length. It returns the path.
func WriteResultFile(t testing.TB, dir, name string, size int) string {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	data := make([]byte, size)
	for i := range data {
		data[i] = ResultByte(i)
	}
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write result %s: %v", path, err)
	}
	return path
}

// ResultByte is the content pattern used by WriteResultFile.
func ResultByte(i int) byte { return byte(i % 251) }
