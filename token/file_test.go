package token

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestFileStreamRead(t *testing.T) {
	path := writeTempFile(t, "the quick brown fox")
	f, err := NewFile(path, 4)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	defer f.Close()

	buf := NewBuffer[byte](f)
	var got []byte
	for {
		tok, ok := buf.ReadNext()
		if !ok {
			break
		}
		got = append(got, tok)
	}
	if string(got) != "the quick brown fox" {
		t.Fatalf("got %q", got)
	}
}

func TestFileIndexedRead(t *testing.T) {
	path := writeTempFile(t, "the quick brown fox")
	f, err := NewFile(path, 8)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	defer f.Close()

	buf := NewBuffer[byte](f)
	out := make([]byte, 5)
	n := buf.ReadIndexed(4, out)
	if n != 5 || string(out) != "quick" {
		t.Errorf("ReadIndexed(4,5) = %q (%d), want %q", out[:n], n, "quick")
	}
}

func TestFileOpenFailure(t *testing.T) {
	if _, err := NewFile(filepath.Join(t.TempDir(), "missing.txt"), 0); err == nil {
		t.Error("expected error opening nonexistent file")
	}
}
