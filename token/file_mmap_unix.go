//go:build unix

package token

import (
	"os"

	"golang.org/x/sys/unix"
)

// fileMapping is a read-only mmap of a file's contents, giving IndexedRead
// O(1) random access instead of a ReadAt syscall per backreference replay.
type fileMapping struct {
	data []byte
}

func mmapFile(f *os.File) fileMapping {
	info, err := f.Stat()
	if err != nil || info.Size() == 0 {
		return fileMapping{}
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return fileMapping{}
	}
	return fileMapping{data: data}
}

func (m fileMapping) ok() bool { return m.data != nil }

func (m fileMapping) readAt(buf []byte, start int) int {
	if start < 0 || start >= len(m.data) {
		return 0
	}
	return copy(buf, m.data[start:])
}

func (m fileMapping) close() {
	if m.data != nil {
		_ = unix.Munmap(m.data)
	}
}
