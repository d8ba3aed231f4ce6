//go:build !unix

package token

import "os"

// fileMapping is unavailable on non-unix platforms; IndexedRead falls back
// to File's ReadAt path.
type fileMapping struct{}

func mmapFile(f *os.File) fileMapping { return fileMapping{} }

func (m fileMapping) ok() bool                     { return false }
func (m fileMapping) readAt(buf []byte, _ int) int { return 0 }
func (m fileMapping) close()                       {}
