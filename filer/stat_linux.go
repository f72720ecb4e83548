package filer

import (
	"fmt"
	"os"
)

// Stat returns a *FileInfo struct w/ attached os.FileInfo interface.
// Linux does not expose a file birth time through syscall.Stat_t, and the
// inode change time moves on chmod and rename, so CreateTime is left zero
// here. Callers fall back to ModTime when CreateTime is zero.
func Stat(fileName string) (*FileInfo, error) {
	fileStat, err := os.Stat(fileName)
	if err != nil {
		return nil, fmt.Errorf("stat err: %w", err)
	}

	return &FileInfo{FileInfo: fileStat}, nil
}
