package store

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// checkWritable verifies the process can read, write, and traverse the
// directory before the store commits to it.
func checkWritable(path string) error {
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return fmt.Errorf("directory %s is not writable: %w", path, err)
	}
	return nil
}
