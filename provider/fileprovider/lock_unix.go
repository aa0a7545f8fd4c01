//go:build unix

package fileprovider

import (
	"os"

	"golang.org/x/sys/unix"
)

// appendLocked writes b under an exclusive advisory lock so that records
// from other processes appending to the same file never interleave.
func appendLocked(f *os.File, b []byte) error {
	fd := int(f.Fd())
	if err := unix.Flock(fd, unix.LOCK_EX); err != nil {
		return err
	}
	defer unix.Flock(fd, unix.LOCK_UN)

	_, err := f.Write(b)
	return err
}
