//go:build !unix

package fileprovider

import "os"

// appendLocked writes b in a single call; only the in-process mutex
// serializes writers on platforms without flock.
func appendLocked(f *os.File, b []byte) error {
	_, err := f.Write(b)
	return err
}
