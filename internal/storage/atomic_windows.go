//go:build windows

package storage

import "os"

// writeFileAtomic replaces filename through a temporary sibling file;
// renameio does not support Windows.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return writeFileViaRename(filename, data, perm)
}
