//go:build !windows

package storage

import (
	"os"

	"github.com/google/renameio/v2"
)

// writeFileAtomic writes data through a temporary file renamed into place, so
// readers never observe a partial report.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(filename, data, perm)
}
