//go:build !linux

package fs

import (
	"os"
	"time"
)

// creationTime falls back to the modification time where birth time is not portable.
func creationTime(_ string, info os.FileInfo) time.Time {
	return info.ModTime()
}
