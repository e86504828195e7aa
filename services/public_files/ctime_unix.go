//go:build linux || darwin || freebsd

package publicfiles

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// changeTime reports the inode change time, falling back to the
// modification time when the path can no longer be stat'ed.
func changeTime(path string, info os.FileInfo) time.Time {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return info.ModTime()
	}
	sec, nsec := st.Ctim.Unix()
	return time.Unix(sec, nsec)
}
