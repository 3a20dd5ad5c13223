//go:build darwin

package filesystem

import (
	"io/fs"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"github.com/IvanShishkin/filemanifest/pkg/models"
)

// creationTime gets the birth time from FileInfo (Darwin)
func creationTime(_ string, info fs.FileInfo) models.Attr[time.Time] {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return models.Fail[time.Time](errBirthTimeUnsupported)
	}
	return models.Some(time.Unix(stat.Birthtimespec.Sec, stat.Birthtimespec.Nsec))
}

func posixSupported(path string) bool {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return false
	}
	switch unix.ByteSliceToString(st.Fstypename[:]) {
	case "msdos", "exfat", "ntfs":
		return false
	}
	return true
}
