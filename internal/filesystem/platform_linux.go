//go:build linux

package filesystem

import (
	"io/fs"
	"time"

	"golang.org/x/sys/unix"

	"github.com/IvanShishkin/filemanifest/pkg/models"
)

// creationTime reads the birth time through statx. Older kernels and some
// filesystems do not report it.
func creationTime(path string, _ fs.FileInfo) models.Attr[time.Time] {
	var stx unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, path, 0, unix.STATX_BTIME, &stx); err != nil {
		return models.Fail[time.Time](err)
	}
	if stx.Mask&unix.STATX_BTIME == 0 {
		return models.Fail[time.Time](errBirthTimeUnsupported)
	}
	return models.Some(time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec)))
}

// ntfsSuperMagic is reported by the ntfs3 and legacy ntfs drivers
const ntfsSuperMagic = 0x5346544e

// posixSupported probes the filesystem type. FAT, exFAT and NTFS mounts
// report synthetic mode bits that do not reflect real permissions.
func posixSupported(path string) bool {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return false
	}
	switch int64(st.Type) {
	case unix.MSDOS_SUPER_MAGIC, unix.EXFAT_SUPER_MAGIC, ntfsSuperMagic:
		return false
	}
	return true
}
