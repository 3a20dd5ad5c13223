package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/IvanShishkin/filemanifest/pkg/models"
)

var (
	errBirthTimeUnsupported = errors.New("creation time not recorded by this filesystem")
	errOwnerUnavailable     = errors.New("file owner not available on this platform")
	errPosixUnsupported     = errors.New("POSIX file attributes are not supported on this filesystem")
)

// ReadMetadata gathers OS metadata for the file at path. info must describe
// the file itself (symlinks already resolved). Each attribute is read
// independently and a failure only affects that attribute.
func ReadMetadata(path string, info fs.FileInfo) models.FileInfo {
	return models.FileInfo{
		Path:         path,
		Name:         filepath.Base(path),
		Size:         info.Size(),
		ModTime:      info.ModTime(),
		CreationTime: creationTime(path, info),
		Owner:        fileOwner(path, info),
		Permissions:  filePermissions(path, info),
	}
}

// SizeKB converts a byte count to kilobytes, rounding up
func SizeKB(size int64) int64 {
	if size <= 0 {
		return 0
	}
	return (size + 1023) / 1024
}

// filePermissions renders the permission bits as rwxrwxrwx when the
// containing filesystem carries POSIX attributes
func filePermissions(path string, info fs.FileInfo) models.Attr[string] {
	if !posixSupported(path) {
		return models.Fail[string](errPosixUnsupported)
	}
	return models.Some(PermissionString(info.Mode()))
}

// PermissionString returns the nine-character rwx form of mode's permission bits
func PermissionString(mode fs.FileMode) string {
	// FileMode.String prefixes the type letter, "-" for plain permissions
	return mode.Perm().String()[1:]
}
