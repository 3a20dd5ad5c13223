//go:build windows

package filesystem

import (
	"io/fs"
	"syscall"
	"time"

	"golang.org/x/sys/windows"

	"github.com/IvanShishkin/filemanifest/pkg/models"
)

// creationTime gets the creation time from FileInfo (Windows)
func creationTime(_ string, info fs.FileInfo) models.Attr[time.Time] {
	stat, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return models.Fail[time.Time](errBirthTimeUnsupported)
	}
	return models.Some(time.Unix(0, stat.CreationTime.Nanoseconds()))
}

// fileOwner looks up the owner SID of the file's security descriptor
func fileOwner(path string, _ fs.FileInfo) models.Attr[string] {
	sd, err := windows.GetNamedSecurityInfo(path, windows.SE_FILE_OBJECT, windows.OWNER_SECURITY_INFORMATION)
	if err != nil {
		return models.Fail[string](err)
	}
	owner, _, err := sd.Owner()
	if err != nil {
		return models.Fail[string](err)
	}
	account, domain, _, err := owner.LookupAccount("")
	if err != nil {
		return models.Some(owner.String())
	}
	if domain == "" {
		return models.Some(account)
	}
	return models.Some(domain + `\` + account)
}

// NTFS and FAT volumes carry ACLs or nothing, never POSIX bits
func posixSupported(string) bool {
	return false
}
