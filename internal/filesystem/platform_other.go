//go:build !linux && !darwin && !windows

package filesystem

import (
	"io/fs"
	"time"

	"github.com/IvanShishkin/filemanifest/pkg/models"
)

func creationTime(string, fs.FileInfo) models.Attr[time.Time] {
	return models.Fail[time.Time](errBirthTimeUnsupported)
}

func posixSupported(string) bool {
	return true
}
