//go:build !unix && !windows

package filesystem

import (
	"io/fs"

	"github.com/IvanShishkin/filemanifest/pkg/models"
)

func fileOwner(string, fs.FileInfo) models.Attr[string] {
	return models.Fail[string](errOwnerUnavailable)
}
