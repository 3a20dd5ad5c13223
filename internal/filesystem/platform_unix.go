//go:build unix

package filesystem

import (
	"io/fs"
	"os/user"
	"strconv"
	"syscall"

	"github.com/IvanShishkin/filemanifest/pkg/models"
)

// fileOwner resolves the owning uid to a user name, falling back to the
// numeric uid when the account database has no entry
func fileOwner(_ string, info fs.FileInfo) models.Attr[string] {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return models.Fail[string](errOwnerUnavailable)
	}
	uid := strconv.FormatUint(uint64(stat.Uid), 10)
	u, err := user.LookupId(uid)
	if err != nil {
		return models.Some(uid)
	}
	return models.Some(u.Username)
}
