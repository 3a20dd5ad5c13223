package models

import (
	"strconv"
	"time"
)

// ManifestRecord describes one scanned file. Values only, no OS handles.
type ManifestRecord struct {
	FileName         string // Base name including extension
	FileSizeKB       int64  // Size in KB, rounded up
	FileExtension    string // Extension without dot
	LastModifiedTime string // Formatted modification time
	CreationTime     string // Formatted creation time
	Author           string // Owning principal
	FilePath         string // Absolute path
	FilePermissions  string // rwxr-xr-x style, empty if unsupported
	Checksum         string // Lowercase hex digest
	ContentSample    string // Leading text sample
}

// Row returns the record fields in manifest column order.
func (r ManifestRecord) Row() []string {
	return []string{
		r.FileName,
		strconv.FormatInt(r.FileSizeKB, 10),
		r.FileExtension,
		r.LastModifiedTime,
		r.CreationTime,
		r.Author,
		r.FilePath,
		r.FilePermissions,
		r.Checksum,
		r.ContentSample,
	}
}

// FileInfo contains the raw metadata gathered for a file before formatting
type FileInfo struct {
	Path         string
	Name         string
	Size         int64
	ModTime      time.Time
	CreationTime Attr[time.Time]
	Owner        Attr[string]
	Permissions  Attr[string]
}
