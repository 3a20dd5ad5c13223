package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/IvanShishkin/filemanifest/internal/config"
	"github.com/IvanShishkin/filemanifest/pkg/models"
	"go.uber.org/zap"
)

// RecordFunc receives each manifest record as soon as it is built. A
// returned error stops the scan and is passed back to the caller.
type RecordFunc func(rec models.ManifestRecord) error

// Walker scans the immediate children of a directory and builds manifest records
type Walker struct {
	logger      *zap.Logger
	checksummer *Checksummer
	location    *time.Location
	timeFormat  string
	excluded    []fs.FileInfo
}

// NewWalker creates a new filesystem walker
func NewWalker(cfg *config.Config, logger *zap.Logger) (*Walker, error) {
	checksummer, err := NewChecksummer(cfg.ChecksumAlgorithm)
	if err != nil {
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = config.DefaultTimeFormat
	}

	logger.Debug("Walker initialized",
		zap.String("checksum", checksummer.Algorithm()),
		zap.String("timezone", loc.String()))

	return &Walker{
		logger:      logger,
		checksummer: checksummer,
		location:    loc,
		timeFormat:  timeFormat,
	}, nil
}

// Exclude keeps the file at path out of every later scan, even when it is
// reached through a different path. The file must already exist.
func (w *Walker) Exclude(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	w.excluded = append(w.excluded, info)
	return nil
}

func (w *Walker) isExcluded(info fs.FileInfo) bool {
	for _, ex := range w.excluded {
		if os.SameFile(ex, info) {
			return true
		}
	}
	return false
}

// Scan visits the files directly inside root. Subdirectories are not entered.
// An unreadable root is logged and produces no records; only an error from fn
// aborts the scan. results may be nil.
func (w *Walker) Scan(root string, results *models.ScanResults, fn RecordFunc) error {
	if results == nil {
		results = &models.ScanResults{}
	}

	start, err := resolveRoot(root)
	if err != nil {
		w.logger.Warn("Error reading directory", zap.String("path", root), zap.Error(err))
		results.UnreadableRoots++
		return nil
	}

	return filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == start {
				w.logger.Warn("Error reading directory", zap.String("path", path), zap.Error(err))
				results.UnreadableRoots++
				return nil
			}
			w.logger.Info("Error accessing path", zap.String("path", path), zap.Error(err))
			results.SkippedEntries++
			return nil
		}

		if d.IsDir() {
			if path == start {
				return nil
			}
			return filepath.SkipDir
		}

		info, ok := w.fileInfo(path, d)
		if !ok {
			results.SkippedEntries++
			return nil
		}
		if w.isExcluded(info) {
			w.logger.Debug("Skipping excluded file", zap.String("path", path))
			return nil
		}

		rec := w.buildRecord(path, info, results)
		results.RecordsWritten++
		return fn(rec)
	})
}

// resolveRoot follows a symlinked root so its directory is walked
func resolveRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	info, err := os.Lstat(abs)
	if err != nil {
		return "", err
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		return filepath.EvalSymlinks(abs)
	}
	return abs, nil
}

// fileInfo returns metadata for regular files and symlinks to regular files.
// Everything else (directories behind links, devices, pipes, sockets) is skipped.
func (w *Walker) fileInfo(path string, d fs.DirEntry) (fs.FileInfo, bool) {
	var (
		info fs.FileInfo
		err  error
	)
	if d.Type()&fs.ModeSymlink != 0 {
		info, err = os.Stat(path)
	} else {
		info, err = d.Info()
	}
	if err != nil {
		w.logger.Info("Error processing file", zap.String("path", path), zap.Error(err))
		return nil, false
	}
	if !info.Mode().IsRegular() {
		w.logger.Debug("Skipping non-regular entry",
			zap.String("path", path),
			zap.String("mode", info.Mode().String()))
		return nil, false
	}
	return info, true
}

// buildRecord fills every field independently; failures leave the field empty
func (w *Walker) buildRecord(path string, info fs.FileInfo, results *models.ScanResults) models.ManifestRecord {
	meta := ReadMetadata(path, info)

	checksum := models.From(w.checksummer.Sum(path))
	if !checksum.OK() {
		results.ChecksumErrors++
		w.logger.Debug("Checksum unavailable", zap.String("path", path), zap.Error(checksum.Err))
	}

	sample := models.From(SampleContent(path))
	if !sample.OK() {
		results.SampleErrors++
		w.logger.Debug("Content sample unavailable", zap.String("path", path), zap.Error(sample.Err))
	}

	if !meta.Owner.OK() {
		results.OwnerErrors++
		w.logger.Debug("Owner unavailable", zap.String("path", path), zap.Error(meta.Owner.Err))
	}
	if !meta.Permissions.OK() {
		w.logger.Debug("Permissions unavailable", zap.String("path", path), zap.Error(meta.Permissions.Err))
	}

	return models.ManifestRecord{
		FileName:         meta.Name,
		FileSizeKB:       SizeKB(meta.Size),
		FileExtension:    GetExtension(meta.Name),
		LastModifiedTime: w.formatTime(meta.ModTime),
		// Filesystems without a birth time report the modification time
		CreationTime:    w.formatTime(meta.CreationTime.Or(meta.ModTime)),
		Author:          meta.Owner.Get(),
		FilePath:        path,
		FilePermissions: meta.Permissions.Get(),
		Checksum:        checksum.Get(),
		ContentSample:   sample.Get(),
	}
}

func (w *Walker) formatTime(t time.Time) string {
	return t.In(w.location).Format(w.timeFormat)
}

// GetExtension returns the text after the last dot of a file name. Names
// with no dot, a leading dot only, or a trailing dot have no extension.
func GetExtension(name string) string {
	name = filepath.Base(name)
	dot := strings.LastIndexByte(name, '.')
	if dot <= 0 || dot == len(name)-1 {
		return ""
	}
	return name[dot+1:]
}
