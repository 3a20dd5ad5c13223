package core

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/IvanShishkin/filemanifest/internal/config"
	"github.com/IvanShishkin/filemanifest/internal/filesystem"
	"github.com/IvanShishkin/filemanifest/internal/report"
	"github.com/IvanShishkin/filemanifest/pkg/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Scanner produces file manifests and answers directory queries
type Scanner struct {
	config *config.Config
	logger *zap.Logger
}

// NewScanner creates a new scanner instance
func NewScanner(cfg *config.Config, logger *zap.Logger) *Scanner {
	return &Scanner{
		config: cfg,
		logger: logger,
	}
}

// Generate scans every requested directory and writes the manifest to
// outputFile. Unreadable roots and files only reduce the manifest; a failure
// to write the manifest is returned wrapped in report.ErrGeneration.
func (s *Scanner) Generate(opts *Options, outputFile string) (*models.ScanResults, error) {
	paths := opts.Paths()
	if len(paths) == 0 {
		return nil, ErrNoDirectories
	}

	scanID := uuid.NewString()
	logger := s.logger.With(zap.String("scan_id", scanID))

	if outputFile == "" {
		outputFile = fmt.Sprintf("FILEMANIFEST-%s.csv", time.Now().Format("20060102-150405"))
	}
	if abs, err := filepath.Abs(outputFile); err == nil {
		outputFile = abs
	}

	results := &models.ScanResults{
		ScanID:       scanID,
		StartTime:    time.Now(),
		Roots:        paths,
		ManifestPath: outputFile,
	}

	logger.Info("Starting manifest generation",
		zap.Strings("roots", paths),
		zap.String("output", outputFile))

	// Initialize filesystem walker
	walker, err := filesystem.NewWalker(s.config, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize walker: %w", err)
	}

	writer, err := report.CreateManifest(outputFile)
	if err != nil {
		logger.Error("Failed to create manifest", zap.Error(err))
		return nil, err
	}

	// The manifest may live inside a scanned root
	if err := walker.Exclude(writer.Path()); err != nil {
		logger.Warn("Cannot exclude manifest from scan", zap.String("path", writer.Path()), zap.Error(err))
	}

	for _, root := range paths {
		if err := walker.Scan(root, results, writer.Write); err != nil {
			s.abort(writer, logger)
			logger.Error("Failed to write manifest", zap.String("root", root), zap.Error(err))
			if !errors.Is(err, report.ErrGeneration) {
				err = fmt.Errorf("%w: %w", report.ErrGeneration, err)
			}
			return nil, err
		}
	}

	size, err := writer.Close()
	if err != nil {
		logger.Error("Failed to finish manifest", zap.Error(err))
		s.abort(writer, logger)
		return nil, err
	}

	results.ManifestSize = size
	results.EndTime = time.Now()
	results.Duration = results.EndTime.Sub(results.StartTime)

	logger.Info("Manifest completed",
		zap.Duration("duration", results.Duration),
		zap.Int("records", results.RecordsWritten),
		zap.Int("unreadable_roots", results.UnreadableRoots),
		zap.Int64("size", size))

	return results, nil
}

// abort removes a manifest left incomplete by a failed run
func (s *Scanner) abort(writer *report.ManifestWriter, logger *zap.Logger) {
	if err := writer.Abort(); err != nil {
		logger.Warn("Failed to remove incomplete manifest", zap.String("path", writer.Path()), zap.Error(err))
	}
}

// DirectoryTree builds the directory-only tree below root
func (s *Scanner) DirectoryTree(root string) (*models.DirectoryNode, error) {
	builder := filesystem.NewTreeBuilder(s.config.TreeMaxDepth, s.logger)
	tree, err := builder.Build(root)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Directory tree built",
		zap.String("root", tree.Path),
		zap.Int("directories", tree.Count()))
	return tree, nil
}

// RootDirectories lists usable top-level directories, hiding restricted names
func (s *Scanner) RootDirectories() []string {
	enumerator := filesystem.NewRootEnumerator(s.config.RestrictedDirs, s.logger)
	return enumerator.List()
}
