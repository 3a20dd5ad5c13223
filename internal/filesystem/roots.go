package filesystem

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// RootEnumerator lists the top-level directories a user may pick from
type RootEnumerator struct {
	restricted []string
	logger     *zap.Logger
	roots      func() []string
}

// RootOption customises a RootEnumerator
type RootOption func(*RootEnumerator)

// WithRoots replaces the platform filesystem roots
func WithRoots(roots func() []string) RootOption {
	return func(e *RootEnumerator) {
		e.roots = roots
	}
}

// NewRootEnumerator creates an enumerator that hides the restricted names
func NewRootEnumerator(restricted []string, logger *zap.Logger, opts ...RootOption) *RootEnumerator {
	e := &RootEnumerator{
		restricted: slices.Clone(restricted),
		logger:     logger,
		roots:      platformRoots,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// List returns the directories directly under each filesystem root, minus
// restricted names. A root that cannot be listed is returned as itself.
func (e *RootEnumerator) List() []string {
	var result []string
	for _, root := range e.roots() {
		entries, err := os.ReadDir(root)
		if err != nil {
			e.logger.Info("Cannot list root, using it directly", zap.String("root", root), zap.Error(err))
			result = append(result, root)
			continue
		}

		for _, entry := range entries {
			if e.IsRestricted(entry.Name()) {
				continue
			}
			path := filepath.Join(root, entry.Name())
			info, err := os.Stat(path)
			if err != nil {
				e.logger.Debug("Skipping root entry", zap.String("path", path), zap.Error(err))
				continue
			}
			if info.IsDir() {
				result = append(result, path)
			}
		}
	}
	return result
}

// IsRestricted reports whether name matches the deny-list, ignoring case
func (e *RootEnumerator) IsRestricted(name string) bool {
	for _, r := range e.restricted {
		if strings.EqualFold(name, r) {
			return true
		}
	}
	return false
}
