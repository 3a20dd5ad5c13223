package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/IvanShishkin/filemanifest/pkg/models"
	"go.uber.org/zap"
)

// ErrNotDirectory is returned when a tree is requested for something that is not a directory
var ErrNotDirectory = errors.New("the provided path must be a directory")

// DefaultTreeMaxDepth bounds tree recursion when no ceiling is configured
const DefaultTreeMaxDepth = 64

// TreeBuilder builds directory-only trees for path pickers
type TreeBuilder struct {
	logger   *zap.Logger
	maxDepth int
}

// NewTreeBuilder creates a tree builder. maxDepth <= 0 selects DefaultTreeMaxDepth.
func NewTreeBuilder(maxDepth int, logger *zap.Logger) *TreeBuilder {
	if maxDepth <= 0 {
		maxDepth = DefaultTreeMaxDepth
	}
	return &TreeBuilder{logger: logger, maxDepth: maxDepth}
}

// Build returns the directory tree rooted at root. Files are left out,
// children are sorted case-insensitively, and directories that cannot be
// listed for permission reasons are dropped.
func (b *TreeBuilder) Build(root string) (*models.DirectoryNode, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}

	node, err := b.buildNode(abs, 0, make(map[string]bool))
	if err != nil {
		b.logger.Warn("Skipping directory contents", zap.String("path", abs), zap.Error(err))
	}
	return node, nil
}

// buildNode lists dir and recurses into subdirectories. ancestors holds the
// resolved paths of the directories above dir so symlink loops are cut.
func (b *TreeBuilder) buildNode(dir string, depth int, ancestors map[string]bool) (*models.DirectoryNode, error) {
	node := &models.DirectoryNode{
		Name:     filepath.Base(dir),
		Path:     dir,
		Children: []*models.DirectoryNode{},
	}

	resolved := resolvePath(dir)
	ancestors[resolved] = true
	defer delete(ancestors, resolved)

	if depth >= b.maxDepth {
		b.logger.Debug("Tree depth limit reached", zap.String("path", dir), zap.Int("depth", depth))
		return node, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return node, err
	}

	for _, entry := range entries {
		child := filepath.Join(dir, entry.Name())

		// Stat follows links so symlinked directories are part of the tree
		info, err := os.Stat(child)
		if err != nil {
			b.logger.Debug("Skipping entry", zap.String("path", child), zap.Error(err))
			continue
		}
		if !info.IsDir() {
			continue
		}

		if ancestors[resolvePath(child)] {
			b.logger.Warn("Skipping directory cycle", zap.String("path", child))
			continue
		}

		childNode, err := b.buildNode(child, depth+1, ancestors)
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				b.logger.Warn("Skipping directory", zap.String("path", child), zap.Error(err))
				continue
			}
			b.logger.Info("Skipping directory contents", zap.String("path", child), zap.Error(err))
		}
		node.Children = append(node.Children, childNode)
	}

	slices.SortFunc(node.Children, func(x, y *models.DirectoryNode) int {
		if c := strings.Compare(strings.ToLower(x.Name), strings.ToLower(y.Name)); c != 0 {
			return c
		}
		return strings.Compare(x.Name, y.Name)
	})

	return node, nil
}

func resolvePath(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	return resolved
}
