package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/IvanShishkin/filemanifest/pkg/models"
)

// writeTextTree prints the tree with box-drawing branches
func writeTextTree(w io.Writer, root *models.DirectoryNode) error {
	var sb strings.Builder
	sb.WriteString(root.Path + "\n")
	writeBranches(&sb, root.Children, "")
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeBranches(sb *strings.Builder, nodes []*models.DirectoryNode, prefix string) {
	for i, n := range nodes {
		branch, next := "├── ", "│   "
		if i == len(nodes)-1 {
			branch, next = "└── ", "    "
		}
		sb.WriteString(prefix + branch + n.Name + "\n")
		writeBranches(sb, n.Children, prefix+next)
	}
}

func writeTextList(w io.Writer, items []string) error {
	for _, item := range items {
		if _, err := fmt.Fprintln(w, item); err != nil {
			return err
		}
	}
	return nil
}

// Summary renders a scan summary as plain text
func Summary(results *models.ScanResults) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Scan ID:          %s\n", results.ScanID))
	sb.WriteString(fmt.Sprintf("Roots:            %s\n", strings.Join(results.Roots, ", ")))
	sb.WriteString(fmt.Sprintf("Duration:         %s\n", FormatDuration(results.Duration)))
	sb.WriteString(fmt.Sprintf("Records:          %d\n", results.RecordsWritten))
	sb.WriteString(fmt.Sprintf("Skipped Entries:  %d\n", results.SkippedEntries))
	sb.WriteString(fmt.Sprintf("Unreadable Roots: %d\n", results.UnreadableRoots))
	sb.WriteString(fmt.Sprintf("Checksum Errors:  %d\n", results.ChecksumErrors))
	sb.WriteString(fmt.Sprintf("Sample Errors:    %d\n", results.SampleErrors))
	sb.WriteString(fmt.Sprintf("Owner Errors:     %d\n", results.OwnerErrors))
	sb.WriteString(fmt.Sprintf("Manifest:         %s (%d bytes)\n", results.ManifestPath, results.ManifestSize))
	return sb.String()
}
