package report

import (
	"fmt"
	"io"
	"time"

	"github.com/IvanShishkin/filemanifest/pkg/models"
	"gopkg.in/yaml.v3"
)

// Supported output formats for tree and root queries
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FormatDuration formats duration to a human-readable string with max 2 decimal places
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		// Milliseconds
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	} else if d < time.Minute {
		// Seconds
		return fmt.Sprintf("%.2fs", d.Seconds())
	} else if d < time.Hour {
		// Minutes and seconds
		mins := int(d.Minutes())
		secs := d.Seconds() - float64(mins*60)
		return fmt.Sprintf("%dm%.2fs", mins, secs)
	}
	// Hours, minutes and seconds
	hours := int(d.Hours())
	mins := int(d.Minutes()) - hours*60
	secs := d.Seconds() - float64(hours*3600) - float64(mins*60)
	return fmt.Sprintf("%dh%dm%.2fs", hours, mins, secs)
}

// WriteTree renders a directory tree. Structured formats wrap the root in a
// one-element list, the shape path pickers expect.
func WriteTree(w io.Writer, format string, root *models.DirectoryNode) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, []*models.DirectoryNode{root})
	case FormatYAML:
		return writeYAML(w, []*models.DirectoryNode{root})
	case FormatText, "":
		return writeTextTree(w, root)
	}
	return fmt.Errorf("unknown output format: %s", format)
}

// WriteRoots renders the root listing
func WriteRoots(w io.Writer, format string, roots []string) error {
	if roots == nil {
		roots = []string{}
	}
	switch format {
	case FormatJSON:
		return writeJSON(w, roots)
	case FormatYAML:
		return writeYAML(w, roots)
	case FormatText, "":
		return writeTextList(w, roots)
	}
	return fmt.Errorf("unknown output format: %s", format)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
