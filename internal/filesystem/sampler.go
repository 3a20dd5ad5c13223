package filesystem

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"unicode"
	"unicode/utf8"
)

const (
	// SampleLimit is the maximum number of characters kept as a content sample
	SampleLimit = 1024

	// MaxNonPrintableRatio is the largest share of non-printable characters
	// a sample window may contain and still be treated as text
	MaxNonPrintableRatio = 0.05

	// sampleReadBytes always holds SampleLimit characters, even when the last
	// rune in the buffer is cut short
	sampleReadBytes = SampleLimit*utf8.UTFMax + utf8.UTFMax
)

// SampleContent returns the leading text of the file at path, or an empty
// string when the file is empty, missing or looks binary.
func SampleContent(path string) (string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, sampleReadBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	return Sample(data), nil
}

// Sample applies the printability heuristic to raw file bytes
func Sample(data []byte) string {
	window := decodeWindow(data, SampleLimit)
	if !IsPrintable(window) {
		return ""
	}
	return string(window)
}

// IsPrintable reports whether at most MaxNonPrintableRatio of chars are
// non-printable. An empty window is never printable.
func IsPrintable(chars []rune) bool {
	if len(chars) == 0 {
		return false
	}
	nonPrintable := 0
	for _, r := range chars {
		if isNonPrintable(r) {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(len(chars)) <= MaxNonPrintableRatio
}

// decodeWindow decodes up to limit characters of UTF-8, replacing each
// malformed byte with U+FFFD
func decodeWindow(data []byte, limit int) []rune {
	chars := make([]rune, 0, min(len(data), limit))
	for len(data) > 0 && len(chars) < limit {
		r, size := utf8.DecodeRune(data)
		chars = append(chars, r)
		data = data[size:]
	}
	return chars
}

func isNonPrintable(r rune) bool {
	switch r {
	case '\r', '\n', '\t':
		return false
	}
	return !isDefined(r) || isISOControl(r)
}

// isISOControl matches C0 controls, DEL and C1 controls
func isISOControl(r rune) bool {
	return r <= 0x1f || (r >= 0x7f && r <= 0x9f)
}

// isDefined reports whether r is assigned in the Unicode tables
func isDefined(r rune) bool {
	return unicode.In(r, unicode.L, unicode.M, unicode.N, unicode.P, unicode.S, unicode.Z, unicode.C)
}
