package models

import "time"

// ScanResults summarises one manifest generation run
type ScanResults struct {
	ScanID    string        `json:"scan_id"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
	Roots     []string      `json:"roots"`

	RecordsWritten  int `json:"records_written"`
	SkippedEntries  int `json:"skipped_entries"`
	UnreadableRoots int `json:"unreadable_roots"`

	// Field-level degradations
	ChecksumErrors int `json:"checksum_errors"`
	SampleErrors   int `json:"sample_errors"`
	OwnerErrors    int `json:"owner_errors"`

	ManifestPath string `json:"manifest_path,omitempty"`
	ManifestSize int64  `json:"manifest_size"`
}
