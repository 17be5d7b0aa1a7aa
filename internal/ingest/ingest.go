package ingest

import "time"

// Document is one input file picked up for parsing.
type Document struct {
	Path    string
	Ext     string
	Size    int64
	ModTime time.Time
}

// DirStats summarizes a directory scan.
type DirStats struct {
	Scanned uint32
	Matched uint32
	Hidden  uint32
	Failed  uint32
}

// ScanOptions controls which files a scan yields.
type ScanOptions struct {
	Recursive   bool
	AllowedExts map[string]struct{} // lowercased sans '.'; nil -> constants.AllowedExtensions
}
