package ingest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/garvonious-ui/cuervo-intel-sub000/internal/common"
)

// ScanDirectory lists the documents under root in sorted path order. Only
// the top level is read unless opts.Recursive is set; hidden files and
// directories are always skipped. An unreadable root is an error, an
// unreadable entry is counted in stats and skipped.
func ScanDirectory(root string, opts ScanOptions) ([]Document, DirStats, error) {
	var stats DirStats
	if strings.TrimSpace(root) == "" {
		return nil, stats, common.NewAppError("INVALID_INPUT", "input directory is required", common.ErrInvalidInput)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, stats, fmt.Errorf("read input dir %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, stats, common.NewAppError("INVALID_INPUT", fmt.Sprintf("%s is not a directory", root), common.ErrInvalidInput)
	}

	var docs []Document
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if path == root {
			return walkErr
		}
		stats.Scanned++
		if walkErr != nil {
			stats.Failed++
			return nil
		}
		if IsHidden(path) {
			stats.Hidden++
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if !opts.Recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if !extAllowed(path, opts.AllowedExts) {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			stats.Failed++
			return nil
		}
		stats.Matched++
		docs = append(docs, Document{
			Path:    path,
			Ext:     strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
		})
		return nil
	})
	if err != nil && !errors.Is(err, filepath.SkipDir) {
		return nil, stats, fmt.Errorf("walk: %w", err)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, stats, nil
}
