// Package files handles filesystem concerns around the pipeline:
// discovering payroll source files and creating timestamped export
// folders.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// TimestampFormat is the timestamp used in export file and folder names.
const TimestampFormat = "2006-01-02_15-04-05"

// sourceExtensions are the readable payroll source formats.
var sourceExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xls":  true,
}

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides source file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindSourceFiles finds all payroll source files (.csv, .xlsx, .xls) in
// the given directory. Excel lock files ("~$...") are skipped. Results
// are sorted by name: directory-listing order is filesystem-dependent,
// and the batch needs a deterministic processing order.
func (d *Discovery) FindSourceFiles(dir string) ([]FileInfo, error) {
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasPrefix(name, "~$") {
			continue
		}
		if !sourceExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// CreateExportFolder creates a timestamped folder for report exports
// under the given root and returns its path.
func CreateExportFolder(root string, now time.Time) (string, error) {
	folder := filepath.Join(root, fmt.Sprintf("payroll_exports_%s", now.Format(TimestampFormat)))
	if err := os.MkdirAll(folder, 0755); err != nil {
		return "", fmt.Errorf("failed to create export folder %s: %w", folder, err)
	}
	return folder, nil
}
