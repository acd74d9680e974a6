package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains the resolved filesystem locations the pipeline writes
// to. All relative configuration values resolve against the executable
// directory, never the current working directory, so the tool behaves
// the same regardless of where it is launched from.
type Paths struct {
	ExecutableDir string
	DatabaseFile  string
	ExportsDir    string
	LogsDir       string
}

// ResolvePaths resolves the configured locations against the executable
// directory.
func ResolvePaths(cfg *Config) (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}

	exeDir := filepath.Dir(exe)

	return &Paths{
		ExecutableDir: exeDir,
		DatabaseFile:  resolveAgainst(exeDir, cfg.Database.Path),
		ExportsDir:    resolveAgainst(exeDir, cfg.Export.Dir),
		LogsDir:       resolveAgainst(exeDir, filepath.Dir(cfg.Logging.FilePath)),
	}, nil
}

// EnsureDirectories creates the writable directories if they do not exist.
// The database file's parent directory is created; the file itself is
// owned by the store.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.ExportsDir,
		p.LogsDir,
		filepath.Dir(p.DatabaseFile),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// GetLogPath returns the path for a log file in the logs directory.
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// GetExportPath returns the path for a file in the exports directory.
func (p *Paths) GetExportPath(filename string) string {
	return filepath.Join(p.ExportsDir, filename)
}

func resolveAgainst(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
