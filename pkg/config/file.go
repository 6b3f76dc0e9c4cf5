package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// GetConfigPath returns the path of filename inside the kdbg config
// directory. $XDG_CONFIG_HOME takes precedence, then ~/.config, then the
// system temp directory when no home can be determined.
func GetConfigPath(filename string) string {
	if xdgHome, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && xdgHome != "" {
		return filepath.Join(xdgHome, "kdbg", filename)
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".config", "kdbg", filename)
	}

	tmpPath := filepath.Join(os.TempDir(), "kdbg", filename)
	slog.Warn("no user config directory, using temp path",
		slog.String("path", tmpPath),
		slog.Any("error", err),
	)

	return tmpPath
}

// ReadFile reads a config document, rejecting directories and special files
// up front so the caller sees a clear error instead of a raw read failure.
func ReadFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%s: path is a directory", path)
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: not a regular file", path)
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the user's own flags and env.
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// regularFileExists reports whether path names an existing regular file.
// Directories and special files are errors; a missing path is simply false.
func regularFileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil

	case err != nil:
		return false, fmt.Errorf("stat file: %w", err)

	case info.IsDir():
		return false, fmt.Errorf("%s: path is a directory", path)

	case !info.Mode().IsRegular():
		return false, fmt.Errorf("%s: not a regular file", path)
	}

	return true, nil
}

// WriteIfNotExists writes data to path unless a regular file is already
// there. Parent directories are created as needed.
func WriteIfNotExists(path string, data []byte) error {
	exists, err := regularFileExists(path)
	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	return writeFile(path, data)
}

// WriteDefaultFile writes defaultData to path. An existing file is left
// alone unless force is set, in which case it is renamed to a timestamped
// .old backup first. kind names the document in log output.
func WriteDefaultFile(path string, defaultData []byte, force bool, kind string) error {
	exists, err := regularFileExists(path)
	if err != nil {
		return err
	}

	if exists && !force {
		slog.Debug("file already exists, skipping write",
			slog.String("type", kind),
			slog.String("path", path),
		)

		return nil
	}

	if exists {
		backup := fmt.Sprintf("%s.%d.old", path, time.Now().UnixNano())
		slog.Info("backing up existing file",
			slog.String("type", kind),
			slog.String("path", backup),
		)

		err = os.Rename(path, backup)
		if err != nil {
			return fmt.Errorf("back up %s file: %w", kind, err)
		}
	}

	slog.Info("write default file",
		slog.String("type", kind),
		slog.String("path", path),
	)

	return writeFile(path, defaultData)
}

func writeFile(path string, data []byte) error {
	err := os.MkdirAll(filepath.Dir(path), 0o700)
	if err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	err = os.WriteFile(path, data, 0o600)
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}
