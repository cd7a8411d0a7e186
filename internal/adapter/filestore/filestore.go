// Package filestore implements the domain repositories on plain text files in
// a single data directory:
//
//	users.txt              name|age|gender|dd/MM/yyyy HH:mm:ss
//	<name>_records.txt     timestamp|weight|height|bmi|category
//	<sanitized>_Report.txt exported report
//
// The format has no escaping; names, genders and categories never contain '|'.
package filestore

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"bmitracker/internal/domain"
)

const (
	registryFile  = "users.txt"
	recordsSuffix = "_records.txt"
)

// Store is a file-backed implementation of domain.Store. Every read goes to
// disk; nothing is cached between calls.
type Store struct {
	dir string
	log *slog.Logger
}

var _ domain.Store = (*Store)(nil)

// New returns a Store rooted at dir. The directory is created on first write.
func New(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{dir: dir, log: logger}
}

func (s *Store) ensureDir() error {
	if _, err := os.Stat(s.dir); err == nil {
		return nil
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	s.log.Info("data directory created", "dir", s.dir)
	return nil
}

func (s *Store) registryPath() string {
	return filepath.Join(s.dir, registryFile)
}

// recordsPath rejects names that would escape the data directory.
func (s *Store) recordsPath(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", &domain.ValidationError{Field: "name", Message: "Name must not contain path separators"}
	}
	return filepath.Join(s.dir, name+recordsSuffix), nil
}

func (s *Store) reportPath(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.ContainsAny(filename, `/\`) {
		return "", fmt.Errorf("invalid report file name %q", filename)
	}
	return filepath.Join(s.dir, filename), nil
}

// splitFields splits a stored line on '|' and drops trailing empty fields, so
// "a|b||" has two fields. Existing files were written by a reader with that
// behavior and rely on it.
func splitFields(line string) []string {
	parts := strings.Split(line, domain.FieldSeparator)
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

func joinFields(fields ...string) string {
	return strings.Join(fields, domain.FieldSeparator)
}

// readLines returns the file's lines without terminators. A missing file
// reads as no lines.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	return lines, sc.Err()
}

// writeLinesAtomic replaces path with lines via a temp file and rename in the
// same directory, so a crash leaves either the old or the new file.
func writeLinesAtomic(path string, lines []string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	for _, l := range lines {
		if _, err = w.WriteString(l + "\n"); err != nil {
			return err
		}
	}
	if err = w.Flush(); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
