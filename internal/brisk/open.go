package brisk

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// File suffixes of a B-RISK results location.
const (
	SuffixLog     = "_log.rtf"
	SuffixInput   = "input1.xml"
	SuffixResults = "_results.xlsx"
)

var (
	ErrFileNotFound  = errors.New("no file matches suffix")
	ErrAmbiguousFile = errors.New("more than one file matches suffix")
	ErrNotResults    = errors.New("not a directory or a zip file")
)

// Source resolves files inside a results directory or zip archive.
type Source struct {
	path  string
	isZip bool
}

// OpenSource accepts a directory, a zip file, or a zip path given without its extension.
func OpenSource(path string) (*Source, error) {
	for _, p := range []string{path, path + ".zip"} {
		fi, err := os.Stat(p)
		if err != nil {
			continue
		}
		if fi.IsDir() {
			return &Source{path: p}, nil
		}
		if isZip(p) {
			return &Source{path: p, isZip: true}, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", path, ErrNotResults)
}

// Path returns the resolved location.
func (s *Source) Path() string { return s.path }

// Name is the location's base name without a .zip extension.
func (s *Source) Name() string {
	return strings.TrimSuffix(filepath.Base(s.path), ".zip")
}

// ReadFile returns the content of the single file whose name ends with suffix.
func (s *Source) ReadFile(suffix string) ([]byte, error) {
	if s.isZip {
		return s.readZip(suffix)
	}
	entries, err := os.ReadDir(s.path)
	if err != nil {
		return nil, fmt.Errorf("read dir %q: %w", s.path, err)
	}
	var matches []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), suffix) && !e.IsDir() {
			matches = append(matches, filepath.Join(s.path, e.Name()))
		}
	}
	name, err := single(suffix, matches)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(name)
}

func (s *Source) readZip(suffix string) ([]byte, error) {
	zr, err := zip.OpenReader(s.path)
	if err != nil {
		return nil, fmt.Errorf("open zip %q: %w", s.path, err)
	}
	defer func() { _ = zr.Close() }()

	var names []string
	byName := make(map[string]*zip.File)
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, suffix) && !f.FileInfo().IsDir() {
			names = append(names, f.Name)
			byName[f.Name] = f
		}
	}
	name, err := single(suffix, names)
	if err != nil {
		return nil, err
	}
	rc, err := byName[name].Open()
	if err != nil {
		return nil, fmt.Errorf("open %q in zip: %w", name, err)
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}

func single(suffix string, matches []string) (string, error) {
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%q: %w", suffix, ErrFileNotFound)
	case 1:
		return matches[0], nil
	default:
		sort.Strings(matches)
		return "", fmt.Errorf("%q %v: %w", suffix, matches, ErrAmbiguousFile)
	}
}

func isZip(path string) bool {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return false
	}
	_ = zr.Close()
	return true
}
