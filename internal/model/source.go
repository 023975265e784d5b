// Package model defines the data structures shared by the transformation pipeline.
package model

import (
	"errors"
	"fmt"
	"path/filepath"
)

// ErrNoTSSource is returned by Source.SafeTSSrc when a dist file has no
// resolved originating source file.
var ErrNoTSSource = errors.New("no originating source file")

// Path represents a file system path.
type Path string

// Join appends path elements to p.
func (p Path) Join(elem ...string) Path {
	return Path(filepath.Join(append([]string{string(p)}, elem...)...))
}

// Base returns the parent directory of p, or "" when p has no parent.
func (p Path) Base() Path {
	dir := filepath.Dir(string(p))
	if dir == string(p) || dir == "." {
		return ""
	}

	return Path(dir)
}

// Ext returns the file name extension of p.
func (p Path) Ext() string {
	return filepath.Ext(string(p))
}

// String implements fmt.Stringer.
func (p Path) String() string {
	return string(p)
}

// SourceType distinguishes human-authored files from generated ones.
type SourceType string

const (
	// SourceSrc is a hand-written source file (.ts, .tsx).
	SourceSrc SourceType = "src"
	// SourceDist is a generated, distributable file (.js, .jsx).
	SourceDist SourceType = "dist"
)

// Source is the transformer's unit of work: one file, its loaded text and
// the history of edits applied to it.
type Source struct {
	Path Path
	Type SourceType
	Data string
	// RequiresLoad is true until Data has been read from disk.
	RequiresLoad bool
	// InMemory sources are never read from or written to disk.
	InMemory bool
	// TSSrc is the best-effort originating source of a dist file.
	TSSrc Path
	// Changes holds the previous Data snapshots, one per plugin call that
	// produced a net change, oldest first.
	Changes []string
	// Changed is reset before every plugin call.
	Changed bool
}

// NewSource creates a Source that is loaded lazily from path.
func NewSource(path Path, typ SourceType) *Source {
	return &Source{Path: path, Type: typ, RequiresLoad: true}
}

// NewMemorySource creates an in-memory Source with the given contents.
func NewMemorySource(path Path, typ SourceType, data string) *Source {
	return &Source{Path: path, Type: typ, Data: data, InMemory: true}
}

// Replace sets the contents and marks the source changed when they differ.
func (s *Source) Replace(data string) {
	if data == s.Data {
		return
	}

	s.Data = data
	s.Changed = true
}

// SafeTSSrc returns the originating source file of a dist file. It fails
// with ErrNoTSSource when none was resolved during discovery.
func (s *Source) SafeTSSrc() (Path, error) {
	if s.TSSrc == "" {
		return "", fmt.Errorf("%w for %s", ErrNoTSSource, s.Path)
	}

	return s.TSSrc, nil
}

// DisplayPath returns TSSrc when known and Path otherwise.
func (s *Source) DisplayPath() Path {
	if p, err := s.SafeTSSrc(); err == nil {
		return p
	}

	return s.Path
}
