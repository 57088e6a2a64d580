// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tomtom215/reelmatch/internal/similarity"
)

// DefaultArtifactName is the artifact name used by the build and serve commands.
const DefaultArtifactName = "reelmatch"

const fileSuffix = ".gob.gz"

var (
	// ErrNoArtifact is returned by Load when no version of the artifact exists.
	ErrNoArtifact = errors.New("no artifact found")

	// ErrChecksumMismatch is returned by Load when the payload is corrupt.
	ErrChecksumMismatch = errors.New("artifact checksum mismatch")
)

// ArtifactMetadata describes a stored artifact.
type ArtifactMetadata struct {
	// Name is the artifact name.
	Name string `json:"name"`

	// Version is monotonically increasing per name.
	Version int `json:"version"`

	// BuiltAt is when the build stage started.
	BuiltAt time.Time `json:"built_at"`

	// SavedAt is when the artifact was written.
	SavedAt time.Time `json:"saved_at"`

	// MovieCount is the number of catalog rows.
	MovieCount int `json:"movie_count"`

	// VocabularySize is the number of features.
	VocabularySize int `json:"vocabulary_size"`

	// MaxFeatures and StopWords record the vectorizer configuration.
	MaxFeatures int    `json:"max_features"`
	StopWords   string `json:"stop_words"`

	// Checksum is the SHA-256 of the uncompressed payload.
	Checksum string `json:"checksum"`

	// SizeBytes is the compressed payload size.
	SizeBytes int64 `json:"size_bytes"`

	// BuildDurationMS is how long the build stage took.
	BuildDurationMS int64 `json:"build_duration_ms"`
}

// MovieRow is one persisted catalog row.
type MovieRow struct {
	MovieID int64
	Title   string
	Tags    []string
}

// Bundle is the complete persisted state of one build.
type Bundle struct {
	Movies     []MovieRow
	Vocabulary []string
	Matrix     similarity.Snapshot
}

// storedFile is the on-disk format.
type storedFile struct {
	Metadata       ArtifactMetadata
	CompressedData []byte
}

// Store manages versioned artifact files in one directory.
type Store struct {
	baseDir string
	mu      sync.RWMutex

	// latest version per artifact name
	versions map[string]int
}

// NewStore creates the directory if needed and indexes existing artifacts.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, fmt.Errorf("create artifact directory: %w", err)
	}

	s := &Store{
		baseDir:  baseDir,
		versions: make(map[string]int),
	}
	if err := s.scan(); err != nil {
		return nil, fmt.Errorf("scan existing artifacts: %w", err)
	}
	return s, nil
}

// Dir returns the store's directory.
func (s *Store) Dir() string {
	return s.baseDir
}

// versionsOnDisk lists every version of name found in the directory.
func (s *Store) versionsOnDisk(name string) ([]int, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, err
	}
	var versions []int
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileSuffix) {
			continue
		}
		n, v := parseArtifactFilename(strings.TrimSuffix(entry.Name(), fileSuffix))
		if n == "" || (name != "" && n != name) {
			continue
		}
		versions = append(versions, v)
	}
	return versions, nil
}

func (s *Store) scan() error {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileSuffix) {
			continue
		}
		name, version := parseArtifactFilename(strings.TrimSuffix(entry.Name(), fileSuffix))
		if name == "" {
			continue
		}
		if current, ok := s.versions[name]; !ok || version > current {
			s.versions[name] = version
		}
	}
	return nil
}

// parseArtifactFilename splits "reelmatch_v3" into ("reelmatch", 3).
func parseArtifactFilename(base string) (name string, version int) {
	idx := strings.LastIndex(base, "_v")
	if idx <= 0 {
		return "", 0
	}
	if _, err := fmt.Sscanf(base[idx+2:], "%d", &version); err != nil || version <= 0 {
		return "", 0
	}
	return base[:idx], version
}

// NextVersion returns the version a new Save of name should use.
func (s *Store) NextVersion(name string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.versions[name] + 1
}

// Save writes data as version of name. The file appears atomically.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func (s *Store) Save(ctx context.Context, name string, version int, data interface{}, meta ArtifactMetadata) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if version <= 0 {
		return fmt.Errorf("invalid artifact version %d", version)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var raw bytes.Buffer
	if err := gob.NewEncoder(&raw).Encode(data); err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}
	hash := sha256.Sum256(raw.Bytes())

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(raw.Bytes()); err != nil {
		return fmt.Errorf("compress artifact: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return fmt.Errorf("finalize compression: %w", err)
	}

	meta.Name = name
	meta.Version = version
	meta.Checksum = hex.EncodeToString(hash[:])
	meta.SizeBytes = int64(compressed.Len())
	meta.SavedAt = time.Now()

	tmp, err := os.CreateTemp(s.baseDir, ".artifact-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() //nolint:errcheck // no-op after a successful rename

	sf := storedFile{Metadata: meta, CompressedData: compressed.Bytes()}
	if err := gob.NewEncoder(tmp).Encode(sf); err != nil {
		_ = tmp.Close() //nolint:errcheck // write error already being returned
		return fmt.Errorf("write artifact file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close artifact file: %w", err)
	}
	if err := os.Rename(tmpName, s.artifactPath(name, version)); err != nil {
		return fmt.Errorf("publish artifact file: %w", err)
	}

	if current, ok := s.versions[name]; !ok || version > current {
		s.versions[name] = version
	}
	return nil
}

// Load decodes version of name into target. Version 0 loads the latest.
func (s *Store) Load(ctx context.Context, name string, version int, target interface{}) (*ArtifactMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if version == 0 {
		latest, ok := s.versions[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s in %s", ErrNoArtifact, name, s.baseDir)
		}
		version = latest
	}

	sf, err := s.readFile(name, version)
	if err != nil {
		return nil, err
	}

	gzr, err := gzip.NewReader(bytes.NewReader(sf.CompressedData))
	if err != nil {
		return nil, fmt.Errorf("decompress artifact: %w", err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // read-only

	raw, err := io.ReadAll(gzr)
	if err != nil {
		return nil, fmt.Errorf("read decompressed data: %w", err)
	}

	hash := sha256.Sum256(raw)
	if checksum := hex.EncodeToString(hash[:]); checksum != sf.Metadata.Checksum {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrChecksumMismatch, sf.Metadata.Checksum, checksum)
	}

	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(target); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	return &sf.Metadata, nil
}

func (s *Store) readFile(name string, version int) (*storedFile, error) {
	f, err := os.Open(s.artifactPath(name, version))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s v%d", ErrNoArtifact, name, version)
		}
		return nil, fmt.Errorf("open artifact file: %w", err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // read-only

	var sf storedFile
	if err := gob.NewDecoder(f).Decode(&sf); err != nil {
		return nil, fmt.Errorf("read artifact file: %w", err)
	}
	return &sf, nil
}

// GetLatestVersion returns the latest version number of name.
func (s *Store) GetLatestVersion(name string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	version, ok := s.versions[name]
	return version, ok
}

// List returns the metadata of the latest version of every artifact, sorted by name.
func (s *Store) List(ctx context.Context) ([]ArtifactMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.versions))
	for name := range s.versions {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]ArtifactMetadata, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sf, err := s.readFile(name, s.versions[name])
		if err != nil {
			continue
		}
		out = append(out, sf.Metadata)
	}
	return out, nil
}

// Delete removes one version of name.
func (s *Store) Delete(_ context.Context, name string, version int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.artifactPath(name, version)); err != nil {
		return fmt.Errorf("delete artifact: %w", err)
	}
	if s.versions[name] != version {
		return nil
	}

	remaining, err := s.versionsOnDisk(name)
	if err != nil {
		return fmt.Errorf("read directory: %w", err)
	}
	delete(s.versions, name)
	for _, v := range remaining {
		if v > s.versions[name] {
			s.versions[name] = v
		}
	}
	return nil
}

// Prune removes old versions of name, keeping the newest keepVersions (at least 1).
func (s *Store) Prune(_ context.Context, name string, keepVersions int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keepVersions < 1 {
		keepVersions = 1
	}
	versions, err := s.versionsOnDisk(name)
	if err != nil {
		return 0, fmt.Errorf("read directory: %w", err)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(versions)))

	removed := 0
	for i := keepVersions; i < len(versions); i++ {
		if err := os.Remove(s.artifactPath(name, versions[i])); err == nil {
			removed++
		}
	}
	return removed, nil
}

func (s *Store) artifactPath(name string, version int) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("%s_v%d%s", name, version, fileSuffix))
}
