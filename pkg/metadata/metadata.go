// Package metadata records what a catalog run produced and verifies it afterwards.
package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Manifest verification errors.
var (
	ErrNoFiles      = errors.New("manifest lists no files")
	ErrNoHashFound  = errors.New("no hash found in manifest")
	ErrHashMismatch = errors.New("hash mismatch")
)

// File is one written output with its digest.
type File struct {
	Name   string `json:"name"`
	Bytes  int64  `json:"bytes"`
	SHA256 string `json:"sha256"`
}

// Manifest describes a single run.
type Manifest struct {
	RunID       string         `json:"run_id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Records     int            `json:"records"`
	Sources     map[string]int `json:"sources"`
	Files       []File         `json:"files"`
}

// New starts a manifest with a fresh run ID.
func New(records int, sources map[string]int) *Manifest {
	return &Manifest{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		Records:     records,
		Sources:     sources,
	}
}

// CalculateHash computes the SHA-256 hash of the file at path.
func CalculateHash(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	h := sha256.New()

	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, err
	}

	return hex.EncodeToString(h.Sum(nil)), n, nil
}

// AddFile hashes path and records it by base name, relative to the manifest directory.
func (m *Manifest) AddFile(path string) error {
	sum, n, err := CalculateHash(path)
	if err != nil {
		return fmt.Errorf("failed to hash %s: %w", path, err)
	}

	m.Files = append(m.Files, File{Name: filepath.Base(path), Bytes: n, SHA256: sum})
	sort.Slice(m.Files, func(i, j int) bool { return m.Files[i].Name < m.Files[j].Name })

	return nil
}

// Write saves the manifest as indented JSON.
func (m *Manifest) Write(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}

// Read loads a manifest from path.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	return &m, nil
}

// Verify checks every listed file in dir against its recorded digest.
func (m *Manifest) Verify(dir string) error {
	if len(m.Files) == 0 {
		return ErrNoFiles
	}

	var errs []error

	for _, f := range m.Files {
		if f.SHA256 == "" {
			errs = append(errs, fmt.Errorf("%s: %w", f.Name, ErrNoHashFound))
			continue
		}

		calculated, _, err := CalculateHash(filepath.Join(dir, f.Name))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.Name, err))
			continue
		}

		if calculated != f.SHA256 {
			errs = append(errs, fmt.Errorf("%s: %w: expected %s, got %s", f.Name, ErrHashMismatch, f.SHA256, calculated))
		}
	}

	return errors.Join(errs...)
}
