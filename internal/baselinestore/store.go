// Package baselinestore archives result documents as compressed snapshots so
// a trusted baseline can be restored or rolled back later.
package baselinestore

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
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
)

// Snapshot describes one archived result document.
type Snapshot struct {
	// ID is the sha256 of the uncompressed document, so identical results
	// archive to the same snapshot.
	ID         string    `json:"id"`
	Suite      string    `json:"suite"`
	SourcePath string    `json:"source_path"`
	SavedAt    time.Time `json:"saved_at"`
	Size       int64     `json:"size"` // uncompressed bytes
}

// Store holds zstd-compressed snapshots plus a JSON manifest in one
// directory.
type Store struct {
	dir string
	mu  sync.Mutex
}

// New creates a store instance rooted at dir. The directory is created on
// first save.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Save archives the result document at resultPath under the given suite
// name. Saving the same content twice is a no-op that returns the existing
// snapshot.
func (s *Store) Save(suite, resultPath string) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(resultPath)
	if err != nil {
		return nil, fmt.Errorf("reading result document: %w", err)
	}

	sum := sha256.Sum256(data)
	id := hex.EncodeToString(sum[:])

	manifest, err := s.readManifest()
	if err != nil {
		return nil, err
	}
	for _, snap := range manifest {
		if snap.ID == id {
			return &snap, nil
		}
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating baseline dir: %w", err)
	}

	if err := s.writeCompressed(s.blobPath(id), data); err != nil {
		return nil, err
	}

	snap := Snapshot{
		ID:         id,
		Suite:      suite,
		SourcePath: resultPath,
		SavedAt:    time.Now().UTC(),
		Size:       int64(len(data)),
	}
	manifest = append(manifest, snap)
	if err := s.writeManifest(manifest); err != nil {
		return nil, err
	}
	return &snap, nil
}

// List returns all snapshots, newest first.
func (s *Store) List() ([]Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	manifest, err := s.readManifest()
	if err != nil {
		return nil, err
	}
	sort.Slice(manifest, func(i, j int) bool {
		return manifest[i].SavedAt.After(manifest[j].SavedAt)
	})
	return manifest, nil
}

// Restore decompresses the snapshot with the given ID to destPath.
func (s *Store) Restore(id, destPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.blobPath(id))
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", id, err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", id, err)
	}
	defer dec.Close()

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("restoring snapshot %s: %w", id, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, dec); err != nil {
		return fmt.Errorf("restoring snapshot %s: %w", id, err)
	}
	return nil
}

// Prune keeps the newest keep snapshots per suite and removes the rest.
// Returns how many snapshots were removed.
func (s *Store) Prune(keep int) (int, error) {
	if keep < 1 {
		return 0, fmt.Errorf("prune requires keep >= 1, got %d", keep)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	manifest, err := s.readManifest()
	if err != nil {
		return 0, err
	}

	bySuite := make(map[string][]Snapshot)
	for _, snap := range manifest {
		bySuite[snap.Suite] = append(bySuite[snap.Suite], snap)
	}

	var kept []Snapshot
	removed := 0
	for _, snaps := range bySuite {
		sort.Slice(snaps, func(i, j int) bool {
			return snaps[i].SavedAt.After(snaps[j].SavedAt)
		})
		for i, snap := range snaps {
			if i < keep {
				kept = append(kept, snap)
				continue
			}
			if err := os.Remove(s.blobPath(snap.ID)); err != nil && !errors.Is(err, os.ErrNotExist) {
				return removed, fmt.Errorf("removing snapshot %s: %w", snap.ID, err)
			}
			removed++
		}
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].SavedAt.After(kept[j].SavedAt) })
	if err := s.writeManifest(kept); err != nil {
		return removed, err
	}
	return removed, nil
}

func (s *Store) blobPath(id string) string {
	return filepath.Join(s.dir, id+".json.zst")
}

func (s *Store) manifestPath() string {
	return filepath.Join(s.dir, "manifest.json")
}

func (s *Store) readManifest() ([]Snapshot, error) {
	data, err := os.ReadFile(s.manifestPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading baseline manifest: %w", err)
	}
	var manifest []Snapshot
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parsing baseline manifest: %w", err)
	}
	return manifest, nil
}

func (s *Store) writeManifest(manifest []Snapshot) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling baseline manifest: %w", err)
	}
	if err := os.WriteFile(s.manifestPath(), data, 0o644); err != nil {
		return fmt.Errorf("writing baseline manifest: %w", err)
	}
	return nil
}

func (s *Store) writeCompressed(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot blob: %w", err)
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("creating zstd writer: %w", err)
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		return fmt.Errorf("compressing snapshot: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flushing snapshot: %w", err)
	}
	return nil
}
