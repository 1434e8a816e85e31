package index

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/corpuslabs/ragstore/domain/search"
)

// Store file names inside a store directory.
const (
	VectorsFile  = "vectors.f32"
	MetaFile     = "meta.jsonl"
	ManifestFile = "manifest.json"
)

// Manifest records the store-wide facts a reader needs before touching the
// matrix: which embedding model produced the vectors and their dimension.
type Manifest struct {
	Model     string    `json:"model"`
	Dimension int       `json:"dimension"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the persisted result of one ingest run: the vector matrix, the
// ordinal-aligned metadata records, and the manifest. A loaded store is
// immutable.
type Store struct {
	matrix   Matrix
	records  []Record
	manifest Manifest
}

// NewStore assembles a Store from a finalized matrix and its metadata
// records. Row count and record count must agree.
func NewStore(matrix Matrix, records []Record, model string) (Store, error) {
	if matrix.Len() != len(records) {
		return Store{}, fmt.Errorf("store has %d vectors but %d metadata records", matrix.Len(), len(records))
	}
	return Store{
		matrix:  matrix,
		records: records,
		manifest: Manifest{
			Model:     model,
			Dimension: matrix.Dim(),
			Count:     matrix.Len(),
			CreatedAt: time.Now().UTC(),
		},
	}, nil
}

// Matrix returns the vector matrix.
func (s Store) Matrix() Matrix { return s.matrix }

// Records returns the metadata records in row order.
func (s Store) Records() []Record { return s.records }

// Manifest returns the store manifest.
func (s Store) Manifest() Manifest { return s.manifest }

// Len returns the number of indexed entries.
func (s Store) Len() int { return s.matrix.Len() }

// Write persists the store into dir using an all-or-nothing directory
// swap: everything is written to a temp sibling first, then the previous
// store directory (if any) is renamed away and the temp directory renamed
// into place. A failed write leaves any previously persisted store
// untouched; readers never observe a half-written store.
func (s Store) Write(dir string) error {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve store path: %w", err)
	}

	parent := filepath.Dir(dir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("create store parent: %w", err)
	}

	tmp, err := os.MkdirTemp(parent, ".ragstore-build-")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	defer os.RemoveAll(tmp)

	if err := writeVectors(filepath.Join(tmp, VectorsFile), s.matrix); err != nil {
		return err
	}
	if err := writeMeta(filepath.Join(tmp, MetaFile), s.records); err != nil {
		return err
	}
	if err := writeManifest(filepath.Join(tmp, ManifestFile), s.manifest); err != nil {
		return err
	}

	// Swap: rename the previous store aside, move the temp directory in,
	// then drop the old one. If the final rename fails the old store is
	// restored.
	old := ""
	if _, statErr := os.Stat(dir); statErr == nil {
		old = fmt.Sprintf("%s.old-%d", dir, time.Now().UnixNano())
		if err := os.Rename(dir, old); err != nil {
			return fmt.Errorf("retire previous store: %w", err)
		}
	}

	if err := os.Rename(tmp, dir); err != nil {
		if old != "" {
			_ = os.Rename(old, dir)
		}
		return fmt.Errorf("activate new store: %w", err)
	}

	if old != "" {
		_ = os.RemoveAll(old)
	}
	return nil
}

// Load reads a persisted store from dir. It returns search.ErrStoreNotFound
// if the directory or any of its files is missing, and an error if the
// files disagree with each other.
func Load(dir string) (Store, error) {
	manifest, err := readManifest(filepath.Join(dir, ManifestFile))
	if err != nil {
		return Store{}, err
	}

	matrix, err := readVectors(filepath.Join(dir, VectorsFile))
	if err != nil {
		return Store{}, err
	}

	records, err := readMeta(filepath.Join(dir, MetaFile))
	if err != nil {
		return Store{}, err
	}

	if matrix.Len() != len(records) {
		return Store{}, fmt.Errorf("store %s is inconsistent: %d vectors, %d metadata records", dir, matrix.Len(), len(records))
	}
	if manifest.Count != matrix.Len() {
		return Store{}, fmt.Errorf("store %s is inconsistent: manifest records %d entries, matrix has %d", dir, manifest.Count, matrix.Len())
	}
	if matrix.Len() > 0 && manifest.Dimension != matrix.Dim() {
		return Store{}, fmt.Errorf("store %s is inconsistent: manifest dimension %d, matrix dimension %d", dir, manifest.Dimension, matrix.Dim())
	}

	return Store{matrix: matrix, records: records, manifest: manifest}, nil
}

func writeManifest(path string, manifest Manifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

func readManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Manifest{}, fmt.Errorf("%s: %w", path, search.ErrStoreNotFound)
		}
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return Manifest{}, fmt.Errorf("decode manifest: %w", err)
	}
	return manifest, nil
}

func writeMeta(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create metadata file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encode metadata record %d: %w", rec.ID, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return f.Close()
}

func readMeta(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, search.ErrStoreNotFound)
		}
		return nil, fmt.Errorf("open metadata file: %w", err)
	}
	defer f.Close()

	var records []Record
	dec := json.NewDecoder(f)
	for dec.More() {
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decode metadata record %d: %w", len(records), err)
		}
		records = append(records, rec)
	}
	return records, nil
}
