package index

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"

	"github.com/corpuslabs/ragstore/domain/search"
)

// Binary layout of the vectors file: a fixed header followed by the matrix
// rows as little-endian float32 values, row-ordered.
var vectorsMagic = [4]byte{'R', 'G', 'S', 'V'}

const vectorsVersion uint32 = 1

type vectorsHeader struct {
	Magic   [4]byte
	Version uint32
	Dim     uint32
	Count   uint32
}

func writeVectors(path string, m Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create vectors file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	header := vectorsHeader{
		Magic:   vectorsMagic,
		Version: vectorsVersion,
		Dim:     uint32(m.Dim()),
		Count:   uint32(m.Len()),
	}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("write vectors header: %w", err)
	}

	buf := make([]byte, 4)
	for i := 0; i < m.Len(); i++ {
		for _, v := range m.Row(i) {
			binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
			if _, err := w.Write(buf); err != nil {
				return fmt.Errorf("write vector row %d: %w", i, err)
			}
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("write vectors: %w", err)
	}
	return f.Close()
}

func readVectors(path string) (Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Matrix{}, fmt.Errorf("%s: %w", path, search.ErrStoreNotFound)
		}
		return Matrix{}, fmt.Errorf("open vectors file: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var header vectorsHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return Matrix{}, fmt.Errorf("read vectors header: %w", err)
	}
	if header.Magic != vectorsMagic {
		return Matrix{}, fmt.Errorf("%s is not a ragstore vectors file", path)
	}
	if header.Version != vectorsVersion {
		return Matrix{}, fmt.Errorf("unsupported vectors file version %d", header.Version)
	}

	dim := int(header.Dim)
	count := int(header.Count)
	rows := make([][]float32, count)
	buf := make([]byte, 4)
	for i := range rows {
		row := make([]float32, dim)
		for j := range row {
			if _, err := io.ReadFull(r, buf); err != nil {
				return Matrix{}, fmt.Errorf("vectors file truncated at row %d: %w", i, err)
			}
			row[j] = math.Float32frombits(binary.LittleEndian.Uint32(buf))
		}
		rows[i] = row
	}

	return Matrix{dim: dim, rows: rows}, nil
}
