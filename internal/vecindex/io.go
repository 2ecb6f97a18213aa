package vecindex

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
)

// Binary index file layout, little-endian throughout:
//
//	magic   uint32  "BIDX"
//	version uint32
//	dim     uint32
//	count   uint32
//	vectors count*dim float32
const (
	fileMagic   = 0x42494458 // "BIDX"
	fileVersion = 1
)

var (
	// ErrIndexNotFound indicates a missing index file in file-based mode.
	ErrIndexNotFound = errors.New("vecindex: index file not found")

	errBadMagic   = errors.New("vecindex: not an index file")
	errBadVersion = errors.New("vecindex: unsupported index file version")
)

// WriteTo serializes the index. The format reads back bit-for-bit: float32
// payloads are stored as raw IEEE-754 bits.
func (f *Flat) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var written int64

	header := []uint32{fileMagic, fileVersion, uint32(f.dim), uint32(len(f.vecs))}
	for _, v := range header {
		if err := binary.Write(bw, binary.LittleEndian, v); err != nil {
			return written, err
		}
		written += 4
	}
	for _, vec := range f.vecs {
		for _, x := range vec {
			if err := binary.Write(bw, binary.LittleEndian, math.Float32bits(x)); err != nil {
				return written, err
			}
			written += 4
		}
	}
	return written, bw.Flush()
}

// ReadFlat deserializes an index written by WriteTo.
func ReadFlat(r io.Reader) (*Flat, error) {
	br := bufio.NewReader(r)
	var magic, version, dim, count uint32
	for _, dst := range []*uint32{&magic, &version, &dim, &count} {
		if err := binary.Read(br, binary.LittleEndian, dst); err != nil {
			return nil, fmt.Errorf("vecindex: read header: %w", err)
		}
	}
	if magic != fileMagic {
		return nil, errBadMagic
	}
	if version != fileVersion {
		return nil, fmt.Errorf("%w: %d", errBadVersion, version)
	}

	idx := NewFlat(int(dim))
	for i := uint32(0); i < count; i++ {
		vec := make([]float32, dim)
		for j := range vec {
			var bits uint32
			if err := binary.Read(br, binary.LittleEndian, &bits); err != nil {
				return nil, fmt.Errorf("vecindex: truncated vector %d: %w", i, err)
			}
			vec[j] = math.Float32frombits(bits)
		}
		idx.vecs = append(idx.vecs, vec)
	}
	return idx, nil
}

// SaveFile writes the index to path via a temp file and rename.
func (f *Flat) SaveFile(path string) error {
	tmp := path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("vecindex: create %s: %w", tmp, err)
	}
	if _, err := f.WriteTo(file); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("vecindex: write %s: %w", tmp, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// LoadFile reads an index file written by SaveFile.
func LoadFile(path string) (*Flat, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, path)
		}
		return nil, fmt.Errorf("vecindex: open %s: %w", path, err)
	}
	defer file.Close()
	return ReadFlat(file)
}
