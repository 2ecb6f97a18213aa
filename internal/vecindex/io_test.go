package vecindex

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundtrip(t *testing.T) {
	idx := NewFlat(3)
	err := idx.Add(
		[]float32{0.6, 0.8, 0},
		[]float32{0, 0, 1},
		[]float32{0.26726124, 0.5345225, 0.8017837},
	)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	path := filepath.Join(t.TempDir(), "doc.index")
	if err := idx.SaveFile(path); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.Dimension() != 3 || loaded.Count() != 3 {
		t.Fatalf("loaded dim=%d count=%d, want 3/3", loaded.Dimension(), loaded.Count())
	}
	// float32 payloads round-trip bit-for-bit.
	for i := range idx.vecs {
		for j := range idx.vecs[i] {
			if loaded.vecs[i][j] != idx.vecs[i][j] {
				t.Errorf("vec[%d][%d] = %v, want %v", i, j, loaded.vecs[i][j], idx.vecs[i][j])
			}
		}
	}

	// No leftover temp file.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}
}

func TestSaveLoadEmptyIndex(t *testing.T) {
	idx := NewFlat(384)
	path := filepath.Join(t.TempDir(), "empty.index")
	if err := idx.SaveFile(path); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.Dimension() != 384 || loaded.Count() != 0 {
		t.Errorf("dim=%d count=%d, want 384/0", loaded.Dimension(), loaded.Count())
	}
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.index"))
	if !errors.Is(err, ErrIndexNotFound) {
		t.Errorf("err = %v, want ErrIndexNotFound", err)
	}
}

func TestReadFlatBadMagic(t *testing.T) {
	var buf bytes.Buffer
	for _, v := range []uint32{0xdeadbeef, fileVersion, 2, 0} {
		binary.Write(&buf, binary.LittleEndian, v)
	}
	if _, err := ReadFlat(&buf); !errors.Is(err, errBadMagic) {
		t.Errorf("err = %v, want bad magic", err)
	}
}

func TestReadFlatBadVersion(t *testing.T) {
	var buf bytes.Buffer
	for _, v := range []uint32{fileMagic, 99, 2, 0} {
		binary.Write(&buf, binary.LittleEndian, v)
	}
	if _, err := ReadFlat(&buf); !errors.Is(err, errBadVersion) {
		t.Errorf("err = %v, want bad version", err)
	}
}

func TestReadFlatTruncated(t *testing.T) {
	idx := NewFlat(4)
	if err := idx.Add([]float32{0.5, 0.5, 0.5, 0.5}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	var buf bytes.Buffer
	if _, err := idx.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if _, err := ReadFlat(bytes.NewReader(buf.Bytes()[:buf.Len()-4])); err == nil {
		t.Error("truncated payload read without error")
	}
}
