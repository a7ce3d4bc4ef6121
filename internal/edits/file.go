package edits

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// CompressedExt marks journal files stored zstd-compressed.
const CompressedExt = ".zst"

type fileData struct {
	Edits []Edit `json:"edits"`
}

// File is a journal kept in memory and saved as a JSON document.
type File struct {
	*Memory
	path  string
	log   *slog.Logger
	dirty bool
}

// OpenFile loads the journal at path. A missing file is an empty journal.
func OpenFile(path string, log *slog.Logger) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", filepath.Dir(path), err)
	}
	f := &File{Memory: NewMemory(), path: path, log: log}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return nil, fmt.Errorf("read edits: %w", err)
	}

	if compressed(path) {
		if data, err = decompress(data); err != nil {
			return nil, fmt.Errorf("decompress edits: %w", err)
		}
	}

	var fd fileData
	if err := json.Unmarshal(data, &fd); err != nil {
		return nil, fmt.Errorf("parse edits: %w", err)
	}
	for _, e := range fd.Edits {
		f.Memory.Record(e)
	}
	log.Info("loaded edits", "path", path, "count", len(fd.Edits))
	return f, nil
}

func (f *File) Record(e Edit) error {
	f.dirty = true
	return f.Memory.Record(e)
}

// Save writes the journal if it changed since the last save.
func (f *File) Save() error {
	if !f.dirty {
		return nil
	}
	if err := atomicWriteJSON(f.path, &fileData{Edits: f.all()}); err != nil {
		return err
	}
	f.dirty = false
	f.log.Info("saved edits", "path", f.path, "count", f.Len())
	return nil
}

func (f *File) Close() error {
	return f.Save()
}

// atomicWriteJSON marshals v to JSON and writes it atomically using a temp file + rename.
func atomicWriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')

	if compressed(path) {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return fmt.Errorf("create compressor: %w", err)
		}
		data = enc.EncodeAll(data, nil)
		enc.Close()
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func compressed(path string) bool {
	return strings.HasSuffix(path, CompressedExt)
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(data, nil)
}
