package storage

import (
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.trai.ch/cellar/internal/core/domain"
	"go.trai.ch/zerr"
)

const fileExt = ".json"

// File implements ports.Storage using a file-per-key strategy.
// Keys are hex-encoded into file names so any key is a safe path component.
type File struct {
	dir string
}

// NewFile creates a store rooted at dir, creating the directory if needed.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStorageOpenFailed.Error()), "path", dir)
	}
	return &File{dir: dir}, nil
}

// Get returns the value stored under key, or nil, nil when absent.
func (f *File) Get(key string) ([]byte, error) {
	//nolint:gosec // Path is constructed from the store directory and an encoded key
	data, err := os.ReadFile(f.filename(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStorageFailure.Error()), "key", key)
	}
	return data, nil
}

// Set writes value to a temporary file and renames it over the key's file.
func (f *File) Set(key string, value []byte) error {
	tmp, err := os.CreateTemp(f.dir, ".tmp-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStorageFailure.Error()), "key", key)
	}
	tmpName := tmp.Name()

	_, writeErr := tmp.Write(value)
	closeErr := tmp.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrStorageFailure.Error()), "key", key)
	}

	if err := os.Chmod(tmpName, domain.PrivateFilePerm); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrStorageFailure.Error()), "key", key)
	}

	if err := os.Rename(tmpName, f.filename(key)); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrStorageFailure.Error()), "key", key)
	}
	return nil
}

// Remove deletes the key's file.
func (f *File) Remove(key string) error {
	err := os.Remove(f.filename(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, domain.ErrStorageFailure.Error()), "key", key)
	}
	return nil
}

// Keys lists the keys starting with prefix in lexical order.
func (f *File) Keys(prefix string) ([]string, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStorageFailure.Error()), "prefix", prefix)
	}

	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		raw, err := hex.DecodeString(strings.TrimSuffix(name, fileExt))
		if err != nil {
			continue
		}
		if key := string(raw); hasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Close is a no-op; every write is already on disk.
func (f *File) Close() error {
	return nil
}

func (f *File) filename(key string) string {
	return filepath.Join(f.dir, hex.EncodeToString([]byte(key))+fileExt)
}
