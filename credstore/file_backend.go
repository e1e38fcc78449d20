package credstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileBackend stores all credentials as one JSON object in a single file.
// The directory is created with mode 0700 and the file is written with mode
// 0600 because it holds bearer tokens. Writes go through a temp file and a
// rename so a crash never leaves half a file behind.
type FileBackend struct {
	path   string
	sealer *Sealer
	lock   sync.Mutex
}

var _ Backend = (*FileBackend)(nil)

// NewFileBackend stores credentials at path. A non-nil sealer encrypts the
// file contents.
func NewFileBackend(path string, sealer *Sealer) *FileBackend {
	return &FileBackend{path: path, sealer: sealer}
}

// Path returns the file location
func (f *FileBackend) Path() string {
	return f.path
}

func (f *FileBackend) Read(key string) (string, bool, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	values, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (f *FileBackend) Write(key, value string) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}
	values[key] = value
	return f.save(values)
}

func (f *FileBackend) Delete(key string) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return f.save(values)
}

func (f *FileBackend) load() (map[string]string, error) {
	values := make(map[string]string)

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, nil
		}
		return nil, fmt.Errorf("reading credentials file %s: %w", f.path, err)
	}
	if len(data) == 0 {
		return values, nil
	}

	if f.sealer != nil {
		if data, err = f.sealer.Open(data); err != nil {
			return nil, fmt.Errorf("opening credentials file %s: %w", f.path, err)
		}
	}

	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing credentials file %s: %w", f.path, err)
	}
	return values, nil
}

func (f *FileBackend) save(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling credentials: %w", err)
	}
	data = append(data, '\n')

	if f.sealer != nil {
		if data, err = f.sealer.Seal(data); err != nil {
			return fmt.Errorf("sealing credentials: %w", err)
		}
	}

	directory := filepath.Dir(f.path)
	if err := os.MkdirAll(directory, 0700); err != nil {
		return fmt.Errorf("creating credentials directory %s: %w", directory, err)
	}

	tmp, err := os.CreateTemp(directory, ".credentials-*")
	if err != nil {
		return fmt.Errorf("creating temp credentials file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp credentials file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp credentials file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp credentials file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("replacing credentials file %s: %w", f.path, err)
	}
	return nil
}
