package cache

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
	"golang.org/x/crypto/blake2b"
)

// Cache maps output paths to the fingerprint of the conversion that last
// produced them. It is safe for concurrent use and is persisted as JSON.
type Cache struct {
	data  map[string]string
	mu    sync.RWMutex
	file  string
	dirty bool
}

// New loads the cache stored at file. A missing file yields an empty cache.
func New(file string) (*Cache, error) {
	c := &Cache{
		data: make(map[string]string),
		file: file,
	}
	if err := c.load(); err != nil {
		return nil, err
	}
	return c, nil
}

// Fresh reports whether output was produced by a conversion with this
// fingerprint and still exists.
func (c *Cache) Fresh(output, fingerprint string) bool {
	c.mu.RLock()
	cached, ok := c.data[output]
	c.mu.RUnlock()
	if !ok || cached != fingerprint {
		return false
	}
	_, err := os.Stat(output)
	return err == nil
}

// Record stores fingerprint for output. Call Save to persist it.
func (c *Cache) Record(output, fingerprint string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[output] = fingerprint
	c.dirty = true
}

// Forget drops output from the cache.
func (c *Cache) Forget(output string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[output]; ok {
		delete(c.data, output)
		c.dirty = true
	}
}

// Len returns the number of cached outputs.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Save writes the cache if it changed since it was loaded. The file is
// replaced atomically.
func (c *Cache) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty {
		return nil
	}

	data, err := json.MarshalIndent(c.data, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(c.file), ".ktx-cache-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), c.file); err != nil {
		return err
	}
	c.dirty = false
	return nil
}

func (c *Cache) load() error {
	data, err := os.ReadFile(c.file)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, &c.data); err != nil {
		return fmt.Errorf("corrupt cache file %s: %w", c.file, err)
	}
	// A literal null decodes to a nil map.
	if c.data == nil {
		c.data = make(map[string]string)
	}
	return nil
}

// Fingerprint hashes a full argument vector together with the contents of
// every input file, so changing a flag, the executable or an input
// invalidates the output.
func Fingerprint(argv []string, inputs []string) (string, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}
	for _, arg := range argv {
		fmt.Fprintf(h, "%d:%s\n", len(arg), arg)
	}
	for _, path := range inputs {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(h, "input:%s\n", path)
		_, err = io.Copy(h, f)
		f.Close()
		if err != nil {
			return "", err
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
