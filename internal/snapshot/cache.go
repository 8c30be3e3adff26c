package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when Payload format changes.
const schemaVersion uint16 = 1

// Cache persists pass snapshots on disk so a later run can diff against a
// saved baseline. Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Payload is one serialized pass snapshot.
type Payload struct {
	Schema      uint16
	Dir         string
	CreatedUnix int64
	Issues      []Record
}

// Open initializes a cache at the standard location
// ($XDG_CACHE_HOME/<app>, falling back to ~/.cache/<app>).
func Open(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// OpenAt initializes a cache rooted at an explicit directory.
func OpenAt(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// Key derives a stable cache key from the checked directory path.
func Key(dir string) string {
	sum := sha256.Sum256([]byte(filepath.ToSlash(dir)))
	return hex.EncodeToString(sum[:])
}

func (c *Cache) pathFor(key string) string {
	// "passes" subdirectory keeps the cache root easy to inspect and clean.
	return filepath.Join(c.dir, "passes", key+".mp")
}

// Save serializes a snapshot and writes it atomically (temp file +
// rename).
func (c *Cache) Save(key string, payload *Payload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = schemaVersion
	if payload.CreatedUnix == 0 {
		payload.CreatedUnix = time.Now().Unix()
	}

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Load reads a snapshot. The second result is false when no baseline
// exists or its schema is stale.
func (c *Cache) Load(key string) (*Payload, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	// #nosec G304 -- path is derived from the cache root and a hex key
	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var payload Payload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != schemaVersion {
		return nil, false, nil
	}
	return &payload, true, nil
}
