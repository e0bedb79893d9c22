package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/vmihailenco/msgpack/v5"

	"corvid/internal/semantic"
)

// Current schema version - increment when the payload or LocalTable format
// changes
const schemaVersion uint16 = 1

var log = commonlog.GetLogger("corvid.cache")

// Disk keeps Phase 1 tables between runs, keyed by unit path and content
// hash. Safe for concurrent use.
type Disk struct {
	mu  sync.RWMutex
	dir string
}

type payload struct {
	Schema uint16
	Table  *semantic.LocalTable
}

// Open prepares a cache rooted at dir
func Open(dir string) (*Disk, error) {
	if dir == "" {
		return nil, fmt.Errorf("cache directory is empty")
	}
	if err := os.MkdirAll(filepath.Join(dir, "units"), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &Disk{dir: dir}, nil
}

// Hash returns the content hash used to key a source file.
func Hash(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}

func (c *Disk) pathFor(unit, hash string) string {
	sum := sha256.Sum256([]byte(unit + "\x00" + hash))
	return filepath.Join(c.dir, "units", hex.EncodeToString(sum[:])+".mp")
}

// Load returns the table stored for a unit path and content hash. Missing,
// stale or unreadable entries are misses.
func (c *Disk) Load(unit, hash string) (*semantic.LocalTable, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(unit, hash))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warningf("reading cache entry for %s: %s", unit, err)
		}
		return nil, false
	}
	defer f.Close()

	var p payload
	if err := msgpack.NewDecoder(f).Decode(&p); err != nil {
		log.Warningf("decoding cache entry for %s: %s", unit, err)
		return nil, false
	}
	if p.Schema != schemaVersion || p.Table == nil {
		log.Debugf("cache entry for %s has schema %d", unit, p.Schema)
		return nil, false
	}
	if p.Table.Unit != unit || p.Table.Hash != hash {
		return nil, false
	}
	return p.Table, true
}

// Store writes a table atomically. Tables without a hash are not cached.
func (c *Disk) Store(table *semantic.LocalTable) (err error) {
	if c == nil || table == nil || table.Hash == "" {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	target := c.pathFor(table.Unit, table.Hash)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(target), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(&payload{Schema: schemaVersion, Table: table}); err != nil {
		return fmt.Errorf("encoding %s: %w", table.Unit, err)
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), target)
}

// Clear removes every cached entry.
func (c *Disk) Clear() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	units := filepath.Join(c.dir, "units")
	if err := os.RemoveAll(units); err != nil {
		return err
	}
	return os.MkdirAll(units, 0o755)
}

var _ semantic.TableCache = (*Disk)(nil)
