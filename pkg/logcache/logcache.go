// Package logcache persists captured command output under a fixed root
// directory, one file per attempt, named so that lexicographic order is
// creation order.
package logcache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// ErrNoLogs is returned by Latest when the cache directory holds no entries.
var ErrNoLogs = errors.New("no cached logs")

const logSuffix = ".log"

// Cache writes and looks up captured logs. Safe for concurrent use within
// one process; the counter suffix keeps names unique even when two stores
// land on the same timestamp.
type Cache struct {
	root string

	mu  sync.Mutex
	seq int
}

// New creates a cache rooted at dir. The directory is created lazily on
// the first Store.
func New(dir string) *Cache {
	return &Cache{root: dir}
}

// Root returns the cache directory.
func (c *Cache) Root() string {
	return c.root
}

// Store writes output to a new timestamped file and returns its path.
func (c *Cache) Store(output string) (string, error) {
	if err := os.MkdirAll(c.root, 0700); err != nil {
		return "", fmt.Errorf("create log directory: %w", err)
	}

	ts := time.Now().UTC().Format("20060102T150405.000000000")
	for {
		c.mu.Lock()
		c.seq++
		seq := c.seq
		c.mu.Unlock()

		path := filepath.Join(c.root, fmt.Sprintf("%s-%06d%s", ts, seq, logSuffix))
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if errors.Is(err, os.ErrExist) {
			continue // another process took this name, bump the counter
		}
		if err != nil {
			return "", fmt.Errorf("create log file: %w", err)
		}
		if _, err := f.WriteString(output); err != nil {
			f.Close()
			return "", fmt.Errorf("write log file: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("close log file: %w", err)
		}
		return path, nil
	}
}

// Latest returns the path of the most recently stored log, or ErrNoLogs
// when the cache is empty. Names sort lexicographically by creation time,
// so the maximum name is the newest entry.
func (c *Cache) Latest() (string, error) {
	entries, err := os.ReadDir(c.root)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoLogs
	}
	if err != nil {
		return "", fmt.Errorf("scan log directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), logSuffix) {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return "", ErrNoLogs
	}
	sort.Strings(names)
	return filepath.Join(c.root, names[len(names)-1]), nil
}

// ReadLatest returns the content of the most recent log alongside its path.
func (c *Cache) ReadLatest() (path, content string, err error) {
	path, err = c.Latest()
	if err != nil {
		return "", "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read cached log: %w", err)
	}
	return path, string(data), nil
}
