package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
)

// FileCache implements domain.SectionCache with one JSON file per key in a
// directory. Other tools (a storefront preview server, for instance) can read
// the files directly, and Watch reports when they change on disk.
type FileCache struct {
	dir string
	log logrus.FieldLogger
}

// NewFileCache creates dir if needed. log may be nil.
func NewFileCache(dir string, log logrus.FieldLogger) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &FileCache{dir: dir, log: log.WithField("component", "file_cache")}, nil
}

func (c *FileCache) Dir() string {
	return c.dir
}

// Path returns the file backing key.
func (c *FileCache) Path(key string) string {
	return filepath.Join(c.dir, sanitizeKey(key)+".json")
}

// PutSections writes through a temp file and rename so readers never see a
// half-written file.
func (c *FileCache) PutSections(key string, sections []domain.Section) error {
	if sections == nil {
		sections = []domain.Section{}
	}
	data, err := json.MarshalIndent(sections, "", "  ")
	if err != nil {
		return fmt.Errorf("encode sections: %w", err)
	}
	path := c.Path(key)
	tmp, err := os.CreateTemp(c.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// GetSections returns nil with no error when the file does not exist.
func (c *FileCache) GetSections(key string) ([]domain.Section, error) {
	data, err := os.ReadFile(c.Path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	var sections []domain.Section
	if err := json.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return sections, nil
}

func (c *FileCache) DeleteSections(key string) error {
	err := os.Remove(c.Path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Keys lists the cache keys present in the directory.
func (c *FileCache) Keys() ([]string, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, err
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".json") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ".json"))
	}
	return keys, nil
}

// Watch calls fn with the key of every cache file created or rewritten
// until ctx is done. Bursts of events for the same file are collapsed.
func (c *FileCache) Watch(ctx context.Context, fn func(key string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(c.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", c.dir, err)
	}
	c.log.Debugf("watching %s", c.dir)

	go func() {
		defer watcher.Close()
		timers := make(map[string]*time.Timer)
		defer func() {
			for _, t := range timers {
				t.Stop()
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				name := filepath.Base(event.Name)
				if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".json") {
					continue
				}
				key := strings.TrimSuffix(name, ".json")
				if t, exists := timers[key]; exists {
					t.Stop()
				}
				timers[key] = time.AfterFunc(200*time.Millisecond, func() { fn(key) })
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				c.log.WithError(err).Warn("watcher error")
			}
		}
	}()
	return nil
}

// sanitizeKey keeps keys usable as file names.
func sanitizeKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, key)
}
