package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain"
)

// SectionCacheStore implements domain.SectionCache using SQLite. Entries are
// stored under the full cache key, e.g. page_sections_home.
type SectionCacheStore struct {
	db *DB
}

func NewSectionCacheStore(db *DB) *SectionCacheStore {
	return &SectionCacheStore{db: db}
}

func (s *SectionCacheStore) PutSections(key string, sections []domain.Section) error {
	if sections == nil {
		sections = []domain.Section{}
	}
	data, err := json.Marshal(sections)
	if err != nil {
		return fmt.Errorf("encode sections: %w", err)
	}
	_, err = s.db.conn.Exec(
		`INSERT INTO section_cache (cache_key, sections_json, section_count, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(cache_key) DO UPDATE SET
		   sections_json = excluded.sections_json,
		   section_count = excluded.section_count,
		   updated_at = excluded.updated_at`,
		key, string(data), len(sections), stamp(),
	)
	if err != nil {
		return fmt.Errorf("put sections %s: %w", key, err)
	}
	return nil
}

// GetSections returns the cached sections, or nil with no error when the key
// has never been written.
func (s *SectionCacheStore) GetSections(key string) ([]domain.Section, error) {
	var raw string
	err := s.db.conn.QueryRow(`SELECT sections_json FROM section_cache WHERE cache_key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get sections %s: %w", key, err)
	}
	var sections []domain.Section
	if err := json.Unmarshal([]byte(raw), &sections); err != nil {
		return nil, fmt.Errorf("decode sections %s: %w", key, err)
	}
	return sections, nil
}

func (s *SectionCacheStore) DeleteSections(key string) error {
	_, err := s.db.conn.Exec(`DELETE FROM section_cache WHERE cache_key = ?`, key)
	return err
}

// Keys lists every cache key, most recently written first.
func (s *SectionCacheStore) Keys() ([]string, error) {
	rows, err := s.db.conn.Query(`SELECT cache_key FROM section_cache ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Fingerprint changes whenever the entry under key is rewritten. Empty when
// the key is absent.
func (s *SectionCacheStore) Fingerprint(key string) (string, error) {
	var count int
	var updated string
	err := s.db.conn.QueryRow(
		`SELECT section_count, updated_at FROM section_cache WHERE cache_key = ?`, key,
	).Scan(&count, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d:%s", count, updated), nil
}

// stamp is a sub-second timestamp so consecutive writes fingerprint apart.
func stamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
