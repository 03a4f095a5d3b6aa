// Package bookmark persists a flat list of named URLs as a JSON side
// file.
package bookmark

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

type Bookmark struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

type Store struct {
	mu        sync.Mutex
	bookmarks []Bookmark
	path      string
}

// Load reads the store at path, returning an empty store when the
// file does not exist yet.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Store{path: path}, nil
		}
		return nil, fmt.Errorf("could not open bookmarks file: %w", err)
	}
	defer f.Close()
	var file bookmarkFile
	if err := json.NewDecoder(f).Decode(&file); err != nil {
		return nil, fmt.Errorf("could not decode bookmarks: %w", err)
	}
	return &Store{path: path, bookmarks: file.Bookmarks}, nil
}

func (s *Store) Add(surl, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookmarks {
		if b.URL == surl {
			return nil
		}
	}
	s.bookmarks = append(s.bookmarks, Bookmark{URL: surl, Name: name})
	return s.save()
}

func (s *Store) Remove(surl string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.bookmarks[:0]
	for _, b := range s.bookmarks {
		if b.URL != surl {
			kept = append(kept, b)
		}
	}
	s.bookmarks = kept
	return s.save()
}

func (s *Store) Contains(surl string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookmarks {
		if b.URL == surl {
			return true
		}
	}
	return false
}

func (s *Store) All() []Bookmark {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Bookmark(nil), s.bookmarks...)
}

type bookmarkFile struct {
	Bookmarks []Bookmark `json:"bookmarks"`
}

// save writes through a temp file so a crash mid-write cannot
// truncate the existing list.
func (s *Store) save() error {
	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("could not save bookmarks: %w", err)
	}
	if err := json.NewEncoder(f).Encode(bookmarkFile{s.bookmarks}); err != nil {
		f.Close()
		return fmt.Errorf("could not encode bookmarks: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
