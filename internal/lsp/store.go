package lsp

import "sync"

type Document struct {
	Text    string
	Version int32
}

// Store holds the open documents. Handlers may run concurrently.
type Store struct {
	mu   sync.RWMutex
	docs map[string]Document // uri -> document
}

func NewStore() *Store {
	return &Store{docs: map[string]Document{}}
}

// Set records text as the content of uri. Stale versions are ignored and
// reported false.
func (s *Store) Set(uri, text string, version int32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.docs[uri]; ok && version < cur.Version {
		return false
	}
	s.docs[uri] = Document{Text: text, Version: version}
	return true
}

func (s *Store) Get(uri string) (Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.docs[uri]
	return d, ok
}

func (s *Store) Delete(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}
