package analytics

import (
	"encoding/json"
	"fmt"
	"os"
)

// Store exposes analytics retrieval for HTTP handlers and the insight service.
type Store interface {
	List() []ConversationAnalytics
	FindBySender(senderID string) (ConversationAnalytics, bool)
	At(index int) (ConversationAnalytics, bool)
	Len() int
}

// CacheStore implements Store over a cache snapshot loaded at startup.
type CacheStore struct {
	entries  []ConversationAnalytics
	bySender map[string]int
}

// NewCacheStore indexes the supplied entries, keeping their pipeline order.
func NewCacheStore(entries []ConversationAnalytics) *CacheStore {
	s := &CacheStore{
		entries:  append([]ConversationAnalytics(nil), entries...),
		bySender: make(map[string]int, len(entries)),
	}
	for i, entry := range s.entries {
		if _, exists := s.bySender[entry.SenderID]; !exists {
			s.bySender[entry.SenderID] = i
		}
	}
	return s
}

// List returns the cached entries in canonical order.
func (s *CacheStore) List() []ConversationAnalytics {
	return append([]ConversationAnalytics(nil), s.entries...)
}

// FindBySender looks up analytics by the sender identifier.
func (s *CacheStore) FindBySender(senderID string) (ConversationAnalytics, bool) {
	i, ok := s.bySender[senderID]
	if !ok {
		return ConversationAnalytics{}, false
	}
	return s.entries[i], true
}

// At returns the entry at a positional index.
func (s *CacheStore) At(index int) (ConversationAnalytics, bool) {
	if index < 0 || index >= len(s.entries) {
		return ConversationAnalytics{}, false
	}
	return s.entries[index], true
}

// Len reports the number of cached conversations.
func (s *CacheStore) Len() int {
	return len(s.entries)
}

// LoadCache reads and decodes the analytics cache file.
func LoadCache(path string) (*Cache, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cache Cache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("decode analytics cache: %w", err)
	}
	return &cache, nil
}
