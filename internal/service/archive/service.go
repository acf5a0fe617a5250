package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"github.com/zainjo/insight-dashboard/backend/internal/metrics"
	"github.com/zainjo/insight-dashboard/backend/internal/model/conversation"
)

// Source names the storage backend in API responses.
const Source = "chunk-archive"

// Service serves raw message history out of the pre-built chunk directory.
// The chunk files are immutable, so the sender index is built once at startup
// and loaded chunks are kept in a bounded LRU.
type Service struct {
	dir    string
	index  map[string]int
	chunks *lru.Cache[int, *conversation.Chunk]
	log    zerolog.Logger
}

// NewService indexes the chunk directory. A missing or empty directory is not
// an error; every lookup will simply come back empty.
func NewService(dir string, cacheSize int, log zerolog.Logger) (*Service, error) {
	if cacheSize < 1 {
		cacheSize = 1
	}
	cache, err := lru.New[int, *conversation.Chunk](cacheSize)
	if err != nil {
		return nil, err
	}

	s := &Service{
		dir:    dir,
		index:  make(map[string]int),
		chunks: cache,
		log:    log.With().Str("component", "chunk-archive").Logger(),
	}
	if err := s.buildIndex(); err != nil {
		return nil, err
	}
	return s, nil
}

// MessagesForSender returns the recorded history for a sender, oldest first.
// A sender absent from every chunk yields an empty result, not an error.
func (s *Service) MessagesForSender(_ context.Context, senderID string) ([]conversation.RawMessage, error) {
	number, ok := s.index[senderID]
	if !ok {
		return nil, nil
	}

	chunk, err := s.loadChunk(number)
	if err != nil {
		return nil, err
	}

	for _, chatter := range chunk.Chatters {
		if chatter.SenderID == senderID {
			return chatter.ChatHistory, nil
		}
	}
	return nil, nil
}

// SenderCount reports how many senders the index covers.
func (s *Service) SenderCount() int {
	return len(s.index)
}

func (s *Service) buildIndex() error {
	paths, err := filepath.Glob(filepath.Join(s.dir, conversation.ChunkFileGlob))
	if err != nil {
		return err
	}
	sort.Strings(paths)

	for _, path := range paths {
		chunk, err := readChunk(path)
		if err != nil {
			return fmt.Errorf("index %s: %w", filepath.Base(path), err)
		}
		for _, chatter := range chunk.Chatters {
			if chatter.SenderID == "" {
				continue
			}
			s.index[chatter.SenderID] = chunk.ChunkNumber
		}
	}

	s.log.Info().
		Int("chunks", len(paths)).
		Int("senders", len(s.index)).
		Msg("chunk index built")
	return nil
}

func (s *Service) loadChunk(number int) (*conversation.Chunk, error) {
	if chunk, ok := s.chunks.Get(number); ok {
		metrics.ChunkCacheHits.Inc()
		return chunk, nil
	}
	metrics.ChunkCacheMisses.Inc()

	path := filepath.Join(s.dir, conversation.ChunkFileName(number))
	chunk, err := readChunk(path)
	if err != nil {
		metrics.ChunkLoads.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.ChunkLoads.WithLabelValues("ok").Inc()

	s.chunks.Add(number, chunk)
	return chunk, nil
}

func readChunk(path string) (*conversation.Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var chunk conversation.Chunk
	if err := json.Unmarshal(data, &chunk); err != nil {
		return nil, fmt.Errorf("decode chunk %s: %w", filepath.Base(path), err)
	}
	return &chunk, nil
}
