package conversation

import (
	"encoding/json"
	"fmt"
)

// RawMessage mirrors one ChatHistory entry as recorded by the upstream chat
// system. Keys are PascalCase in the source dataset.
type RawMessage struct {
	MessageID   string          `json:"MessageID"`
	MessageText string          `json:"MessageText"`
	Sender      string          `json:"Sender"`
	CreatedOn   string          `json:"CreatedOn"`
	CardData    json.RawMessage `json:"CardData,omitempty"`
}

// Chatter groups a sender with its recorded history inside a chunk file.
type Chatter struct {
	SenderID    string       `json:"SenderID"`
	ChatHistory []RawMessage `json:"ChatHistory"`
}

// Chunk is the on-disk layout of a zainjo-chunk-NNN.json file.
type Chunk struct {
	ChunkNumber   int       `json:"chunkNumber"`
	TotalChatters int       `json:"totalChatters"`
	Chatters      []Chatter `json:"chatters"`
}

// ChunkSummary is written next to the chunk files by the chunker tool.
type ChunkSummary struct {
	TotalChatters       int     `json:"totalChatters"`
	TotalChunks         int     `json:"totalChunks"`
	MaxChattersPerChunk int     `json:"maxChattersPerChunk"`
	Timestamp           string  `json:"timestamp"`
	SourceFile          string  `json:"sourceFile"`
	SourceFileSizeMB    float64 `json:"sourceFileSizeMB"`
}

const (
	// ChunkFileGlob matches every chunk file inside a chunk directory.
	ChunkFileGlob = "zainjo-chunk-*.json"
	// SummaryFileName is the summary written alongside the chunks.
	SummaryFileName = "chunking-summary.json"
)

// ChunkFileName returns the canonical file name for a chunk number.
func ChunkFileName(number int) string {
	return fmt.Sprintf("zainjo-chunk-%03d.json", number)
}
