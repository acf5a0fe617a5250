package chunker

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/zainjo/insight-dashboard/backend/internal/model/conversation"
)

// DefaultChunkSize matches the upstream dataset tooling.
const DefaultChunkSize = 500

// Options 控制切分行为。
type Options struct {
	ChunkSize int
}

// Result summarizes one chunking run.
type Result struct {
	TotalChatters int
	TotalChunks   int
	Skipped       int
}

// Split streams the export's ActiveChatters array and writes chunk files plus
// a chunking-summary.json into outDir. The source file is decoded token by
// token so arbitrarily large exports never load into memory at once. Chatters
// without a SenderID or with an empty ChatHistory are skipped.
func Split(srcPath, outDir string, opts Options) (Result, error) {
	size := opts.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}

	f, err := os.Open(srcPath)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Result{}, err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Result{}, err
	}

	dec := json.NewDecoder(f)
	if err := seekActiveChatters(dec); err != nil {
		return Result{}, fmt.Errorf("locate ActiveChatters: %w", err)
	}

	var (
		res     Result
		pending []conversation.Chatter
	)
	for dec.More() {
		var chatter conversation.Chatter
		if err := dec.Decode(&chatter); err != nil {
			return res, fmt.Errorf("decode chatter: %w", err)
		}
		if chatter.SenderID == "" || len(chatter.ChatHistory) == 0 {
			res.Skipped++
			continue
		}

		pending = append(pending, chatter)
		res.TotalChatters++
		if len(pending) >= size {
			if err := writeChunk(outDir, res.TotalChunks, pending); err != nil {
				return res, err
			}
			res.TotalChunks++
			pending = pending[:0]
		}
	}
	if len(pending) > 0 {
		if err := writeChunk(outDir, res.TotalChunks, pending); err != nil {
			return res, err
		}
		res.TotalChunks++
	}

	summary := conversation.ChunkSummary{
		TotalChatters:       res.TotalChatters,
		TotalChunks:         res.TotalChunks,
		MaxChattersPerChunk: size,
		Timestamp:           time.Now().UTC().Format(time.RFC3339),
		SourceFile:          srcPath,
		SourceFileSizeMB:    math.Round(float64(info.Size())/(1024*1024)*10) / 10,
	}
	if err := writeJSON(filepath.Join(outDir, conversation.SummaryFileName), summary); err != nil {
		return res, err
	}
	return res, nil
}

// seekActiveChatters advances the decoder to just inside the ActiveChatters
// array, skipping every other top-level field of the export.
func seekActiveChatters(dec *json.Decoder) error {
	if _, err := dec.Token(); err != nil {
		return err
	}
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if delim, ok := tok.(json.Delim); ok && delim == '}' {
			return errors.New("no ActiveChatters array in export")
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", tok)
		}
		if key == "ActiveChatters" {
			tok, err := dec.Token()
			if err != nil {
				return err
			}
			if delim, ok := tok.(json.Delim); !ok || delim != '[' {
				return errors.New("ActiveChatters is not an array")
			}
			return nil
		}

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return err
		}
	}
}

func writeChunk(outDir string, number int, chatters []conversation.Chatter) error {
	chunk := conversation.Chunk{
		ChunkNumber:   number,
		TotalChatters: len(chatters),
		Chatters:      chatters,
	}
	return writeJSON(filepath.Join(outDir, conversation.ChunkFileName(number)), chunk)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
