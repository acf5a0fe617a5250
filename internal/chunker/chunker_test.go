package chunker_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/zainjo/insight-dashboard/backend/internal/chunker"
	"github.com/zainjo/insight-dashboard/backend/internal/model/conversation"
	"github.com/zainjo/insight-dashboard/backend/internal/service/archive"
)

func writeExport(t *testing.T, chatters []conversation.Chatter) string {
	t.Helper()
	export := map[string]interface{}{
		"Count":          len(chatters),
		"ActiveChatters": chatters,
	}
	data, err := json.Marshal(export)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "Zainjo.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func validChatters(n int) []conversation.Chatter {
	chatters := make([]conversation.Chatter, 0, n)
	for i := 0; i < n; i++ {
		chatters = append(chatters, conversation.Chatter{
			SenderID: fmt.Sprintf("sender-%d", i),
			ChatHistory: []conversation.RawMessage{
				{MessageID: fmt.Sprintf("m-%d", i), MessageText: "hello"},
			},
		})
	}
	return chatters
}

func TestSplitWritesChunksAndSummary(t *testing.T) {
	chatters := validChatters(5)
	// Invalid entries must be skipped, matching the upstream tooling.
	chatters = append(chatters,
		conversation.Chatter{SenderID: "", ChatHistory: []conversation.RawMessage{{MessageText: "x"}}},
		conversation.Chatter{SenderID: "empty-history"},
	)
	src := writeExport(t, chatters)
	out := t.TempDir()

	res, err := chunker.Split(src, out, chunker.Options{ChunkSize: 2})
	require.NoError(t, err)
	require.Equal(t, 5, res.TotalChatters)
	require.Equal(t, 3, res.TotalChunks)
	require.Equal(t, 2, res.Skipped)

	data, err := os.ReadFile(filepath.Join(out, conversation.ChunkFileName(0)))
	require.NoError(t, err)
	var first conversation.Chunk
	require.NoError(t, json.Unmarshal(data, &first))
	require.Equal(t, 0, first.ChunkNumber)
	require.Equal(t, 2, first.TotalChatters)
	require.Equal(t, "sender-0", first.Chatters[0].SenderID)

	data, err = os.ReadFile(filepath.Join(out, conversation.SummaryFileName))
	require.NoError(t, err)
	var summary conversation.ChunkSummary
	require.NoError(t, json.Unmarshal(data, &summary))
	require.Equal(t, 5, summary.TotalChatters)
	require.Equal(t, 3, summary.TotalChunks)
	require.Equal(t, 2, summary.MaxChattersPerChunk)
	require.Equal(t, src, summary.SourceFile)
}

func TestSplitOutputReadableByArchive(t *testing.T) {
	src := writeExport(t, validChatters(7))
	out := t.TempDir()

	_, err := chunker.Split(src, out, chunker.Options{ChunkSize: 3})
	require.NoError(t, err)

	svc, err := archive.NewService(out, 4, zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, 7, svc.SenderCount())

	// sender-6 lands in the last, partially filled chunk.
	msgs, err := svc.MessagesForSender(context.Background(), "sender-6")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, "m-6", msgs[0].MessageID)
}

func TestSplitSkipsForeignTopLevelFields(t *testing.T) {
	raw := `{"Count": 1, "Meta": {"nested": [1, 2, 3]}, "ActiveChatters": [` +
		`{"SenderID": "sender-0", "ChatHistory": [{"MessageText": "hi"}]}]}`
	path := filepath.Join(t.TempDir(), "Zainjo.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	res, err := chunker.Split(path, t.TempDir(), chunker.Options{})
	require.NoError(t, err)
	require.Equal(t, 1, res.TotalChatters)
	require.Equal(t, 1, res.TotalChunks)
}

func TestSplitNoActiveChatters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Zainjo.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Count": 0}`), 0o644))

	_, err := chunker.Split(path, t.TempDir(), chunker.Options{})
	require.Error(t, err)
}
