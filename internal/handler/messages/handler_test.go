package messages

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/zainjo/insight-dashboard/backend/internal/model/analytics"
	"github.com/zainjo/insight-dashboard/backend/internal/model/conversation"
	archiveservice "github.com/zainjo/insight-dashboard/backend/internal/service/archive"
	insightservice "github.com/zainjo/insight-dashboard/backend/internal/service/insight"
)

func setupRouter(t *testing.T) *chi.Mux {
	t.Helper()

	dir := t.TempDir()
	chunk := conversation.Chunk{
		ChunkNumber:   0,
		TotalChatters: 1,
		Chatters: []conversation.Chatter{{
			SenderID: "sender-1",
			ChatHistory: []conversation.RawMessage{
				{MessageID: "m-0", MessageText: "hello", Sender: "user", CreatedOn: "2025-01-27T12:00:00Z"},
				{MessageID: "m-1", MessageText: "hi, how can I help?", Sender: "bot", CreatedOn: "2025-01-27T12:00:05Z"},
			},
		}},
	}
	data, err := json.Marshal(chunk)
	if err != nil {
		t.Fatalf("marshal chunk: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, conversation.ChunkFileName(0)), data, 0o644); err != nil {
		t.Fatalf("write chunk: %v", err)
	}

	arch, err := archiveservice.NewService(dir, 2, zerolog.Nop())
	if err != nil {
		t.Fatalf("archive service: %v", err)
	}

	cache := analytics.NewCacheStore([]analytics.ConversationAnalytics{{
		SenderID:     "sender-1",
		Sentiment:    "positive",
		QualityScore: 4.2,
		MessageCount: 2,
	}})

	handler := New(insightservice.NewService(cache, arch, zerolog.Nop()), zerolog.Nop())

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func TestGetConversationMissingParams(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/messages/zainjo", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] == "" {
		t.Fatal("expected error field in response")
	}
}

func TestGetConversationBySenderID(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/messages/zainjo?senderID=sender-1", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var view insightservice.ConversationView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if view.SenderID != "sender-1" {
		t.Fatalf("unexpected senderID: %s", view.SenderID)
	}
	if view.Method != "senderID" {
		t.Fatalf("unexpected method: %s", view.Method)
	}
	if len(view.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(view.Messages))
	}
	if view.Messages[0].Sentiment != "positive" {
		t.Fatalf("first message sentiment: got %s", view.Messages[0].Sentiment)
	}
	if view.Messages[1].Sentiment != "neutral" {
		t.Fatalf("second message sentiment: got %s", view.Messages[1].Sentiment)
	}
}

func TestGetConversationByConversationID(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/messages/zainjo?id=ZAINJO-00001", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var view insightservice.ConversationView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if view.SenderID != "sender-1" {
		t.Fatalf("unexpected senderID: %s", view.SenderID)
	}
	if view.Method != "conversationID" {
		t.Fatalf("unexpected method: %s", view.Method)
	}
}

func TestGetConversationUnknownSender(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/messages/zainjo?senderID=ghost", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestGetConversationUnresolvableID(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/messages/zainjo?id=ZAINJO-00099", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
