package insight

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zainjo/insight-dashboard/backend/internal/model/analytics"
	"github.com/zainjo/insight-dashboard/backend/internal/model/conversation"
	"github.com/zainjo/insight-dashboard/backend/internal/service/archive"
)

var (
	ErrIdentifierRequired = errors.New("conversation id or sender id is required")
	ErrUnresolvedID       = errors.New("conversation id could not be resolved")
	ErrNoMessages         = errors.New("no messages found for sender")
)

const (
	// MaxMessagesPerResponse caps the messages array in a single response.
	MaxMessagesPerResponse = 100

	// IDPrefix is the canonical prefix of generated conversation identifiers.
	IDPrefix = "ZAINJO"

	defaultSentiment = "neutral"
	defaultSender    = "user"

	defaultListLimit = 50
	maxListLimit     = 200
)

// ConversationView is the merged messages+analytics payload served to the UI.
type ConversationView struct {
	SenderID           string                 `json:"senderID"`
	MessageCount       int                    `json:"messageCount"`
	ConversationLength int                    `json:"conversationLength"`
	FirstResponseTime  string                 `json:"firstResponseTime"`
	Messages           []conversation.Message `json:"messages"`
	LoadTime           int64                  `json:"loadTime"`
	Method             string                 `json:"method"`
	Source             string                 `json:"source"`
	QualityScore       float64                `json:"qualityScore"`
	Sentiment          string                 `json:"sentiment"`
	Intents            []string               `json:"intents"`
	SubCategories      []string               `json:"subCategories"`
	KnowledgeGaps      []string               `json:"knowledgeGaps"`
	Recommendations    []string               `json:"recommendations"`
	Trends             []string               `json:"trends"`
}

// Summary is one row in the navigation listing.
type Summary struct {
	ID           string  `json:"id"`
	SenderID     string  `json:"senderID"`
	Sentiment    string  `json:"sentiment"`
	QualityScore float64 `json:"qualityScore"`
	MessageCount int     `json:"messageCount"`
}

// Request carries the raw query identifiers for a conversation lookup.
type Request struct {
	ConversationID string
	SenderID       string
}

// Service assembles conversation views from the chunk archive and the
// precomputed analytics cache.
type Service struct {
	cache   analytics.Store
	archive *archive.Service
	log     zerolog.Logger
}

// NewService wires the insight service to its read-only data sources.
func NewService(cache analytics.Store, archiveSvc *archive.Service, log zerolog.Logger) *Service {
	return &Service{
		cache:   cache,
		archive: archiveSvc,
		log:     log.With().Str("component", "insight").Logger(),
	}
}

// ResolveConversationID maps PREFIX-00001 style identifiers onto the analytics
// cache by positional index: the trailing number minus one. The mapping only
// holds while the cache keeps its ordering.
func (s *Service) ResolveConversationID(id string) (string, error) {
	raw := id
	if i := strings.LastIndex(id, "-"); i >= 0 {
		raw = id[i+1:]
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return "", fmt.Errorf("%w: %q", ErrUnresolvedID, id)
	}

	entry, ok := s.cache.At(n - 1)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnresolvedID, id)
	}
	return entry.SenderID, nil
}

// ConversationID is the inverse of ResolveConversationID for cache index i.
func ConversationID(index int) string {
	return fmt.Sprintf("%s-%05d", IDPrefix, index+1)
}

// BuildConversation resolves the request to a sender, fetches its raw history
// and reshapes it into the uniform view consumed by the dashboard.
func (s *Service) BuildConversation(ctx context.Context, req Request) (ConversationView, error) {
	start := time.Now()

	senderID := strings.TrimSpace(req.SenderID)
	method := "senderID"
	if senderID == "" {
		id := strings.TrimSpace(req.ConversationID)
		if id == "" {
			return ConversationView{}, ErrIdentifierRequired
		}
		resolved, err := s.ResolveConversationID(id)
		if err != nil {
			return ConversationView{}, err
		}
		senderID = resolved
		method = "conversationID"
	}

	raw, err := s.archive.MessagesForSender(ctx, senderID)
	if err != nil {
		return ConversationView{}, fmt.Errorf("load messages for %s: %w", senderID, err)
	}
	if len(raw) == 0 {
		return ConversationView{}, fmt.Errorf("%w: %s", ErrNoMessages, senderID)
	}

	var meta *analytics.ConversationAnalytics
	if entry, ok := s.cache.FindBySender(senderID); ok {
		meta = &entry
	}

	view := ConversationView{
		SenderID:     senderID,
		MessageCount: len(raw),
		Messages:     transformMessages(raw, meta),
		Method:       method,
		Source:       archive.Source,
	}
	applyAnalytics(&view, meta)
	view.LoadTime = time.Since(start).Milliseconds()

	s.log.Debug().
		Str("senderID", senderID).
		Str("method", method).
		Int("messages", len(view.Messages)).
		Msg("conversation assembled")
	return view, nil
}

// ListConversations pages through the cache in its canonical order.
func (s *Service) ListConversations(limit, offset int) []Summary {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	entries := s.cache.List()
	if offset > len(entries) {
		offset = len(entries)
	}
	end := offset + limit
	if end > len(entries) {
		end = len(entries)
	}

	summaries := make([]Summary, 0, end-offset)
	for i := offset; i < end; i++ {
		entry := entries[i]
		sentiment := entry.Sentiment
		if sentiment == "" {
			sentiment = defaultSentiment
		}
		summaries = append(summaries, Summary{
			ID:           ConversationID(i),
			SenderID:     entry.SenderID,
			Sentiment:    sentiment,
			QualityScore: entry.QualityScore,
			MessageCount: entry.MessageCount,
		})
	}
	return summaries
}

// AnalyticsForSender returns the cached analytics entry for a sender.
func (s *Service) AnalyticsForSender(senderID string) (analytics.ConversationAnalytics, bool) {
	return s.cache.FindBySender(senderID)
}

// TotalConversations reports the size of the analytics cache.
func (s *Service) TotalConversations() int {
	return s.cache.Len()
}

// transformMessages reshapes raw chunk records into the uniform API schema,
// capped at MaxMessagesPerResponse. Only the opening message carries the
// conversation-level sentiment; all later positions stay neutral.
func transformMessages(raw []conversation.RawMessage, meta *analytics.ConversationAnalytics) []conversation.Message {
	limit := len(raw)
	if limit > MaxMessagesPerResponse {
		limit = MaxMessagesPerResponse
	}

	messages := make([]conversation.Message, 0, limit)
	for i := 0; i < limit; i++ {
		msg := conversation.Message{
			ID:        raw[i].MessageID,
			Text:      raw[i].MessageText,
			Sender:    raw[i].Sender,
			Timestamp: raw[i].CreatedOn,
			Position:  i,
			Sentiment: defaultSentiment,
			Card:      raw[i].CardData,
		}
		if msg.ID == "" {
			msg.ID = uuid.NewString()
		}
		if msg.Sender == "" {
			msg.Sender = defaultSender
		}
		if i == 0 && meta != nil && meta.Sentiment != "" {
			msg.Sentiment = meta.Sentiment
		}
		messages = append(messages, msg)
	}
	return messages
}

// applyAnalytics merges cache metadata into the view, falling back to the
// documented defaults when the sender has no analytics entry.
func applyAnalytics(view *ConversationView, meta *analytics.ConversationAnalytics) {
	view.Sentiment = defaultSentiment
	view.Intents = []string{}
	view.SubCategories = []string{}
	view.KnowledgeGaps = []string{}
	view.Recommendations = []string{}
	view.Trends = []string{}
	view.ConversationLength = view.MessageCount

	if meta == nil {
		return
	}

	if meta.Sentiment != "" {
		view.Sentiment = meta.Sentiment
	}
	view.QualityScore = meta.QualityScore
	view.FirstResponseTime = meta.FirstResponseTime
	if meta.ConversationLength > 0 {
		view.ConversationLength = meta.ConversationLength
	}
	if meta.Intents != nil {
		view.Intents = meta.Intents
	}
	if meta.SubCategories != nil {
		view.SubCategories = meta.SubCategories
	}
	if meta.KnowledgeGaps != nil {
		view.KnowledgeGaps = meta.KnowledgeGaps
	}
	if meta.Recommendations != nil {
		view.Recommendations = meta.Recommendations
	}
	if meta.Trends != nil {
		view.Trends = meta.Trends
	}
}
