package analytics

// ConversationAnalytics is the precomputed per-sender summary produced by the
// upstream analysis pipeline. Read-only for this service.
type ConversationAnalytics struct {
	SenderID           string   `json:"senderID"`
	Sentiment          string   `json:"sentiment"`
	QualityScore       float64  `json:"qualityScore"`
	Intents            []string `json:"intents,omitempty"`
	SubCategories      []string `json:"subCategories,omitempty"`
	KnowledgeGaps      []string `json:"knowledgeGaps,omitempty"`
	Recommendations    []string `json:"recommendations,omitempty"`
	Trends             []string `json:"trends,omitempty"`
	MessageCount       int      `json:"messageCount"`
	ConversationLength int      `json:"conversationLength"`
	FirstResponseTime  string   `json:"firstResponseTime"`
}

// Cache is the on-disk analytics cache. Conversations keep the pipeline's
// ordering; conversation identifiers map into it by positional index, so the
// list must never be reordered once identifiers have been handed out.
type Cache struct {
	GeneratedAt        string                  `json:"generatedAt"`
	TotalConversations int                     `json:"totalConversations"`
	Conversations      []ConversationAnalytics `json:"conversations"`
}
