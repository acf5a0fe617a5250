package conversation

import "encoding/json"

// Message is the uniform schema served to the dashboard UI.
type Message struct {
	ID        string          `json:"id"`
	Text      string          `json:"text"`
	Sender    string          `json:"sender"`
	Timestamp string          `json:"timestamp"`
	Position  int             `json:"position"`
	Sentiment string          `json:"sentiment"`
	Card      json.RawMessage `json:"card,omitempty"`
}
