package domain

import (
	"encoding/json"
	"time"
)

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// UnmarshalJSON accepts the legacy "ai" and "bot" sender names.
func (s *Sender) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch raw {
	case "ai", "bot", "assistant":
		*s = SenderAssistant
	default:
		*s = Sender(raw)
	}
	return nil
}

type ChatMessage struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
