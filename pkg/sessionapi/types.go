package sessionapi

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ImageData is an image attached to a user message.
type ImageData struct {
	Data   string `json:"data"` // data: URL
	Format string `json:"format,omitempty"`
}

// Message is one stored chat entry. A user entry may carry the assistant's
// reply in Response.
type Message struct {
	MessageID string     `json:"message_id,omitempty"`
	SessionID string     `json:"session_id,omitempty"`
	Role      string     `json:"role"`
	Message   string     `json:"message"`
	BotName   string     `json:"bot_name,omitempty"`
	Timestamp Timestamp  `json:"timestamp"`
	ImageData *ImageData `json:"image_data,omitempty"`
	Response  *string    `json:"response,omitempty"`
}

// HasResponse reports whether the entry carries a non-empty paired reply.
func (m Message) HasResponse() bool {
	return m.Response != nil && *m.Response != ""
}

// SessionSummary is one row of the session list.
type SessionSummary struct {
	SessionID     string    `json:"session_id"`
	UserID        string    `json:"user_id,omitempty"`
	BotName       string    `json:"bot_name"`
	LastUserQuery *string   `json:"last_user_query"`
	MessageCount  int       `json:"message_count"`
	CreatedAt     Timestamp `json:"created_at"`
	LastActivity  Timestamp `json:"last_activity"`
	Status        string    `json:"status,omitempty"`
}

// Query returns the last user query, or "" when the session has none yet.
func (s SessionSummary) Query() string {
	if s.LastUserQuery == nil {
		return ""
	}
	return *s.LastUserQuery
}

// Stats is the aggregate view of one session. Keys the client does not
// know about are kept in Extra.
type Stats struct {
	SessionID         string         `json:"session_id"`
	BotName           string         `json:"bot_name"`
	CreatedAt         Timestamp      `json:"created_at"`
	LastActivity      Timestamp      `json:"last_activity"`
	TotalMessages     int            `json:"total_messages"`
	UserMessages      int            `json:"user_messages"`
	AssistantMessages int            `json:"assistant_messages"`
	Status            string         `json:"status"`
	Extra             map[string]any `json:"-"`
}

var knownStatsKeys = map[string]bool{
	"session_id":         true,
	"bot_name":           true,
	"created_at":         true,
	"last_activity":      true,
	"total_messages":     true,
	"user_messages":      true,
	"assistant_messages": true,
	"status":             true,
}

// IsEmpty reports whether s is the zero value returned for failed lookups.
func (s Stats) IsEmpty() bool {
	return s.SessionID == "" && s.BotName == "" && s.TotalMessages == 0 &&
		s.CreatedAt.IsZero() && s.LastActivity.IsZero() && s.Status == "" && len(s.Extra) == 0
}

// UnmarshalJSON decodes the known fields and keeps the rest in Extra.
func (s *Stats) UnmarshalJSON(data []byte) error {
	type plain Stats
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var extraErr error
	gjson.ParseBytes(data).ForEach(func(key, value gjson.Result) bool {
		if knownStatsKeys[key.String()] {
			return true
		}
		if p.Extra == nil {
			p.Extra = make(map[string]any)
		}
		var v any
		if err := json.Unmarshal([]byte(value.Raw), &v); err != nil {
			extraErr = err
			return false
		}
		p.Extra[key.String()] = v
		return true
	})
	if extraErr != nil {
		return extraErr
	}

	*s = Stats(p)
	return nil
}

type createRequest struct {
	Bot string `json:"bot"`
}

type createResponse struct {
	SessionID string `json:"session_id"`
}

type historyResponse struct {
	History []Message `json:"history"`
}

type listResponse struct {
	Sessions []SessionSummary `json:"sessions"`
}

type searchResponse struct {
	Results []Message `json:"results"`
}
