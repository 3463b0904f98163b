package types

import "encoding/json"

// ChatEventType identifies the kind of a chat log entry.
type ChatEventType string

// Known chat event types. Anything else decodes as ChatUnknown and is kept
// with its raw payload so counts never silently drop events.
const (
	ChatSystem                 ChatEventType = "system"
	ChatMessage                ChatEventType = "message"
	ChatMakeRequest            ChatEventType = "make_request"
	ChatGiveFeedback           ChatEventType = "give_feedback"
	ChatFeedbackSessionSummary ChatEventType = "feedback_session_summary"
	ChatUnknown                ChatEventType = "unknown"
)

// ChatEvent is one decoded chat log entry.
type ChatEvent struct {
	ID        FlexID          `json:"id,omitempty"`
	Type      ChatEventType   `json:"type"`
	Sender    string          `json:"sender,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
	Payload   ChatPayload     `json:"payload,omitempty"`
	Raw       json.RawMessage `json:"-"` // original bytes, retained for unknown types
}

// ChatPayload is the union of payload fields across event types. Which
// fields are populated depends on the event type.
type ChatPayload struct {
	Content         string           `json:"content,omitempty"`
	RequestType     string           `json:"requestType,omitempty"`
	SessionID       FlexID           `json:"sessionId,omitempty"`
	Participants    []string         `json:"participants,omitempty"`
	SessionMessages []SessionMessage `json:"sessionMessages,omitempty"`
}

// SessionMessage is one turn inside a feedback session summary.
type SessionMessage struct {
	Sender  string `json:"sender,omitempty"`
	Type    string `json:"type,omitempty"`
	Content string `json:"content,omitempty"`
}

// RequestType constants carried in make_request payloads.
const (
	RequestGenerate     = "generate"
	RequestGenerateIdea = "generate_idea"
	RequestEvaluate     = "evaluate"
	RequestEvaluateIdea = "evaluate_idea"
	RequestGiveFeedback = "give_feedback"
)
