package model

// AskRequest is a question for the FAQ, loyalty or flight-details agents
type AskRequest struct {
	Question string `json:"question" binding:"required"`
}

// AskResponse carries the agent's answer
type AskResponse struct {
	Answer string `json:"answer"`
	Took   int64  `json:"took_ms"`
}

// ChatMessage is one frame on the WebSocket chat transport.
// Type is "prompt" or "say" for outbound frames and "input" for inbound ones.
type ChatMessage struct {
	Type    string `json:"type"`
	Session string `json:"session,omitempty"`
	Text    string `json:"text"`
}
