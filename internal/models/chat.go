package models

// ChatRequest is the payload forwarded to the conversational webhook.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

// ChatReply is the answer surfaced to the UI. IsError flags the fixed
// apology message so the transcript can style it distinctly.
type ChatReply struct {
	Content string `json:"content"`
	IsError bool    `json:"is_error,omitempty"`
}
