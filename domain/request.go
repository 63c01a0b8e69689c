package domain

// InputMessage represents one turn of the transcript sent by the client.
type InputMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /chat. The client sends the full
// transcript on every turn together with a client-generated session id.
type ChatRequest struct {
	SessionID string         `json:"session_id,omitempty"`
	Messages  []InputMessage `json:"messages"`
}

// ChatResponse is the reply to POST /chat.
type ChatResponse struct {
	SessionID string `json:"session_id"`
	Response  string `json:"response"`
	ToolUsed  bool   `json:"tool_used,omitempty"`
	PRURL     string `json:"pr_url,omitempty"`
}

// ResetRequest is the body of POST /reset.
type ResetRequest struct {
	SessionID string `json:"session_id"`
}
