package chat

// DefaultSessionID keys conversations for clients that do not track sessions.
const DefaultSessionID = "default"

// Request is the payload accepted by POST /api/chat. History is optional
// caller-supplied context forwarded to the generation provider as-is.
type Request struct {
	Message   string `json:"message"`
	History   []Turn `json:"history,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
}

// Response is returned for every completed chat exchange. UsingRealAI is false
// when the reply came from the canned fallback responder.
type Response struct {
	Response    string `json:"response"`
	SessionID   string `json:"sessionId"`
	UsingRealAI bool   `json:"usingRealAI"`
	Timestamp   string `json:"timestamp"`
}
