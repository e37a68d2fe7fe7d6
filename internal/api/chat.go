package api

import (
	"context"
	"net/url"
	"time"
)

// ChatRequest is the single operation the chat completion service exposes.
// SessionID is omitted on the first turn; the service assigns one.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse carries the assistant reply and the session identifier to
// echo on every subsequent turn.
type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

// ChatExchange is one stored question/answer pair from the session history.
type ChatExchange struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatClient talks to the chat completion service.
type ChatClient struct {
	client *Client
}

func NewChatClient(client *Client) *ChatClient {
	return &ChatClient{client: client}
}

// Send submits one turn. sessionID is empty on the first turn.
func (c *ChatClient) Send(ctx context.Context, message, sessionID string) (*ChatResponse, error) {
	var out ChatResponse
	req := ChatRequest{Message: message, SessionID: sessionID}
	if err := c.client.do(ctx, "chat message", "POST", "/chat/message", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// History fetches the stored exchanges for a session in conversation order.
func (c *ChatClient) History(ctx context.Context, sessionID string) ([]ChatExchange, error) {
	var out []ChatExchange
	if err := c.client.do(ctx, "chat history", "GET", "/chat/history/"+url.PathEscape(sessionID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
