package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/smartclinic/clinic-ops/internal/api"
	"github.com/smartclinic/clinic-ops/internal/observability/metrics"
	"github.com/smartclinic/clinic-ops/pkg/logging"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	// Greeting seeds every fresh transcript. It is purely local and never
	// sent to the backend.
	Greeting = "Hello! I'm SmartClinic AI, your healthcare assistant. I can help you with general health information, answer questions about symptoms, and provide guidance on appointments. How can I assist you today?"

	// FallbackReply keeps the transcript turn-balanced when a send fails.
	FallbackReply = "I apologize, but I'm having trouble connecting right now. Please try again."
)

// ProtocolError reports a session identifier that changed mid-conversation.
// The session is unusable once this happens; every later Send returns it.
type ProtocolError struct {
	Expected string
	Got      string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("chat: session id changed mid-conversation (had %q, got %q)", e.Expected, e.Got)
}

// Entry is one transcript turn. Entries are append-only values; once a
// provisional user turn is in the transcript it is never rewritten.
type Entry struct {
	Role string
	Text string
	At   time.Time
}

// Service is the slice of the chat completion client the session depends on.
type Service interface {
	Send(ctx context.Context, message, sessionID string) (*api.ChatResponse, error)
	History(ctx context.Context, sessionID string) ([]api.ChatExchange, error)
}

// Session manages a multi-turn conversation: the ordered transcript, the
// pending-reply flag, and the backend-assigned session identifier captured
// on the first reply and echoed on every later one.
type Session struct {
	svc     Service
	logger  *logging.Logger
	metrics *metrics.ChatMetrics
	now     func() time.Time

	mu         sync.Mutex
	sessionID  string
	transcript []Entry
	pending    bool
	broken     *ProtocolError
}

// NewSession creates a session seeded with the local greeting.
func NewSession(svc Service, logger *logging.Logger, m *metrics.ChatMetrics) *Session {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Session{
		svc:     svc,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
	s.transcript = []Entry{{Role: RoleAssistant, Text: Greeting, At: s.now()}}
	return s
}

// Send submits one user turn. Blank input and overlapping sends are no-ops.
// The user turn is appended optimistically before the request goes out; a
// failed request appends the fixed fallback assistant turn so no user turn
// is ever left unanswered, and the error is still surfaced to the caller.
func (s *Session) Send(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	s.mu.Lock()
	if s.broken != nil {
		s.mu.Unlock()
		return s.broken
	}
	if s.pending {
		s.mu.Unlock()
		return nil
	}
	s.pending = true
	s.transcript = append(s.transcript, Entry{Role: RoleUser, Text: text, At: s.now()})
	sessionID := s.sessionID
	s.mu.Unlock()

	resp, err := s.svc.Send(ctx, text, sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = false

	if err != nil {
		s.logger.Error("chat send failed", "error", err)
		s.metrics.ObserveTurn("fallback")
		s.transcript = append(s.transcript, Entry{Role: RoleAssistant, Text: FallbackReply, At: s.now()})
		return err
	}

	if s.sessionID == "" {
		s.sessionID = resp.SessionID
	} else if resp.SessionID != s.sessionID {
		perr := &ProtocolError{Expected: s.sessionID, Got: resp.SessionID}
		s.logger.Error("chat session id mismatch", "expected", perr.Expected, "got", perr.Got)
		s.metrics.ObserveTurn("protocol_error")
		s.broken = perr
		s.transcript = append(s.transcript, Entry{Role: RoleAssistant, Text: FallbackReply, At: s.now()})
		return perr
	}

	s.metrics.ObserveTurn("ok")
	s.transcript = append(s.transcript, Entry{Role: RoleAssistant, Text: resp.Response, At: s.now()})
	return nil
}

// Resume rebuilds the transcript from the stored history of an earlier
// session and adopts its identifier for subsequent turns.
func (s *Session) Resume(ctx context.Context, sessionID string) error {
	exchanges, err := s.svc.History(ctx, sessionID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending {
		return fmt.Errorf("chat: cannot resume while a reply is outstanding")
	}
	transcript := []Entry{{Role: RoleAssistant, Text: Greeting, At: s.now()}}
	for _, ex := range exchanges {
		transcript = append(transcript,
			Entry{Role: RoleUser, Text: ex.Message, At: ex.Timestamp},
			Entry{Role: RoleAssistant, Text: ex.Response, At: ex.Timestamp},
		)
	}
	s.transcript = transcript
	s.sessionID = sessionID
	s.broken = nil
	return nil
}

// Transcript returns a copy of the conversation in insertion order.
func (s *Session) Transcript() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.transcript...)
}

// SessionID returns the backend-assigned identifier, or "" before the first
// successful exchange.
func (s *Session) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// Pending reports whether a reply is outstanding.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}
