package assistant

import "context"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// SystemPrompt frames every completion request issued by the emulator's chat
// endpoint.
const SystemPrompt = `You are SmartClinic AI, a helpful medical assistant chatbot.
You can help with:
1. General health information and wellness tips
2. Answering questions about symptoms (always recommend seeing a doctor for diagnosis)
3. Providing information about appointment scheduling
4. Explaining medical terms and procedures

Always be professional, empathetic, and remind users that you're not a replacement for professional medical advice.
Never diagnose conditions or prescribe medications.`

// Turn is one prior conversation turn supplied as context.
type Turn struct {
	Role string
	Text string
}

// Request is a completion request: the framing prompt, prior turns, and the
// current user message.
type Request struct {
	System  string
	History []Turn
	Message string
}

// Response is the assistant's reply text.
type Response struct {
	Text string
}

// Completer produces an assistant reply for one turn.
type Completer interface {
	Complete(ctx context.Context, req Request) (Response, error)
}
