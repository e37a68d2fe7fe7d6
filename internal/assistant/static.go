package assistant

import (
	"context"
	"strings"
)

// StaticCompleter is the deterministic, dependency-free completer used in
// development and tests. Replies are keyword-matched against a small rule
// table.
type StaticCompleter struct {
	rules []staticRule
}

type staticRule struct {
	keywords []string
	reply    string
}

func NewStaticCompleter() *StaticCompleter {
	return &StaticCompleter{
		rules: []staticRule{
			{
				keywords: []string{"appointment", "schedule", "booking"},
				reply:    "You can schedule an appointment from the Appointments screen: pick the patient, a doctor, and a date and time. A staff member will confirm the slot.",
			},
			{
				keywords: []string{"symptom", "pain", "fever", "cough"},
				reply:    "I can share general information, but symptoms should always be assessed by a doctor. Please consider booking an appointment so a clinician can take a proper look.",
			},
			{
				keywords: []string{"hello", "hi", "hey"},
				reply:    "Hello! How can I help you today? I can answer general health questions or help with appointment scheduling.",
			},
			{
				keywords: []string{"thank"},
				reply:    "You're welcome! Let me know if there's anything else I can help with.",
			},
		},
	}
}

func (c *StaticCompleter) Complete(_ context.Context, req Request) (Response, error) {
	message := strings.ToLower(req.Message)
	for _, rule := range c.rules {
		for _, kw := range rule.keywords {
			if strings.Contains(message, kw) {
				return Response{Text: rule.reply}, nil
			}
		}
	}
	return Response{Text: "I'm here to help with general health information and appointment scheduling. Could you tell me a bit more about what you need? Remember I'm not a replacement for professional medical advice."}, nil
}
