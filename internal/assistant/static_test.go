package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticCompleterKeywordMatch(t *testing.T) {
	c := NewStaticCompleter()

	resp, err := c.Complete(context.Background(), Request{Message: "Can I SCHEDULE a visit?"})
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "Appointments screen")

	resp, err = c.Complete(context.Background(), Request{Message: "I have a fever"})
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "assessed by a doctor")
}

func TestStaticCompleterDefaultReply(t *testing.T) {
	c := NewStaticCompleter()

	resp, err := c.Complete(context.Background(), Request{Message: "xyzzy"})
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "general health information")
}

type stubCompleter struct {
	resp Response
	err  error
}

func (s stubCompleter) Complete(context.Context, Request) (Response, error) {
	return s.resp, s.err
}

func TestFallbackCompleterPrefersPrimary(t *testing.T) {
	c := NewFallbackCompleter(
		stubCompleter{resp: Response{Text: "primary"}},
		stubCompleter{resp: Response{Text: "fallback"}},
		nil,
	)

	resp, err := c.Complete(context.Background(), Request{Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "primary", resp.Text)
}

func TestFallbackCompleterFallsBack(t *testing.T) {
	c := NewFallbackCompleter(
		stubCompleter{err: errors.New("throttled")},
		stubCompleter{resp: Response{Text: "fallback"}},
		nil,
	)

	resp, err := c.Complete(context.Background(), Request{Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "fallback", resp.Text)
}

func TestFallbackCompleterBothFail(t *testing.T) {
	fallbackErr := errors.New("also down")
	c := NewFallbackCompleter(
		stubCompleter{err: errors.New("throttled")},
		stubCompleter{err: fallbackErr},
		nil,
	)

	_, err := c.Complete(context.Background(), Request{Message: "hi"})
	assert.ErrorIs(t, err, fallbackErr)
}

func TestFallbackCompleterNoFallback(t *testing.T) {
	primaryErr := errors.New("down")
	c := NewFallbackCompleter(stubCompleter{err: primaryErr}, nil, nil)

	_, err := c.Complete(context.Background(), Request{Message: "hi"})
	assert.ErrorIs(t, err, primaryErr)
}
