package assistant

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConverseAPI struct {
	in  *bedrockruntime.ConverseInput
	out *bedrockruntime.ConverseOutput
	err error
}

func (f *fakeConverseAPI) Converse(_ context.Context, params *bedrockruntime.ConverseInput, _ ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error) {
	f.in = params
	return f.out, f.err
}

func converseReply(text string) *bedrockruntime.ConverseOutput {
	return &bedrockruntime.ConverseOutput{
		Output: &brtypes.ConverseOutputMemberMessage{
			Value: brtypes.Message{
				Role:    brtypes.ConversationRoleAssistant,
				Content: []brtypes.ContentBlock{&brtypes.ContentBlockMemberText{Value: text}},
			},
		},
	}
}

func TestNewBedrockCompleterValidation(t *testing.T) {
	_, err := NewBedrockCompleter(nil, "model")
	assert.Error(t, err)

	_, err = NewBedrockCompleter(&fakeConverseAPI{}, "  ")
	assert.Error(t, err)
}

func TestBedrockCompleterBuildsConversation(t *testing.T) {
	api := &fakeConverseAPI{out: converseReply("  Here to help.  ")}
	c, err := NewBedrockCompleter(api, "anthropic.claude-3-haiku")
	require.NoError(t, err)

	resp, err := c.Complete(context.Background(), Request{
		System: SystemPrompt,
		History: []Turn{
			{Role: RoleUser, Text: "hi"},
			{Role: RoleAssistant, Text: "hello"},
		},
		Message: "book me in",
	})
	require.NoError(t, err)
	assert.Equal(t, "Here to help.", resp.Text)

	require.NotNil(t, api.in)
	assert.Equal(t, "anthropic.claude-3-haiku", aws.ToString(api.in.ModelId))
	require.Len(t, api.in.System, 1)
	require.Len(t, api.in.Messages, 3)
	assert.Equal(t, brtypes.ConversationRoleUser, api.in.Messages[0].Role)
	assert.Equal(t, brtypes.ConversationRoleAssistant, api.in.Messages[1].Role)
	assert.Equal(t, brtypes.ConversationRoleUser, api.in.Messages[2].Role)
}

func TestBedrockCompleterSkipsBlankHistoryTurns(t *testing.T) {
	api := &fakeConverseAPI{out: converseReply("ok")}
	c, err := NewBedrockCompleter(api, "model")
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), Request{
		History: []Turn{{Role: RoleUser, Text: "   "}},
		Message: "hello",
	})
	require.NoError(t, err)
	assert.Len(t, api.in.Messages, 1)
}

func TestBedrockCompleterEmptyResponse(t *testing.T) {
	api := &fakeConverseAPI{out: &bedrockruntime.ConverseOutput{}}
	c, err := NewBedrockCompleter(api, "model")
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), Request{Message: "hello"})
	assert.Error(t, err)
}
