package mockbackend

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yfkiwi/voicefirst/pkg/gateway"
)

// newTestClient runs the mock backend behind httptest and points a real
// gateway client at it, so these tests double as client integration
// coverage.
func newTestClient(t *testing.T) *gateway.Client {
	t.Helper()
	server := httptest.NewServer(NewRouter())
	t.Cleanup(server.Close)
	return gateway.NewClient(server.URL + "/api")
}

func TestSubmitProposal(t *testing.T) {
	client := newTestClient(t)

	receipt, err := client.SubmitProposal(context.Background(), gateway.ProposalPayload{
		ProjectTitle:     "Weaving Futures",
		OrganizationName: "Riverbend Co-op",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(receipt.ProposalID, "proposal-"))
	assert.NotEmpty(t, receipt.Message)
}

func TestSubmitProposalRejectsIncomplete(t *testing.T) {
	client := newTestClient(t)

	_, err := client.SubmitProposal(context.Background(), gateway.ProposalPayload{
		ProjectTitle: "No org name",
	})
	require.Error(t, err)

	var serverErr *gateway.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, 422, serverErr.Status)
	assert.Contains(t, serverErr.Detail, "organization_name")
}

func TestAnalyzeDraft(t *testing.T) {
	client := newTestClient(t)

	results, err := client.AnalyzeDraft(context.Background(), "draft.docx",
		strings.NewReader("a draft with some substance to it"))
	require.NoError(t, err)
	require.NotEmpty(t, results)

	for _, item := range results {
		assert.NotEmpty(t, item.Section)
		require.NotNil(t, item.Score)
		assert.LessOrEqual(t, *item.Score, 100.0)
	}
	assert.Contains(t, results[0].Summary, "draft.docx")
}

func TestAnalyzeDraftRejectsEmptyFile(t *testing.T) {
	client := newTestClient(t)

	_, err := client.AnalyzeDraft(context.Background(), "empty.docx", strings.NewReader(""))
	var serverErr *gateway.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, 400, serverErr.Status)
	assert.Contains(t, serverErr.Detail, "empty")
}

func TestChatEchoesAndExtracts(t *testing.T) {
	client := newTestClient(t)

	section := 2
	resp, err := client.Chat(context.Background(), gateway.ChatRequest{
		Message: "Our summary: a community-owned enterprise.",
		Section: &section,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Message)
	assert.Equal(t, "Our summary: a community-owned enterprise.", resp.FieldUpdates["executiveSummary"])

	audio, err := resp.Audio()
	require.NoError(t, err)
	assert.NotEmpty(t, audio)
}

func TestChatWithoutSectionHasNoUpdates(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.Chat(context.Background(), gateway.ChatRequest{Message: "hello"})
	require.NoError(t, err)
	assert.Empty(t, resp.FieldUpdates)
}

func TestChatRejectsBlankMessage(t *testing.T) {
	client := newTestClient(t)

	_, err := client.Chat(context.Background(), gateway.ChatRequest{Message: "   "})
	var serverErr *gateway.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, 422, serverErr.Status)
}

func TestSpeechRoundTrip(t *testing.T) {
	client := newTestClient(t)

	text, err := client.Transcribe(context.Background(), []byte("RIFFwavedata"), "capture.wav")
	require.NoError(t, err)
	assert.NotEmpty(t, text)

	audio, err := client.Synthesize(context.Background(), "read this back")
	require.NoError(t, err)
	assert.NotEmpty(t, audio)
}
