package assistant

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yfkiwi/voicefirst/pkg/gateway"
	"github.com/yfkiwi/voicefirst/pkg/proposal"
)

type fakeChat struct {
	resp *gateway.ChatResponse
	err  error
	last gateway.ChatRequest
}

func (f *fakeChat) Chat(ctx context.Context, req gateway.ChatRequest) (*gateway.ChatResponse, error) {
	f.last = req
	return f.resp, f.err
}

type fakePlayer struct {
	played chan []byte
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{played: make(chan []byte, 4)}
}

func (p *fakePlayer) Play(data []byte) {
	p.played <- data
}

func TestResetWelcomeVariants(t *testing.T) {
	orch := New(proposal.NewStore(), &fakeChat{})

	fresh := orch.Reset(false)
	assert.Equal(t, RoleAssistant, fresh.Role)
	assert.Contains(t, fresh.Content, "I'll guide you through")

	resumed := orch.Reset(true)
	assert.Contains(t, resumed.Content, "existing draft")
	assert.Len(t, orch.Timeline(), 1, "reset replaces the timeline")
	assert.Equal(t, 0, orch.Section())
}

func TestBeginExchangeRejectsEmptyInput(t *testing.T) {
	orch := New(proposal.NewStore(), &fakeChat{})
	orch.Reset(false)
	before := len(orch.Timeline())

	for _, input := range []string{"", "   ", "\n\t"} {
		ex, ok := orch.BeginExchange(input)
		assert.False(t, ok)
		assert.Nil(t, ex)
	}
	assert.Len(t, orch.Timeline(), before, "rejected input must leave no trace")
	assert.False(t, orch.Awaiting())
}

func TestBeginExchangeRejectsWhileAwaiting(t *testing.T) {
	orch := New(proposal.NewStore(), &fakeChat{})
	orch.Reset(false)

	_, ok := orch.BeginExchange("first")
	require.True(t, ok)
	assert.True(t, orch.Awaiting())

	_, ok = orch.BeginExchange("second")
	assert.False(t, ok)
}

func TestHistoryLayout(t *testing.T) {
	chat := &fakeChat{resp: &gateway.ChatResponse{Message: "reply one"}}
	store := proposal.NewStore()
	orch := New(store, chat)
	orch.Reset(false)
	orch.SetSection(2)

	require.NoError(t, orch.Send("draft my summary"))
	require.NoError(t, orch.Send("make it shorter"))

	history := chat.last.History
	require.GreaterOrEqual(t, len(history), 5)
	assert.Equal(t, gateway.RoleSystem, history[0].Role)
	assert.Contains(t, history[0].Content, "grant-writing assistant")
	assert.Contains(t, history[1].Content, `"Executive Summary" section`)
	assert.Contains(t, history[2].Content, "executiveSummary", "allow-list instruction names the fields")

	// Prior conversational turns follow, system/info entries excluded.
	var turns []string
	for _, msg := range history[3:] {
		turns = append(turns, msg.Role+": "+msg.Content)
	}
	joined := strings.Join(turns, "\n")
	assert.Contains(t, joined, "user: draft my summary")
	assert.Contains(t, joined, "assistant: reply one")
	assert.NotContains(t, joined, "Now working on")

	require.NotNil(t, chat.last.Section)
	assert.Equal(t, 2, *chat.last.Section)
}

func TestFieldExtractionConfirmation(t *testing.T) {
	chat := &fakeChat{resp: &gateway.ChatResponse{
		Message: "Got it, noting your title.",
		FieldUpdates: map[string]string{
			"projectTitle": "Weaving Futures",
			"totalBudget":  "ignored, not in section 1 allow-list",
			"blank":        "   ",
		},
	}}
	store := proposal.NewStore()
	orch := New(store, chat)
	orch.Reset(false)
	orch.SetSection(1)

	require.NoError(t, orch.Send("our project is called Weaving Futures"))

	assert.Equal(t, "Weaving Futures", store.Snapshot().ProjectTitle)
	assert.Empty(t, store.Snapshot().TotalBudget, "fields outside the section allow-list are dropped")

	timeline := orch.Timeline()
	confirmation := timeline[len(timeline)-2]
	assert.Equal(t, RoleSystem, confirmation.Role)
	assert.Contains(t, confirmation.Content, "Project Title has been auto-filled")

	reply := timeline[len(timeline)-1]
	assert.Equal(t, RoleAssistant, reply.Role)
	assert.Equal(t, "Got it, noting your title.", reply.Content)
}

func TestFallbackFieldReceivesReply(t *testing.T) {
	chat := &fakeChat{resp: &gateway.ChatResponse{
		Message: "Here is a draft executive summary for your project.",
	}}
	store := proposal.NewStore()
	orch := New(store, chat)
	orch.Reset(false)
	orch.SetSection(2)

	require.NoError(t, orch.Send("please draft the summary"))

	assert.Equal(t, "Here is a draft executive summary for your project.", store.Snapshot().ExecutiveSummary)

	timeline := orch.Timeline()
	confirmation := timeline[len(timeline)-2]
	assert.Contains(t, confirmation.Content, "Executive Summary has been drafted")
}

func TestExchangeErrorProducesSingleSystemEntry(t *testing.T) {
	chat := &fakeChat{err: &gateway.ServerError{Status: 500, Detail: "quota exceeded"}}
	orch := New(proposal.NewStore(), chat)
	orch.Reset(false)
	before := len(orch.Timeline())

	err := orch.Send("hello")
	require.Error(t, err)

	timeline := orch.Timeline()
	require.Len(t, timeline, before+2, "one user entry, one error entry, no assistant entry")
	assert.Equal(t, RoleSystem, timeline[len(timeline)-1].Role)
	assert.Contains(t, timeline[len(timeline)-1].Content, "quota exceeded")
	assert.False(t, orch.Awaiting(), "a failed exchange must unblock input")
}

func TestStaleExchangeDropped(t *testing.T) {
	orch := New(proposal.NewStore(), &fakeChat{})
	orch.Reset(false)

	ex, ok := orch.BeginExchange("about section one")
	require.True(t, ok)

	// Section change aborts the in-flight exchange.
	orch.SetSection(4)
	assert.Error(t, ex.Context().Err())

	before := len(orch.Timeline())
	appended := orch.Resolve(ex, &gateway.ChatResponse{Message: "too late"}, nil)
	assert.Nil(t, appended)
	assert.Len(t, orch.Timeline(), before, "stale results must not touch the timeline")
	assert.False(t, orch.Awaiting())
}

func TestResetAbortsInFlightExchange(t *testing.T) {
	orch := New(proposal.NewStore(), &fakeChat{})
	orch.Reset(false)

	ex, ok := orch.BeginExchange("hi")
	require.True(t, ok)

	orch.Reset(false)
	assert.Error(t, ex.Context().Err())
	assert.Nil(t, orch.Resolve(ex, &gateway.ChatResponse{Message: "late"}, nil))
}

func TestSetSectionAnnouncement(t *testing.T) {
	orch := New(proposal.NewStore(), &fakeChat{})
	orch.Reset(false)

	msg, changed := orch.SetSection(7)
	require.True(t, changed)
	assert.Equal(t, RoleSystem, msg.Role)
	assert.Contains(t, msg.Content, "Now working on: Budget Overview")

	_, changed = orch.SetSection(7)
	assert.False(t, changed, "re-selecting the active section is a no-op")
}

func TestGuidanceDroppedAfterSectionChange(t *testing.T) {
	orch := New(proposal.NewStore(), &fakeChat{})
	orch.Reset(false)
	orch.SetSection(3)

	// The delayed guidance for section 3 arrives after the user has
	// already moved on.
	orch.SetSection(5)
	_, ok := orch.Guidance(3)
	assert.False(t, ok)

	msg, ok := orch.Guidance(5)
	require.True(t, ok)
	assert.Equal(t, RoleAssistant, msg.Role)
	assert.Contains(t, msg.Content, "SMART objectives")
}

func TestReplyAudioRetainedAndReplayable(t *testing.T) {
	audio := []byte{0xFF, 0xFB, 0x01}
	chat := &fakeChat{resp: &gateway.ChatResponse{
		Message:     "spoken reply",
		AudioBase64: base64.StdEncoding.EncodeToString(audio),
	}}
	player := newFakePlayer()
	orch := New(proposal.NewStore(), chat, WithPlayer(player))
	orch.Reset(false)

	require.NoError(t, orch.Send("talk to me"))

	select {
	case data := <-player.played:
		assert.Equal(t, audio, data)
	case <-time.After(time.Second):
		t.Fatal("reply audio was not played")
	}

	timeline := orch.Timeline()
	reply := timeline[len(timeline)-1]
	require.Equal(t, audio, reply.Audio)

	require.True(t, orch.Replay(reply.ID))
	select {
	case data := <-player.played:
		assert.Equal(t, audio, data)
	case <-time.After(time.Second):
		t.Fatal("replay did not play")
	}

	assert.False(t, orch.Replay("msg-999999"))
}

func TestErrorDetail(t *testing.T) {
	assert.Equal(t, "quota exceeded",
		ErrorDetail(&gateway.ServerError{Status: 500, Detail: "quota exceeded"}))
	assert.Contains(t,
		ErrorDetail(&gateway.ProtocolError{Reason: "analysis response is not a list"}),
		"not a list")
}
