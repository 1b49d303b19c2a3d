// Package assistant owns the conversation timeline and drives every
// exchange with the AI backend, whether initiated by typed text or by
// transcribed voice. Structured replies are written back into the
// proposal store; everything else becomes timeline entries.
package assistant

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yfkiwi/voicefirst/pkg/gateway"
	"github.com/yfkiwi/voicefirst/pkg/proposal"
	"github.com/yfkiwi/voicefirst/pkg/sections"
)

// ChatClient is the slice of the backend gateway the orchestrator
// needs.
type ChatClient interface {
	Chat(ctx context.Context, req gateway.ChatRequest) (*gateway.ChatResponse, error)
}

// SpeechPlayer plays decoded reply audio. Playback is fire-and-forget.
type SpeechPlayer interface {
	Play(data []byte)
}

// GuidanceDelay is how long the UI should wait between the section
// announcement and the guidance entry, so they read as two beats.
const GuidanceDelay = 500 * time.Millisecond

const personaPreamble = "You are a warm, encouraging grant-writing assistant helping a community " +
	"organization draft a funding proposal. Keep replies concise and practical, ask one clarifying " +
	"question at a time, and never invent facts about the applicant."

const (
	welcomeFresh = "Hello! I'm your AI Grant Assistant. I'll guide you through creating a professional " +
		"proposal. Let's start with the Cover Page - I'll help you gather the essential information. " +
		"What's your project about?"
	welcomeDraft = "Hello! I've reviewed your existing draft. I'm here to help you improve it section " +
		"by section. Let's start with the Cover Page. What aspects would you like to enhance?"
)

// Exchange is one in-flight chat round trip. Its context is cancelled
// when the session resets or the active section changes, so a stale
// response is never applied.
type Exchange struct {
	ctx     context.Context
	cancel  context.CancelFunc
	Request gateway.ChatRequest
}

// Context returns the cancellation context for the exchange.
func (e *Exchange) Context() context.Context {
	return e.ctx
}

// Orchestrator manages one session's conversation. All methods must be
// called from a single goroutine (the UI event loop); backend round
// trips happen outside via Exchange and are applied with Resolve.
type Orchestrator struct {
	store  *proposal.Store
	chat   ChatClient
	player SpeechPlayer
	log    *logrus.Entry

	timeline []Message
	seq      int
	awaiting bool
	section  int
	current  *Exchange
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithPlayer enables reply audio playback.
func WithPlayer(p SpeechPlayer) Option {
	return func(o *Orchestrator) { o.player = p }
}

// New creates an orchestrator bound to a proposal store and a chat
// client. Call Reset before use.
func New(store *proposal.Store, chat ChatClient, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store: store,
		chat:  chat,
		log:   logrus.WithField("component", "assistant"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Timeline returns the message timeline in insertion order.
func (o *Orchestrator) Timeline() []Message {
	return o.timeline
}

// Awaiting reports whether a reply is pending. Callers must not start
// a new exchange while this is true.
func (o *Orchestrator) Awaiting() bool {
	return o.awaiting
}

// Section returns the active section number.
func (o *Orchestrator) Section() int {
	return o.section
}

// Reset starts a session: any pending exchange is aborted and the
// timeline is replaced with a single welcome message, worded for
// whether the session began from an existing draft.
func (o *Orchestrator) Reset(hasExistingDraft bool) Message {
	o.abortCurrent()
	o.timeline = nil
	o.awaiting = false
	o.section = 0

	text := welcomeFresh
	if hasExistingDraft {
		text = welcomeDraft
	}
	return o.append(RoleAssistant, text)
}

// SetSection switches the active section, aborting any in-flight
// exchange. It appends and returns the announcement entry; callers
// schedule Guidance after GuidanceDelay. Setting the already-active
// section does nothing.
func (o *Orchestrator) SetSection(section int) (Message, bool) {
	if section == o.section {
		return Message{}, false
	}
	o.abortCurrent()
	o.awaiting = false
	o.section = section

	name := sections.Name(section)
	if name == "" {
		name = "this section"
	}
	return o.append(RoleSystem, "📍 Now working on: "+name), true
}

// Guidance appends the section's guidance entry, the second beat of a
// section change. It is dropped when the section changed again in the
// meantime.
func (o *Orchestrator) Guidance(section int) (Message, bool) {
	if section != o.section {
		return Message{}, false
	}
	return o.append(RoleAssistant, sections.GuidanceFor(section)), true
}

// BeginExchange appends the user entry and prepares the outbound
// request. Empty or whitespace-only input is rejected silently: no
// entry, no request. Returns false while a reply is already pending.
func (o *Orchestrator) BeginExchange(text string) (*Exchange, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || o.awaiting {
		return nil, false
	}

	history := o.buildHistory()
	o.append(RoleUser, trimmed)
	o.awaiting = true

	section := o.section
	ctx, cancel := context.WithCancel(context.Background())
	ex := &Exchange{
		ctx:    ctx,
		cancel: cancel,
		Request: gateway.ChatRequest{
			Message: trimmed,
			History: history,
			Section: &section,
		},
	}
	o.current = ex
	return ex, true
}

// Resolve applies the outcome of an exchange. Results from aborted
// exchanges are dropped. Returns the entries appended to the timeline.
func (o *Orchestrator) Resolve(ex *Exchange, resp *gateway.ChatResponse, err error) []Message {
	if ex == nil || ex != o.current || ex.ctx.Err() != nil {
		o.log.Debug("dropping stale exchange result")
		return nil
	}
	o.current = nil
	o.awaiting = false
	ex.cancel()

	if err != nil {
		o.log.WithError(err).Debug("exchange failed")
		return []Message{o.append(RoleSystem, "⚠️ "+ErrorDetail(err))}
	}

	var appended []Message
	reply := strings.TrimSpace(resp.Message)

	if confirmation, ok := o.applyFieldUpdates(resp.FieldUpdates, reply); ok {
		appended = append(appended, confirmation)
	}

	msg := Message{
		ID:        messageID(o.nextSeq()),
		Role:      RoleAssistant,
		Content:   resp.Message,
		Timestamp: time.Now(),
	}
	if audio, audioErr := resp.Audio(); audioErr == nil && len(audio) > 0 {
		msg.Audio = audio
		if o.player != nil {
			go o.player.Play(audio)
		}
	}
	o.timeline = append(o.timeline, msg)
	appended = append(appended, msg)
	return appended
}

// Send runs one full exchange synchronously: the non-TUI path used by
// the chat subcommand and by tests. Transcribed voice feeds the same
// path as typed text.
func (o *Orchestrator) Send(text string) error {
	ex, ok := o.BeginExchange(text)
	if !ok {
		return nil
	}
	resp, err := o.chat.Chat(ex.Context(), ex.Request)
	o.Resolve(ex, resp, err)
	return err
}

// NoteError appends a system entry surfacing an error to the timeline.
func (o *Orchestrator) NoteError(detail string) Message {
	return o.append(RoleSystem, "⚠️ "+detail)
}

// Replay plays the retained audio of a timeline entry. Returns false
// when the entry has no audio or playback is unavailable.
func (o *Orchestrator) Replay(id string) bool {
	if o.player == nil {
		return false
	}
	for _, msg := range o.timeline {
		if msg.ID == id && len(msg.Audio) > 0 {
			go o.player.Play(msg.Audio)
			return true
		}
	}
	return false
}

// applyFieldUpdates merges allow-listed extracted fields into the
// store, or falls back to writing the raw reply into the section's
// fallback field. Returns the confirmation entry when anything was
// written.
func (o *Orchestrator) applyFieldUpdates(updates map[string]string, reply string) (Message, bool) {
	cfg, ok := sections.FieldConfigFor(o.section)
	if !ok {
		return Message{}, false
	}

	allowed := make(map[string]bool, len(cfg.Fields))
	for _, name := range cfg.Fields {
		allowed[name] = true
	}

	filtered := make(map[string]string)
	for name, value := range updates {
		value = strings.TrimSpace(value)
		if allowed[name] && value != "" {
			filtered[name] = value
		}
	}

	if len(filtered) > 0 {
		labels, err := o.store.MergeFields(filtered)
		if err != nil {
			o.log.WithError(err).Warn("field merge rejected entries")
		}
		if len(labels) > 0 {
			return o.append(RoleSystem, confirmationText(labels)), true
		}
		return Message{}, false
	}

	if cfg.Fallback != "" && reply != "" {
		if err := o.store.SetField(cfg.Fallback, reply); err != nil {
			o.log.WithError(err).Warn("fallback field write failed")
			return Message{}, false
		}
		label := proposal.FieldLabel(cfg.Fallback)
		return o.append(RoleSystem, "✨ "+label+" has been drafted from the assistant's reply. Review and edit as needed."), true
	}
	return Message{}, false
}

func confirmationText(labels []string) string {
	if len(labels) == 1 {
		return "✨ " + labels[0] + " has been auto-filled! Review and edit as needed."
	}
	return "✨ Auto-filled fields: " + strings.Join(labels, ", ") + ". Review and edit as needed."
}

// buildHistory assembles the outbound conversation history: the
// persona preamble, a note naming the active section, the structured
// envelope instruction when the section has an allow-list, then every
// prior user/assistant entry. System/info entries are excluded.
func (o *Orchestrator) buildHistory() []gateway.ChatMessage {
	history := []gateway.ChatMessage{
		{Role: gateway.RoleSystem, Content: personaPreamble},
	}

	if name := sections.Name(o.section); name != "" {
		history = append(history, gateway.ChatMessage{
			Role:    gateway.RoleSystem,
			Content: "The user is currently working on the \"" + name + "\" section of the proposal.",
		})
	}

	if cfg, ok := sections.FieldConfigFor(o.section); ok {
		history = append(history, gateway.ChatMessage{
			Role:    gateway.RoleSystem,
			Content: formatInstruction(cfg),
		})
	}

	for _, msg := range o.timeline {
		switch msg.Role {
		case RoleUser:
			history = append(history, gateway.ChatMessage{Role: gateway.RoleUser, Content: msg.Content})
		case RoleAssistant:
			history = append(history, gateway.ChatMessage{Role: gateway.RoleAssistant, Content: msg.Content})
		}
	}
	return history
}

func (o *Orchestrator) abortCurrent() {
	if o.current != nil {
		o.current.cancel()
		o.current = nil
	}
}

func (o *Orchestrator) nextSeq() int {
	o.seq++
	return o.seq
}

func (o *Orchestrator) append(role Role, content string) Message {
	msg := Message{
		ID:        messageID(o.nextSeq()),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
	o.timeline = append(o.timeline, msg)
	return msg
}

// ErrorDetail extracts the user-facing message from a gateway error.
func ErrorDetail(err error) string {
	var serverErr *gateway.ServerError
	if errors.As(err, &serverErr) && serverErr.Detail != "" {
		return serverErr.Detail
	}
	return err.Error()
}
