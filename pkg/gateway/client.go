// Package gateway is the typed client for the proposal backend: one
// request/response function per external operation, a shared response
// handler, and a small error taxonomy. No retries happen here; every
// failure is surfaced to the caller for user-facing messaging.
package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ChatMessage is one role-tagged turn of conversation history.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat history roles understood by the backend.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatRequest is the payload for one assistant exchange.
type ChatRequest struct {
	Message string        `json:"message"`
	History []ChatMessage `json:"history"`
	VoiceID string        `json:"voice_id,omitempty"`
	Section *int          `json:"section,omitempty"`
}

// ChatResponse is the assistant's reply, optionally carrying
// synthesized speech and structured field extractions.
type ChatResponse struct {
	Message      string            `json:"message"`
	AudioBase64  string            `json:"audio_base64,omitempty"`
	FieldUpdates map[string]string `json:"field_updates,omitempty"`
}

// Audio decodes the base64 MP3 stream, returning nil when the reply
// carried no audio.
func (r *ChatResponse) Audio() ([]byte, error) {
	if r.AudioBase64 == "" {
		return nil, nil
	}
	data, err := base64.StdEncoding.DecodeString(r.AudioBase64)
	if err != nil {
		return nil, &ProtocolError{Reason: "invalid audio encoding", Err: err}
	}
	return data, nil
}

// DraftAnalysis is one scored section from the analyze endpoint.
type DraftAnalysis struct {
	Section         string   `json:"section"`
	Summary         string   `json:"summary"`
	Recommendations []string `json:"recommendations"`
	Score           *float64 `json:"score,omitempty"`
}

// ProposalPayload is the submission body for a completed proposal.
type ProposalPayload struct {
	ProjectTitle        string   `json:"project_title"`
	OrganizationName    string   `json:"organization_name"`
	SubmissionDate      string   `json:"submission_date,omitempty"`
	ExecutiveSummary    string   `json:"executive_summary,omitempty"`
	CommunityBackground string   `json:"community_background,omitempty"`
	ProblemDescription  string   `json:"problem_description,omitempty"`
	Objectives          []string `json:"objectives,omitempty"`
	Milestones          []string `json:"milestones,omitempty"`
	RequestedAmount     string   `json:"requested_amount,omitempty"`
	Risks               string   `json:"risks,omitempty"`
}

// ProposalReceipt acknowledges an accepted submission.
type ProposalReceipt struct {
	Message    string `json:"message"`
	ProposalID string `json:"proposal_id"`
}

// Client talks to the proposal backend over HTTP. Safe for use from a
// single caller at a time per feature area; no request is retried.
type Client struct {
	baseURL string
	voiceID string
	http    *http.Client
	log     *logrus.Entry
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithVoiceID sets the voice used for synthesized replies.
func WithVoiceID(id string) Option {
	return func(c *Client) { c.voiceID = id }
}

// NewClient creates a gateway client for the given base URL, e.g.
// "http://127.0.0.1:8000/api".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
		log:     logrus.WithField("component", "gateway"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SubmitProposal posts a completed proposal payload.
func (c *Client) SubmitProposal(ctx context.Context, payload ProposalPayload) (*ProposalReceipt, error) {
	var receipt ProposalReceipt
	if err := c.postJSON(ctx, "/proposals", payload, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// AnalyzeDraft uploads a draft document and returns the per-section
// analysis. The response must be a JSON array.
func (c *Client) AnalyzeDraft(ctx context.Context, filename string, content io.Reader) ([]DraftAnalysis, error) {
	body, err := c.postMultipart(ctx, "/proposals/analyze", filename, content)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &ProtocolError{Reason: "analysis response is not a list"}
	}

	var analyses []DraftAnalysis
	if err := json.Unmarshal(body, &analyses); err != nil {
		return nil, &ProtocolError{Reason: "malformed analysis response", Err: err}
	}
	return analyses, nil
}

// Chat sends one conversational exchange to the assistant.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if req.VoiceID == "" {
		req.VoiceID = c.voiceID
	}
	var resp ChatResponse
	if err := c.postJSON(ctx, "/assist/chat", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Transcribe uploads an audio blob and returns the recognized text.
func (c *Client) Transcribe(ctx context.Context, blob []byte, filename string) (string, error) {
	body, err := c.postMultipart(ctx, "/assist/stt", filename, bytes.NewReader(blob))
	if err != nil {
		return "", err
	}

	var payload struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", &ProtocolError{Reason: "malformed transcription response", Err: err}
	}
	return payload.Text, nil
}

// Synthesize converts text to speech, returning the decoded MP3 bytes.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	req := struct {
		Text    string `json:"text"`
		VoiceID string `json:"voice_id,omitempty"`
	}{Text: text, VoiceID: c.voiceID}

	var resp struct {
		AudioBase64 string `json:"audio_base64"`
	}
	if err := c.postJSON(ctx, "/assist/tts", req, &resp); err != nil {
		return nil, err
	}

	audio, err := base64.StdEncoding.DecodeString(resp.AudioBase64)
	if err != nil {
		return nil, &ProtocolError{Reason: "invalid audio encoding", Err: err}
	}
	return audio, nil
}

// postJSON sends a JSON request and decodes the JSON response into out.
func (c *Client) postJSON(ctx context.Context, path string, payload, out interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &ProtocolError{Reason: "malformed response body", Err: err}
	}
	return nil
}

// postMultipart uploads a single file part named "file" and returns
// the raw response body.
func (c *Client) postMultipart(ctx context.Context, path, filename string, content io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("copy file content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.do(req)
}

// do executes the request and applies the shared response-handling
// routine: transport failure becomes NetworkError, non-2xx becomes
// ServerError with the envelope detail.
func (c *Client) do(req *http.Request) ([]byte, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WithError(err).WithField("path", req.URL.Path).Debug("request failed")
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	c.log.WithFields(logrus.Fields{
		"path":     req.URL.Path,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("backend request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := extractDetail(body)
		if detail == "" {
			detail = strings.TrimSpace(string(body))
		}
		return nil, &ServerError{Status: resp.StatusCode, Detail: detail}
	}
	return body, nil
}
