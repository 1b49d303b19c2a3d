// Package mockbackend is a local stand-in for the proposal AI backend.
// It implements the same five endpoints with deterministic canned
// behavior so the TUI and the gateway tests can run without live
// OpenAI/ElevenLabs credentials.
package mockbackend

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yfkiwi/voicefirst/pkg/gateway"
	"github.com/yfkiwi/voicefirst/pkg/sections"
)

// silentMP3 is a tiny valid-enough MP3 frame used as canned speech.
var silentMP3 = []byte{0xFF, 0xFB, 0x90, 0x64, 0x00, 0x00, 0x00, 0x00}

// NewRouter builds the mock backend router under the /api prefix.
func NewRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	api := router.Group("/api")
	{
		api.POST("/proposals", submitProposal)
		api.POST("/proposals/analyze", analyzeDraft)
		api.POST("/assist/chat", chatWithAssistant)
		api.POST("/assist/stt", speechToText)
		api.POST("/assist/tts", textToSpeech)
	}
	return router
}

// Run starts the mock backend on the given address.
func Run(addr string) error {
	logrus.WithField("addr", addr).Info("mock backend listening")
	return NewRouter().Run(addr)
}

func fail(c *gin.Context, status int, detail string) {
	c.JSON(status, gin.H{"detail": detail})
}

func submitProposal(c *gin.Context) {
	var payload gateway.ProposalPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		fail(c, http.StatusUnprocessableEntity, "invalid proposal payload: "+err.Error())
		return
	}
	if payload.ProjectTitle == "" || payload.OrganizationName == "" {
		fail(c, http.StatusUnprocessableEntity, "project_title and organization_name are required.")
		return
	}
	c.JSON(http.StatusCreated, gateway.ProposalReceipt{
		Message:    "Proposal accepted for processing.",
		ProposalID: "proposal-" + uuid.New().String()[:8],
	})
}

func analyzeDraft(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, "file field is required.")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		fail(c, http.StatusBadRequest, "could not read uploaded file.")
		return
	}
	if len(content) == 0 {
		fail(c, http.StatusBadRequest, "Uploaded file is empty.")
		return
	}

	// Deterministic scores derived from the upload size keep tests and
	// demo runs stable.
	sizeKB := float64(len(content)) / 1024
	base := float64(55 + len(content)%40)
	summary := fmt.Sprintf("Received %s (%.1f KB).", header.Filename, sizeKB)

	score := func(offset float64) *float64 {
		s := base + offset
		if s > 100 {
			s = 100
		}
		return &s
	}

	c.JSON(http.StatusOK, []gateway.DraftAnalysis{
		{
			Section: "executive_summary",
			Summary: summary + " The summary names the applicant and the request amount.",
			Recommendations: []string{
				"State the total funding request in the first paragraph.",
				"Add one sentence on expected community impact.",
			},
			Score: score(20),
		},
		{
			Section: "problem_statement",
			Summary: "The problem is described but lacks supporting data.",
			Recommendations: []string{
				"Cite recent local statistics to quantify the need.",
			},
			Score: score(5),
		},
		{
			Section:         "budget_overview",
			Summary:         "Budget categories are present without per-year breakdown.",
			Recommendations: []string{"Break the budget down by project year."},
			Score:           score(-10),
		},
	})
}

func chatWithAssistant(c *gin.Context) {
	var req gateway.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "invalid chat payload: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		fail(c, http.StatusUnprocessableEntity, "message must not be empty.")
		return
	}

	resp := gateway.ChatResponse{
		Message: "Thanks - I've noted that. Let me draft something you can refine: " + req.Message,
		AudioBase64: base64.StdEncoding.EncodeToString(silentMP3),
	}

	// Mirror the real backend's allow-list behavior: return an
	// extraction for the section's first field when a section is named.
	if req.Section != nil {
		if cfg, ok := sections.FieldConfigFor(*req.Section); ok && len(cfg.Fields) > 0 {
			target := cfg.Fallback
			if target == "" {
				target = cfg.Fields[0]
			}
			resp.FieldUpdates = map[string]string{target: strings.TrimSpace(req.Message)}
		}
	}

	c.JSON(http.StatusOK, resp)
}

func speechToText(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, "file field is required.")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil || len(content) == 0 {
		fail(c, http.StatusBadRequest, "audio upload is empty.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"text": "We want to establish a community-owned crafts and eco-tourism social enterprise.",
	})
}

func textToSpeech(c *gin.Context) {
	var req struct {
		Text    string `json:"text"`
		VoiceID string `json:"voice_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		fail(c, http.StatusUnprocessableEntity, "text must not be empty.")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"audio_base64": base64.StdEncoding.EncodeToString(silentMP3),
	})
}
