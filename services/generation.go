package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"exam-prep-portal/config"
)

// promptPreamble establishes the assistant persona sent with every request.
const promptPreamble = "You are a friendly study assistant for students preparing for NEET, JEE and B.Tech courses. " +
	"Keep answers clear, encouraging and exam-focused.\n\nStudent question: "

// Canned replies for the three gateway failure modes. These render as
// in-character assistant messages, never as raw errors.
const (
	// FallbackNoKey is returned when no Gemini API key is configured.
	FallbackNoKey = "AI responses need a Gemini API key to be configured. Until then, here are some study tips that always work:\n\n" +
		"• Make a realistic daily timetable and stick to it\n" +
		"• Solve previous years' question papers to learn the exam pattern\n" +
		"• Revise short notes and formulas regularly instead of cramming\n" +
		"• Take mock tests every week and analyse your mistakes\n" +
		"• Sleep well and take short breaks, a fresh mind learns faster"

	// FallbackEmpty is returned when the gateway answers with an
	// unexpected or empty response shape.
	FallbackEmpty = "Sorry, I'm having trouble generating a response right now. Could you try rephrasing your question?"

	// FallbackTransport is returned when the call to the gateway fails
	// outright.
	FallbackTransport = "Sorry, I'm facing some technical difficulties right now. Please try again in a few moments."
)

var (
	generationRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_generation_requests_total",
		Help: "Total generation requests handled by the client.",
	})
	generationFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_generation_fallbacks_total",
		Help: "Generation requests answered with canned fallback content.",
	}, []string{"reason"})
)

// Client talks to the Gemini text-generation gateway. It degrades to canned
// content on every failure path and never returns an error to its caller.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewClient creates a generation client from configuration
func NewClient(cfg *config.Config) *Client {
	return &Client{
		apiKey:  cfg.GeminiAPIKey,
		baseURL: cfg.GeminiBaseURL,
		model:   cfg.GeminiModel,
		client:  &http.Client{},
	}
}

// Gemini generateContent request/response shapes
type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Generate turns one piece of user text into one piece of response text.
// No retries, no explicit timeout beyond the transport default.
func (c *Client) Generate(userText string) string {
	generationRequests.Inc()

	if c.apiKey == "" {
		generationFallbacks.WithLabelValues("no_key").Inc()
		return FallbackNoKey
	}

	text, err := c.callGateway(userText)
	if err != nil {
		log.Debug().Err(err).Msg("gemini call failed")
		generationFallbacks.WithLabelValues("transport").Inc()
		return FallbackTransport
	}
	if text == "" {
		log.Debug().Msg("gemini response carried no candidate text")
		generationFallbacks.WithLabelValues("empty_shape").Inc()
		return FallbackEmpty
	}
	return text
}

// callGateway performs the single POST to the gateway and extracts the first
// generated text span, empty when the response shape carries none.
func (c *Client) callGateway(userText string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: promptPreamble + userText}}},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", errors.Wrap(err, "marshaling gateway request")
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	resp, err := c.client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return "", errors.Wrap(err, "calling gateway")
	}
	defer resp.Body.Close()

	var result geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", errors.Wrap(err, "decoding gateway response")
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}
