package genai

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Wire types for the Gemini generateContent API.

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     []byte `json:"data"` // encoding/json emits base64
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiContent struct {
	Role  string        `json:"role,omitempty"`
	Parts []*geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	Contents          []*geminiContent        `json:"contents"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig"`
}

type geminiCandidate struct {
	Content *geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []*geminiCandidate `json:"candidates"`
}

// GeminiConsumer talks to the Gemini REST API.
type GeminiConsumer struct {
	client *resty.Client
	apiKey string
	model  string
}

func NewGeminiConsumer(apiKey, model string) *GeminiConsumer {
	client := resty.New().
		SetBaseURL(geminiBaseURL).
		SetTimeout(2 * time.Minute)
	return &GeminiConsumer{
		client: client,
		apiKey: apiKey,
		model:  model,
	}
}

func toContent(turn Turn) *geminiContent {
	parts := make([]*geminiPart, 0, len(turn.Parts))
	for _, p := range turn.Parts {
		if p.IsImage() {
			parts = append(parts, &geminiPart{
				InlineData: &geminiInlineData{MimeType: p.ImageMIME, Data: p.ImageData},
			})
			continue
		}
		parts = append(parts, &geminiPart{Text: p.Text})
	}
	return &geminiContent{Role: turn.Role, Parts: parts}
}

func (c *GeminiConsumer) buildRequest(instruction string, history []Turn, turn Turn) *geminiRequest {
	contents := make([]*geminiContent, 0, len(history)+1)
	for _, h := range history {
		contents = append(contents, toContent(h))
	}
	contents = append(contents, toContent(turn))

	req := &geminiRequest{
		Contents: contents,
		GenerationConfig: &geminiGenerationConfig{
			Temperature:     0.6,
			MaxOutputTokens: 2048,
			TopK:            40,
			TopP:            0.9,
		},
	}
	if instruction != "" {
		req.SystemInstruction = &geminiContent{
			Parts: []*geminiPart{{Text: instruction}},
		}
	}
	return req
}

func (c *GeminiConsumer) Reply(ctx context.Context, instruction string, history []Turn, turn Turn) (string, error) {
	var parsed geminiResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(c.buildRequest(instruction, history, turn)).
		SetResult(&parsed).
		Post(fmt.Sprintf("/models/%s:generateContent", c.model))
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("gemini status %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	text := candidateText(&parsed)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini returned an empty candidate")
	}
	return text, nil
}

func (c *GeminiConsumer) ReplyStream(ctx context.Context, instruction string, history []Turn, turn Turn, onDelta func(string)) (string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetQueryParam("alt", "sse").
		SetHeader("Accept", "text/event-stream").
		SetBody(c.buildRequest(instruction, history, turn)).
		SetDoNotParseResponse(true).
		Post(fmt.Sprintf("/models/%s:streamGenerateContent", c.model))
	if err != nil {
		return "", fmt.Errorf("gemini stream request: %w", err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		b := new(strings.Builder)
		scanner := bufio.NewScanner(body)
		for scanner.Scan() {
			b.WriteString(scanner.Text())
		}
		return "", fmt.Errorf("gemini status %d: %s", resp.StatusCode(), strings.TrimSpace(b.String()))
	}

	full := strings.Builder{}
	scanner := bufio.NewScanner(body)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)
	for scanner.Scan() {
		text := parseStreamLine(scanner.Text())
		if text == "" {
			continue
		}
		full.WriteString(text)
		if onDelta != nil {
			onDelta(text)
		}
	}
	if err := scanner.Err(); err != nil {
		return full.String(), fmt.Errorf("gemini stream read: %w", err)
	}
	return full.String(), nil
}

// parseStreamLine extracts the text fragment from one SSE line of a
// streamGenerateContent response. Non-data lines yield "".
func parseStreamLine(line string) string {
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(line), "data:") {
		line = strings.TrimSpace(line[5:])
	}
	var chunk geminiResponse
	if err := json.Unmarshal([]byte(line), &chunk); err != nil {
		return ""
	}
	return candidateText(&chunk)
}

func candidateText(resp *geminiResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	b := strings.Builder{}
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil && p.Text != "" {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}
