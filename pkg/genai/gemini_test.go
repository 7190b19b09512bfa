package genai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStreamLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{
			name: "data line with text",
			line: `data: {"candidates":[{"content":{"role":"model","parts":[{"text":"Hello"}]}}]}`,
			want: "Hello",
		},
		{
			name: "bare json without prefix",
			line: `{"candidates":[{"content":{"parts":[{"text":"chunk"}]}}]}`,
			want: "chunk",
		},
		{
			name: "multiple parts concatenated",
			line: `data: {"candidates":[{"content":{"parts":[{"text":"a"},{"text":"b"}]}}]}`,
			want: "ab",
		},
		{
			name: "empty line",
			line: "",
			want: "",
		},
		{
			name: "comment line",
			line: ": keep-alive",
			want: "",
		},
		{
			name: "malformed json",
			line: "data: {not json",
			want: "",
		},
		{
			name: "no candidates",
			line: `data: {"candidates":[]}`,
			want: "",
		},
		{
			name: "candidate without content",
			line: `data: {"candidates":[{}]}`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseStreamLine(tt.line))
		})
	}
}

func TestBuildRequest(t *testing.T) {
	c := NewGeminiConsumer("key", "gemini-flash-latest")

	history := []Turn{
		{Role: "user", Parts: []Part{TextPart("earlier question")}},
		{Role: "model", Parts: []Part{TextPart("earlier answer")}},
	}
	turn := Turn{Role: "user", Parts: []Part{
		TextPart("what is this?"),
		ImagePart("image/png", []byte{0x89, 0x50}),
	}}

	req := c.buildRequest("system rules", history, turn)

	require.NotNil(t, req.SystemInstruction)
	assert.Equal(t, "system rules", req.SystemInstruction.Parts[0].Text)

	require.Len(t, req.Contents, 3)
	assert.Equal(t, "user", req.Contents[0].Role)
	assert.Equal(t, "model", req.Contents[1].Role)

	last := req.Contents[2]
	require.Len(t, last.Parts, 2)
	assert.Equal(t, "what is this?", last.Parts[0].Text)
	require.NotNil(t, last.Parts[1].InlineData)
	assert.Equal(t, "image/png", last.Parts[1].InlineData.MimeType)
}

func TestBuildRequestWithoutInstruction(t *testing.T) {
	c := NewGeminiConsumer("key", "gemini-flash-latest")
	req := c.buildRequest("", nil, Turn{Role: "user", Parts: []Part{TextPart("hi")}})
	assert.Nil(t, req.SystemInstruction)
	assert.Len(t, req.Contents, 1)
}

func TestInlineDataMarshalsAsBase64(t *testing.T) {
	data, err := json.Marshal(&geminiInlineData{MimeType: "image/png", Data: []byte{0x01, 0x02, 0x03}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"mime_type":"image/png","data":"AQID"}`, string(data))
}
