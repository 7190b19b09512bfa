package chat

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"rgpt-backend/internal/constant"
	"rgpt-backend/internal/pkg/apperror"
	"rgpt-backend/internal/pkg/logger"
	"rgpt-backend/pkg/genai"
)

// DecodeImage validates that data is a readable image and returns its mime
// type. Only the header is inspected; the raw bytes are forwarded as-is.
func DecodeImage(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", apperror.Decode(err)
	}
	return "image/" + format, nil
}

// ContentAssembler builds the model-input payload for a new user turn from
// its text and optional uploaded file.
type ContentAssembler struct {
	log logger.ILogger
}

func NewContentAssembler(log logger.ILogger) *ContentAssembler {
	return &ContentAssembler{
		log: log,
	}
}

// Assemble merges the text and the decoded upload into one turn. A failed
// image decode is logged and dropped; the turn proceeds with whatever parts
// remain. Zero remaining parts is a validation failure.
func (a *ContentAssembler) Assemble(text string, upload []byte) (genai.Turn, error) {
	parts := make([]genai.Part, 0, 2)
	if text != "" {
		parts = append(parts, genai.TextPart(text))
	}
	if len(upload) > 0 {
		mime, err := DecodeImage(upload)
		if err != nil {
			if a.log != nil {
				a.log.Warn("content", "dropping undecodable upload", map[string]interface{}{
					"error": err.Error(),
					"bytes": len(upload),
				})
			}
		} else {
			parts = append(parts, genai.ImagePart(mime, upload))
		}
	}

	if len(parts) == 0 {
		return genai.Turn{}, apperror.Validation("no content provided")
	}
	return genai.Turn{Role: constant.ChatMessageRoleUser, Parts: parts}, nil
}
