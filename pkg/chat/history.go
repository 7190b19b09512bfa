package chat

import (
	"rgpt-backend/internal/constant"
	"rgpt-backend/internal/entity"
	"rgpt-backend/pkg/genai"
)

// FileLoader reads an attachment's bytes from its stored path.
type FileLoader func(path string) ([]byte, error)

// HistoryProjector turns a session's message log into the turn sequence the
// model consumer expects. It is a pure projection over the log: identical
// input always yields identical output.
type HistoryProjector struct {
	files FileLoader
}

func NewHistoryProjector(files FileLoader) *HistoryProjector {
	return &HistoryProjector{
		files: files,
	}
}

// Project converts messages (ascending by creation time) into turns,
// excluding the newest in-flight message. An attached image that can be
// loaded and decoded contributes an extra part; one that cannot is dropped.
// A message left with zero parts is skipped entirely, never raising.
func (p *HistoryProjector) Project(messages []*entity.ChatMessage) []genai.Turn {
	if len(messages) == 0 {
		return nil
	}

	turns := make([]genai.Turn, 0, len(messages)-1)
	for _, msg := range messages[:len(messages)-1] {
		parts := make([]genai.Part, 0, 2)
		if msg.Text != "" {
			parts = append(parts, genai.TextPart(msg.Text))
		}
		if msg.FilePath != nil && p.files != nil {
			if data, err := p.files(*msg.FilePath); err == nil {
				if mime, derr := DecodeImage(data); derr == nil {
					parts = append(parts, genai.ImagePart(mime, data))
				}
			}
		}
		if len(parts) == 0 {
			continue
		}
		turns = append(turns, genai.Turn{Role: roleOf(msg), Parts: parts})
	}
	return turns
}

func roleOf(msg *entity.ChatMessage) string {
	if msg.IsFromUser {
		return constant.ChatMessageRoleUser
	}
	return constant.ChatMessageRoleModel
}
