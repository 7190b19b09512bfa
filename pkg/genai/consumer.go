package genai

import "context"

// Part is one piece of a turn's content: text, or decoded image bytes.
type Part struct {
	Text      string
	ImageMIME string
	ImageData []byte
}

func TextPart(text string) Part {
	return Part{Text: text}
}

func ImagePart(mime string, data []byte) Part {
	return Part{ImageMIME: mime, ImageData: data}
}

func (p Part) IsImage() bool {
	return len(p.ImageData) > 0
}

// Turn is one message-and-role pair sent to the model.
type Turn struct {
	Role  string
	Parts []Part
}

func (t Turn) HasImage() bool {
	for _, p := range t.Parts {
		if p.IsImage() {
			return true
		}
	}
	return false
}

// Consumer is the remote generative model: given ordered conversation turns
// and a new turn, produce a reply, optionally as an incremental stream.
type Consumer interface {
	// Reply returns the full response in one shot.
	Reply(ctx context.Context, instruction string, history []Turn, turn Turn) (string, error)

	// ReplyStream forwards partial text fragments to onDelta as they arrive
	// and returns the concatenation of all fragments. onDelta may be nil.
	ReplyStream(ctx context.Context, instruction string, history []Turn, turn Turn, onDelta func(string)) (string, error)
}
