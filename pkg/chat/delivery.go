package chat

import (
	"context"

	"rgpt-backend/pkg/genai"
)

// Delivery obtains the final assistant text for one turn. The two
// implementations are independent capabilities: bulk image-augmented calls
// and incremental text calls.
type Delivery interface {
	Deliver(ctx context.Context, instruction string, history []genai.Turn, turn genai.Turn) (string, error)
}

// OneShotDelivery fetches the full response as a single unit. Used when the
// turn carries binary content: buffering an image round-trip is cheap and
// partial image-conditioned output is not meaningful token by token.
type OneShotDelivery struct {
	consumer genai.Consumer
}

func NewOneShotDelivery(consumer genai.Consumer) *OneShotDelivery {
	return &OneShotDelivery{consumer: consumer}
}

func (d *OneShotDelivery) Deliver(ctx context.Context, instruction string, history []genai.Turn, turn genai.Turn) (string, error) {
	return d.consumer.Reply(ctx, instruction, history, turn)
}

// StreamDelivery forwards fragments to onDelta as they arrive and returns
// the accumulated text. A nil onDelta still accumulates.
type StreamDelivery struct {
	consumer genai.Consumer
	onDelta  func(string)
}

func NewStreamDelivery(consumer genai.Consumer, onDelta func(string)) *StreamDelivery {
	return &StreamDelivery{consumer: consumer, onDelta: onDelta}
}

func (d *StreamDelivery) Deliver(ctx context.Context, instruction string, history []genai.Turn, turn genai.Turn) (string, error) {
	return d.consumer.ReplyStream(ctx, instruction, history, turn, d.onDelta)
}

// SelectDelivery picks the strategy for a turn: one-shot when the turn
// includes binary content, incremental otherwise.
func SelectDelivery(consumer genai.Consumer, turn genai.Turn, onDelta func(string)) Delivery {
	if turn.HasImage() {
		return NewOneShotDelivery(consumer)
	}
	return NewStreamDelivery(consumer, onDelta)
}
