package chat

import (
	"context"
	"testing"

	"rgpt-backend/pkg/genai"

	"github.com/stretchr/testify/assert"
)

type fakeConsumer struct {
	replyCalls  int
	streamCalls int
	chunks      []string
	err         error
}

func (f *fakeConsumer) Reply(ctx context.Context, instruction string, history []genai.Turn, turn genai.Turn) (string, error) {
	f.replyCalls++
	if f.err != nil {
		return "", f.err
	}
	full := ""
	for _, c := range f.chunks {
		full += c
	}
	return full, nil
}

func (f *fakeConsumer) ReplyStream(ctx context.Context, instruction string, history []genai.Turn, turn genai.Turn, onDelta func(string)) (string, error) {
	f.streamCalls++
	full := ""
	for _, c := range f.chunks {
		full += c
		if onDelta != nil {
			onDelta(c)
		}
	}
	return full, f.err
}

func TestSelectDelivery(t *testing.T) {
	consumer := &fakeConsumer{}

	textTurn := genai.Turn{Parts: []genai.Part{genai.TextPart("hello")}}
	imageTurn := genai.Turn{Parts: []genai.Part{
		genai.TextPart("look"),
		genai.ImagePart("image/png", []byte{1, 2, 3}),
	}}

	assert.IsType(t, &StreamDelivery{}, SelectDelivery(consumer, textTurn, nil))
	assert.IsType(t, &OneShotDelivery{}, SelectDelivery(consumer, imageTurn, nil))
}

func TestStreamDeliveryForwardsDeltas(t *testing.T) {
	consumer := &fakeConsumer{chunks: []string{"Hel", "lo ", "there"}}

	var got []string
	delivery := NewStreamDelivery(consumer, func(chunk string) {
		got = append(got, chunk)
	})

	turn := genai.Turn{Parts: []genai.Part{genai.TextPart("hi")}}
	full, err := delivery.Deliver(context.Background(), "instruction", nil, turn)

	assert.NoError(t, err)
	assert.Equal(t, "Hello there", full)
	assert.Equal(t, []string{"Hel", "lo ", "there"}, got)
	assert.Equal(t, 1, consumer.streamCalls)
	assert.Equal(t, 0, consumer.replyCalls)
}

func TestStreamDeliveryNilOnDelta(t *testing.T) {
	consumer := &fakeConsumer{chunks: []string{"a", "b"}}
	delivery := NewStreamDelivery(consumer, nil)

	turn := genai.Turn{Parts: []genai.Part{genai.TextPart("hi")}}
	full, err := delivery.Deliver(context.Background(), "instruction", nil, turn)

	assert.NoError(t, err)
	assert.Equal(t, "ab", full)
}

func TestOneShotDelivery(t *testing.T) {
	consumer := &fakeConsumer{chunks: []string{"full reply"}}
	delivery := NewOneShotDelivery(consumer)

	turn := genai.Turn{Parts: []genai.Part{genai.ImagePart("image/png", []byte{1})}}
	full, err := delivery.Deliver(context.Background(), "instruction", nil, turn)

	assert.NoError(t, err)
	assert.Equal(t, "full reply", full)
	assert.Equal(t, 1, consumer.replyCalls)
	assert.Equal(t, 0, consumer.streamCalls)
}
