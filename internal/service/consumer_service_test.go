package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"rgpt-backend/internal/constant"
	"rgpt-backend/internal/dto"
	"rgpt-backend/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "short text as-is",
			text: "plan my trip",
			want: "plan my trip",
		},
		{
			name: "whitespace collapsed",
			text: "  plan \n my   trip  ",
			want: "plan my trip",
		},
		{
			name: "long text truncated",
			text: "this is a very long first message that keeps going on",
			want: "this is a very long first mess...",
		},
		{
			name: "exactly at the limit",
			text: "123456789012345678901234567890",
			want: "123456789012345678901234567890",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deriveTitle(tt.text))
		})
	}
}

func publishCreatedEvent(t *testing.T, env *testEnv, payload events.ChatMessageCreatedPayload) {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, env.pubSub.Publish(events.ChatMessageCreatedTopic, message.NewMessage(watermill.NewUUID(), data)))
}

func TestAutoTitleFromFirstUserMessage(t *testing.T) {
	env := newTestEnv(t)
	sessionSvc := NewChatSessionService(env.uowFactory)
	consumer := NewConsumerService(env.pubSub, events.ChatMessageCreatedTopic, env.uowFactory)

	ctx := context.Background()
	require.NoError(t, consumer.Consume(ctx))

	sessionId := newSession(t, env, nil)

	publishCreatedEvent(t, env, events.ChatMessageCreatedPayload{
		SessionId: sessionId,
		MessageId: uuid.New(),
		Text:      "how do transformers work?",
		FromUser:  true,
	})

	assert.Eventually(t, func() bool {
		res, err := sessionSvc.Show(ctx, nil, sessionId)
		return err == nil && res.Title == "how do transformers work?"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestAutoTitleSkipsRenamedSessions(t *testing.T) {
	env := newTestEnv(t)
	sessionSvc := NewChatSessionService(env.uowFactory)
	consumer := NewConsumerService(env.pubSub, events.ChatMessageCreatedTopic, env.uowFactory)

	ctx := context.Background()
	require.NoError(t, consumer.Consume(ctx))

	created, err := sessionSvc.Create(ctx, nil, &dto.CreateSessionRequest{Title: "My research"})
	require.NoError(t, err)

	publishCreatedEvent(t, env, events.ChatMessageCreatedPayload{
		SessionId: created.Id,
		MessageId: uuid.New(),
		Text:      "unrelated question",
		FromUser:  true,
	})

	// The rename must not happen; give the consumer a moment to process.
	time.Sleep(100 * time.Millisecond)
	res, err := sessionSvc.Show(ctx, nil, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "My research", res.Title)
}

func TestAutoTitleIgnoresAssistantMessages(t *testing.T) {
	env := newTestEnv(t)
	sessionSvc := NewChatSessionService(env.uowFactory)
	consumer := NewConsumerService(env.pubSub, events.ChatMessageCreatedTopic, env.uowFactory)

	ctx := context.Background()
	require.NoError(t, consumer.Consume(ctx))

	sessionId := newSession(t, env, nil)

	publishCreatedEvent(t, env, events.ChatMessageCreatedPayload{
		SessionId: sessionId,
		MessageId: uuid.New(),
		Text:      "I am the assistant",
		FromUser:  false,
	})

	time.Sleep(100 * time.Millisecond)
	res, err := sessionSvc.Show(ctx, nil, sessionId)
	require.NoError(t, err)
	assert.Equal(t, constant.DefaultSessionTitle, res.Title)
}
