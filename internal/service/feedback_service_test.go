package service

import (
	"context"
	"testing"

	"rgpt-backend/internal/dto"
	"rgpt-backend/internal/entity"
	"rgpt-backend/internal/model"
	"rgpt-backend/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMessage(t *testing.T, env *testEnv, sessionId uuid.UUID, fromUser bool) uuid.UUID {
	t.Helper()
	msg := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Text:          "some text",
		IsFromUser:    fromUser,
	}
	uow := env.uowFactory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.ChatMessageRepository().Create(context.Background(), msg))
	return msg.Id
}

func seedUser(t *testing.T, env *testEnv) uuid.UUID {
	t.Helper()
	user := &entity.User{
		Id:       uuid.New(),
		Email:    uuid.NewString() + "@example.com",
		FullName: "Test User",
	}
	uow := env.uowFactory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.UserRepository().Create(context.Background(), user))
	return user.Id
}

func TestRateMessage(t *testing.T) {
	env := newTestEnv(t)
	svc := NewFeedbackService(env.uowFactory)
	ctx := context.Background()

	sessionId := newSession(t, env, nil)
	messageId := seedMessage(t, env, sessionId, false)

	res, err := svc.Rate(ctx, nil, messageId, &dto.RateMessageRequest{Rating: entity.FeedbackThumbsUp})
	require.NoError(t, err)
	assert.Equal(t, messageId, res.MessageId)
	assert.Equal(t, entity.FeedbackThumbsUp, res.Rating)

	// A second rating replaces the first, never duplicates it.
	res, err = svc.Rate(ctx, nil, messageId, &dto.RateMessageRequest{Rating: entity.FeedbackThumbsDown})
	require.NoError(t, err)
	assert.Equal(t, entity.FeedbackThumbsDown, res.Rating)

	assert.Equal(t, int64(1), env.countRows(t, &model.MessageFeedback{}))

	var stored model.MessageFeedback
	require.NoError(t, env.db.First(&stored).Error)
	assert.Equal(t, entity.FeedbackThumbsDown, stored.Rating)
}

func TestRateUnknownMessage(t *testing.T) {
	env := newTestEnv(t)
	svc := NewFeedbackService(env.uowFactory)

	_, err := svc.Rate(context.Background(), nil, uuid.New(), &dto.RateMessageRequest{Rating: entity.FeedbackThumbsUp})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestRateMessageInForeignSession(t *testing.T) {
	env := newTestEnv(t)
	svc := NewFeedbackService(env.uowFactory)
	ctx := context.Background()

	owner := seedUser(t, env)
	stranger := uuid.New()
	sessionId := newSession(t, env, &owner)
	messageId := seedMessage(t, env, sessionId, false)

	_, err := svc.Rate(ctx, &stranger, messageId, &dto.RateMessageRequest{Rating: entity.FeedbackThumbsUp})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	_, err = svc.Rate(ctx, &owner, messageId, &dto.RateMessageRequest{Rating: entity.FeedbackThumbsUp})
	assert.NoError(t, err)
}

// Removing a user nulls their feedback authorship instead of dropping the
// rating row.
func TestFeedbackAuthorNulledOnUserDelete(t *testing.T) {
	env := newTestEnv(t)
	svc := NewFeedbackService(env.uowFactory)
	ctx := context.Background()

	userId := seedUser(t, env)
	sessionId := newSession(t, env, &userId)
	messageId := seedMessage(t, env, sessionId, false)

	_, err := svc.Rate(ctx, &userId, messageId, &dto.RateMessageRequest{Rating: entity.FeedbackThumbsUp})
	require.NoError(t, err)

	require.NoError(t, env.db.Unscoped().Where("id = ?", userId).Delete(&model.User{}).Error)

	var row model.MessageFeedback
	require.NoError(t, env.db.Where("message_id = ?", messageId).First(&row).Error)
	assert.Nil(t, row.UserId)
	assert.Equal(t, entity.FeedbackThumbsUp, row.Rating)
}
