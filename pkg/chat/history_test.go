package chat

import (
	"errors"
	"testing"

	"rgpt-backend/internal/constant"
	"rgpt-backend/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func msg(text string, fromUser bool) *entity.ChatMessage {
	return &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: uuid.New(),
		Text:          text,
		IsFromUser:    fromUser,
	}
}

func TestProjectExcludesNewestMessage(t *testing.T) {
	projector := NewHistoryProjector(nil)

	turns := projector.Project([]*entity.ChatMessage{
		msg("first question", true),
		msg("first answer", false),
		msg("in-flight question", true),
	})

	require.Len(t, turns, 2)
	assert.Equal(t, constant.ChatMessageRoleUser, turns[0].Role)
	assert.Equal(t, "first question", turns[0].Parts[0].Text)
	assert.Equal(t, constant.ChatMessageRoleModel, turns[1].Role)
	assert.Equal(t, "first answer", turns[1].Parts[0].Text)
}

func TestProjectEmptyAndSingle(t *testing.T) {
	projector := NewHistoryProjector(nil)

	assert.Empty(t, projector.Project(nil))
	assert.Empty(t, projector.Project([]*entity.ChatMessage{msg("only one", true)}))
}

func TestProjectLoadsAttachedImage(t *testing.T) {
	data := pngBytes(t)
	loader := func(path string) ([]byte, error) {
		assert.Equal(t, "uploads/pic.png", path)
		return data, nil
	}
	projector := NewHistoryProjector(loader)

	withFile := msg("look at this", true)
	path := "uploads/pic.png"
	withFile.FilePath = &path

	turns := projector.Project([]*entity.ChatMessage{
		withFile,
		msg("in-flight", true),
	})

	require.Len(t, turns, 1)
	require.Len(t, turns[0].Parts, 2)
	assert.True(t, turns[0].HasImage())
	assert.Equal(t, "image/png", turns[0].Parts[1].ImageMIME)
}

func TestProjectDropsUnreadableFile(t *testing.T) {
	loader := func(path string) ([]byte, error) {
		return nil, errors.New("gone")
	}
	projector := NewHistoryProjector(loader)

	withFile := msg("caption", true)
	path := "uploads/missing.png"
	withFile.FilePath = &path

	turns := projector.Project([]*entity.ChatMessage{
		withFile,
		msg("in-flight", true),
	})

	// The text part survives on its own.
	require.Len(t, turns, 1)
	require.Len(t, turns[0].Parts, 1)
	assert.False(t, turns[0].HasImage())
}

func TestProjectSkipsEmptyMessages(t *testing.T) {
	loader := func(path string) ([]byte, error) {
		return nil, errors.New("gone")
	}
	projector := NewHistoryProjector(loader)

	// File-only message whose attachment cannot be loaded ends up with zero
	// parts and is skipped rather than sent as an empty turn.
	fileOnly := msg("", true)
	path := "uploads/missing.png"
	fileOnly.FilePath = &path

	turns := projector.Project([]*entity.ChatMessage{
		fileOnly,
		msg("question", true),
		msg("in-flight", true),
	})

	require.Len(t, turns, 1)
	assert.Equal(t, "question", turns[0].Parts[0].Text)
}

func TestProjectIsDeterministic(t *testing.T) {
	projector := NewHistoryProjector(nil)

	log := []*entity.ChatMessage{
		msg("q1", true),
		msg("a1", false),
		msg("q2", true),
		msg("a2", false),
		msg("in-flight", true),
	}

	first := projector.Project(log)
	second := projector.Project(log)
	assert.Equal(t, first, second)
}
