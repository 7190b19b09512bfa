package service

import (
	"context"
	"time"

	"rgpt-backend/internal/dto"
	"rgpt-backend/internal/entity"
	"rgpt-backend/internal/pkg/apperror"
	"rgpt-backend/internal/repository/specification"
	"rgpt-backend/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IFeedbackService interface {
	// Rate records a thumbs up/down for a message, replacing any earlier
	// rating for the same message.
	Rate(ctx context.Context, userId *uuid.UUID, messageId uuid.UUID, request *dto.RateMessageRequest) (*dto.FeedbackResponse, error)
}

type feedbackService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewFeedbackService(uowFactory unitofwork.RepositoryFactory) IFeedbackService {
	return &feedbackService{
		uowFactory: uowFactory,
	}
}

func (s *feedbackService) Rate(ctx context.Context, userId *uuid.UUID, messageId uuid.UUID, request *dto.RateMessageRequest) (*dto.FeedbackResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	message, err := uow.ChatMessageRepository().FindOne(ctx, specification.ByID{ID: messageId})
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, apperror.NotFound("Message not found.")
	}

	// The message's session must still be visible to the requester.
	if _, err := findOwned(ctx, uow, userId, message.ChatSessionId); err != nil {
		return nil, err
	}

	feedback := &entity.MessageFeedback{
		Id:        uuid.New(),
		MessageId: messageId,
		UserId:    userId,
		Rating:    request.Rating,
		CreatedAt: time.Now(),
	}
	if err := uow.MessageFeedbackRepository().Upsert(ctx, feedback); err != nil {
		return nil, err
	}

	return &dto.FeedbackResponse{
		Id:        feedback.Id,
		MessageId: feedback.MessageId,
		Rating:    feedback.Rating,
		CreatedAt: feedback.CreatedAt,
	}, nil
}
