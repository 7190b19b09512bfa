package service

import (
	"context"

	"rgpt-backend/internal/constant"
	"rgpt-backend/internal/dto"
	"rgpt-backend/internal/entity"
	"rgpt-backend/internal/pkg/apperror"
	"rgpt-backend/internal/repository/specification"
	"rgpt-backend/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IChatSessionService interface {
	Create(ctx context.Context, userId *uuid.UUID, request *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	List(ctx context.Context, userId *uuid.UUID) ([]*dto.SessionResponse, error)
	Show(ctx context.Context, userId *uuid.UUID, id uuid.UUID) (*dto.SessionResponse, error)
	Update(ctx context.Context, userId *uuid.UUID, id uuid.UUID, request *dto.UpdateSessionRequest) (*dto.SessionResponse, error)
	// Delete soft-deletes; the session disappears from every listing but the
	// row stays in storage.
	Delete(ctx context.Context, userId *uuid.UUID, id uuid.UUID) error
}

type chatSessionService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewChatSessionService(uowFactory unitofwork.RepositoryFactory) IChatSessionService {
	return &chatSessionService{
		uowFactory: uowFactory,
	}
}

// findOwned resolves a live session the requester may touch, or NotFound.
// Soft-deleted sessions are invisible here by construction.
func findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId *uuid.UUID, id uuid.UUID) (*entity.ChatSession, error) {
	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if session == nil || !session.OwnedBy(userId) {
		return nil, apperror.NotFound("Chat session not found.")
	}
	return session, nil
}

func (s *chatSessionService) Create(ctx context.Context, userId *uuid.UUID, request *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	title := request.Title
	if title == "" {
		title = constant.DefaultSessionTitle
	}

	session := &entity.ChatSession{
		Id:     uuid.New(),
		UserId: userId,
		Title:  title,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}
	return sessionToResponse(session), nil
}

func (s *chatSessionService) List(ctx context.Context, userId *uuid.UUID) ([]*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.SessionOwnedBy{UserID: userId},
		specification.SessionListOrder{},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		response = append(response, sessionToResponse(session))
	}
	return response, nil
}

func (s *chatSessionService) Show(ctx context.Context, userId *uuid.UUID, id uuid.UUID) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}
	return sessionToResponse(session), nil
}

func (s *chatSessionService) Update(ctx context.Context, userId *uuid.UUID, id uuid.UUID, request *dto.UpdateSessionRequest) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	if request.Title != nil {
		session.Title = *request.Title
	}
	if request.Pinned != nil {
		session.Pinned = *request.Pinned
	}

	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}
	return sessionToResponse(session), nil
}

func (s *chatSessionService) Delete(ctx context.Context, userId *uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := findOwned(ctx, uow, userId, id)
	if err != nil {
		return err
	}
	return uow.ChatSessionRepository().Delete(ctx, session.Id)
}

func sessionToResponse(session *entity.ChatSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		Id:        session.Id,
		Title:     session.Title,
		Pinned:    session.Pinned,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}
}
