package service

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"rgpt-backend/internal/constant"
	"rgpt-backend/internal/dto"
	"rgpt-backend/internal/entity"
	"rgpt-backend/internal/pkg/apperror"
	"rgpt-backend/internal/pkg/logger"
	"rgpt-backend/internal/repository/specification"
	"rgpt-backend/internal/repository/unitofwork"
	"rgpt-backend/pkg/chat"
	"rgpt-backend/pkg/events"
	"rgpt-backend/pkg/genai"
	natspkg "rgpt-backend/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// SendMessageInput is the new user turn as it arrives from transport.
type SendMessageInput struct {
	Text       string
	Upload     []byte
	UploadName string
}

type IChatMessageService interface {
	List(ctx context.Context, userId *uuid.UUID, sessionId uuid.UUID) ([]*dto.MessageResponse, error)
	// Send runs the message-exchange pipeline. onDelta, when non-nil,
	// receives partial fragments on the incremental path; the returned
	// response always carries the final persisted texts.
	Send(ctx context.Context, userId *uuid.UUID, sessionId uuid.UUID, input *SendMessageInput, onDelta func(string)) (*dto.SendMessageResponse, error)
}

// chatMessageService is the response dispatcher: it reconstructs context,
// assembles model input, applies the persona rules, picks a delivery
// strategy, and persists both sides of the exchange.
type chatMessageService struct {
	uowFactory unitofwork.RepositoryFactory
	consumer   genai.Consumer
	persona    chat.Persona
	assembler  *chat.ContentAssembler
	projector  *chat.HistoryProjector
	pubSub     *gochannel.GoChannel
	natsPub    *natspkg.Publisher // optional external fan-out, may be nil
	log        logger.ILogger
	uploadDir  string
}

func NewChatMessageService(
	uowFactory unitofwork.RepositoryFactory,
	consumer genai.Consumer,
	persona chat.Persona,
	pubSub *gochannel.GoChannel,
	natsPub *natspkg.Publisher,
	log logger.ILogger,
	uploadDir string,
) IChatMessageService {
	return &chatMessageService{
		uowFactory: uowFactory,
		consumer:   consumer,
		persona:    persona,
		assembler:  chat.NewContentAssembler(log),
		projector:  chat.NewHistoryProjector(os.ReadFile),
		pubSub:     pubSub,
		natsPub:    natsPub,
		log:        log,
		uploadDir:  uploadDir,
	}
}

func (s *chatMessageService) List(ctx context.Context, userId *uuid.UUID, sessionId uuid.UUID) ([]*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := findOwned(ctx, uow, userId, sessionId); err != nil {
		return nil, err
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.MessageLogOrder{},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.MessageResponse, 0, len(messages))
	for _, msg := range messages {
		response = append(response, messageToResponse(msg))
	}
	return response, nil
}

func (s *chatMessageService) Send(ctx context.Context, userId *uuid.UUID, sessionId uuid.UUID, input *SendMessageInput, onDelta func(string)) (*dto.SendMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Ownership gate: no writes happen before this passes.
	session, err := findOwned(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}

	// The user's turn is persisted unconditionally once the gate passes,
	// even if content assembly fails afterwards.
	userMsg := s.buildUserMessage(session.Id, input)
	messageRepo := uow.ChatMessageRepository()
	if err := messageRepo.Create(ctx, userMsg); err != nil {
		return nil, err
	}
	if err := uow.ChatSessionRepository().Touch(ctx, session.Id); err != nil {
		s.log.Warn("dispatcher", "failed to touch session", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
	}
	s.publishCreated(ctx, userMsg)

	turn, err := s.assembler.Assemble(input.Text, input.Upload)
	if err != nil {
		// The user turn stays in the log; no assistant turn is created.
		return nil, err
	}

	assistantText, deliveryMode, provErr := s.produceReply(ctx, uow, session.Id, input.Text, turn, onDelta)

	assistantMsg := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Text:          assistantText,
		IsFromUser:    false,
		Metadata: map[string]interface{}{
			"delivery": deliveryMode,
			"error":    provErr != nil,
		},
	}
	if err := messageRepo.Create(ctx, assistantMsg); err != nil {
		return nil, err
	}
	s.publishCreated(ctx, assistantMsg)

	if provErr != nil {
		// The log already reflects the failed attempt; the caller sees the
		// same text.
		return nil, provErr
	}

	return &dto.SendMessageResponse{
		UserMessage: messageToResponse(userMsg),
		BotMessage:  messageToResponse(assistantMsg),
	}, nil
}

// produceReply resolves the assistant text for an assembled turn: canned
// reply, or remote call through the delivery strategy the turn's shape
// selects. It never returns an empty text.
func (s *chatMessageService) produceReply(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID, text string, turn genai.Turn, onDelta func(string)) (string, string, error) {
	// Persona short-circuit: a trigger match bypasses the remote call.
	if canned, ok := s.persona.Canned(text); ok {
		if onDelta != nil {
			onDelta(canned)
		}
		return canned, "canned", nil
	}

	// History must match log order exactly; the projector drops the newest
	// (in-flight) message, which was persisted just above.
	log, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.MessageLogOrder{},
	)
	if err != nil {
		return "", "", err
	}
	history := s.projector.Project(log)

	delivery := chat.SelectDelivery(s.consumer, turn, onDelta)
	mode := "stream"
	if turn.HasImage() {
		mode = "one_shot"
	}

	reply, err := delivery.Deliver(ctx, s.persona.Instruction, history, turn)
	if err != nil {
		if reply != "" {
			// Mid-stream failure after fragments went out: keep what was
			// produced rather than silently losing the turn.
			s.log.Warn("dispatcher", "stream aborted, persisting partial reply", map[string]interface{}{
				"session_id": sessionId.String(),
				"error":      err.Error(),
			})
			return reply, mode, nil
		}
		errText := constant.AssistantErrorPrefix + err.Error()
		s.log.Error("dispatcher", "model call failed", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		return errText, mode, apperror.ProviderDetail(errText, err)
	}
	return reply, mode, nil
}

func (s *chatMessageService) buildUserMessage(sessionId uuid.UUID, input *SendMessageInput) *entity.ChatMessage {
	msg := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Text:          input.Text,
		IsFromUser:    true,
	}
	if len(input.Upload) > 0 {
		if path, mime, err := s.saveUpload(input.Upload, input.UploadName); err == nil {
			msg.FilePath = &path
			msg.FileMime = &mime
		} else {
			s.log.Error("dispatcher", "failed to store upload", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	return msg
}

func (s *chatMessageService) saveUpload(data []byte, name string) (string, string, error) {
	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		return "", "", err
	}
	filename := uuid.New().String() + filepath.Ext(name)
	path := filepath.Join(s.uploadDir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", "", err
	}
	return path, http.DetectContentType(data), nil
}

func (s *chatMessageService) publishCreated(ctx context.Context, msg *entity.ChatMessage) {
	event := events.NewChatMessageCreated(events.ChatMessageCreatedPayload{
		SessionId: msg.ChatSessionId,
		MessageId: msg.Id,
		Text:      msg.Text,
		FromUser:  msg.IsFromUser,
	})

	payload, err := json.Marshal(event.Payload())
	if err != nil {
		return
	}
	if err := s.pubSub.Publish(events.ChatMessageCreatedTopic, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		s.log.Warn("dispatcher", "failed to publish event", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if s.natsPub != nil {
		if err := s.natsPub.Publish(ctx, event); err != nil {
			s.log.Warn("dispatcher", "failed to publish event to NATS", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

func messageToResponse(msg *entity.ChatMessage) *dto.MessageResponse {
	response := &dto.MessageResponse{
		Id:         msg.Id,
		Text:       msg.Text,
		IsFromUser: msg.IsFromUser,
		Metadata:   msg.Metadata,
		CreatedAt:  msg.CreatedAt,
	}
	if msg.FilePath != nil {
		url := "/" + filepath.ToSlash(*msg.FilePath)
		response.FileURL = &url
	}
	return response
}
