package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"unicode/utf8"

	"rgpt-backend/internal/constant"
	"rgpt-backend/internal/repository/specification"
	"rgpt-backend/internal/repository/unitofwork"
	"rgpt-backend/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const sessionTitleMaxLen = 30

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService titles sessions from the first user message. Sessions are
// created as "New Chat" and renamed once real text arrives.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload events.ChatMessageCreatedPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if !payload.FromUser || strings.TrimSpace(payload.Text) == "" {
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: payload.SessionId})
	if err != nil {
		log.Printf("[ERROR] Failed to get session %s: %v", payload.SessionId, err)
		msg.Nack()
		return
	}
	if session == nil {
		// Session deleted before the event was handled. Ack.
		msg.Ack()
		return
	}

	if session.Title != constant.DefaultSessionTitle {
		msg.Ack()
		return
	}

	session.Title = deriveTitle(payload.Text)
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		log.Printf("[ERROR] Failed to rename session %s: %v", session.Id, err)
		msg.Nack()
		return
	}

	msg.Ack()
}

func deriveTitle(text string) string {
	title := strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(title) <= sessionTitleMaxLen {
		return title
	}
	runes := []rune(title)
	return string(runes[:sessionTitleMaxLen]) + "..."
}
