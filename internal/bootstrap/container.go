package bootstrap

import (
	"context"
	"log"

	"rgpt-backend/internal/config"
	"rgpt-backend/internal/controller"
	"rgpt-backend/internal/pkg/logger"
	"rgpt-backend/internal/pkg/serverutils"
	"rgpt-backend/internal/repository/unitofwork"
	"rgpt-backend/internal/service"
	"rgpt-backend/pkg/chat"
	"rgpt-backend/pkg/events"
	"rgpt-backend/pkg/genai"

	pktNats "rgpt-backend/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	SessionController  controller.ISessionController
	MessageController  controller.IMessageController
	FeedbackController controller.IFeedbackController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS fan-out is optional. Without a broker the in-process bus still runs.
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		pub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			natsPub = pub
		}
	}

	// Redis backs the per-client send limiter. Missing Redis fails open.
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
	}

	// 3. Services
	consumer := genai.NewGeminiConsumer(cfg.Ai.GeminiAPIKey, cfg.Ai.GeminiModel)
	persona := chat.DefaultPersona()

	authService := service.NewAuthService(uowFactory, cfg)
	sessionService := service.NewChatSessionService(uowFactory)
	messageService := service.NewChatMessageService(
		uowFactory,
		consumer,
		persona,
		pubSub,
		natsPub,
		sysLogger,
		cfg.App.UploadDir,
	)
	feedbackService := service.NewFeedbackService(uowFactory)
	consumerService := service.NewConsumerService(
		pubSub,
		events.ChatMessageCreatedTopic,
		uowFactory,
	)

	// 4. Controllers
	rateLimit := serverutils.RateLimitMiddleware(rdb, cfg.Ai.ChatRateLimit)

	return &Container{
		AuthController:     controller.NewAuthController(authService, cfg),
		SessionController:  controller.NewSessionController(sessionService),
		MessageController:  controller.NewMessageController(messageService, persona, rateLimit),
		FeedbackController: controller.NewFeedbackController(feedbackService),
		ConsumerService:    consumerService,
	}
}
