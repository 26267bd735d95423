package bootstrap

import (
	"context"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"notekeeper-be/internal/config"
	"notekeeper-be/internal/controller"
	"notekeeper-be/internal/handler"
	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/internal/pkg/mailer"
	"notekeeper-be/internal/repository/implementation"
	"notekeeper-be/internal/repository/memory"
	"notekeeper-be/internal/repository/unitofwork"
	"notekeeper-be/internal/service"
	"notekeeper-be/internal/websocket"
	pktNats "notekeeper-be/pkg/nats"
)

const noteChangedTopic = "NOTE_CHANGED"

type Container struct {
	// Controllers
	NotebookController controller.INotebookController
	NoteController     controller.INoteController
	TagController      controller.ITagController
	ShortcutController controller.IShortcutController
	UserController     controller.IUserController
	AuthController     controller.IAuthController

	// Background services, exposed for main.go to run
	ConsumerService service.IConsumerService
	SweepService    service.ISweepService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	_ = sysLogger

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	ticketRepo := memory.NewTicketRepository()

	// 3. Services
	publisherService := service.NewPublisherService(pubSub, noteChangedTopic)
	consumerService := service.NewConsumerService(
		pubSub,
		noteChangedTopic,
		uowFactory,
		natsPub,
	)

	userService := service.NewUserService(uowFactory)
	authService := service.NewAuthService(uowFactory, emailService)

	notebookService := service.NewNotebookService(uowFactory)
	noteService := service.NewNoteService(uowFactory, publisherService)
	reminderService := service.NewReminderService(uowFactory)
	tagService := service.NewTagService(uowFactory)
	shortcutService := service.NewShortcutService(uowFactory)

	sweepLogger := logger.NewIsolatedLogger("logs/sweep.log")
	sweepService := service.NewSweepService(
		uowFactory,
		emailService,
		natsPub,
		sweepLogger,
		cfg.Sweep.Schedule,
		cfg.Sweep.BatchSize,
	)

	// 3.5 Notification system
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger)

	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifService, ticketRepo, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
		NotebookController:  controller.NewNotebookController(notebookService),
		NoteController:      controller.NewNoteController(noteService, reminderService),
		TagController:       controller.NewTagController(tagService),
		ShortcutController:  controller.NewShortcutController(shortcutService),
		UserController:      controller.NewUserController(userService),
		AuthController:      controller.NewAuthController(authService),

		ConsumerService: consumerService,
		SweepService:    sweepService,
	}
}
