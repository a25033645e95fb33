package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/livara/chat-service/internal/api/http"
	"github.com/livara/chat-service/internal/api/http/handlers"
	"github.com/livara/chat-service/internal/auth"
	"github.com/livara/chat-service/internal/config"
	"github.com/livara/chat-service/internal/events"
	"github.com/livara/chat-service/internal/observability"
	"github.com/livara/chat-service/internal/persistence"
	"github.com/livara/chat-service/internal/repository"
	"github.com/livara/chat-service/internal/service"
	"github.com/livara/chat-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	rdb := persistence.NewRedis(cfg.Redis, logger)
	defer rdb.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	teamRepo := repository.NewTeamRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	conversationRepo := repository.NewConversationRepository(pool)
	widgetKeyRepo := repository.NewWidgetKeyRepository(pool)
	widgetConfigRepo := repository.NewWidgetConfigRepository(pool)
	llmSettingsRepo := repository.NewLLMSettingsRepository(pool)
	contactRepo := repository.NewContactRepository(pool)
	documentRepo := repository.NewDocumentRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:          userRepo,
		PasswordResetRepo: resetRepo,
		Dispatcher:        dispatcher,
		Logger:            logger,
	})
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	teamService := service.NewTeamService(teamRepo, userRepo)
	widgetService := service.NewWidgetService(widgetKeyRepo, widgetConfigRepo, rdb.Client, dispatcher, logger)
	llmService := service.NewLLMService(cfg.LLM, llmSettingsRepo, dispatcher, logger)
	chatService := service.NewChatService(widgetService, llmService, conversationRepo, dispatcher, logger)
	contactService := service.NewContactService(contactRepo, widgetService)
	documentService := service.NewDocumentService(documentRepo, dispatcher)
	auditService := service.NewAuditService(dispatcher, auditRepo, logger)

	worker.StartAuditWorker(auditService)

	authMiddleware := auth.NewMiddleware(authService.TokenManager())
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, rdb),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Teams:          handlers.NewTeamsHandler(teamService),
		Widget:         handlers.NewWidgetHandler(widgetService, chatService, contactService),
		Conversations:  handlers.NewConversationsHandler(chatService, contactService),
		LLM:            handlers.NewLLMHandler(llmService),
		Documents:      handlers.NewDocumentsHandler(documentService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
