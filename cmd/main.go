package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"traderops/internal/config"
	"traderops/internal/entities"
	"traderops/internal/infrastructure"
	httpiface "traderops/internal/interfaces/http"
	"traderops/internal/interfaces/telegram"
	"traderops/internal/repository"
	"traderops/internal/usecases"
)

func main() {
	seed := flag.Bool("seed", false, "seed demo directions into the catalog and exit")
	flag.Parse()

	// Load .env file; a missing file is fine in production.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.LogLevel)

	// Open SQLite and apply the schema
	dbClient, err := infrastructure.NewSQLiteClient(cfg.DatabasePath)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	// Initialize Repositories
	userRepo := repository.NewUserRepository(dbClient.DB)
	teamRepo := repository.NewTeamRepository(dbClient.DB)
	profitRepo := repository.NewProfitRepository(dbClient.DB)
	directionRepo := repository.NewDirectionRepository(dbClient.DB)
	statsRepo := repository.NewStatsRepository(dbClient.DB)

	if *seed {
		seedDirections(logger, directionRepo)
		return
	}

	// Telegram client with a throttled notification side-channel
	notifyLimiter := infrastructure.NewNotifyLimiter(cfg.NotifyRate, cfg.NotifyBurst)
	telegramClient, err := infrastructure.NewTelegramClient(cfg.TelegramToken, notifyLimiter)
	if err != nil {
		logger.Error("failed to connect to telegram", "error", err)
		os.Exit(1)
	}
	logger.Info("telegram bot connected", "username", telegramClient.Bot.Self.UserName)

	// Services
	userService := usecases.NewUserService(userRepo, directionRepo, cfg.AdminTelegramID)
	adminService := usecases.NewAdminService(userRepo, teamRepo, profitRepo, telegramClient, logger)
	statsService := usecases.NewStatsService(statsRepo)

	// Conversation state machine
	sessions := infrastructure.NewSessionManager()
	router := telegram.NewRouter(sessions, userRepo, teamRepo, directionRepo,
		userService, adminService, statsService, logger)

	// Optional read-only dashboard
	if cfg.DashboardEnabled() {
		auth, err := usecases.NewAuthUsecase(cfg.DashboardPassword, cfg.JWTSecret)
		if err != nil {
			logger.Error("failed to init dashboard auth", "error", err)
			os.Exit(1)
		}
		handler := httpiface.NewHandler(auth, statsService, dbClient.DB, logger)
		middleware := httpiface.NewMiddleware(cfg.JWTSecret)

		gin.SetMode(gin.ReleaseMode)
		engine := gin.New()
		engine.Use(gin.Recovery())
		httpiface.SetupRoutes(engine, handler, middleware)

		go func() {
			logger.Info("dashboard listening", "addr", cfg.HTTPAddr)
			if err := engine.Run(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
				logger.Error("dashboard server failed", "error", err)
			}
		}()
	} else {
		logger.Info("dashboard disabled (JWT_SECRET or DASHBOARD_PASSWORD unset)")
	}

	// Telegram polling
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := telegramClient.Bot.GetUpdatesChan(u)

	// Stopping the update stream closes the channel and drains the loop.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-stop
		logger.Info("shutting down", "signal", sig.String())
		telegramClient.Bot.StopReceivingUpdates()
	}()

	logger.Info("bot started")
	for update := range updates {
		if update.Message == nil {
			continue
		}
		go handleUpdate(router, telegramClient.Bot, update, logger)
	}
}

// handleUpdate serves one inbound message. Per-chat ordering is enforced by
// the session lock inside the router, so updates can be dispatched
// concurrently here.
func handleUpdate(router *telegram.Router, bot *tgbotapi.BotAPI, update tgbotapi.Update, logger *slog.Logger) {
	ctx := context.Background()
	chatID := update.Message.Chat.ID

	var replies []telegram.Reply
	switch {
	case update.Message.IsCommand() && update.Message.Command() == "start":
		replies = router.HandleStart(ctx, chatID)
	case update.Message.IsCommand() && update.Message.Command() == "help":
		replies = router.HandleHelp()
	case update.Message.IsCommand():
		return // unknown commands are ignored
	default:
		replies = router.Handle(ctx, chatID, update.Message.Text)
	}

	for _, r := range replies {
		if _, err := bot.Send(r.ToChattable(chatID)); err != nil {
			logger.Error("send reply", "chat_id", chatID, "error", err)
		}
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
	return logger
}

// seedDirections loads a starter catalog so the menus have something to show.
func seedDirections(logger *slog.Logger, repo *repository.DirectionRepository) {
	ctx := context.Background()
	starters := []entities.Direction{
		{Name: "eToro", Description: "Social trading platform", Link: "https://etoro.com"},
		{Name: "Binance", Description: "Crypto exchange", Link: "https://binance.com"},
		{Name: "Forex", Description: "Foreign exchange market", Link: "https://forex.com"},
		{Name: "Crypto", Description: "Crypto assets", Link: "https://crypto.com"},
	}
	for _, d := range starters {
		direction := d
		if err := repo.Create(ctx, &direction); err != nil {
			logger.Warn("seed direction skipped", "name", d.Name, "error", err)
			continue
		}
		logger.Info("seeded direction", "name", d.Name)
	}
}
