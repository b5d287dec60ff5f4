package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	api "meeting-notes-backend/cmd/api"
	"meeting-notes-backend/internal/notification"
	summarydomain "meeting-notes-backend/internal/summary/domain"
	summaryRepo "meeting-notes-backend/internal/summary/repository"
	summaryUsecase "meeting-notes-backend/internal/summary/usecase"
	"meeting-notes-backend/pkg/ai"
	"meeting-notes-backend/pkg/config"
	"meeting-notes-backend/pkg/database"
	"meeting-notes-backend/pkg/gmail"
	"meeting-notes-backend/pkg/logger"
	"meeting-notes-backend/pkg/mailer"
	"meeting-notes-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.FromEnv(cfg.LogLevel, cfg.LogFormat)
	logger.SetDefault(log)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New("meeting_notes")
	}

	// Initialize repository (gorm, or in-memory when DATABASE_DRIVER=memory)
	repo, closeDB, err := newRepository(cfg, log)
	if err != nil {
		return err
	}
	defer closeDB()

	// Initialize AI service
	summarizer, err := ai.NewSummarizerService(ctx, ai.Config{
		Provider: ai.ProviderType(cfg.AIProvider),
		APIKey:   cfg.AIAPIKey(),
		BaseURL:  aiBaseURL(cfg),
		Model:    cfg.AIModel,
		Timeout:  cfg.AIRequestTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize AI service: %w", err)
	}
	if closer, ok := summarizer.(interface{ Close() error }); ok {
		defer closer.Close()
	}
	log.Info("AI service initialized", "provider", summarizer.Provider())

	// Initialize mail transport
	sender, err := newSender(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize mail transport: %w", err)
	}
	log.Info("mail transport initialized", "transport", cfg.MailTransport)

	notifier := notification.NewService(sender, m)
	uc := summaryUsecase.NewSummaryUsecase(repo, summarizer, notifier, m)

	handler := api.NewHandler(uc, cfg, m, log)
	return handler.Start(ctx, ":"+cfg.Port)
}

func newRepository(cfg *config.Config, log *slog.Logger) (summaryRepo.SummaryRepository, func(), error) {
	if strings.EqualFold(cfg.DatabaseDriver, database.DriverMemory) {
		log.Warn("using in-memory summary store, data will not survive a restart")
		return summaryRepo.NewMemorySummaryRepository(), func() {}, nil
	}

	db, err := database.NewConnection(cfg.DatabaseDriver, cfg.DatabaseURL, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&summarydomain.Summary{}); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Info("database connected", "driver", cfg.DatabaseDriver)

	closeDB := func() {
		if err := database.Close(db); err != nil {
			log.Error("failed to close database", "error", err)
		}
	}
	return summaryRepo.NewSummaryRepository(db), closeDB, nil
}

func newSender(ctx context.Context, cfg *config.Config) (mailer.Sender, error) {
	switch strings.ToLower(cfg.MailTransport) {
	case "", "smtp":
		return mailer.NewSMTPSender(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.EmailUser,
			Password: cfg.EmailPass,
			Timeout:  cfg.MailTimeout,
		})
	case "gmail":
		return gmail.NewSender(ctx, gmail.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RefreshToken: cfg.GoogleRefreshToken,
			From:         cfg.EmailUser,
			Timeout:      cfg.MailTimeout,
		})
	default:
		return nil, fmt.Errorf("unsupported mail transport: %s", cfg.MailTransport)
	}
}

// aiBaseURL lets OLLAMA_BASE_URL stand in for AI_BASE_URL when Ollama is selected.
func aiBaseURL(cfg *config.Config) string {
	if cfg.AIBaseURL == "" && ai.ProviderType(strings.ToLower(cfg.AIProvider)) == ai.ProviderOllama {
		return cfg.OllamaBaseURL
	}
	return cfg.AIBaseURL
}
