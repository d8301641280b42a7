package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/docqa/internal/config"
	"github.com/set-night/docqa/internal/handler"
	"github.com/set-night/docqa/internal/llm"
	"github.com/set-night/docqa/internal/middleware"
	"github.com/set-night/docqa/internal/service"
	"github.com/set-night/docqa/internal/telegram"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err == nil {
		err = cfg.RequireBot()
	}
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	completer, err := llm.New(cfg)
	if err != nil {
		slog.Error("failed to create LLM client", "error", err)
		os.Exit(1)
	}

	// Initialize services
	ids := service.NewIDSource()
	workspaces := service.NewWorkspaces(ids, cfg.WorkspaceIdleTTL)
	answers := service.NewAnswerService(completer, cfg.Model, cfg.AnswerTimeout)
	transcript := service.NewTranscript(answers)
	uploads := service.NewUploadService(cfg.MaxDocumentChars)
	pricing := service.NewPricing(cfg.PromptPricePerM, cfg.CompletionPricePerM)
	if cfg.ShowUsage && cfg.Provider == config.ProviderOpenRouter {
		pricing = service.ResolvePricing(ctx, llm.NewCatalog(cfg.APIKey, cfg.BaseURL), cfg.Model, pricing)
	}

	// Handler pointer for use in the catch-all closure
	var h *handler.Handler

	// Create bot
	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
			middleware.WorkspaceLoader(workspaces),
		),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			slog.Debug("unhandled update", "update_id", update.ID)
		}),
	}
	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	// Get bot info
	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}

	if cfg.DropPendingUpdates {
		if _, err := b.DeleteWebhook(ctx, &bot.DeleteWebhookParams{DropPendingUpdates: true}); err != nil {
			slog.Warn("failed to drop pending updates", "error", err)
		}
	}

	// Initialize handler
	h = handler.New(handler.Deps{
		Bot:        b,
		Cfg:        cfg,
		Uploads:    uploads,
		Transcript: transcript,
		Pricing:    pricing,
		TgLogger:   telegram.NewTelegramLogger(b, cfg),
	})

	// Register all handlers
	h.Register()

	// Register default text handler for questions
	b.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message == nil {
			return
		}
		// Skip commands
		if len(update.Message.Text) > 0 && update.Message.Text[0] == '/' {
			return
		}
		h.HandleText(ctx, b, update)
	})

	// Start bot
	slog.Info("starting bot",
		"username", me.Username,
		"id", me.ID,
		"provider", completer.Name(),
		"model", cfg.Model,
	)
	b.Start(ctx)

	// Graceful shutdown
	slog.Info("bot stopped gracefully", "workspaces", workspaces.Len())
}
