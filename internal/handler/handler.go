package handler

import (
	"github.com/go-telegram/bot"
	"github.com/set-night/docqa/internal/config"
	"github.com/set-night/docqa/internal/service"
	"github.com/set-night/docqa/internal/telegram"
)

// Handler holds all dependencies needed by command and callback handlers.
type Handler struct {
	bot        *bot.Bot
	cfg        *config.Config
	uploads    *service.UploadService
	transcript *service.Transcript
	pricing    service.Pricing
	tgLogger   *telegram.TelegramLogger
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot        *bot.Bot
	Cfg        *config.Config
	Uploads    *service.UploadService
	Transcript *service.Transcript
	Pricing    service.Pricing
	TgLogger   *telegram.TelegramLogger
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:        deps.Bot,
		cfg:        deps.Cfg,
		uploads:    deps.Uploads,
		transcript: deps.Transcript,
		pricing:    deps.Pricing,
		tgLogger:   deps.TgLogger,
	}
}
