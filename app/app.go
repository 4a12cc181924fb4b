// Package app wires configuration, the intake machine, the publisher and
// the Telegram transport into a runnable bot.
package app

import (
	"context"
	"time"

	"vitrinabot/bot/intake"
	"vitrinabot/bot/media"
	"vitrinabot/bot/publish"
	"vitrinabot/bot/session"
	coreconfig "vitrinabot/core/config"
	"vitrinabot/core/logger"
	"vitrinabot/core/telegram"
	"vitrinabot/core/telegram/keyboard"
	"vitrinabot/core/telegram/middleware"

	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// Reply-keyboard button labels. They mirror /start and /done.
const (
	ButtonStart  = "🚀 Start"
	ButtonFinish = "🏁 Finish"
)

// App owns the bot's long-lived components.
type App struct {
	cfg     *coreconfig.Config
	machine *intake.Machine
	menu    *tele.ReplyMarkup
}

// New builds the application from configuration.
func New(cfg *coreconfig.Config) *App {
	return &App{
		cfg:     cfg,
		machine: intake.NewMachine(session.NewStore(), media.NewBuffer()),
		menu:    keyboard.ReplyButtons([]string{ButtonStart, ButtonFinish}),
	}
}

// RunOptions assembles the Telegram runtime options for this bot.
func (a *App) RunOptions() telegram.RunOptions {
	return telegram.RunOptions{
		Config:      a.cfg,
		Middlewares: a.middlewares(),
		Routes:      a.routes(),
		Commands: []tele.Command{
			{Text: "start", Description: "Начать добавление товара"},
			{Text: "done", Description: "Завершить отправку медиа"},
		},
		OnStart: func(ctx context.Context, rt telegram.Runtime) error {
			a.machine.BindPublisher(publish.New(rt.Bot, a.cfg.Channels.Retail, a.cfg.Channels.Wholesale))
			logger.Info(ctx, "app", "bot ready",
				slog.String("event", "app.start"),
				slog.String("username", rt.Bot.Me.Username),
			)
			return nil
		},
	}
}

// middlewares builds the global chain. Order matters: panics are caught
// first, then updates are serialized per sender so intake transitions
// never interleave, then access, rate limiting and request logging.
func (a *App) middlewares() []telegram.Middleware {
	mws := []telegram.Middleware{
		{Name: "recover", Use: middleware.RecoverMiddleware},
		{Name: "serialize", Use: middleware.SerializePerSender()},
	}

	if a.cfg.Telegram.OperatorID != 0 {
		mws = append(mws, telegram.Middleware{
			Name: "operator_only",
			Use: middleware.OperatorOnlyMiddleware(middleware.OperatorOptions{
				OperatorID: a.cfg.Telegram.OperatorID,
			}),
		})
	}

	if a.cfg.RateLimit.IntervalMS > 0 {
		exclude := make(map[string]struct{}, len(a.cfg.RateLimit.ExcludeUpdates))
		for _, v := range a.cfg.RateLimit.ExcludeUpdates {
			exclude[v] = struct{}{}
		}
		mws = append(mws, telegram.Middleware{
			Name: "rate_limit",
			Use: middleware.RateLimitMiddleware(middleware.RateLimitOptions{
				Interval: time.Duration(a.cfg.RateLimit.IntervalMS) * time.Millisecond,
				Exclude:  exclude,
			}),
		})
	}

	mws = append(mws, telegram.Middleware{Name: "logger", Use: middleware.LoggerMiddleware})
	return mws
}

func (a *App) routes() []telegram.Route {
	return []telegram.Route{
		{Endpoint: "/start", Handler: a.handleStart},
		{Endpoint: "/done", Handler: a.handleFinish},
		{Endpoint: tele.OnText, Handler: a.handleText},
		{Endpoint: tele.OnPhoto, Handler: a.handleMedia},
		{Endpoint: tele.OnVideo, Handler: a.handleMedia},
		{Endpoint: tele.OnDocument, Handler: a.handleUnsupported},
		{Endpoint: tele.OnSticker, Handler: a.handleUnsupported},
	}
}
