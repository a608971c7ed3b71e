// Package app wires the onboarding conversation, funnel and lead storage
// into a runnable Telegram bot.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/leadbot/core/bootstrap"
	"github.com/m3rciful/leadbot/core/logger"
	coretelegram "github.com/m3rciful/leadbot/core/telegram"
	"github.com/m3rciful/leadbot/core/telegram/commands"
	tghelpers "github.com/m3rciful/leadbot/core/telegram/helpers"
	"github.com/m3rciful/leadbot/core/telegram/router"
	"github.com/m3rciful/leadbot/core/telegram/state"
	"github.com/m3rciful/leadbot/core/telegram/ui"
	"github.com/m3rciful/leadbot/funnel"
	"github.com/m3rciful/leadbot/onboarding"
	"github.com/m3rciful/leadbot/users"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// App holds the bot's wired components.
type App struct {
	cfg *Config
	db  *sqlx.DB

	leads    *users.Service
	sessions state.Manager
	flow     *onboarding.Flow
	funnel   *funnel.Dispatcher
	registry *coretelegram.Registry
}

// New bootstraps infrastructure and wires the bot's handlers.
func New(cfg *Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config provided")
	}

	result, err := bootstrap.Run(bootstrap.Options{
		Config:   &cfg.Core,
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:      cfg,
		db:       result.DB,
		leads:    users.NewService(users.NewRepository(result.DB)),
		sessions: state.NewMemoryManager(),
		funnel:   funnel.New(cfg.Funnel),
	}
	a.flow = onboarding.NewFlow(a.sessions, a.leads, a.funnel)
	a.flow.BindStates()
	a.registry = a.buildRegistry()

	return a, nil
}

func (a *App) buildRegistry() *coretelegram.Registry {
	reg := coretelegram.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.flow.StartHandler,
		Description: "Begin registration",
	})
	reg.RegisterCommand("/cancel", commands.Command{
		Handler:     a.flow.CancelHandler,
		Description: "Cancel registration",
	})
	reg.RegisterCommand("/stats", commands.Command{
		Handler:     a.statsHandler,
		Description: "Show lead count",
		AdminOnly:   true,
		Hidden:      true,
	})

	reg.SetTextFallback(a.funnelHandler)
	return reg
}

// funnelHandler routes plain text against the funnel's button labels. Text
// that matches no label gets the generic fallback reply.
func (a *App) funnelHandler(c tele.Context) error {
	label := strings.TrimSpace(c.Text())
	firstName := ""
	if sender := c.Sender(); sender != nil {
		firstName = sender.FirstName
	}

	ctx := tghelpers.BuildContext(c)
	msgs, ok := a.funnel.Dispatch(label, firstName)
	if !ok {
		logger.Debug(ctx, "funnel", "funnel.miss",
			slog.String("status", "skip"),
			slog.String("label", logger.SanitizeLimit(label, 64)),
		)
		return ui.Send(c, a.funnel.Fallback()...)
	}

	logger.Info(ctx, "funnel", "funnel.dispatch",
		slog.String("status", "ok"),
		slog.String("label", label),
		slog.Int("messages", len(msgs)),
	)
	return ui.Send(c, msgs...)
}

func (a *App) statsHandler(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	count, err := a.leads.Count(ctx)
	if err != nil {
		if sendErr := tghelpers.SendText(c, "Stats are unavailable right now."); sendErr != nil {
			return sendErr
		}
		return err
	}
	return tghelpers.SendText(c, fmt.Sprintf("Registered leads: %d", count))
}

// TelegramRunOptions assembles everything RunTelegram needs.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	routes := router.CommandRoutes(a.registry, router.CommandRouteOptions{
		AdminID: a.cfg.Core.Telegram.AdminID,
	})
	routes = append(routes, router.TextRoutes(a.sessions, a.registry, router.TextOptions{})...)

	return coretelegram.RunOptions{
		Config:      &a.cfg.Core,
		Registry:    a.registry,
		Middlewares: coretelegram.DefaultMiddlewares(&a.cfg.Core, nil),
		Routes:      routes,
		OnStop: func(ctx context.Context, rt coretelegram.Runtime) error {
			return a.Close()
		},
	}, nil
}

// Close releases held resources.
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
