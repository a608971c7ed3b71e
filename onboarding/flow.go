// Package onboarding implements the guided name and email collection that
// every new user walks through before entering the funnel.
package onboarding

import (
	"context"
	"fmt"
	"strings"

	"github.com/m3rciful/leadbot/core/logger"
	"github.com/m3rciful/leadbot/core/telegram/state"
	"github.com/m3rciful/leadbot/core/telegram/ui"
	"github.com/m3rciful/leadbot/funnel"
	"github.com/m3rciful/leadbot/users"
	"log/slog"
)

// Conversation states. A user is in at most one of these; anything else
// means no onboarding is in progress.
const (
	StateAwaitingName  state.State = "onboarding.awaiting_name"
	StateAwaitingEmail state.State = "onboarding.awaiting_email"
)

const tempKeyFullName = "full_name"

const (
	welcomeText = "Welcome! I'm excited to have you join the trading community.\n\n" +
		"First, please tell me your *full name*."
	invalidEmailText = "That doesn't look like a valid email. Try again."
	saveFailedText   = "Sorry, something went wrong while saving your details. Please try again."
	cancelledText    = "Registration canceled."
)

// Saver persists a completed lead.
type Saver interface {
	Register(ctx context.Context, u users.User) error
}

// Profile carries the Telegram identity of the user being onboarded.
type Profile struct {
	UserID   int64
	Username string
}

// Flow drives the onboarding conversation. All methods return the outbound
// messages to send; state transitions happen on the shared manager.
type Flow struct {
	states state.Manager
	saver  Saver
	funnel *funnel.Dispatcher
}

// NewFlow wires the conversation over a session manager, lead store and the
// funnel shown after completion.
func NewFlow(states state.Manager, saver Saver, fd *funnel.Dispatcher) *Flow {
	return &Flow{states: states, saver: saver, funnel: fd}
}

// Begin starts (or restarts) the conversation. Any previously staged data is
// discarded.
func (f *Flow) Begin(userID int64) []ui.Message {
	f.states.Clear(userID)
	f.states.SetState(userID, StateAwaitingName)
	logger.Debug(logger.Background(), "onboarding", "conversation.begin",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.String("state", string(StateAwaitingName)),
	)
	return []ui.Message{ui.Markdown(welcomeText)}
}

// SubmitName stages the full name and advances to email collection. Empty
// input repeats the prompt; command-looking input is not consumed as a name.
func (f *Flow) SubmitName(userID int64, text string) []ui.Message {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "/") {
		return f.funnel.Fallback()
	}
	if text == "" {
		return []ui.Message{ui.Markdown(welcomeText)}
	}

	f.states.SetTemp(userID, tempKeyFullName, text)
	f.states.SetState(userID, StateAwaitingEmail)
	logger.Debug(logger.Background(), "onboarding", "conversation.name",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.String("state", string(StateAwaitingEmail)),
	)
	return []ui.Message{
		ui.Markdown(fmt.Sprintf("Thanks %s — please enter your *email address* for full access.", text)),
	}
}

// SubmitEmail validates the address and, when valid, persists the lead and
// hands over to the funnel. Invalid input keeps the user in the email state.
// The returned error is non-nil only when persistence failed; the user has
// already been asked to retry in that case.
func (f *Flow) SubmitEmail(ctx context.Context, p Profile, text string) ([]ui.Message, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "/") {
		return f.funnel.Fallback(), nil
	}
	if !IsValidEmail(text) {
		logger.Debug(ctx, "onboarding", "conversation.email",
			slog.String("status", "retry"),
			slog.Int64("user_id", p.UserID),
			slog.String("state", string(StateAwaitingEmail)),
		)
		return []ui.Message{ui.Text(invalidEmailText)}, nil
	}

	fullName, _ := f.states.GetTempString(p.UserID, tempKeyFullName)

	err := f.saver.Register(ctx, users.User{
		TelegramID: p.UserID,
		Username:   p.Username,
		FullName:   fullName,
		Email:      text,
	})
	if err != nil {
		// Keep the staged name and state so the user can simply resend
		// the email once storage recovers.
		logger.Error(ctx, "onboarding", "conversation.email",
			slog.String("status", "fail"),
			slog.Int64("user_id", p.UserID),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
		return []ui.Message{ui.Text(saveFailedText)}, err
	}

	f.states.Clear(p.UserID)
	logger.Info(ctx, "onboarding", "conversation.complete",
		slog.String("status", "ok"),
		slog.Int64("user_id", p.UserID),
	)
	return f.funnel.StartMessages(firstName(fullName)), nil
}

// Cancel aborts the conversation and drops staged data. Cancelling without
// an active conversation is harmless.
func (f *Flow) Cancel(userID int64) []ui.Message {
	f.states.Clear(userID)
	logger.Debug(logger.Background(), "onboarding", "conversation.cancel",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
	)
	return []ui.Message{ui.Text(cancelledText).WithoutKeyboard()}
}

func firstName(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
