package onboarding

import (
	tghelpers "github.com/m3rciful/leadbot/core/telegram/helpers"
	"github.com/m3rciful/leadbot/core/telegram/ui"

	tele "gopkg.in/telebot.v4"
)

// BindStates registers the conversation's text handlers on the session
// manager used by the message router.
func (f *Flow) BindStates() {
	f.states.RegisterHandler(StateAwaitingName, func(c tele.Context) error {
		return ui.Send(c, f.SubmitName(c.Sender().ID, c.Text())...)
	})
	f.states.RegisterHandler(StateAwaitingEmail, func(c tele.Context) error {
		sender := c.Sender()
		msgs, err := f.SubmitEmail(tghelpers.BuildContext(c), Profile{
			UserID:   sender.ID,
			Username: sender.Username,
		}, c.Text())
		if sendErr := ui.Send(c, msgs...); sendErr != nil {
			return sendErr
		}
		return err
	})
}

// StartHandler begins the conversation on /start.
func (f *Flow) StartHandler(c tele.Context) error {
	return ui.Send(c, f.Begin(c.Sender().ID)...)
}

// CancelHandler aborts the conversation on /cancel.
func (f *Flow) CancelHandler(c tele.Context) error {
	return ui.Send(c, f.Cancel(c.Sender().ID)...)
}
