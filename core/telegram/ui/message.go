// Package ui defines a transport-neutral outbound message model so that
// conversation and menu logic can be exercised without a live bot.
package ui

import (
	tghelpers "github.com/m3rciful/leadbot/core/telegram/helpers"
	"github.com/m3rciful/leadbot/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

// Message is a single outbound text message with optional reply-keyboard
// instructions. Keyboard rows and RemoveKeyboard are mutually exclusive;
// when both are empty the previously shown keyboard is left as is.
type Message struct {
	Text           string
	Markdown       bool
	Keyboard       [][]string
	RemoveKeyboard bool
}

// Text returns a plain message.
func Text(text string) Message {
	return Message{Text: text}
}

// Markdown returns a Markdown-formatted message.
func Markdown(text string) Message {
	return Message{Text: text, Markdown: true}
}

// WithKeyboard attaches reply-keyboard rows to the message.
func (m Message) WithKeyboard(rows ...[]string) Message {
	m.Keyboard = rows
	m.RemoveKeyboard = false
	return m
}

// WithoutKeyboard marks the message to hide any visible reply keyboard.
func (m Message) WithoutKeyboard() Message {
	m.Keyboard = nil
	m.RemoveKeyboard = true
	return m
}

// Send renders messages to the Telegram context in order, stopping on the
// first transport error.
func Send(c tele.Context, msgs ...Message) error {
	for _, m := range msgs {
		markup := m.markup()
		var err error
		switch {
		case m.Markdown:
			err = tghelpers.SendMD(c, m.Text, markup)
		case markup != nil:
			err = tghelpers.SendText(c, m.Text, &tele.SendOptions{ReplyMarkup: markup})
		default:
			err = tghelpers.SendText(c, m.Text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (m Message) markup() *tele.ReplyMarkup {
	if m.RemoveKeyboard {
		return keyboard.RemoveKeyboard()
	}
	if len(m.Keyboard) > 0 {
		return keyboard.ReplyButtons(m.Keyboard...)
	}
	return nil
}
