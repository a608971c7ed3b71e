package telegram

import (
	"testing"

	"github.com/m3rciful/leadbot/core/telegram/commands"
	"github.com/stretchr/testify/assert"

	tele "gopkg.in/telebot.v4"
)

func noopHandler(tele.Context) error { return nil }

func TestLookupCommandRequiresSlash(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/start", commands.Command{Handler: noopHandler, Description: "Begin registration"})

	// Bare words must stay ordinary text and fall through to the fallback.
	_, _, ok := reg.LookupCommand("start")
	assert.False(t, ok)
	_, _, ok = reg.LookupCommand("cancel")
	assert.False(t, ok)

	key, cmd, ok := reg.LookupCommand("/start")
	assert.True(t, ok)
	assert.Equal(t, "/start", key)
	assert.NotNil(t, cmd.Handler)
}

func TestLookupCommandResolvesAliases(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/cancel", commands.Command{
		Handler:     noopHandler,
		Description: "Cancel registration",
		Aliases:     []string{"abort"},
	})

	key, _, ok := reg.LookupCommand("/abort")
	assert.True(t, ok)
	assert.Equal(t, "/cancel", key)

	_, _, ok = reg.LookupCommand("abort")
	assert.False(t, ok)
}

func TestListCommandsHidesAdminAndHidden(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/start", commands.Command{Handler: noopHandler, Description: "Begin registration"})
	reg.RegisterCommand("/stats", commands.Command{Handler: noopHandler, Description: "Show lead count", AdminOnly: true, Hidden: true})

	visible := reg.ListCommands(true)
	assert.Len(t, visible, 1)
	assert.Equal(t, "/start", visible[0].Text)

	all := reg.ListCommands(false)
	assert.Len(t, all, 2)
}
