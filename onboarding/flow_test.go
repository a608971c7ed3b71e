package onboarding

import (
	"context"
	"errors"
	"testing"

	"github.com/m3rciful/leadbot/core/telegram/state"
	"github.com/m3rciful/leadbot/funnel"
	"github.com/m3rciful/leadbot/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSaver struct {
	saved []users.User
	err   error
}

func (f *fakeSaver) Register(_ context.Context, u users.User) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, u)
	return nil
}

func newTestFlow(saver *fakeSaver) (*Flow, state.Manager) {
	mgr := state.NewMemoryManager()
	return NewFlow(mgr, saver, funnel.New(funnel.Links{})), mgr
}

func TestFullConversation(t *testing.T) {
	saver := &fakeSaver{}
	flow, mgr := newTestFlow(saver)
	ctx := context.Background()

	msgs := flow.Begin(42)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "full name")
	assert.Equal(t, StateAwaitingName, mgr.GetState(42))

	msgs = flow.SubmitName(42, "  Alice Example  ")
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "Alice Example")
	assert.Equal(t, StateAwaitingEmail, mgr.GetState(42))

	msgs, err := flow.SubmitEmail(ctx, Profile{UserID: 42, Username: "alice"}, "alice@example.com")
	require.NoError(t, err)

	require.Len(t, saver.saved, 1)
	assert.Equal(t, int64(42), saver.saved[0].TelegramID)
	assert.Equal(t, "alice", saver.saved[0].Username)
	assert.Equal(t, "Alice Example", saver.saved[0].FullName)
	assert.Equal(t, "alice@example.com", saver.saved[0].Email)

	// Conversation ends and the funnel pitch greets by first name.
	assert.False(t, mgr.InProgress(42))
	require.NotEmpty(t, msgs)
	assert.Contains(t, msgs[0].Text, "Alice")
	assert.NotContains(t, msgs[0].Text, "Alice Example")
}

func TestInvalidEmailStaysInEmailState(t *testing.T) {
	saver := &fakeSaver{}
	flow, mgr := newTestFlow(saver)
	ctx := context.Background()

	flow.Begin(42)
	flow.SubmitName(42, "Alice")

	msgs, err := flow.SubmitEmail(ctx, Profile{UserID: 42}, "not-an-email")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "valid email")

	assert.Equal(t, StateAwaitingEmail, mgr.GetState(42))
	assert.Empty(t, saver.saved, "invalid email must not be persisted")

	// A corrected address still completes.
	_, err = flow.SubmitEmail(ctx, Profile{UserID: 42}, "alice@example.com")
	require.NoError(t, err)
	assert.Len(t, saver.saved, 1)
}

func TestCancelDropsStagedData(t *testing.T) {
	saver := &fakeSaver{}
	flow, mgr := newTestFlow(saver)

	flow.Begin(42)
	flow.SubmitName(42, "Alice")

	msgs := flow.Cancel(42)
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].RemoveKeyboard)

	assert.False(t, mgr.InProgress(42))
	_, found := mgr.GetTempString(42, tempKeyFullName)
	assert.False(t, found)
	assert.Empty(t, saver.saved)
}

func TestCancelWithoutConversationIsHarmless(t *testing.T) {
	flow, mgr := newTestFlow(&fakeSaver{})

	msgs := flow.Cancel(99)
	require.Len(t, msgs, 1)
	assert.False(t, mgr.InProgress(99))
}

func TestRestartDiscardsStagedName(t *testing.T) {
	saver := &fakeSaver{}
	flow, mgr := newTestFlow(saver)
	ctx := context.Background()

	flow.Begin(42)
	flow.SubmitName(42, "Old Name")

	// /start mid-conversation restarts from scratch.
	flow.Begin(42)
	assert.Equal(t, StateAwaitingName, mgr.GetState(42))
	_, found := mgr.GetTempString(42, tempKeyFullName)
	assert.False(t, found)

	flow.SubmitName(42, "New Name")
	_, err := flow.SubmitEmail(ctx, Profile{UserID: 42}, "n@example.com")
	require.NoError(t, err)
	require.Len(t, saver.saved, 1)
	assert.Equal(t, "New Name", saver.saved[0].FullName)
}

func TestStorageFailureKeepsStateForRetry(t *testing.T) {
	saver := &fakeSaver{err: users.ErrStorageUnavailable}
	flow, mgr := newTestFlow(saver)
	ctx := context.Background()

	flow.Begin(42)
	flow.SubmitName(42, "Alice")

	msgs, err := flow.SubmitEmail(ctx, Profile{UserID: 42}, "alice@example.com")
	assert.ErrorIs(t, err, users.ErrStorageUnavailable)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "try again")

	// State and staged name survive so resending the email can succeed.
	assert.Equal(t, StateAwaitingEmail, mgr.GetState(42))
	name, found := mgr.GetTempString(42, tempKeyFullName)
	require.True(t, found)
	assert.Equal(t, "Alice", name)

	saver.err = nil
	_, err = flow.SubmitEmail(ctx, Profile{UserID: 42}, "alice@example.com")
	require.NoError(t, err)
	assert.Len(t, saver.saved, 1)
}

func TestCommandLikeInputIsNotConsumed(t *testing.T) {
	saver := &fakeSaver{}
	flow, mgr := newTestFlow(saver)
	ctx := context.Background()

	flow.Begin(42)

	msgs := flow.SubmitName(42, "/help")
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "didn't understand")
	assert.Equal(t, StateAwaitingName, mgr.GetState(42))

	flow.SubmitName(42, "Alice")
	msgs, err := flow.SubmitEmail(ctx, Profile{UserID: 42}, "/help")
	require.NoError(t, err)
	assert.Contains(t, msgs[0].Text, "didn't understand")
	assert.Equal(t, StateAwaitingEmail, mgr.GetState(42))
	assert.Empty(t, saver.saved)
}

func TestUnexpectedSaveErrorLosesNothing(t *testing.T) {
	saver := &fakeSaver{err: errors.New("boom")}
	flow, _ := newTestFlow(saver)

	flow.Begin(42)
	flow.SubmitName(42, "Alice")

	_, err := flow.SubmitEmail(context.Background(), Profile{UserID: 42}, "alice@example.com")
	assert.Error(t, err)
}
