package state

import tele "gopkg.in/telebot.v4"

// State identifies a finite-state-machine step used in conversations.
type State string

const (
	// StateIdle indicates there is no active conversation with the user.
	StateIdle State = "idle"
)

// Session stores conversation state and temporary data for a user.
type Session struct {
	State    State
	TempData map[string]interface{}
}

// Manager orchestrates user sessions and FSM state transitions. Sessions
// live in volatile memory only: a process restart drops every in-progress
// conversation, which is acceptable because nothing is persisted before a
// conversation completes.
type Manager interface {
	SetState(userID int64, st State)
	GetState(userID int64) State
	Clear(userID int64)

	SetTemp(userID int64, key string, value interface{})
	GetTemp(userID int64, key string) (interface{}, bool)
	GetTempString(userID int64, key string) (string, bool)

	// RegisterHandler binds a state to the handler invoked for text
	// updates arriving while a user is in that state.
	RegisterHandler(st State, h tele.HandlerFunc)

	InProgress(userID int64) bool
	ManagerHandler(c tele.Context) error
}
