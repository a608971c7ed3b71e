package funnel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchUnknownLabel(t *testing.T) {
	d := New(Links{})

	msgs, ok := d.Dispatch("not a button", "Alice")
	assert.False(t, ok)
	assert.Nil(t, msgs)
}

func TestReadyAliasesBrokerQuestion(t *testing.T) {
	d := New(Links{})

	viaNext, ok := d.Dispatch(LabelNextSteps, "Alice")
	require.True(t, ok)
	viaReady, ok := d.Dispatch(LabelReady, "Alice")
	require.True(t, ok)

	assert.Equal(t, viaNext, viaReady, "I'm ready! must replay the broker question")
}

func TestBrokerQuestionOffersBothAnswers(t *testing.T) {
	d := New(Links{})

	msgs, ok := d.Dispatch(LabelNextSteps, "")
	require.True(t, ok)
	require.Len(t, msgs, 1)
	assert.Equal(t, [][]string{{LabelHasAccount}, {LabelNewAccount}}, msgs[0].Keyboard)
}

func TestTerminalNodesRemoveKeyboard(t *testing.T) {
	d := New(Links{})

	for _, label := range []string{LabelHasAccount, LabelDone} {
		msgs, ok := d.Dispatch(label, "")
		require.True(t, ok, label)
		last := msgs[len(msgs)-1]
		assert.True(t, last.RemoveKeyboard, "terminal node %q must clear the keyboard", label)
		assert.Empty(t, last.Keyboard)
	}
}

func TestLinksFlowIntoCopy(t *testing.T) {
	d := New(Links{
		SignupURL:     "https://broker.example/ref",
		CommunityURL:  "https://t.me/+example",
		SupportHandle: "@support",
	})

	msgs, ok := d.Dispatch(LabelNewAccount, "Bob")
	require.True(t, ok)
	require.Len(t, msgs, 3)
	assert.Contains(t, msgs[0].Text, "Bob")
	assert.Contains(t, msgs[1].Text, "https://broker.example/ref")
	assert.Contains(t, msgs[1].Text, "@support")

	msgs, ok = d.Dispatch(LabelDone, "")
	require.True(t, ok)
	assert.Contains(t, msgs[0].Text, "https://t.me/+example")
}

func TestEmptyLinksFallBackToDefaults(t *testing.T) {
	d := New(Links{})

	msgs, ok := d.Dispatch(LabelHasAccount, "")
	require.True(t, ok)
	assert.Contains(t, msgs[0].Text, "@maxjameshatton")
}

func TestStartMessagesEndWithEntryKeyboard(t *testing.T) {
	d := New(Links{})

	msgs := d.StartMessages("Alice")
	require.Len(t, msgs, 4)
	assert.Contains(t, msgs[0].Text, "Alice")
	last := msgs[len(msgs)-1]
	assert.Equal(t, [][]string{{LabelNextSteps}, {LabelWhyFree}}, last.Keyboard)
}

func TestEveryLabelResolves(t *testing.T) {
	d := New(Links{})

	for _, label := range d.Labels() {
		msgs, ok := d.Dispatch(label, "Test")
		assert.True(t, ok, label)
		assert.NotEmpty(t, msgs, label)
	}
}
