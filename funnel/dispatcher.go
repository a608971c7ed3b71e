// Package funnel implements the stateless post-onboarding menu flow. Each
// reply-keyboard button label maps to exactly one node in a static graph;
// pressing a button replays that node's messages and shows the next keyboard.
// No per-user position is tracked, so stale keyboards from earlier messages
// keep working.
package funnel

import (
	"fmt"

	"github.com/m3rciful/leadbot/core/telegram/ui"
)

// Button labels double as routing keys, so every label must be unique
// across the whole funnel.
const (
	LabelNextSteps  = "Next Steps"
	LabelWhyFree    = "Why is it free?"
	LabelHasAccount = "Yes, I do 💪"
	LabelNewAccount = "No, I'm new to this"
	LabelReady      = "I'm ready!"
	LabelDone       = "DONE ✅"
)

// node renders the messages for one pressed label. firstName comes from the
// Telegram profile and may be empty.
type node func(firstName string) []ui.Message

// Dispatcher routes button labels to funnel nodes.
type Dispatcher struct {
	links Links
	nodes map[string]node
}

// New builds the funnel graph. It panics if two nodes claim the same label,
// since a shadowed button could never be reached.
func New(links Links) *Dispatcher {
	links.Normalize()
	d := &Dispatcher{
		links: links,
		nodes: make(map[string]node),
	}

	d.add(LabelNextSteps, d.brokerQuestionNode)
	d.add(LabelWhyFree, d.whyFreeNode)
	d.add(LabelHasAccount, d.hasAccountNode)
	d.add(LabelNewAccount, d.newAccountNode)
	// "I'm ready!" re-enters the broker question rather than having copy of
	// its own.
	d.add(LabelReady, d.brokerQuestionNode)
	d.add(LabelDone, d.doneNode)

	return d
}

func (d *Dispatcher) add(label string, n node) {
	if _, exists := d.nodes[label]; exists {
		panic(fmt.Sprintf("funnel: duplicate button label %q", label))
	}
	d.nodes[label] = n
}

// Dispatch resolves a message text against the label index. The second
// return value reports whether the text matched a funnel button.
func (d *Dispatcher) Dispatch(label, firstName string) ([]ui.Message, bool) {
	n, ok := d.nodes[label]
	if !ok {
		return nil, false
	}
	return n(firstName), true
}

// Labels returns every routable button label.
func (d *Dispatcher) Labels() []string {
	labels := make([]string, 0, len(d.nodes))
	for l := range d.nodes {
		labels = append(labels, l)
	}
	return labels
}

// Fallback is the reply for text that matches no button and no command.
func (d *Dispatcher) Fallback() []ui.Message {
	return []ui.Message{ui.Text(fallbackText)}
}

// StartMessages is the pitch shown right after onboarding completes,
// ending with the funnel entry keyboard.
func (d *Dispatcher) StartMessages(firstName string) []ui.Message {
	return []ui.Message{
		ui.Text(greetAfterSave(firstName)),
		ui.Text(pitchBenefits),
		ui.Text(pitchCosts),
		ui.Text(chooseOption).WithKeyboard(
			[]string{LabelNextSteps},
			[]string{LabelWhyFree},
		),
	}
}

func (d *Dispatcher) brokerQuestionNode(string) []ui.Message {
	return []ui.Message{
		ui.Text(brokerQuestion).WithKeyboard(
			[]string{LabelHasAccount},
			[]string{LabelNewAccount},
		),
	}
}

func (d *Dispatcher) whyFreeNode(firstName string) []ui.Message {
	return []ui.Message{
		ui.Text(freeQuestionGreeting(firstName)),
		ui.Text(freeBreakdown),
		ui.Text(freePerks),
		ui.Text(freeClose).WithKeyboard(
			[]string{LabelReady},
		),
	}
}

func (d *Dispatcher) hasAccountNode(string) []ui.Message {
	return []ui.Message{
		ui.Text(alreadyRegistered(d.links)).WithoutKeyboard(),
	}
}

func (d *Dispatcher) newAccountNode(firstName string) []ui.Message {
	return []ui.Message{
		ui.Text(signupIntro(firstName)),
		ui.Markdown(signupSteps(d.links)),
		ui.Text(signupReturn).WithKeyboard(
			[]string{LabelDone},
		),
	}
}

func (d *Dispatcher) doneNode(string) []ui.Message {
	return []ui.Message{
		ui.Text(communityInvite(d.links)).WithoutKeyboard(),
	}
}
