// internal/labels/labels.go
//
// Fixed display text for the game surfaces.
//
// Responsibilities:
//   - Map a Choice to its label and icon.
//   - Map an Outcome to the text shown after a round.
//   - Hold the placeholders and the reset confirmation.
//
// The label set is fixed; there is no locale switching.

package labels

import "github.com/robalobadob/rps/internal/game"

// Option is the display form of a Choice.
type Option struct {
	Choice game.Choice
	Label  string
	Icon   string
}

var options = []Option{
	{Choice: game.Scissors, Label: "Scissors", Icon: "✌️"},
	{Choice: game.Rock, Label: "Rock", Icon: "✊"},
	{Choice: game.Paper, Label: "Paper", Icon: "✋"},
}

const (
	Title          = "Rock Paper Scissors"
	You            = "You"
	Computer       = "Computer"
	HistoryHeading = "History"
	ResetButton    = "Reset"
	NotPlayed      = "Not played"
	NoHistory      = "No rounds yet"
	ResetDone      = "Reset complete"
)

// Options returns the three hands in button order.
func Options() []Option {
	out := make([]Option, len(options))
	copy(out, options)
	return out
}

// lookup returns the Option for c, or a zero Option when c is unset.
func lookup(c game.Choice) Option {
	for _, o := range options {
		if o.Choice == c {
			return o
		}
	}
	return Option{}
}

// Label returns the label for c, or "" when c is unset.
func Label(c game.Choice) string { return lookup(c).Label }

// Icon returns the icon for c, or "" when c is unset.
func Icon(c game.Choice) string { return lookup(c).Icon }

// Outcome returns the text for o; OutcomeNone maps to "".
func Outcome(o game.Outcome) string {
	switch o {
	case game.OutcomeWin:
		return "You win!"
	case game.OutcomeLose:
		return "You lose!"
	case game.OutcomeTie:
		return "Tie"
	}
	return ""
}

// Pick renders a hand as "icon label", or the placeholder when unset.
func Pick(c game.Choice) string {
	o := lookup(c)
	if o.Label == "" {
		return NotPlayed
	}
	return o.Icon + " " + o.Label
}

// Messages is the game.Messages backed by this label set.
type Messages struct{}

var _ game.Messages = Messages{}

func (Messages) OutcomeText(o game.Outcome) string { return Outcome(o) }
func (Messages) ResetText() string                 { return ResetDone }
