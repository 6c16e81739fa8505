// internal/game/engine.go
//
// Core engine for a single rock-paper-scissors session.
// Responsibilities:
//   - Decide the outcome of a (player, computer) pair.
//   - Play rounds: draw the computer's hand, score, record bounded history.
//   - Reset the session to the empty state.
//   - Queue the transient notification for the surface to display.
//
// Notes:
//   - A Session is not safe for concurrent use; callers serialize access
//     (the HTTP layer does so through store.Update).
//   - Display text comes from a Messages implementation (see internal/labels).
package game

// HistoryLimit is the number of most recent rounds a session keeps.
const HistoryLimit = 10

// Decide scores user against computer. It is total over the nine valid pairs.
func Decide(user, computer Choice) Outcome {
	switch {
	case user == computer:
		return OutcomeTie
	case user.Beats(computer):
		return OutcomeWin
	default:
		return OutcomeLose
	}
}

// Messages supplies the text carried by notifications.
type Messages interface {
	OutcomeText(o Outcome) string
	ResetText() string
}

// plainMessages is used when a Session is built without Messages.
type plainMessages struct{}

func (plainMessages) OutcomeText(o Outcome) string { return string(o) }
func (plainMessages) ResetText() string            { return "reset" }

// Session holds the state of one player's game.
type Session struct {
	picker   Picker
	messages Messages

	user     Choice
	computer Choice
	outcome  Outcome
	history  []HistoryEntry // newest first, len <= HistoryLimit

	pending *Notification
}

// NewSession constructs an empty session.
// A nil picker falls back to RandomPicker; nil messages to the wire names.
func NewSession(p Picker, m Messages) *Session {
	if p == nil {
		p = RandomPicker{}
	}
	if m == nil {
		m = plainMessages{}
	}
	return &Session{picker: p, messages: m}
}

// PlayRound draws the computer's hand, scores the round, prepends it to the
// history and queues an info notification with the outcome text.
// The caller guarantees user is valid.
func (s *Session) PlayRound(user Choice) RoundResult {
	computer := s.picker.Pick()
	res := RoundResult{User: user, Computer: computer, Outcome: Decide(user, computer)}

	s.user, s.computer, s.outcome = res.User, res.Computer, res.Outcome

	n := len(s.history) + 1
	if n > HistoryLimit {
		n = HistoryLimit
	}
	next := make([]HistoryEntry, n)
	next[0] = res
	copy(next[1:], s.history)
	s.history = next

	s.pending = &Notification{Level: LevelInfo, Message: s.messages.OutcomeText(res.Outcome)}
	return res
}

// Reset clears picks, outcome and history and queues a success notification.
// Calling it on an empty session leaves the same empty session.
func (s *Session) Reset() {
	s.user, s.computer, s.outcome = "", "", OutcomeNone
	s.history = nil
	s.pending = &Notification{Level: LevelSuccess, Message: s.messages.ResetText()}
}

// Played reports whether a round has been played since the last reset.
func (s *Session) Played() bool { return s.outcome != OutcomeNone }

// TakeNotification returns the queued notification, if any, and clears it.
func (s *Session) TakeNotification() (Notification, bool) {
	if s.pending == nil {
		return Notification{}, false
	}
	n := *s.pending
	s.pending = nil
	return n, true
}

// Snapshot is a read-only copy of session state for rendering.
type Snapshot struct {
	User     Choice         `json:"userChoice,omitempty"`
	Computer Choice         `json:"computerChoice,omitempty"`
	Outcome  Outcome        `json:"outcome"`
	History  []HistoryEntry `json:"history"`
}

// Snapshot copies the current state. History is never nil.
func (s *Session) Snapshot() Snapshot {
	h := make([]HistoryEntry, len(s.history))
	copy(h, s.history)
	return Snapshot{User: s.user, Computer: s.computer, Outcome: s.outcome, History: h}
}
