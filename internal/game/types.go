// internal/game/types.go
//
// Core type definitions for the rock-paper-scissors engine.
// Defines:
//   - Choice: one of scissors/rock/paper.
//   - Outcome: result of a round from the player's side (win/lose/tie, or none).
//   - HistoryEntry / RoundResult: record of one played round.
//   - Notification: transient message emitted after play or reset.

package game

import (
	"errors"
	"strings"
)

// ErrInvalidChoice is returned by ParseChoice for anything outside the three choices.
var ErrInvalidChoice = errors.New("invalid choice")

// Choice is a hand played in a round. The zero value means "not picked".
type Choice string

const (
	Scissors Choice = "scissors"
	Rock     Choice = "rock"
	Paper    Choice = "paper"
)

// Choices lists the playable hands in display order.
var Choices = [3]Choice{Scissors, Rock, Paper}

// ParseChoice accepts the wire form of a choice (case-insensitive, trimmed).
func ParseChoice(s string) (Choice, error) {
	c := Choice(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", ErrInvalidChoice
	}
	return c, nil
}

// Valid reports whether c is one of the three playable hands.
func (c Choice) Valid() bool {
	switch c {
	case Scissors, Rock, Paper:
		return true
	}
	return false
}

// Beats reports whether c wins against other.
func (c Choice) Beats(other Choice) bool {
	switch c {
	case Scissors:
		return other == Paper
	case Rock:
		return other == Scissors
	case Paper:
		return other == Rock
	}
	return false
}

// Outcome is the result of a round, seen from the player.
type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeWin  Outcome = "win"
	OutcomeLose Outcome = "lose"
	OutcomeTie  Outcome = "tie"
)

// HistoryEntry records one finished round.
type HistoryEntry struct {
	User     Choice  `json:"userChoice"`
	Computer Choice  `json:"computerChoice"`
	Outcome  Outcome `json:"outcome"`
}

// RoundResult is what PlayRound hands back to the caller.
type RoundResult = HistoryEntry

// Level classifies a Notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
)

// Notification is a fire-and-forget message shown once to the player.
type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}
