package action

import (
	"encoding/json"
	"fmt"
)

// Action represents an action a player can take in a betting round
type Action string

// action constants
const (
	Fold  Action = "fold"
	Check Action = "check"
	Call  Action = "call"
	Raise Action = "raise"
)

var allowedActions = map[Action]bool{
	Fold:  true,
	Check: true,
	Call:  true,
	Raise: true,
}

// FromString returns an action for the given string
func FromString(s string) (Action, error) {
	if _, ok := allowedActions[Action(s)]; ok {
		return Action(s), nil
	}

	return "", fmt.Errorf("unknown action for identifier: %s", s)
}

func (a Action) String() string {
	switch a {
	case Fold:
		return "Fold"
	case Check:
		return "Check"
	case Call:
		return "Call"
	case Raise:
		return "Raise"
	}

	panic("unknown action")
}

// IsValid returns true if the action is permitted
func (a Action) IsValid() bool {
	_, ok := allowedActions[a]
	return ok
}

// MarshalJSON encodes the action into JSON
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}{
		ID:   string(a),
		Name: a.String(),
	})
}

// Decision is a single, fully-specified player decision.
// Amount is the total bet to reach and is only meaningful for raises.
type Decision struct {
	Action Action `json:"action"`
	Amount int    `json:"amount,omitempty"`
}

// NewDecision returns a decision without an amount
func NewDecision(a Action) Decision {
	return Decision{Action: a}
}

// NewRaise returns a raise decision to the given total bet
func NewRaise(amount int) Decision {
	return Decision{Action: Raise, Amount: amount}
}

func (d Decision) String() string {
	if d.Action == Raise {
		return fmt.Sprintf("Raise to ${%d}", d.Amount)
	}

	return d.Action.String()
}

// LogMessage returns a message formatted for the event log
func (d Decision) LogMessage(amount int) string {
	switch d.Action {
	case Fold:
		return "folded"
	case Check:
		return "checked"
	case Call:
		return fmt.Sprintf("called ${%d}", amount)
	case Raise:
		return fmt.Sprintf("raised to ${%d}", d.Amount)
	}

	return ""
}
