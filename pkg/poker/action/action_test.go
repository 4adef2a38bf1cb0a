package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromString(t *testing.T) {
	a := assert.New(t)

	act, err := FromString("fold")
	a.NoError(err)
	a.Equal(Fold, act)

	_, err = FromString("bluff")
	a.EqualError(err, "unknown action for identifier: bluff")
}

func TestAction_IsValid(t *testing.T) {
	a := assert.New(t)
	a.True(Raise.IsValid())
	a.False(Action("all-in").IsValid())
}

func TestDecision_String(t *testing.T) {
	a := assert.New(t)
	a.Equal("Fold", NewDecision(Fold).String())
	a.Equal("Raise to ${50}", NewRaise(50).String())
}

func TestDecision_LogMessage(t *testing.T) {
	a := assert.New(t)
	a.Equal("folded", NewDecision(Fold).LogMessage(0))
	a.Equal("checked", NewDecision(Check).LogMessage(0))
	a.Equal("called ${25}", NewDecision(Call).LogMessage(25))
	a.Equal("raised to ${75}", NewRaise(75).LogMessage(25))
}
