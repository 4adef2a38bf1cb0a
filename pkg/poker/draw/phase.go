package draw

import (
	"encoding/json"
	"fmt"
)

// Phase identifies where a hand is in its lifecycle
type Phase int

// phases, in strict play order
const (
	PhasePending Phase = iota
	PhaseAntes
	PhaseBlinds
	PhaseDeal
	PhasePreDrawBetting
	PhaseDraw
	PhasePostDrawBetting
	PhaseShowdown
	PhaseCleanup
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseAntes:
		return "antes"
	case PhaseBlinds:
		return "blinds"
	case PhaseDeal:
		return "deal"
	case PhasePreDrawBetting:
		return "pre-draw-betting"
	case PhaseDraw:
		return "draw"
	case PhasePostDrawBetting:
		return "post-draw-betting"
	case PhaseShowdown:
		return "showdown"
	case PhaseCleanup:
		return "cleanup"
	case PhaseDone:
		return "done"
	}

	panic("unknown phase")
}

// MarshalJSON encodes the phase as its string form
func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes the phase from its string form
func (p *Phase) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	phase, err := PhaseFromString(s)
	if err != nil {
		return err
	}

	*p = phase
	return nil
}

// PhaseFromString returns the phase for its string form
func PhaseFromString(s string) (Phase, error) {
	for p := PhasePending; p <= PhaseDone; p++ {
		if p.String() == s {
			return p, nil
		}
	}

	return 0, fmt.Errorf("unknown phase: %s", s)
}
