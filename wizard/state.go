// SPDX-License-Identifier: EPL-2.0

package wizard

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a call is not allowed in the
// session's current state.
var ErrInvalidTransition = errors.New("invalid wizard transition")

// State is a step of the wizard.
type State int

const (
	SelectingInput State = iota
	Configuring
	Exporting
	Done
)

func (s State) String() string {
	switch s {
	case SelectingInput:
		return "selecting-input"
	case Configuring:
		return "configuring"
	case Exporting:
		return "exporting"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var transitions = map[State][]State{
	SelectingInput: {Configuring},
	Configuring:    {SelectingInput, Exporting},
	Exporting:      {Done, Configuring},
}

func canTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func invalidTransition(op string, from State) error {
	return fmt.Errorf("%w: %s not allowed while %s", ErrInvalidTransition, op, from)
}
